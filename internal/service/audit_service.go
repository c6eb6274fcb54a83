package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/events"
	"github.com/spec-kit/insurance-crm/internal/repository"
)

// AuditService records company events in the change_event trail.
type AuditService struct {
	dispatcher events.Dispatcher
	changes    repository.ChangeEventRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, changes repository.ChangeEventRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		changes:    changes,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.CompanyEventTypes {
		a.dispatcher.Subscribe(eventType, a.record)
	}
}

func (a *AuditService) record(ctx context.Context, event events.Event) error {
	change := &domain.ChangeEvent{
		CompanyID:   event.CompanyID,
		EventType:   event.Type,
		Description: event.Description,
		OldValue:    event.OldValue,
		NewValue:    event.NewValue,
		ChangedBy:   event.Actor.StaffID,
	}
	if err := a.changes.Create(ctx, change); err != nil {
		return err
	}
	a.logger.Debug("change event recorded",
		zap.Int64("event_id", change.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("company_id", event.CompanyID))
	return nil
}
