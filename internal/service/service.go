package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-crm/internal/events"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// notFoundOr maps a missing row to NotFound for resource and anything else
// through the generic mapper.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource)
	}
	return apperrors.MapError(err)
}

// publisher stamps and publishes events. Delivery failures are logged; the
// mutation that produced the event has already been committed.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.clock()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Error("publishing event failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Int64("company_id", event.CompanyID),
			zap.Error(err))
	}
}

func (p publisher) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}
