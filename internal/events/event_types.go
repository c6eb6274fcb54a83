package events

import (
	"encoding/json"
	"time"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType = domain.ChangeEventType

const (
	EventCompanyCreated  = domain.ChangeCompanyCreated
	EventCompanyUpdated  = domain.ChangeCompanyUpdated
	EventCompanyDeleted  = domain.ChangeCompanyDeleted
	EventProfileUpdated  = domain.ChangeProfileUpdated
	EventRiskFactorAdded = domain.ChangeRiskFactorAdded
	EventAccountCreated  = domain.ChangeAccountCreated
)

// CompanyEventTypes lists every event that lands in a company's audit trail.
var CompanyEventTypes = []EventType{
	EventCompanyCreated,
	EventCompanyUpdated,
	EventCompanyDeleted,
	EventProfileUpdated,
	EventRiskFactorAdded,
	EventAccountCreated,
}

// Actor identifies the staff user behind an event.
type Actor struct {
	StaffID  *int64 `json:"staff_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	CompanyID   int64          `json:"company_id"`
	Actor       Actor          `json:"actor"`
	Timestamp   time.Time      `json:"timestamp"`
	Description string         `json:"description"`
	OldValue    map[string]any `json:"old_value,omitempty"`
	NewValue    map[string]any `json:"new_value,omitempty"`
}

// Snapshot flattens v into the JSON object stored as an event value.
// Nil inputs and values that do not encode as objects yield nil.
func Snapshot(v any) map[string]any {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
