package ingest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

const maxIPLength = 45

// RecordInput holds one event as produced by a domain action.
type RecordInput struct {
	ID           uuid.UUID // uuid.Nil = assign a new id
	Name         string
	TeamID       uuid.UUID
	ActorID      uuid.UUID
	DocumentID   *uuid.UUID
	CollectionID *uuid.UUID
	ModelID      *uuid.UUID
	IP           *string
	Data         map[string]any
	CreatedAt    time.Time // zero = now
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if _, ok := domain.ClassOf(domain.EventName(i.Name)); !ok {
		errs = append(errs, domain.FieldError{Field: "name", Message: "unknown event name"})
	}
	if i.TeamID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "team_id", Message: "required"})
	}
	if i.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if i.IP != nil && len(*i.IP) > maxIPLength {
		errs = append(errs, domain.FieldError{Field: "ip", Message: "max 45 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
