package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

// Record validates an event and appends it to the store. Redelivery of an
// already stored id is not an error.
func (s *Service) Record(ctx context.Context, input RecordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	e := domain.Event{
		ID:           input.ID,
		Name:         domain.EventName(input.Name),
		TeamID:       input.TeamID,
		ActorID:      input.ActorID,
		DocumentID:   input.DocumentID,
		CollectionID: input.CollectionID,
		ModelID:      input.ModelID,
		IP:           input.IP,
		Data:         input.Data,
		CreatedAt:    input.CreatedAt,
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	if err := s.events.Create(ctx, e); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.log.DebugContext(ctx, "duplicate event ignored", slog.String("event_id", e.ID.String()))
			return nil
		}
		return fmt.Errorf("create event: %w", err)
	}

	s.log.DebugContext(ctx, "event recorded",
		slog.String("event_id", e.ID.String()),
		slog.String("name", e.Name.String()),
		slog.String("team_id", e.TeamID.String()),
	)

	return nil
}
