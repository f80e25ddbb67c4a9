package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

// eventRepo defines the append-only event store needed by ingestion.
type eventRepo interface {
	Create(ctx context.Context, e domain.Event) error
}

// Service appends events produced elsewhere in the system.
type Service struct {
	log    *slog.Logger
	events eventRepo
	now    func() time.Time
}

// NewService creates a new ingest service.
func NewService(logger *slog.Logger, events eventRepo) *Service {
	return &Service{
		log:    logger.With("service", "ingest"),
		events: events,
		now:    time.Now,
	}
}
