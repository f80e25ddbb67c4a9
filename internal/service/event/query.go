package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
	"github.com/heartmarshall/eventfeed-backend/internal/service/access"
)

// Query reads permission-filtered, ordered windows of the event store.
type Query struct {
	log      *slog.Logger
	events   eventRepo
	actors   actorRepo
	maxLimit int
}

// NewQuery creates a new event query. maxLimit bounds PageRequest.Limit.
func NewQuery(logger *slog.Logger, events eventRepo, actors actorRepo, maxLimit int) *Query {
	return &Query{
		log:      logger.With("service", "event.query"),
		events:   events,
		actors:   actors,
		maxLimit: maxLimit,
	}
}

// FetchPage returns the window of events visible through scope. The
// direction is coerced (anything but ASC is DESC) before validation; sort and
// limit are validated. Authorization of the request is the caller's job.
func (q *Query) FetchPage(ctx context.Context, scope *access.Scope, req domain.PageRequest) (*domain.EventPage, error) {
	req.Direction = domain.ParseSortDirection(string(req.Direction))
	if err := req.Validate(q.maxLimit); err != nil {
		return nil, err
	}

	filter := domain.NewEventFilter(scope.TeamID(), scope.CollectionIDs(), req)

	events, err := q.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	if err := attachActors(ctx, q.actors, events); err != nil {
		return nil, err
	}

	q.log.DebugContext(ctx, "event page fetched",
		slog.String("team_id", scope.TeamID().String()),
		slog.Bool("audit_log", req.AuditLog),
		slog.Int("offset", req.Offset),
		slog.Int("limit", req.Limit),
		slog.Int("rows", len(events)),
	)

	return &domain.EventPage{
		Data:       events,
		Pagination: domain.Pagination{Offset: req.Offset, Limit: req.Limit},
	}, nil
}
