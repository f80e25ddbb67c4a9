package event

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/config"
	"github.com/heartmarshall/eventfeed-backend/internal/domain"
	"github.com/heartmarshall/eventfeed-backend/internal/service/access"
)

// eventRepo defines the event repository interface needed by the event service.
type eventRepo interface {
	List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error)
}

// userRepo defines the user repository interface needed by the event service.
// GetByID returns live users only; GetByIDs includes soft-deleted ones.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// documentRepo defines the document lookup needed by the event service.
type documentRepo interface {
	FindByRef(ctx context.Context, teamID uuid.UUID, ref domain.DocumentRef) (*domain.Document, error)
}

// scopeResolver defines the access scope resolution needed by the event service.
type scopeResolver interface {
	Resolve(ctx context.Context, user domain.User) (*access.Scope, error)
}

// authorizer defines the policy check needed by the event service.
type authorizer interface {
	Authorize(ctx context.Context, c access.Check) error
}

// pageFetcher defines the page query used by the event service; *Query implements it.
type pageFetcher interface {
	FetchPage(ctx context.Context, scope *access.Scope, req domain.PageRequest) (*domain.EventPage, error)
}

// Service is the authorization gate in front of the event query.
type Service struct {
	log       *slog.Logger
	users     userRepo
	documents documentRepo
	scopes    scopeResolver
	auth      authorizer
	query     pageFetcher
	cfg       config.FeedConfig
}

// NewService creates a new event feed service.
func NewService(
	logger *slog.Logger,
	users userRepo,
	documents documentRepo,
	scopes scopeResolver,
	auth authorizer,
	query pageFetcher,
	cfg config.FeedConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "event"),
		users:     users,
		documents: documents,
		scopes:    scopes,
		auth:      auth,
		query:     query,
		cfg:       cfg,
	}
}
