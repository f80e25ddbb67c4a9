package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

// authorizer evaluates typed checks; *Policy implements it.
type authorizer interface {
	Authorize(ctx context.Context, c Check) error
}

// Scope is the per-request access snapshot of one user: the team, the
// collections the user may read, and a lazily evaluated audit-log permission.
// A Scope must not outlive the request it was resolved for.
type Scope struct {
	user          domain.User
	collectionIDs []uuid.UUID
	auth          authorizer

	auditOnce sync.Once
	canAudit  bool
	auditErr  error
}

// NewScope builds a snapshot for user. collectionIDs is copied.
func NewScope(user domain.User, collectionIDs []uuid.UUID, auth authorizer) *Scope {
	return &Scope{
		user:          user,
		collectionIDs: slices.Clone(collectionIDs),
		auth:          auth,
	}
}

func (s *Scope) TeamID() uuid.UUID { return s.user.TeamID }

func (s *Scope) User() domain.User { return s.user }

// CollectionIDs returns a copy of the readable collection ids.
func (s *Scope) CollectionIDs() []uuid.UUID { return slices.Clone(s.collectionIDs) }

// CanViewAuditLog evaluates the team audit-log permission on first use and
// memoizes the answer for the lifetime of the scope. A denial is reported as
// (false, nil); only evaluation failures return an error.
func (s *Scope) CanViewAuditLog(ctx context.Context) (bool, error) {
	s.auditOnce.Do(func() {
		err := s.auth.Authorize(ctx, AuditLogViewCheck{User: s.user, TeamID: s.user.TeamID})
		switch {
		case err == nil:
			s.canAudit = true
		case errors.Is(err, domain.ErrForbidden):
			s.canAudit = false
		default:
			s.auditErr = err
		}
	})
	return s.canAudit, s.auditErr
}

// Resolver computes Scopes.
type Resolver struct {
	log         *slog.Logger
	memberships membershipRepo
	auth        authorizer
}

// NewResolver creates a new scope resolver.
func NewResolver(logger *slog.Logger, memberships membershipRepo, auth authorizer) *Resolver {
	return &Resolver{
		log:         logger.With("service", "access.resolver"),
		memberships: memberships,
		auth:        auth,
	}
}

// Resolve computes a fresh scope for user. Collections are resolved with
// domain.IncludeDeleted so history from since-deleted collections stays
// visible in the feed.
func (r *Resolver) Resolve(ctx context.Context, user domain.User) (*Scope, error) {
	ids, err := r.memberships.CollectionIDs(ctx, user.ID, user.TeamID, domain.IncludeDeleted)
	if err != nil {
		r.log.ErrorContext(ctx, "resolve collection memberships",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("resolve scope of user %s: %w: %w", user.ID, domain.ErrAuthorizationUnavailable, err)
	}
	return NewScope(user, ids, r.auth), nil
}
