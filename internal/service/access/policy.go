package access

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

// membershipRepo defines the membership lookup needed by the access service.
type membershipRepo interface {
	CollectionIDs(ctx context.Context, userID, teamID uuid.UUID, mode domain.MembershipMode) ([]uuid.UUID, error)
}

// Check is one typed authorization question. The set of checks is closed:
// DocumentReadCheck and AuditLogViewCheck.
type Check interface {
	action() string
	subject() uuid.UUID
	evaluate(ctx context.Context, p *Policy) (bool, error)
}

// DocumentReadCheck asks whether User may read Document.
type DocumentReadCheck struct {
	User     domain.User
	Document domain.Document
}

func (c DocumentReadCheck) action() string     { return "read_document" }
func (c DocumentReadCheck) subject() uuid.UUID { return c.Document.ID }

func (c DocumentReadCheck) evaluate(ctx context.Context, p *Policy) (bool, error) {
	u, d := c.User, c.Document
	if u.IsDeleted() || d.DeletedAt != nil || d.TeamID != u.TeamID {
		return false, nil
	}
	if d.CollectionID == nil {
		return true, nil
	}

	live, err := p.memberships.CollectionIDs(ctx, u.ID, u.TeamID, domain.ExcludeDeleted)
	if err != nil {
		return false, err
	}
	return slices.Contains(live, *d.CollectionID), nil
}

// AuditLogViewCheck asks whether User may view the audit log of TeamID.
type AuditLogViewCheck struct {
	User   domain.User
	TeamID uuid.UUID
}

func (c AuditLogViewCheck) action() string     { return "view_audit_log" }
func (c AuditLogViewCheck) subject() uuid.UUID { return c.TeamID }

func (c AuditLogViewCheck) evaluate(_ context.Context, _ *Policy) (bool, error) {
	u := c.User
	return !u.IsDeleted() && u.TeamID == c.TeamID && u.IsAdmin(), nil
}

// Policy evaluates Checks.
type Policy struct {
	log         *slog.Logger
	memberships membershipRepo
}

// NewPolicy creates a new policy evaluator.
func NewPolicy(logger *slog.Logger, memberships membershipRepo) *Policy {
	return &Policy{
		log:         logger.With("service", "access.policy"),
		memberships: memberships,
	}
}

// Authorize returns nil when c is allowed, an error wrapping
// domain.ErrForbidden when it is denied, and one wrapping
// domain.ErrAuthorizationUnavailable when it could not be evaluated.
func (p *Policy) Authorize(ctx context.Context, c Check) error {
	allowed, err := c.evaluate(ctx, p)
	if err != nil {
		p.log.ErrorContext(ctx, "policy evaluation failed",
			slog.String("action", c.action()),
			slog.String("subject", c.subject().String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("authorize %s %s: %w: %w", c.action(), c.subject(), domain.ErrAuthorizationUnavailable, err)
	}
	if !allowed {
		p.log.WarnContext(ctx, "access denied",
			slog.String("action", c.action()),
			slog.String("subject", c.subject().String()),
		)
		return fmt.Errorf("authorize %s %s: %w", c.action(), c.subject(), domain.ErrForbidden)
	}
	return nil
}
