package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
	"github.com/heartmarshall/eventfeed-backend/internal/service/access"
	"github.com/heartmarshall/eventfeed-backend/pkg/ctxutil"
)

// List returns one page of the requester's event feed.
//
// With a document reference the document must resolve inside the requester's
// scope (else domain.ErrNotFound) and pass the read check (else
// domain.ErrForbidden). With AuditLog the audit-log check must pass as well;
// both checks apply when both are requested.
func (s *Service) List(ctx context.Context, in ListInput) (*domain.EventPage, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	req := in.pageRequest(s.cfg.DefaultLimit)
	if err := req.Validate(s.cfg.MaxLimit); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("load requester: %w", err)
	}

	var (
		scope *access.Scope
		doc   *domain.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scope, err = s.scopes.Resolve(gctx, *user)
		return err
	})
	if !in.DocumentRef.IsZero() {
		g.Go(func() error {
			var err error
			doc, err = s.documents.FindByRef(gctx, user.TeamID, in.DocumentRef)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if doc != nil {
		if doc.CollectionID != nil && !slices.Contains(scope.CollectionIDs(), *doc.CollectionID) {
			return nil, fmt.Errorf("document %s: %w", in.DocumentRef, domain.ErrNotFound)
		}
		if err := s.auth.Authorize(ctx, access.DocumentReadCheck{User: *user, Document: *doc}); err != nil {
			return nil, err
		}
		id := doc.ID
		req.DocumentID = &id
	}

	if req.AuditLog {
		allowed, err := scope.CanViewAuditLog(ctx)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("view audit log: %w", domain.ErrForbidden)
		}
	}

	page, err := s.query.FetchPage(ctx, scope, req)
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "event feed listed",
		slog.String("user_id", userID.String()),
		slog.Bool("document", req.DocumentID != nil),
		slog.Int("rows", len(page.Data)),
	)

	return page, nil
}
