package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

const actorBatchWait = time.Millisecond

// actorRepo loads users by id, soft-deleted ones included.
type actorRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

func newActorsBatchFn(repo actorRepo) dataloader.BatchFunc[uuid.UUID, *domain.User] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.User] {
		results := make([]*dataloader.Result[*domain.User], len(keys))

		users, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[*domain.User]{Error: err}
			}
			return results
		}

		byID := make(map[uuid.UUID]*domain.User, len(users))
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
		// A missing actor resolves to nil; the event row is kept.
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.User]{Data: byID[key]}
		}
		return results
	}
}

// attachActors fills Event.Actor for every event of the page with one
// batched lookup. Errors from the lookup fail the whole page.
func attachActors(ctx context.Context, repo actorRepo, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(events))
	keys := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		if _, ok := seen[e.ActorID]; ok {
			continue
		}
		seen[e.ActorID] = struct{}{}
		keys = append(keys, e.ActorID)
	}

	loader := dataloader.NewBatchedLoader(
		newActorsBatchFn(repo),
		dataloader.WithWait[uuid.UUID, *domain.User](actorBatchWait),
		dataloader.WithBatchCapacity[uuid.UUID, *domain.User](len(keys)),
	)

	actors, errs := loader.LoadMany(ctx, keys)()
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("load actors: %w", err)
		}
	}

	byID := make(map[uuid.UUID]*domain.User, len(keys))
	for i, key := range keys {
		byID[key] = actors[i]
	}
	for i := range events {
		events[i].Actor = byID[events[i].ActorID]
	}
	return nil
}
