// Package membership resolves which collections a user can read.
package membership

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

const (
	directGrant = `EXISTS (SELECT 1 FROM collection_users cu
		WHERE cu.collection_id = c.id AND cu.user_id = ?)`
	groupGrant = `EXISTS (SELECT 1 FROM collection_groups cg
		JOIN group_users gu ON gu.group_id = cg.group_id
		JOIN groups g ON g.id = cg.group_id AND g.deleted_at IS NULL
		WHERE cg.collection_id = c.id AND gu.user_id = ?)`
)

// Repo reads collection memberships backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new membership repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// CollectionIDs returns the ids of the team's collections the user can read:
// team-wide collections (non-NULL permission) plus private ones granted to the
// user directly or through a group. Soft-deleted collections are kept only
// when mode is domain.IncludeDeleted. Ids are returned in ascending order.
func (r *Repo) CollectionIDs(ctx context.Context, userID, teamID uuid.UUID, mode domain.MembershipMode) ([]uuid.UUID, error) {
	builder := postgres.Builder().
		Select("c.id").
		From("collections c").
		Where(sq.Eq{"c.team_id": teamID}).
		Where(sq.Or{
			sq.Expr("c.permission IS NOT NULL"),
			sq.Expr(directGrant, userID),
			sq.Expr(groupGrant, userID),
		}).
		OrderBy("c.id")
	if mode == domain.ExcludeDeleted {
		builder = builder.Where(sq.Eq{"c.deleted_at": nil})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build membership query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "memberships of user", userID)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan collection id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "memberships of user", userID)
	}

	return ids, nil
}
