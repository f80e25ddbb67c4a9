// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

var userColumns = []string{
	"id", "team_id", "email", "name", "avatar_url", "role::text", "created_at", "deleted_at",
}

// Repo provides read access to users backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a live (not soft-deleted) user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := postgres.Builder().
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return &u, nil
}

// GetByIDs returns the users with the given ids, soft-deleted ones included.
// Missing ids are silently skipped; the result order is unspecified.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	query, args, err := postgres.Builder().
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// scanUser reads one row in userColumns order.
func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u         domain.User
		role      string
		avatarURL *string
		deletedAt *time.Time
	)
	if err := row.Scan(&u.ID, &u.TeamID, &u.Email, &u.Name, &avatarURL, &role, &u.CreatedAt, &deletedAt); err != nil {
		return domain.User{}, err
	}
	u.AvatarURL = avatarURL
	u.Role = domain.UserRole(role)
	u.DeletedAt = deletedAt
	return u, nil
}
