// Package document implements document lookups using PostgreSQL.
package document

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

// Repo resolves document references backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// FindByRef returns the live document of the team named by ref. A UUID ref
// matches the primary key; anything else is treated as a URL slug and matched
// on its trailing url id. Documents of other teams are reported as not found.
func (r *Repo) FindByRef(ctx context.Context, teamID uuid.UUID, ref domain.DocumentRef) (*domain.Document, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("document ref: %w", domain.ErrNotFound)
	}

	var match sq.Eq
	if id, ok := ref.ID(); ok {
		match = sq.Eq{"id": id}
	} else {
		match = sq.Eq{"url_id": ref.URLID()}
	}

	query, args, err := postgres.Builder().
		Select("id", "url_id", "team_id", "collection_id", "title", "created_at", "deleted_at").
		From("documents").
		Where(match).
		Where(sq.Eq{"team_id": teamID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build document query: %w", err)
	}

	doc, err := scanDocument(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "document", string(ref))
	}
	return &doc, nil
}

func scanDocument(row pgx.Row) (domain.Document, error) {
	var (
		d            domain.Document
		collectionID *uuid.UUID
		deletedAt    *time.Time
	)
	if err := row.Scan(&d.ID, &d.URLID, &d.TeamID, &collectionID, &d.Title, &d.CreatedAt, &deletedAt); err != nil {
		return domain.Document{}, err
	}
	d.CollectionID = collectionID
	d.DeletedAt = deletedAt
	return d, nil
}
