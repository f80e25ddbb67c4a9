// Package event implements the Event repository using PostgreSQL.
// Events are append-only: rows are inserted by ingestion and only read back
// through filtered, ordered windows.
package event

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

var eventColumns = []string{
	"id", "name", "team_id", "actor_id", "document_id", "collection_id", "model_id", "ip", "data", "created_at",
}

// sortColumns maps client sort fields to columns.
var sortColumns = map[domain.EventSort]string{
	domain.EventSortCreatedAt: "created_at",
	domain.EventSortName:      "name",
}

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new event repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new event. A duplicate id yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, e domain.Event) error {
	var data []byte
	if e.Data != nil {
		var err error
		if data, err = json.Marshal(e.Data); err != nil {
			return fmt.Errorf("event %s marshal data: %w", e.ID, err)
		}
	}

	query, args, err := postgres.Builder().
		Insert("events").
		Columns(eventColumns...).
		Values(e.ID, string(e.Name), e.TeamID, e.ActorID, e.DocumentID, e.CollectionID, e.ModelID, e.IP, data, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build event insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "event", e.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns the window of events selected by f, ordered by the sort column
// and then by id in the same direction so pages are stable.
func (r *Repo) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	column, ok := sortColumns[f.Sort()]
	if !ok {
		return nil, fmt.Errorf("event sort %q: %w", f.Sort(), domain.ErrValidation)
	}
	dir := string(f.Direction())

	names := make([]string, 0, len(f.Names()))
	for _, n := range f.Names() {
		names = append(names, string(n))
	}

	builder := postgres.Builder().
		Select(eventColumns...).
		From("events").
		Where(sq.Eq{"name": names}).
		Where(sq.Eq{"team_id": f.TeamID()})
	if docID, ok := f.DocumentID(); ok {
		builder = builder.Where(sq.Eq{"document_id": docID})
	}
	builder = builder.
		Where(sq.Or{
			sq.Eq{"collection_id": f.CollectionIDs()},
			sq.Eq{"collection_id": nil},
		}).
		OrderBy(column+" "+dir, "id "+dir).
		Offset(uint64(f.Offset())).
		Limit(uint64(f.Limit()))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build event list: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "events of team", f.TeamID())
	}
	defer rows.Close()

	events := make([]domain.Event, 0, f.Limit())
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "events of team", f.TeamID())
	}

	return events, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanEvent(row pgx.Row) (domain.Event, error) {
	var (
		e            domain.Event
		name         string
		documentID   *uuid.UUID
		collectionID *uuid.UUID
		modelID      *uuid.UUID
		ip           *string
		data         []byte
	)
	if err := row.Scan(&e.ID, &name, &e.TeamID, &e.ActorID, &documentID, &collectionID, &modelID, &ip, &data, &e.CreatedAt); err != nil {
		return domain.Event{}, fmt.Errorf("scan event: %w", err)
	}

	e.Name = domain.EventName(name)
	e.DocumentID = documentID
	e.CollectionID = collectionID
	e.ModelID = modelID
	e.IP = ip

	if len(data) > 0 {
		if err := json.Unmarshal(data, &e.Data); err != nil {
			return domain.Event{}, fmt.Errorf("event %s unmarshal data: %w", e.ID, err)
		}
	}

	return e, nil
}
