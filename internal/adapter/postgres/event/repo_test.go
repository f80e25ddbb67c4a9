package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

var eventCols = []string{
	"id", "name", "team_id", "actor_id", "document_id", "collection_id", "model_id", "ip", "data", "created_at",
}

func newMockRepo(t *testing.T) (*event.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return event.New(mock), mock
}

func ptr[T any](v T) *T { return &v }

// filterArgs lists the bind arguments List sends for f, in order. Ids are
// matched loosely since squirrel may hand them over as driver values.
func filterArgs(f domain.EventFilter) []any {
	var args []any
	for _, n := range f.Names() {
		args = append(args, string(n))
	}
	args = append(args, pgxmock.AnyArg())
	if _, ok := f.DocumentID(); ok {
		args = append(args, pgxmock.AnyArg())
	}
	for range f.CollectionIDs() {
		args = append(args, pgxmock.AnyArg())
	}
	return args
}

func TestRepo_List_ActivityFeed(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	teamID, actorID, collID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC()
	f := domain.NewEventFilter(teamID, []uuid.UUID{collID}, domain.PageRequest{
		Sort:      domain.EventSortCreatedAt,
		Direction: domain.SortDesc,
		Offset:    10,
		Limit:     5,
	})

	e1, e2 := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM events WHERE name IN \(.+\) AND team_id = \$\d+ AND \(collection_id IN \(\$\d+\) OR collection_id IS NULL\) ORDER BY created_at DESC, id DESC LIMIT 5 OFFSET 10`).
		WithArgs(filterArgs(f)...).
		WillReturnRows(pgxmock.NewRows(eventCols).
			AddRow(e1, "documents.publish", teamID, actorID, ptr(uuid.New()), &collID, (*uuid.UUID)(nil), (*string)(nil), []byte(`{"title":"Roadmap"}`), now).
			AddRow(e2, "collections.create", teamID, actorID, (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil), ptr("10.0.0.1"), []byte(nil), now.Add(-time.Minute)))

	got, err := repo.List(context.Background(), f)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, e1, got[0].ID)
	assert.Equal(t, domain.EventDocumentPublished, got[0].Name)
	assert.Equal(t, "Roadmap", got[0].Data["title"])
	assert.Nil(t, got[1].CollectionID)
	assert.Nil(t, got[1].Data)
	assert.Equal(t, ptr("10.0.0.1"), got[1].IP)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_List_DocumentAndNameAscending(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	teamID, docID := uuid.New(), uuid.New()
	f := domain.NewEventFilter(teamID, nil, domain.PageRequest{
		DocumentID: &docID,
		Sort:       domain.EventSortName,
		Direction:  domain.SortAsc,
		Limit:      25,
	})

	mock.ExpectQuery(`SELECT .+ FROM events WHERE name IN \(.+\) AND team_id = \$\d+ AND document_id = \$\d+ AND \(\(1=0\) OR collection_id IS NULL\) ORDER BY name ASC, id ASC LIMIT 25 OFFSET 0`).
		WithArgs(filterArgs(f)...).
		WillReturnRows(pgxmock.NewRows(eventCols))

	got, err := repo.List(context.Background(), f)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_List_AuditNames(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	teamID := uuid.New()
	f := domain.NewEventFilter(teamID, nil, domain.PageRequest{
		Sort:      domain.EventSortCreatedAt,
		Direction: domain.SortDesc,
		AuditLog:  true,
		Limit:     25,
	})
	args := filterArgs(f)
	require.Len(t, args, len(domain.AuditEvents())+1)

	mock.ExpectQuery(`SELECT .+ FROM events`).
		WithArgs(args...).
		WillReturnRows(pgxmock.NewRows(eventCols))

	_, err := repo.List(context.Background(), f)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_List_QueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	f := domain.NewEventFilter(uuid.New(), nil, domain.PageRequest{
		Sort:      domain.EventSortCreatedAt,
		Direction: domain.SortDesc,
		Limit:     25,
	})
	dbErr := errors.New("statement timeout")
	mock.ExpectQuery(`SELECT .+ FROM events`).
		WithArgs(filterArgs(f)...).
		WillReturnError(dbErr)

	_, err := repo.List(context.Background(), f)

	require.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_List_UnknownSort(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	f := domain.NewEventFilter(uuid.New(), nil, domain.PageRequest{
		Sort:  domain.EventSort("ip"),
		Limit: 25,
	})

	_, err := repo.List(context.Background(), f)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create(t *testing.T) {
	t.Parallel()

	anyArgs := make([]any, len(eventCols))
	for i := range anyArgs {
		anyArgs[i] = pgxmock.AnyArg()
	}

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "inserted"},
		{
			name:    "duplicate id",
			execErr: &pgconn.PgError{Code: "23505", Message: "duplicate key"},
			wantErr: domain.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, mock := newMockRepo(t)

			exp := mock.ExpectExec(`INSERT INTO events \(id,name,team_id,actor_id,document_id,collection_id,model_id,ip,data,created_at\)`).
				WithArgs(anyArgs...)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			err := repo.Create(context.Background(), domain.Event{
				ID:        uuid.New(),
				Name:      domain.EventDocumentCreated,
				TeamID:    uuid.New(),
				ActorID:   uuid.New(),
				Data:      map[string]any{"title": "Untitled"},
				CreatedAt: time.Now().UTC(),
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
