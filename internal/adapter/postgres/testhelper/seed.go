package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedTeam creates a team and returns its id.
func SeedTeam(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO teams (id, name, created_at) VALUES ($1, $2, $3)`,
		id, "Team "+uniqueSuffix(), now(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTeam: %v", err)
	}
	return id
}

// SeedUser creates a live user with the given role in the team.
func SeedUser(t *testing.T, pool *pgxpool.Pool, teamID uuid.UUID, role domain.UserRole) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:        uuid.New(),
		TeamID:    teamID,
		Email:     "user-" + suffix + "@example.com",
		Name:      "User " + suffix,
		Role:      role,
		CreatedAt: now(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, team_id, email, name, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.TeamID, user.Email, user.Name, string(user.Role), user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// SoftDeleteUser marks the user as deleted.
func SoftDeleteUser(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) {
	t.Helper()
	softDelete(t, pool, "users", id)
}

// SeedCollection creates a collection. A nil permission makes it private.
func SeedCollection(t *testing.T, pool *pgxpool.Pool, teamID uuid.UUID, permission *string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO collections (id, team_id, name, permission, created_at)
		 VALUES ($1, $2, $3, $4::collection_permission, $5)`,
		id, teamID, "Collection "+uniqueSuffix(), permission, now(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCollection: %v", err)
	}
	return id
}

// SoftDeleteCollection marks the collection as deleted.
func SoftDeleteCollection(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) {
	t.Helper()
	softDelete(t, pool, "collections", id)
}

// GrantCollection gives a user explicit access to a collection.
func GrantCollection(t *testing.T, pool *pgxpool.Pool, collectionID, userID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO collection_users (collection_id, user_id) VALUES ($1, $2)`,
		collectionID, userID,
	)
	if err != nil {
		t.Fatalf("testhelper: GrantCollection: %v", err)
	}
}

// GrantCollectionViaGroup creates a group containing the user and gives the
// group access to the collection.
func GrantCollectionViaGroup(t *testing.T, pool *pgxpool.Pool, teamID, collectionID, userID uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	groupID := uuid.New()
	if _, err := pool.Exec(ctx,
		`INSERT INTO groups (id, team_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		groupID, teamID, "Group "+uniqueSuffix(), now(),
	); err != nil {
		t.Fatalf("testhelper: GrantCollectionViaGroup insert group: %v", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO group_users (group_id, user_id) VALUES ($1, $2)`,
		groupID, userID,
	); err != nil {
		t.Fatalf("testhelper: GrantCollectionViaGroup insert group_users: %v", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO collection_groups (collection_id, group_id) VALUES ($1, $2)`,
		collectionID, groupID,
	); err != nil {
		t.Fatalf("testhelper: GrantCollectionViaGroup insert collection_groups: %v", err)
	}
	return groupID
}

// SeedDocument creates a document, optionally inside a collection.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, teamID uuid.UUID, collectionID *uuid.UUID) domain.Document {
	t.Helper()

	suffix := uniqueSuffix()
	doc := domain.Document{
		ID:           uuid.New(),
		URLID:        "u" + suffix,
		TeamID:       teamID,
		CollectionID: collectionID,
		Title:        "Doc " + suffix,
		CreatedAt:    now(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO documents (id, url_id, team_id, collection_id, title, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID, doc.URLID, doc.TeamID, doc.CollectionID, doc.Title, doc.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument: %v", err)
	}
	return doc
}

// SoftDeleteDocument marks the document as deleted.
func SoftDeleteDocument(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) {
	t.Helper()
	softDelete(t, pool, "documents", id)
}

// SeedEvent inserts e as-is. A zero ID or CreatedAt is filled in.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, e domain.Event) domain.Event {
	t.Helper()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}

	var data []byte
	if e.Data != nil {
		var err error
		if data, err = json.Marshal(e.Data); err != nil {
			t.Fatalf("testhelper: SeedEvent marshal data: %v", err)
		}
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO events (id, name, team_id, actor_id, document_id, collection_id, model_id, ip, data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, string(e.Name), e.TeamID, e.ActorID, e.DocumentID, e.CollectionID, e.ModelID, e.IP, data, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent: %v", err)
	}
	return e
}

func softDelete(t *testing.T, pool *pgxpool.Pool, table string, id uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`UPDATE `+table+` SET deleted_at = $2 WHERE id = $1`,
		id, now(),
	)
	if err != nil {
		t.Fatalf("testhelper: soft delete %s: %v", table, err)
	}
}
