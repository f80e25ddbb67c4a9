//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/eventfeed-backend/internal/app"
	"github.com/heartmarshall/eventfeed-backend/internal/auth"
	"github.com/heartmarshall/eventfeed-backend/internal/config"
)

const testJWTSecret = "e2e-test-secret-key-at-least-32-chars"

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	tokens *auth.TokenManager
}

// testLogWriter routes server logs through t.Log so they show up only for
// failing tests.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: testJWTSecret, JWTIssuer: "eventfeed", AccessTokenTTL: 15 * time.Minute},
		Feed: config.FeedConfig{DefaultLimit: 25, MaxLimit: 100},
		CORS: config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "POST,OPTIONS", AllowedHeaders: "Authorization,Content-Type"},
	}
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv := httptest.NewServer(app.NewRouter(logger, cfg, pool, nil))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
	}
}

func (ts *testServer) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	tok, err := ts.tokens.IssueAccessToken(userID)
	require.NoError(t, err)
	return tok
}

type eventJSON struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	ActorID        string         `json:"actorId"`
	ActorIPAddress *string        `json:"actorIpAddress"`
	CollectionID   *string        `json:"collectionId"`
	DocumentID     *string        `json:"documentId"`
	CreatedAt      time.Time      `json:"createdAt"`
	Data           map[string]any `json:"data"`
	Actor          *struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		IsDeleted bool   `json:"isDeleted"`
	} `json:"actor"`
}

type listResponse struct {
	Pagination struct {
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	} `json:"pagination"`
	Data []eventJSON `json:"data"`

	Code   string `json:"code"`
	Fields []struct {
		Field string `json:"field"`
	} `json:"fields"`
}

// listEvents posts body to /events.list and decodes either answer shape.
func (ts *testServer) listEvents(t *testing.T, token string, body map[string]any) (int, listResponse) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/events.list", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out listResponse
	require.NoError(t, json.Unmarshal(payload, &out), "body: %s", payload)
	return resp.StatusCode, out
}

func eventIDs(events []eventJSON) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func ptr[T any](v T) *T { return &v }
