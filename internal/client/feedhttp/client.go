// Package feedhttp fetches event feed pages from the events.list endpoint.
package feedhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	listPath       = "/events.list"
	defaultTimeout = 10 * time.Second
	retryDelay     = 500 * time.Millisecond
)

// Query selects which feed the client pages through.
type Query struct {
	DocumentID string
	Sort       string
	Direction  string
	AuditLog   bool
}

// Actor is the presented actor of an event.
type Actor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
	IsDeleted bool      `json:"isDeleted"`
}

// Event is one presented event.
type Event struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	ModelID        *uuid.UUID     `json:"modelId"`
	ActorID        uuid.UUID      `json:"actorId"`
	ActorIPAddress *string        `json:"actorIpAddress"`
	CollectionID   *uuid.UUID     `json:"collectionId"`
	DocumentID     *uuid.UUID     `json:"documentId"`
	CreatedAt      time.Time      `json:"createdAt"`
	Data           map[string]any `json:"data"`
	Actor          *Actor         `json:"actor"`
}

// APIError is a non-200 answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("events.list: %d %s: %s", e.Status, e.Code, e.Message)
}

// Temporary reports whether retrying the same request may succeed.
func (e *APIError) Temporary() bool {
	return e.Status >= 500
}

// Client calls events.list for one Query. It implements feed.Fetcher[Event].
type Client struct {
	baseURL    string
	token      string
	query      Query
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. token is sent as a bearer token when set.
func NewClient(baseURL, token string, query Query, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		query:      query,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "feedhttp"),
	}
}

type listRequest struct {
	DocumentID string `json:"documentId,omitempty"`
	Sort       string `json:"sort,omitempty"`
	Direction  string `json:"direction,omitempty"`
	AuditLog   bool   `json:"auditLog,omitempty"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

type listResponse struct {
	Pagination struct {
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	} `json:"pagination"`
	Data []Event `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// FetchPage returns the events in [offset, offset+limit).
func (c *Client) FetchPage(ctx context.Context, offset, limit int) ([]Event, error) {
	body, err := json.Marshal(listRequest{
		DocumentID: c.query.DocumentID,
		Sort:       c.query.Sort,
		Direction:  c.query.Direction,
		AuditLog:   c.query.AuditLog,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("feedhttp: encode request: %w", err)
	}

	c.log.DebugContext(ctx, "events.list request", slog.Int("offset", offset), slog.Int("limit", limit))

	resp, err := c.doWithRetry(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("feedhttp: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feedhttp: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Code != "" {
			apiErr.Code, apiErr.Message = eb.Code, eb.Error
		}
		return nil, apiErr
	}

	var page listResponse
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("feedhttp: decode json: %w", err)
	}
	return page.Data, nil
}

func (c *Client) newRequest(ctx context.Context, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+listPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors.
func (c *Client) doWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := c.newRequest(ctx, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err == nil && resp.StatusCode < 500 {
		return resp, nil
	}
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.WarnContext(ctx, "events.list retry", slog.String("reason", reason))

	select {
	case <-time.After(retryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	req, err = c.newRequest(ctx, body)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}
