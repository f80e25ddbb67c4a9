package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
	"github.com/heartmarshall/eventfeed-backend/internal/service/event"
)

const maxListBodyBytes = 64 << 10

// eventService defines the minimal interface needed by EventHandler.
type eventService interface {
	List(ctx context.Context, in event.ListInput) (*domain.EventPage, error)
}

// EventHandler serves the event feed endpoint.
type EventHandler struct {
	svc eventService
	log *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: logger.With("handler", "events")}
}

type listEventsRequest struct {
	DocumentID string `json:"documentId"`
	Sort       string `json:"sort"`
	Direction  string `json:"direction"`
	AuditLog   bool   `json:"auditLog"`
	Offset     *int   `json:"offset"`
	Limit      *int   `json:"limit"`
}

// List handles POST /events.list. An empty body lists the activity feed with
// default paging.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	var req listEventsRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	page, err := h.svc.List(r.Context(), event.ListInput{
		DocumentRef: domain.DocumentRef(req.DocumentID),
		Sort:        req.Sort,
		Direction:   req.Direction,
		AuditLog:    req.AuditLog,
		Offset:      req.Offset,
		Limit:       req.Limit,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, presentPage(page, req.AuditLog))
}

// decodeBody reads a JSON object into dst. A missing body leaves dst as is.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxListBodyBytes))
	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError(typeErr.Field, "must be of type "+typeErr.Type.String())
	}
	var sizeErr *http.MaxBytesError
	if errors.As(err, &sizeErr) {
		return domain.NewValidationError("body", "too large")
	}
	return domain.NewValidationError("body", "invalid JSON")
}
