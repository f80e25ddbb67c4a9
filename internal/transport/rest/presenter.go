package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

type eventResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	ModelID        *uuid.UUID     `json:"modelId"`
	ActorID        string         `json:"actorId"`
	ActorIPAddress *string        `json:"actorIpAddress,omitempty"`
	CollectionID   *uuid.UUID     `json:"collectionId"`
	DocumentID     *uuid.UUID     `json:"documentId"`
	CreatedAt      time.Time      `json:"createdAt"`
	Data           map[string]any `json:"data"`
	Actor          *actorResponse `json:"actor"`
}

type actorResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	IsDeleted bool    `json:"isDeleted"`
}

type paginationResponse struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type eventPageResponse struct {
	Pagination paginationResponse `json:"pagination"`
	Data       []eventResponse    `json:"data"`
}

// presentEvent renders one event. The actor's IP address is part of the
// audit trail and is only shown in the audit log.
func presentEvent(e domain.Event, auditLog bool) eventResponse {
	resp := eventResponse{
		ID:           e.ID.String(),
		Name:         e.Name.String(),
		ModelID:      e.ModelID,
		ActorID:      e.ActorID.String(),
		CollectionID: e.CollectionID,
		DocumentID:   e.DocumentID,
		CreatedAt:    e.CreatedAt,
		Data:         e.Data,
	}
	if resp.Data == nil {
		resp.Data = map[string]any{}
	}
	if auditLog {
		resp.ActorIPAddress = e.IP
	}
	if e.Actor != nil {
		resp.Actor = &actorResponse{
			ID:        e.Actor.ID.String(),
			Name:      e.Actor.Name,
			AvatarURL: e.Actor.AvatarURL,
			IsDeleted: e.Actor.IsDeleted(),
		}
	}
	return resp
}

func presentPage(page *domain.EventPage, auditLog bool) eventPageResponse {
	data := make([]eventResponse, len(page.Data))
	for i, e := range page.Data {
		data[i] = presentEvent(e, auditLog)
	}
	return eventPageResponse{
		Pagination: paginationResponse{
			Offset: page.Pagination.Offset,
			Limit:  page.Pagination.Limit,
		},
		Data: data,
	}
}
