package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/service/ingest"
)

// eventMessage is the JSON body of one message on the events topic.
type eventMessage struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	TeamID       uuid.UUID      `json:"teamId"`
	ActorID      uuid.UUID      `json:"actorId"`
	DocumentID   *uuid.UUID     `json:"documentId,omitempty"`
	CollectionID *uuid.UUID     `json:"collectionId,omitempty"`
	ModelID      *uuid.UUID     `json:"modelId,omitempty"`
	IP           *string        `json:"ip,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func (m eventMessage) toInput() ingest.RecordInput {
	return ingest.RecordInput{
		ID:           m.ID,
		Name:         m.Name,
		TeamID:       m.TeamID,
		ActorID:      m.ActorID,
		DocumentID:   m.DocumentID,
		CollectionID: m.CollectionID,
		ModelID:      m.ModelID,
		IP:           m.IP,
		Data:         m.Data,
		CreatedAt:    m.CreatedAt,
	}
}
