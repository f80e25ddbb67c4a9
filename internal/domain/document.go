package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is the subset of a document needed to scope an event feed.
// CollectionID is nil for documents that live outside any collection.
type Document struct {
	ID           uuid.UUID
	URLID        string
	TeamID       uuid.UUID
	CollectionID *uuid.UUID
	Title        string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

// DocumentRef is how a client names a document: either its UUID or a URL
// slug of the form "<title-words>-<urlId>".
type DocumentRef string

// IsZero reports whether no document was referenced.
func (r DocumentRef) IsZero() bool {
	return strings.TrimSpace(string(r)) == ""
}

// ID returns the referenced UUID if the ref is one.
func (r DocumentRef) ID() (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(string(r)))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// URLID returns the trailing url id of a slug ("my-doc-Ab12Cd34Ef" -> "Ab12Cd34Ef").
func (r DocumentRef) URLID() string {
	s := strings.TrimSpace(string(r))
	if i := strings.LastIndex(s, "-"); i >= 0 {
		return s[i+1:]
	}
	return s
}
