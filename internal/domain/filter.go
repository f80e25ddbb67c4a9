package domain

import (
	"slices"

	"github.com/google/uuid"
)

// EventFilter is the complete predicate, ordering and window of an event
// query. It is built once by NewEventFilter and never modified afterwards;
// the accessors hand out copies.
//
// Matching rows satisfy:
//
//	(name IN names AND team_id = team [AND document_id = doc])
//	AND (collection_id IN collections OR collection_id IS NULL)
type EventFilter struct {
	names         []EventName
	teamID        uuid.UUID
	documentID    *uuid.UUID
	collectionIDs []uuid.UUID
	sort          EventSort
	direction     SortDirection
	offset        int
	limit         int
}

// NewEventFilter builds the filter for a validated request in one pass.
func NewEventFilter(teamID uuid.UUID, collectionIDs []uuid.UUID, req PageRequest) EventFilter {
	f := EventFilter{
		names:         EventNamesOf(req.Class()),
		teamID:        teamID,
		collectionIDs: slices.Clone(collectionIDs),
		sort:          req.Sort,
		direction:     req.Direction,
		offset:        req.Offset,
		limit:         req.Limit,
	}
	if req.DocumentID != nil {
		id := *req.DocumentID
		f.documentID = &id
	}
	return f
}

func (f EventFilter) Names() []EventName { return slices.Clone(f.names) }

func (f EventFilter) TeamID() uuid.UUID { return f.teamID }

// DocumentID returns the document restriction, if any.
func (f EventFilter) DocumentID() (uuid.UUID, bool) {
	if f.documentID == nil {
		return uuid.Nil, false
	}
	return *f.documentID, true
}

func (f EventFilter) CollectionIDs() []uuid.UUID { return slices.Clone(f.collectionIDs) }

func (f EventFilter) Sort() EventSort { return f.sort }

func (f EventFilter) Direction() SortDirection { return f.direction }

func (f EventFilter) Offset() int { return f.offset }

func (f EventFilter) Limit() int { return f.limit }

// Matches evaluates the predicate part of the filter against a single event.
// Used by in-memory stores and tests; SQL stores translate the same predicate.
func (f EventFilter) Matches(e Event) bool {
	if !slices.Contains(f.names, e.Name) || e.TeamID != f.teamID {
		return false
	}
	if f.documentID != nil && (e.DocumentID == nil || *e.DocumentID != *f.documentID) {
		return false
	}
	return e.CollectionID == nil || slices.Contains(f.collectionIDs, *e.CollectionID)
}
