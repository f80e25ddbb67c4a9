package domain

import "github.com/google/uuid"

// PageRequest is a validated-on-use request for one window of the feed.
// DocumentID is nil when the feed is not scoped to a document; it always
// holds a resolved document id, never raw client input.
type PageRequest struct {
	DocumentID *uuid.UUID
	Sort       EventSort
	Direction  SortDirection
	AuditLog   bool
	Offset     int
	Limit      int
}

// Validate checks the request against the configured maximum page size.
// Direction is not validated; it is coerced by ParseSortDirection.
func (r PageRequest) Validate(maxLimit int) error {
	var errs []FieldError
	if !r.Sort.IsValid() {
		errs = append(errs, FieldError{Field: "sort", Message: "unsupported sort field"})
	}
	if r.Offset < 0 {
		errs = append(errs, FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if r.Limit <= 0 {
		errs = append(errs, FieldError{Field: "limit", Message: "must be positive"})
	}
	if r.Limit > maxLimit {
		errs = append(errs, FieldError{Field: "limit", Message: "exceeds maximum page size"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Class returns the event class the request is restricted to.
func (r PageRequest) Class() EventClass {
	if r.AuditLog {
		return AuditClass
	}
	return ActivityClass
}

// Pagination describes the window that was actually served.
type Pagination struct {
	Offset int
	Limit  int
}

// EventPage is one ordered window of events.
type EventPage struct {
	Data       []Event
	Pagination Pagination
}
