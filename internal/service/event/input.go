package event

import (
	"github.com/heartmarshall/eventfeed-backend/internal/domain"
)

// ListInput holds the raw parameters of an events.list request. Nil or empty
// fields take their defaults.
type ListInput struct {
	DocumentRef domain.DocumentRef
	Sort        string
	Direction   string
	AuditLog    bool
	Offset      *int
	Limit       *int
}

// pageRequest applies defaults and direction coercion. The document id is
// left unset; it is filled in only after the reference has been resolved.
func (i ListInput) pageRequest(defaultLimit int) domain.PageRequest {
	req := domain.PageRequest{
		Sort:      domain.EventSortCreatedAt,
		Direction: domain.ParseSortDirection(i.Direction),
		AuditLog:  i.AuditLog,
		Limit:     defaultLimit,
	}
	if i.Sort != "" {
		req.Sort = domain.EventSort(i.Sort)
	}
	if i.Offset != nil {
		req.Offset = *i.Offset
	}
	if i.Limit != nil {
		req.Limit = *i.Limit
	}
	return req
}
