package domain

// UserRole is the team-level role of a user.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
	UserRoleViewer UserRole = "viewer"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleMember, UserRoleViewer:
		return true
	}
	return false
}

// MembershipMode selects how soft-deleted collections are treated when
// resolving the collections a user may read.
type MembershipMode int

const (
	// ExcludeDeleted ignores soft-deleted collections.
	ExcludeDeleted MembershipMode = iota
	// IncludeDeleted keeps soft-deleted collections in the result, so events
	// that happened in a since-deleted collection stay visible in the feed.
	IncludeDeleted
)

func (m MembershipMode) String() string {
	if m == IncludeDeleted {
		return "include_deleted"
	}
	return "exclude_deleted"
}

// SortDirection is the ordering direction of a page.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

func (d SortDirection) String() string { return string(d) }

// ParseSortDirection coerces any value other than exactly "ASC" to DESC.
// Unknown directions are never rejected.
func ParseSortDirection(s string) SortDirection {
	if s == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

// EventSort is a client-facing sort field for event pages.
type EventSort string

const (
	EventSortCreatedAt EventSort = "createdAt"
	EventSortName      EventSort = "name"
)

func (s EventSort) String() string { return string(s) }

func (s EventSort) IsValid() bool {
	switch s {
	case EventSortCreatedAt, EventSortName:
		return true
	}
	return false
}
