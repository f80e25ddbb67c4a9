package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a member of a team. Users are soft-deleted; a deleted user may
// still appear as the actor of historic events.
type User struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	Email     string
	Name      string
	AvatarURL *string
	Role      UserRole
	CreatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted reports whether the user account has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// IsAdmin reports whether the user holds the team admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
