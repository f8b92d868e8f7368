package domain

import (
	"context"
	"time"
)

// User represents a registered account. Users are created at registration
// and never modified or deleted afterwards.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

const (
	RoleOrganizer = "organizer"
	RoleAttendee  = "attendee"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleOrganizer || role == RoleAttendee
}

// Identity is the authenticated actor carried by a session: the subset of
// User that handlers and services need to attribute an action.
type Identity struct {
	UserID int64
	Name   string
	Role   string
}

// IsOrganizer reports whether the identity may create events.
func (id Identity) IsOrganizer() bool {
	return id.Role == RoleOrganizer
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
