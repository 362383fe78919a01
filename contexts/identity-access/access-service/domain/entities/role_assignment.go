package entities

import "time"

// RoleAssignment is the explicit role row for a user. A user has at most one;
// without a row the role falls back to the directory default.
type RoleAssignment struct {
	AssignmentID string    `json:"assignment_id"`
	UserID       string    `json:"user_id"`
	Role         Role      `json:"role"`
	AssignedBy   string    `json:"assigned_by"`
	AssignedAt   time.Time `json:"assigned_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User is a directory entry from the identity store. DefaultRole carries the
// role embedded in identity-provider metadata, used when no explicit
// assignment exists.
type User struct {
	UserID       string     `json:"user_id"`
	Email        string     `json:"email"`
	DefaultRole  Role       `json:"default_role,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}
