package ports

import (
	"context"
	"time"

	"vellum/contexts/identity-access/access-service/domain/entities"
)

type Repository interface {
	GetAssignment(ctx context.Context, userID string) (entities.RoleAssignment, bool, error)
	UpsertAssignment(ctx context.Context, assignment entities.RoleAssignment) error
	DeleteAssignment(ctx context.Context, userID string) error
	ListAssignments(ctx context.Context) ([]entities.RoleAssignment, error)
}

// Directory reads principals from the identity store.
type Directory interface {
	GetUser(ctx context.Context, userID string) (entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
}

// AuditEntry mirrors the audit recorder contract consumed by this service.
type AuditEntry struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	ResourceName string
	Metadata     map[string]any
}

type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
