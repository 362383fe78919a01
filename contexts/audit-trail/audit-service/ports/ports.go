package ports

import (
	"context"
	"time"

	"vellum/contexts/audit-trail/audit-service/domain/entities"
)

type LogFilter struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Start        *time.Time
	End          *time.Time
	Limit        int
	Offset       int
}

type Repository interface {
	InsertLog(ctx context.Context, log entities.AuditLog) error
	ListLogs(ctx context.Context, filter LogFilter) ([]entities.AuditLog, int64, error)
	GetLog(ctx context.Context, logID string) (entities.AuditLog, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
