package ports

import (
	"context"
	"time"

	"vellum/contexts/content-management/content-service/domain/entities"
)

// AuditEntry is the audit record written alongside a content mutation. It is
// persisted in the same transaction as the mutation itself.
type AuditEntry struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	ResourceName string
	Metadata     map[string]any
}

// ContentFilter narrows ListContent.
type ContentFilter struct {
	Status        string
	ContentTypeID string
	AuthorID      string
	DepartmentID  string
	Search        string
	Limit         int
	Offset        int
}

// VersionFilter narrows ListVersions. Versions are always returned newest
// first by version number.
type VersionFilter struct {
	Limit  int
	Offset int
}

// Repository persists content items. Mutations take the audit entry (and the
// version snapshot where one is produced) so adapters can commit everything
// atomically.
type Repository interface {
	CreateContent(ctx context.Context, item entities.ContentItem, audit AuditEntry) error
	// UpdateContent stores the new row state, inserts the snapshot of the
	// pre-update state as the next version, and writes the audit entry.
	UpdateContent(ctx context.Context, item entities.ContentItem, snapshot entities.ContentVersion, audit AuditEntry) error
	DeleteContent(ctx context.Context, contentID string, audit AuditEntry) error
	GetContent(ctx context.Context, contentID string) (entities.ContentItem, bool, error)
	ListContent(ctx context.Context, filter ContentFilter) ([]entities.ContentItem, int64, error)
}

// VersionRepository reads version history and performs rollbacks.
type VersionRepository interface {
	GetVersion(ctx context.Context, versionID string) (entities.ContentVersion, bool, error)
	GetVersionByNumber(ctx context.Context, contentID string, number int) (entities.ContentVersion, bool, error)
	ListVersions(ctx context.Context, contentID string, filter VersionFilter) ([]entities.ContentVersion, int64, error)
	// RollbackContent restores the item fields from the target version,
	// snapshots the pre-rollback state as a new version, and writes the
	// audit entry, all in one transaction.
	RollbackContent(ctx context.Context, item entities.ContentItem, snapshot entities.ContentVersion, audit AuditEntry) error
}

// EditGate answers whether an actor may edit a given content item.
type EditGate interface {
	CanEdit(userID, role, authorID string) bool
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
