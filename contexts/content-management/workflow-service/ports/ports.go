package ports

import (
	"context"
	"time"

	"vellum/contexts/content-management/workflow-service/domain/entities"
	contractsv1 "vellum/contracts/gen/events/v1"
)

// AuditEntry is the audit record committed alongside a transition's effects.
type AuditEntry struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	ResourceName string
	Metadata     map[string]any
}

// EventEnvelope is the shared event contract emitted through the outbox.
type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// ContentUpdate is the content-row mutation carried by a transition.
type ContentUpdate struct {
	ContentID   string
	Status      entities.ContentStatus
	PublishAt   *time.Time
	UnpublishAt *time.Time
	UpdatedAt   time.Time
}

// TransitionEffects is the complete effect set of one workflow transition.
// Repositories must commit every populated member atomically; partial
// application is a bug, never an accepted outcome.
type TransitionEffects struct {
	Content  *ContentUpdate
	Instance *entities.WorkflowInstance
	Step     *entities.WorkflowStep
	Approval *entities.WorkflowApproval
	Audit    AuditEntry
	Event    *EventEnvelope
}

// Repository is the workflow core's persistence port.
type Repository interface {
	GetContent(ctx context.Context, contentID string) (entities.ContentRef, bool, error)
	GetInstance(ctx context.Context, instanceID string) (entities.WorkflowInstance, bool, error)
	// FindActiveInstance reports the Active instance for a content item,
	// if any. Used to reject duplicate submissions.
	FindActiveInstance(ctx context.Context, contentID string) (entities.WorkflowInstance, bool, error)
	ListSteps(ctx context.Context, instanceID string) ([]entities.WorkflowStep, error)
	ApplyTransition(ctx context.Context, effects TransitionEffects) error
}

// Scheduler lists content whose scheduled instants have come due. Used by the
// periodic publishing sweep.
type Scheduler interface {
	ListDueForPublish(ctx context.Context, now time.Time, limit int) ([]entities.ContentRef, error)
	ListDueForUnpublish(ctx context.Context, now time.Time, limit int) ([]entities.ContentRef, error)
}

// OutboxRepository drains committed transition events to the bus.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher delivers envelopes to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
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
