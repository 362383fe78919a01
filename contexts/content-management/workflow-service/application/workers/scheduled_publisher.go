package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "vellum/contexts/content-management/workflow-service/application"
	"vellum/contexts/content-management/workflow-service/domain/entities"
	"vellum/contexts/content-management/workflow-service/ports"
	contractsv1 "vellum/contracts/gen/events/v1"
)

// systemActor attributes sweep-driven transitions in the audit trail.
const systemActor = "system"

// ScheduledPublisher is the periodic sweep behind the schedule operation:
// Approved content whose publish_at has passed goes out, Published content
// whose unpublish_at has passed comes down.
type ScheduledPublisher struct {
	Repo      ports.Repository
	Scheduler ports.Scheduler
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	BatchSize int
	Logger    *slog.Logger
}

func (w ScheduledPublisher) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	limit := w.BatchSize
	if limit <= 0 {
		limit = 100
	}
	now := w.Clock.Now().UTC()

	due, err := w.Scheduler.ListDueForPublish(ctx, now, limit)
	if err != nil {
		logger.Error("scheduled publish list failed",
			"event", "scheduled_publish_list_failed",
			"module", "content-management/workflow-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	for _, content := range due {
		if err := w.publishOne(ctx, content, now); err != nil {
			return err
		}
		logger.Info("scheduled content published",
			"event", "scheduled_content_published",
			"module", "content-management/workflow-service",
			"layer", "worker",
			"content_id", content.ContentID,
		)
	}

	expiring, err := w.Scheduler.ListDueForUnpublish(ctx, now, limit)
	if err != nil {
		logger.Error("scheduled unpublish list failed",
			"event", "scheduled_unpublish_list_failed",
			"module", "content-management/workflow-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	for _, content := range expiring {
		if err := w.unpublishOne(ctx, content, now); err != nil {
			return err
		}
		logger.Info("scheduled content unpublished",
			"event", "scheduled_content_unpublished",
			"module", "content-management/workflow-service",
			"layer", "worker",
			"content_id", content.ContentID,
		)
	}
	return nil
}

func (w ScheduledPublisher) publishOne(ctx context.Context, content entities.ContentRef, now time.Time) error {
	event, err := w.sweepEnvelope(ctx, contractsv1.EventContentPublished, content.ContentID, now, map[string]any{
		"content_id":   content.ContentID,
		"published_by": systemActor,
		"scheduled":    true,
	})
	if err != nil {
		return err
	}
	return w.Repo.ApplyTransition(ctx, ports.TransitionEffects{
		Content: &ports.ContentUpdate{
			ContentID:   content.ContentID,
			Status:      entities.StatusPublished,
			PublishAt:   content.PublishAt,
			UnpublishAt: content.UnpublishAt,
			UpdatedAt:   now,
		},
		Audit: ports.AuditEntry{
			UserID:       systemActor,
			Action:       "PUBLISH",
			ResourceType: "content_item",
			ResourceID:   content.ContentID,
			ResourceName: content.Title,
			Metadata:     map[string]any{"scheduled": true},
		},
		Event: &event,
	})
}

func (w ScheduledPublisher) unpublishOne(ctx context.Context, content entities.ContentRef, now time.Time) error {
	event, err := w.sweepEnvelope(ctx, contractsv1.EventContentUnpublished, content.ContentID, now, map[string]any{
		"content_id":     content.ContentID,
		"unpublished_by": systemActor,
		"scheduled":      true,
	})
	if err != nil {
		return err
	}
	return w.Repo.ApplyTransition(ctx, ports.TransitionEffects{
		Content: &ports.ContentUpdate{
			ContentID:   content.ContentID,
			Status:      entities.StatusUnpublished,
			PublishAt:   content.PublishAt,
			UnpublishAt: content.UnpublishAt,
			UpdatedAt:   now,
		},
		Audit: ports.AuditEntry{
			UserID:       systemActor,
			Action:       "UNPUBLISH",
			ResourceType: "content_item",
			ResourceID:   content.ContentID,
			ResourceName: content.Title,
			Metadata:     map[string]any{"scheduled": true},
		},
		Event: &event,
	})
}

func (w ScheduledPublisher) sweepEnvelope(ctx context.Context, eventType, contentID string, occurredAt time.Time, data map[string]any) (ports.EventEnvelope, error) {
	eventID, err := w.IDGen.NewID(ctx)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "workflow-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "content_id",
		PartitionKey:     contentID,
		Data:             payload,
	}, nil
}
