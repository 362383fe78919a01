package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "vellum/contexts/content-management/workflow-service/application"
	"vellum/contexts/content-management/workflow-service/domain/entities"
	domainerrors "vellum/contexts/content-management/workflow-service/domain/errors"
	"vellum/contexts/content-management/workflow-service/ports"
)

type ScheduleCommand struct {
	ContentID   string
	PublishAt   time.Time
	UnpublishAt *time.Time
	ActorID     string
	ActorRole   string
}

type ScheduleUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute pins future publish/unpublish instants without changing status.
// The scheduled-publishing sweep acts on them later.
func (uc ScheduleUseCase) Execute(ctx context.Context, cmd ScheduleCommand) (entities.ContentRef, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !roleAllowed(cmd.ActorRole, schedulerRoles) {
		return entities.ContentRef{}, domainerrors.ErrForbidden
	}
	now := uc.Clock.Now().UTC()
	if cmd.PublishAt.IsZero() || !cmd.PublishAt.After(now) {
		return entities.ContentRef{}, domainerrors.ErrInvalidSchedule
	}
	if cmd.UnpublishAt != nil && !cmd.UnpublishAt.After(cmd.PublishAt) {
		return entities.ContentRef{}, domainerrors.ErrInvalidSchedule
	}
	content, found, err := uc.Repo.GetContent(ctx, strings.TrimSpace(cmd.ContentID))
	if err != nil {
		return entities.ContentRef{}, err
	}
	if !found {
		return entities.ContentRef{}, domainerrors.ErrContentNotFound
	}

	publishAt := cmd.PublishAt.UTC()
	var unpublishAt *time.Time
	if cmd.UnpublishAt != nil {
		instant := cmd.UnpublishAt.UTC()
		unpublishAt = &instant
	}
	metadata := map[string]any{"publish_at": publishAt.Format(time.RFC3339)}
	if unpublishAt != nil {
		metadata["unpublish_at"] = unpublishAt.Format(time.RFC3339)
	}

	effects := ports.TransitionEffects{
		Content: &ports.ContentUpdate{
			ContentID:   content.ContentID,
			Status:      content.Status,
			PublishAt:   &publishAt,
			UnpublishAt: unpublishAt,
			UpdatedAt:   now,
		},
		Audit: ports.AuditEntry{
			UserID:       strings.TrimSpace(cmd.ActorID),
			Action:       "UPDATE",
			ResourceType: "content_item",
			ResourceID:   content.ContentID,
			ResourceName: content.Title,
			Metadata:     metadata,
		},
	}
	if err := uc.Repo.ApplyTransition(ctx, effects); err != nil {
		return entities.ContentRef{}, err
	}

	content.PublishAt = &publishAt
	content.UnpublishAt = unpublishAt
	content.UpdatedAt = now

	logger.Info("publishing scheduled",
		"event", "workflow_scheduled",
		"module", "content-management/workflow-service",
		"layer", "application",
		"content_id", content.ContentID,
		"publish_at", publishAt,
	)
	return content, nil
}
