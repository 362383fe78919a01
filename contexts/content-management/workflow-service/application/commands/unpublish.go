package commands

import (
	"context"
	"log/slog"
	"strings"

	application "vellum/contexts/content-management/workflow-service/application"
	"vellum/contexts/content-management/workflow-service/domain/entities"
	domainerrors "vellum/contexts/content-management/workflow-service/domain/errors"
	"vellum/contexts/content-management/workflow-service/ports"
	contractsv1 "vellum/contracts/gen/events/v1"
)

type UnpublishCommand struct {
	ContentID string
	ActorID   string
	ActorRole string
}

type UnpublishUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc UnpublishUseCase) Execute(ctx context.Context, cmd UnpublishCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if !roleAllowed(cmd.ActorRole, publisherRoles) {
		return domainerrors.ErrForbidden
	}
	content, found, err := uc.Repo.GetContent(ctx, strings.TrimSpace(cmd.ContentID))
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrContentNotFound
	}
	if content.Status != entities.StatusPublished {
		return domainerrors.ErrInvalidState
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	unpublishAt := now
	event, err := newWorkflowEnvelope(eventID, contractsv1.EventContentUnpublished, content.ContentID, now, map[string]any{
		"content_id":     content.ContentID,
		"unpublished_by": strings.TrimSpace(cmd.ActorID),
	})
	if err != nil {
		return err
	}

	effects := ports.TransitionEffects{
		Content: &ports.ContentUpdate{
			ContentID:   content.ContentID,
			Status:      entities.StatusUnpublished,
			PublishAt:   content.PublishAt,
			UnpublishAt: &unpublishAt,
			UpdatedAt:   now,
		},
		Audit: ports.AuditEntry{
			UserID:       strings.TrimSpace(cmd.ActorID),
			Action:       "UNPUBLISH",
			ResourceType: "content_item",
			ResourceID:   content.ContentID,
			ResourceName: content.Title,
		},
		Event: &event,
	}
	if err := uc.Repo.ApplyTransition(ctx, effects); err != nil {
		return err
	}

	logger.Info("content unpublished",
		"event", "workflow_unpublished",
		"module", "content-management/workflow-service",
		"layer", "application",
		"content_id", content.ContentID,
	)
	return nil
}
