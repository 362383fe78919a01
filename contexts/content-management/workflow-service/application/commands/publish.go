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

type PublishCommand struct {
	InstanceID string
	ActorID    string
	ActorRole  string
}

type PublishUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc PublishUseCase) Execute(ctx context.Context, cmd PublishCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if !roleAllowed(cmd.ActorRole, publisherRoles) {
		return domainerrors.ErrForbidden
	}
	instance, found, err := uc.Repo.GetInstance(ctx, strings.TrimSpace(cmd.InstanceID))
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrWorkflowNotFound
	}
	content, found, err := uc.Repo.GetContent(ctx, instance.ContentID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrContentNotFound
	}
	if content.Status != entities.StatusApproved {
		return domainerrors.ErrInvalidState
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	publishAt := now
	event, err := newWorkflowEnvelope(eventID, contractsv1.EventContentPublished, content.ContentID, now, map[string]any{
		"content_id":   content.ContentID,
		"published_by": strings.TrimSpace(cmd.ActorID),
	})
	if err != nil {
		return err
	}

	effects := ports.TransitionEffects{
		Content: &ports.ContentUpdate{
			ContentID:   content.ContentID,
			Status:      entities.StatusPublished,
			PublishAt:   &publishAt,
			UnpublishAt: content.UnpublishAt,
			UpdatedAt:   now,
		},
		Audit: ports.AuditEntry{
			UserID:       strings.TrimSpace(cmd.ActorID),
			Action:       "PUBLISH",
			ResourceType: "content_item",
			ResourceID:   content.ContentID,
			ResourceName: content.Title,
		},
		Event: &event,
	}
	if err := uc.Repo.ApplyTransition(ctx, effects); err != nil {
		return err
	}

	logger.Info("content published",
		"event", "workflow_published",
		"module", "content-management/workflow-service",
		"layer", "application",
		"content_id", content.ContentID,
	)
	return nil
}
