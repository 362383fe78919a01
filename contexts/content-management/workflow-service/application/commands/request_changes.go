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

type RequestChangesCommand struct {
	InstanceID string
	Comments   string
	ActorID    string
	ActorRole  string
}

type RequestChangesUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Execute sends content back to its author. The instance is cancelled, not
// completed: a fresh submission starts a fresh instance.
func (uc RequestChangesUseCase) Execute(ctx context.Context, cmd RequestChangesCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if !roleAllowed(cmd.ActorRole, changeRequesterRoles) {
		return domainerrors.ErrForbidden
	}
	instance, found, err := uc.Repo.GetInstance(ctx, strings.TrimSpace(cmd.InstanceID))
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrWorkflowNotFound
	}
	if instance.Status != entities.WorkflowActive {
		return domainerrors.ErrInvalidState
	}
	content, found, err := uc.Repo.GetContent(ctx, instance.ContentID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrContentNotFound
	}

	stepID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	instance.Status = entities.WorkflowCancelled
	instance.CurrentStep = entities.StepRequestChanges
	instance.UpdatedAt = now
	completedAt := now
	step := entities.WorkflowStep{
		StepID:      stepID,
		InstanceID:  instance.InstanceID,
		StepName:    entities.StepRequestChanges,
		Status:      entities.StepCompleted,
		Comments:    strings.TrimSpace(cmd.Comments),
		CompletedBy: strings.TrimSpace(cmd.ActorID),
		CompletedAt: &completedAt,
		CreatedAt:   now,
	}
	event, err := newWorkflowEnvelope(eventID, contractsv1.EventContentChangesRequested, content.ContentID, now, map[string]any{
		"content_id":           content.ContentID,
		"workflow_instance_id": instance.InstanceID,
		"requested_by":         step.CompletedBy,
	})
	if err != nil {
		return err
	}

	effects := ports.TransitionEffects{
		Content: &ports.ContentUpdate{
			ContentID:   content.ContentID,
			Status:      entities.StatusDraft,
			PublishAt:   content.PublishAt,
			UnpublishAt: content.UnpublishAt,
			UpdatedAt:   now,
		},
		Instance: &instance,
		Step:     &step,
		Audit: ports.AuditEntry{
			UserID:       strings.TrimSpace(cmd.ActorID),
			Action:       "REJECT",
			ResourceType: "content_item",
			ResourceID:   content.ContentID,
			ResourceName: content.Title,
			Metadata:     map[string]any{"comments": strings.TrimSpace(cmd.Comments)},
		},
		Event: &event,
	}
	if err := uc.Repo.ApplyTransition(ctx, effects); err != nil {
		return err
	}

	logger.Info("changes requested",
		"event", "workflow_changes_requested",
		"module", "content-management/workflow-service",
		"layer", "application",
		"content_id", content.ContentID,
		"workflow_instance_id", instance.InstanceID,
	)
	return nil
}
