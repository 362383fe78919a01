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

type SubmitForReviewCommand struct {
	ContentID string
	Comments  string
	ActorID   string
	ActorRole string
}

type SubmitForReviewUseCase struct {
	Repo   ports.Repository
	Gate   ports.EditGate
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Execute moves Draft content into review. The new instance, its pending
// step, the status flip, the audit row and the outbox event commit together.
func (uc SubmitForReviewUseCase) Execute(ctx context.Context, cmd SubmitForReviewCommand) (entities.WorkflowInstance, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.WorkflowInstance{}, domainerrors.ErrInvalidRequest
	}
	content, found, err := uc.Repo.GetContent(ctx, strings.TrimSpace(cmd.ContentID))
	if err != nil {
		return entities.WorkflowInstance{}, err
	}
	if !found {
		return entities.WorkflowInstance{}, domainerrors.ErrContentNotFound
	}
	if !uc.Gate.CanEdit(cmd.ActorID, cmd.ActorRole, content.AuthorID) {
		return entities.WorkflowInstance{}, domainerrors.ErrForbidden
	}
	if content.Status != entities.StatusDraft {
		return entities.WorkflowInstance{}, domainerrors.ErrInvalidState
	}
	if _, exists, err := uc.Repo.FindActiveInstance(ctx, content.ContentID); err != nil {
		return entities.WorkflowInstance{}, err
	} else if exists {
		return entities.WorkflowInstance{}, domainerrors.ErrActiveWorkflowExists
	}

	instanceID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.WorkflowInstance{}, err
	}
	stepID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.WorkflowInstance{}, err
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.WorkflowInstance{}, err
	}

	now := uc.Clock.Now().UTC()
	instance := entities.WorkflowInstance{
		InstanceID:  instanceID,
		ContentID:   content.ContentID,
		CurrentStep: entities.StepReview,
		Status:      entities.WorkflowActive,
		InitiatedBy: strings.TrimSpace(cmd.ActorID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	step := entities.WorkflowStep{
		StepID:     stepID,
		InstanceID: instanceID,
		StepName:   entities.StepReview,
		Status:     entities.StepPending,
		Comments:   strings.TrimSpace(cmd.Comments),
		CreatedAt:  now,
	}
	event, err := newWorkflowEnvelope(eventID, contractsv1.EventContentSubmitted, content.ContentID, now, map[string]any{
		"content_id":           content.ContentID,
		"workflow_instance_id": instanceID,
		"submitted_by":         instance.InitiatedBy,
	})
	if err != nil {
		return entities.WorkflowInstance{}, err
	}

	effects := ports.TransitionEffects{
		Content: &ports.ContentUpdate{
			ContentID:   content.ContentID,
			Status:      entities.StatusInReview,
			PublishAt:   content.PublishAt,
			UnpublishAt: content.UnpublishAt,
			UpdatedAt:   now,
		},
		Instance: &instance,
		Step:     &step,
		Audit: ports.AuditEntry{
			UserID:       instance.InitiatedBy,
			Action:       "SUBMIT",
			ResourceType: "content_item",
			ResourceID:   content.ContentID,
			ResourceName: content.Title,
		},
		Event: &event,
	}
	if err := uc.Repo.ApplyTransition(ctx, effects); err != nil {
		return entities.WorkflowInstance{}, err
	}

	logger.Info("content submitted for review",
		"event", "workflow_submitted",
		"module", "content-management/workflow-service",
		"layer", "application",
		"content_id", content.ContentID,
		"workflow_instance_id", instanceID,
	)
	return instance, nil
}
