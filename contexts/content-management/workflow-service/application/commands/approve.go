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

type ApproveCommand struct {
	InstanceID string
	Comments   string
	ActorID    string
	ActorRole  string
}

type ApproveUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc ApproveUseCase) Execute(ctx context.Context, cmd ApproveCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if !roleAllowed(cmd.ActorRole, approverRoles) {
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
	if content.Status != entities.StatusInReview {
		return domainerrors.ErrInvalidState
	}

	stepID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	approvalID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	instance.Status = entities.WorkflowCompleted
	instance.CurrentStep = entities.StepApproved
	instance.UpdatedAt = now
	completedAt := now
	step := entities.WorkflowStep{
		StepID:      stepID,
		InstanceID:  instance.InstanceID,
		StepName:    entities.StepApprove,
		Status:      entities.StepCompleted,
		Comments:    strings.TrimSpace(cmd.Comments),
		CompletedBy: strings.TrimSpace(cmd.ActorID),
		CompletedAt: &completedAt,
		CreatedAt:   now,
	}
	approval := entities.WorkflowApproval{
		ApprovalID: approvalID,
		StepID:     stepID,
		ApprovedBy: strings.TrimSpace(cmd.ActorID),
		Approved:   true,
		Comments:   strings.TrimSpace(cmd.Comments),
		CreatedAt:  now,
	}
	event, err := newWorkflowEnvelope(eventID, contractsv1.EventContentApproved, content.ContentID, now, map[string]any{
		"content_id":           content.ContentID,
		"workflow_instance_id": instance.InstanceID,
		"approved_by":          approval.ApprovedBy,
	})
	if err != nil {
		return err
	}

	effects := ports.TransitionEffects{
		Content: &ports.ContentUpdate{
			ContentID:   content.ContentID,
			Status:      entities.StatusApproved,
			PublishAt:   content.PublishAt,
			UnpublishAt: content.UnpublishAt,
			UpdatedAt:   now,
		},
		Instance: &instance,
		Step:     &step,
		Approval: &approval,
		Audit: ports.AuditEntry{
			UserID:       approval.ApprovedBy,
			Action:       "APPROVE",
			ResourceType: "content_item",
			ResourceID:   content.ContentID,
			ResourceName: content.Title,
			Metadata:     map[string]any{"comments": approval.Comments},
		},
		Event: &event,
	}
	if err := uc.Repo.ApplyTransition(ctx, effects); err != nil {
		return err
	}

	logger.Info("content approved",
		"event", "workflow_approved",
		"module", "content-management/workflow-service",
		"layer", "application",
		"content_id", content.ContentID,
		"workflow_instance_id", instance.InstanceID,
	)
	return nil
}
