package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vellum/contexts/content-management/workflow-service/application/commands"
	"vellum/contexts/content-management/workflow-service/application/queries"
	"vellum/contexts/content-management/workflow-service/domain/entities"
	domainerrors "vellum/contexts/content-management/workflow-service/domain/errors"
	httptransport "vellum/contexts/content-management/workflow-service/transport/http"
)

type Handler struct {
	Submit         commands.SubmitForReviewUseCase
	RequestChanges commands.RequestChangesUseCase
	Approve        commands.ApproveUseCase
	Publish        commands.PublishUseCase
	Schedule       commands.ScheduleUseCase
	Unpublish      commands.UnpublishUseCase

	GetWorkflow       queries.GetWorkflowUseCase
	GetActiveWorkflow queries.GetActiveWorkflowUseCase

	Logger *slog.Logger
}

func (h Handler) SubmitHandler(ctx context.Context, actorID, actorRole string, req httptransport.SubmitRequest) (httptransport.SubmitResponse, error) {
	instance, err := h.Submit.Execute(ctx, commands.SubmitForReviewCommand{
		ContentID: req.ContentID,
		Comments:  req.Comments,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	if err != nil {
		return httptransport.SubmitResponse{}, err
	}
	return httptransport.SubmitResponse{
		Message:          "Content submitted for review",
		WorkflowInstance: mapInstance(instance),
	}, nil
}

func (h Handler) RequestChangesHandler(ctx context.Context, actorID, actorRole string, req httptransport.WorkflowActionRequest) (httptransport.ActionResponse, error) {
	err := h.RequestChanges.Execute(ctx, commands.RequestChangesCommand{
		InstanceID: req.WorkflowInstanceID,
		Comments:   req.Comments,
		ActorID:    actorID,
		ActorRole:  actorRole,
	})
	if err != nil {
		return httptransport.ActionResponse{}, err
	}
	return httptransport.ActionResponse{Message: "Changes requested"}, nil
}

func (h Handler) ApproveHandler(ctx context.Context, actorID, actorRole string, req httptransport.WorkflowActionRequest) (httptransport.ActionResponse, error) {
	err := h.Approve.Execute(ctx, commands.ApproveCommand{
		InstanceID: req.WorkflowInstanceID,
		Comments:   req.Comments,
		ActorID:    actorID,
		ActorRole:  actorRole,
	})
	if err != nil {
		return httptransport.ActionResponse{}, err
	}
	return httptransport.ActionResponse{Message: "Content approved"}, nil
}

func (h Handler) PublishHandler(ctx context.Context, actorID, actorRole string, req httptransport.WorkflowActionRequest) (httptransport.ActionResponse, error) {
	err := h.Publish.Execute(ctx, commands.PublishCommand{
		InstanceID: req.WorkflowInstanceID,
		ActorID:    actorID,
		ActorRole:  actorRole,
	})
	if err != nil {
		return httptransport.ActionResponse{}, err
	}
	return httptransport.ActionResponse{Message: "Content published"}, nil
}

func (h Handler) ScheduleHandler(ctx context.Context, actorID, actorRole string, req httptransport.ScheduleRequest) (httptransport.ScheduleResponse, error) {
	publishAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.PublishAt))
	if err != nil {
		return httptransport.ScheduleResponse{}, domainerrors.ErrInvalidRequest
	}
	var unpublishAt *time.Time
	if strings.TrimSpace(req.UnpublishAt) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(req.UnpublishAt))
		if err != nil {
			return httptransport.ScheduleResponse{}, domainerrors.ErrInvalidRequest
		}
		unpublishAt = &parsed
	}

	content, err := h.Schedule.Execute(ctx, commands.ScheduleCommand{
		ContentID:   req.ContentID,
		PublishAt:   publishAt,
		UnpublishAt: unpublishAt,
		ActorID:     actorID,
		ActorRole:   actorRole,
	})
	if err != nil {
		return httptransport.ScheduleResponse{}, err
	}

	payload := httptransport.SchedulePayload{
		ContentID: content.ContentID,
		Status:    string(content.Status),
	}
	if content.PublishAt != nil {
		payload.PublishAt = content.PublishAt.UTC().Format(time.RFC3339)
	}
	if content.UnpublishAt != nil {
		payload.UnpublishAt = content.UnpublishAt.UTC().Format(time.RFC3339)
	}
	return httptransport.ScheduleResponse{
		Message: "Publishing scheduled successfully",
		Data:    payload,
	}, nil
}

func (h Handler) UnpublishHandler(ctx context.Context, actorID, actorRole string, req httptransport.UnpublishRequest) (httptransport.ActionResponse, error) {
	err := h.Unpublish.Execute(ctx, commands.UnpublishCommand{
		ContentID: req.ContentID,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	if err != nil {
		return httptransport.ActionResponse{}, err
	}
	return httptransport.ActionResponse{Message: "Content unpublished"}, nil
}

func (h Handler) GetWorkflowHandler(ctx context.Context, instanceID string) (httptransport.WorkflowResponse, error) {
	result, err := h.GetWorkflow.Execute(ctx, queries.GetWorkflowQuery{InstanceID: instanceID})
	if err != nil {
		return httptransport.WorkflowResponse{}, err
	}
	return mapWorkflow(result), nil
}

func (h Handler) GetActiveWorkflowHandler(ctx context.Context, contentID string) (httptransport.WorkflowResponse, error) {
	result, err := h.GetActiveWorkflow.Execute(ctx, queries.GetActiveWorkflowQuery{ContentID: contentID})
	if err != nil {
		return httptransport.WorkflowResponse{}, err
	}
	return mapWorkflow(result), nil
}

func mapWorkflow(result queries.GetWorkflowResult) httptransport.WorkflowResponse {
	resp := httptransport.WorkflowResponse{
		Instance: mapInstance(result.Instance),
		Steps:    make([]httptransport.WorkflowStepPayload, 0, len(result.Steps)),
	}
	for _, step := range result.Steps {
		resp.Steps = append(resp.Steps, mapStep(step))
	}
	return resp
}

func mapInstance(instance entities.WorkflowInstance) httptransport.WorkflowInstancePayload {
	return httptransport.WorkflowInstancePayload{
		ID:          instance.InstanceID,
		ContentID:   instance.ContentID,
		CurrentStep: instance.CurrentStep,
		Status:      string(instance.Status),
		InitiatedBy: instance.InitiatedBy,
		CreatedAt:   instance.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   instance.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapStep(step entities.WorkflowStep) httptransport.WorkflowStepPayload {
	payload := httptransport.WorkflowStepPayload{
		ID:          step.StepID,
		StepName:    step.StepName,
		Status:      string(step.Status),
		Comments:    step.Comments,
		CompletedBy: step.CompletedBy,
		CreatedAt:   step.CreatedAt.UTC().Format(time.RFC3339),
	}
	if step.CompletedAt != nil {
		payload.CompletedAt = step.CompletedAt.UTC().Format(time.RFC3339)
	}
	return payload
}
