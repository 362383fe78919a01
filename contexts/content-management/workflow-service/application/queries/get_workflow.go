package queries

import (
	"context"
	"strings"

	"vellum/contexts/content-management/workflow-service/domain/entities"
	domainerrors "vellum/contexts/content-management/workflow-service/domain/errors"
	"vellum/contexts/content-management/workflow-service/ports"
)

type GetWorkflowQuery struct {
	InstanceID string
}

type GetWorkflowResult struct {
	Instance entities.WorkflowInstance
	Steps    []entities.WorkflowStep
}

type GetWorkflowUseCase struct {
	Repo ports.Repository
}

func (uc GetWorkflowUseCase) Execute(ctx context.Context, query GetWorkflowQuery) (GetWorkflowResult, error) {
	instance, found, err := uc.Repo.GetInstance(ctx, strings.TrimSpace(query.InstanceID))
	if err != nil {
		return GetWorkflowResult{}, err
	}
	if !found {
		return GetWorkflowResult{}, domainerrors.ErrWorkflowNotFound
	}
	steps, err := uc.Repo.ListSteps(ctx, instance.InstanceID)
	if err != nil {
		return GetWorkflowResult{}, err
	}
	return GetWorkflowResult{Instance: instance, Steps: steps}, nil
}

type GetActiveWorkflowQuery struct {
	ContentID string
}

type GetActiveWorkflowUseCase struct {
	Repo ports.Repository
}

func (uc GetActiveWorkflowUseCase) Execute(ctx context.Context, query GetActiveWorkflowQuery) (GetWorkflowResult, error) {
	instance, found, err := uc.Repo.FindActiveInstance(ctx, strings.TrimSpace(query.ContentID))
	if err != nil {
		return GetWorkflowResult{}, err
	}
	if !found {
		return GetWorkflowResult{}, domainerrors.ErrWorkflowNotFound
	}
	steps, err := uc.Repo.ListSteps(ctx, instance.InstanceID)
	if err != nil {
		return GetWorkflowResult{}, err
	}
	return GetWorkflowResult{Instance: instance, Steps: steps}, nil
}
