package queries

import (
	"context"
	"strings"

	"vellum/contexts/content-management/content-service/domain/entities"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
	"vellum/contexts/content-management/content-service/ports"
)

type GetContentQuery struct {
	ContentID string
}

type GetContentUseCase struct {
	Contents ports.Repository
}

func (uc GetContentUseCase) Execute(ctx context.Context, query GetContentQuery) (entities.ContentItem, error) {
	item, found, err := uc.Contents.GetContent(ctx, strings.TrimSpace(query.ContentID))
	if err != nil {
		return entities.ContentItem{}, err
	}
	if !found {
		return entities.ContentItem{}, domainerrors.ErrContentNotFound
	}
	return item, nil
}
