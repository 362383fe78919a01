package queries

import (
	"context"
	"strings"

	"vellum/contexts/content-management/content-service/domain/entities"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
	"vellum/contexts/content-management/content-service/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListContentQuery struct {
	Status        string
	ContentTypeID string
	AuthorID      string
	DepartmentID  string
	Search        string
	Page          int
	Limit         int
}

type ListContentResult struct {
	Items []entities.ContentItem
	Total int64
	Page  int
	Limit int
}

type ListContentUseCase struct {
	Contents ports.Repository
}

func (uc ListContentUseCase) Execute(ctx context.Context, query ListContentQuery) (ListContentResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	status := strings.TrimSpace(query.Status)
	if status != "" && !entities.IsSupportedStatus(entities.ContentStatus(status)) {
		return ListContentResult{}, domainerrors.ErrInvalidRequest
	}

	filter := ports.ContentFilter{
		Status:        status,
		ContentTypeID: strings.TrimSpace(query.ContentTypeID),
		AuthorID:      strings.TrimSpace(query.AuthorID),
		DepartmentID:  strings.TrimSpace(query.DepartmentID),
		Search:        strings.TrimSpace(query.Search),
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}
	items, total, err := uc.Contents.ListContent(ctx, filter)
	if err != nil {
		return ListContentResult{}, err
	}
	return ListContentResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}
