package queries

import (
	"context"
	"strings"

	"vellum/contexts/content-management/content-service/domain/entities"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
	"vellum/contexts/content-management/content-service/ports"
)

const (
	defaultVersionPageSize = 50
	maxVersionPageSize     = 100
)

type ListVersionsQuery struct {
	ContentID string
	Limit     int
	Offset    int
}

type ListVersionsResult struct {
	Versions []entities.ContentVersion
	Total    int64
}

type ListVersionsUseCase struct {
	Contents ports.Repository
	Versions ports.VersionRepository
}

func (uc ListVersionsUseCase) Execute(ctx context.Context, query ListVersionsQuery) (ListVersionsResult, error) {
	contentID := strings.TrimSpace(query.ContentID)
	_, found, err := uc.Contents.GetContent(ctx, contentID)
	if err != nil {
		return ListVersionsResult{}, err
	}
	if !found {
		return ListVersionsResult{}, domainerrors.ErrContentNotFound
	}

	limit := query.Limit
	if limit < 1 {
		limit = defaultVersionPageSize
	}
	if limit > maxVersionPageSize {
		limit = maxVersionPageSize
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	versions, total, err := uc.Versions.ListVersions(ctx, contentID, ports.VersionFilter{Limit: limit, Offset: offset})
	if err != nil {
		return ListVersionsResult{}, err
	}
	return ListVersionsResult{Versions: versions, Total: total}, nil
}

type GetVersionQuery struct {
	VersionID string
}

type GetVersionUseCase struct {
	Versions ports.VersionRepository
}

func (uc GetVersionUseCase) Execute(ctx context.Context, query GetVersionQuery) (entities.ContentVersion, error) {
	version, found, err := uc.Versions.GetVersion(ctx, strings.TrimSpace(query.VersionID))
	if err != nil {
		return entities.ContentVersion{}, err
	}
	if !found {
		return entities.ContentVersion{}, domainerrors.ErrVersionNotFound
	}
	return version, nil
}
