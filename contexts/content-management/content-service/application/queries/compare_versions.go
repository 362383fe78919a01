package queries

import (
	"context"
	"strings"

	"vellum/contexts/content-management/content-service/domain/entities"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
	"vellum/contexts/content-management/content-service/ports"
)

type CompareVersionsQuery struct {
	VersionID1 string
	VersionID2 string
}

type CompareVersionsResult struct {
	Version1    entities.ContentVersion
	Version2    entities.ContentVersion
	Differences entities.VersionDifferences
}

type CompareVersionsUseCase struct {
	Versions ports.VersionRepository
}

func (uc CompareVersionsUseCase) Execute(ctx context.Context, query CompareVersionsQuery) (CompareVersionsResult, error) {
	id1 := strings.TrimSpace(query.VersionID1)
	id2 := strings.TrimSpace(query.VersionID2)
	if id1 == "" || id2 == "" {
		return CompareVersionsResult{}, domainerrors.ErrInvalidRequest
	}
	first, found, err := uc.Versions.GetVersion(ctx, id1)
	if err != nil {
		return CompareVersionsResult{}, err
	}
	if !found {
		return CompareVersionsResult{}, domainerrors.ErrVersionNotFound
	}
	second, found, err := uc.Versions.GetVersion(ctx, id2)
	if err != nil {
		return CompareVersionsResult{}, err
	}
	if !found {
		return CompareVersionsResult{}, domainerrors.ErrVersionNotFound
	}
	return CompareVersionsResult{
		Version1:    first,
		Version2:    second,
		Differences: entities.CompareVersions(first, second),
	}, nil
}
