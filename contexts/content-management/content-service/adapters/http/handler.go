package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vellum/contexts/content-management/content-service/application/commands"
	"vellum/contexts/content-management/content-service/application/queries"
	"vellum/contexts/content-management/content-service/domain/entities"
	httptransport "vellum/contexts/content-management/content-service/transport/http"
)

type Handler struct {
	Create   commands.CreateContentUseCase
	Update   commands.UpdateContentUseCase
	Delete   commands.DeleteContentUseCase
	Rollback commands.RollbackVersionUseCase

	Get      queries.GetContentUseCase
	List     queries.ListContentUseCase
	Versions queries.ListVersionsUseCase
	Version  queries.GetVersionUseCase
	Compare  queries.CompareVersionsUseCase

	Logger *slog.Logger
}

func (h Handler) CreateContentHandler(ctx context.Context, actorID, actorRole string, req httptransport.CreateContentRequest) (httptransport.ContentItemPayload, error) {
	item, err := h.Create.Execute(ctx, commands.CreateContentCommand{
		ActorID:         actorID,
		ActorRole:       actorRole,
		ContentTypeID:   req.ContentTypeID,
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		HeroImageURL:    req.HeroImageURL,
		PageData:        pageDataFromPayload(req.PageData),
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		DepartmentID:    req.DepartmentID,
	})
	if err != nil {
		return httptransport.ContentItemPayload{}, err
	}
	return mapContentItem(item), nil
}

func (h Handler) UpdateContentHandler(ctx context.Context, actorID, actorRole, contentID string, req httptransport.UpdateContentRequest) (httptransport.ContentItemPayload, error) {
	item, err := h.Update.Execute(ctx, commands.UpdateContentCommand{
		ContentID:       contentID,
		ActorID:         actorID,
		ActorRole:       actorRole,
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		HeroImageURL:    req.HeroImageURL,
		PageData:        pageDataFromPayload(req.PageData),
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		DepartmentID:    req.DepartmentID,
	})
	if err != nil {
		return httptransport.ContentItemPayload{}, err
	}
	return mapContentItem(item), nil
}

func (h Handler) DeleteContentHandler(ctx context.Context, actorID, actorRole, contentID string) error {
	return h.Delete.Execute(ctx, commands.DeleteContentCommand{
		ContentID: contentID,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
}

func (h Handler) GetContentHandler(ctx context.Context, contentID string) (httptransport.ContentItemPayload, error) {
	item, err := h.Get.Execute(ctx, queries.GetContentQuery{ContentID: contentID})
	if err != nil {
		return httptransport.ContentItemPayload{}, err
	}
	return mapContentItem(item), nil
}

type ListQuery struct {
	Status        string
	ContentTypeID string
	AuthorID      string
	DepartmentID  string
	Search        string
	Page          int
	Limit         int
}

func (h Handler) ListContentHandler(ctx context.Context, query ListQuery) (httptransport.ListContentResponse, error) {
	result, err := h.List.Execute(ctx, queries.ListContentQuery{
		Status:        query.Status,
		ContentTypeID: query.ContentTypeID,
		AuthorID:      query.AuthorID,
		DepartmentID:  query.DepartmentID,
		Search:        query.Search,
		Page:          query.Page,
		Limit:         query.Limit,
	})
	if err != nil {
		return httptransport.ListContentResponse{}, err
	}

	resp := httptransport.ListContentResponse{
		Content: make([]httptransport.ContentItemPayload, 0, len(result.Items)),
		Pagination: httptransport.Pagination{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: totalPages(result.Total, result.Limit),
		},
	}
	for _, item := range result.Items {
		resp.Content = append(resp.Content, mapContentItem(item))
	}
	return resp, nil
}

func (h Handler) ListVersionsHandler(ctx context.Context, contentID string, limit, offset int) (httptransport.ListVersionsResponse, error) {
	result, err := h.Versions.Execute(ctx, queries.ListVersionsQuery{
		ContentID: contentID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return httptransport.ListVersionsResponse{}, err
	}

	resp := httptransport.ListVersionsResponse{
		Versions: make([]httptransport.VersionPayload, 0, len(result.Versions)),
		Total:    result.Total,
	}
	for _, version := range result.Versions {
		resp.Versions = append(resp.Versions, mapVersion(version))
	}
	return resp, nil
}

func (h Handler) GetVersionHandler(ctx context.Context, versionID string) (httptransport.VersionPayload, error) {
	version, err := h.Version.Execute(ctx, queries.GetVersionQuery{VersionID: versionID})
	if err != nil {
		return httptransport.VersionPayload{}, err
	}
	return mapVersion(version), nil
}

func (h Handler) RollbackHandler(ctx context.Context, actorID, actorRole, contentID string, req httptransport.RollbackRequest) (httptransport.ContentItemPayload, error) {
	item, err := h.Rollback.Execute(ctx, commands.RollbackVersionCommand{
		ContentID:     contentID,
		VersionNumber: req.VersionNumber,
		ActorID:       actorID,
		ActorRole:     actorRole,
	})
	if err != nil {
		return httptransport.ContentItemPayload{}, err
	}
	return mapContentItem(item), nil
}

func (h Handler) CompareVersionsHandler(ctx context.Context, versionID1, versionID2 string) (httptransport.CompareVersionsResponse, error) {
	result, err := h.Compare.Execute(ctx, queries.CompareVersionsQuery{
		VersionID1: versionID1,
		VersionID2: versionID2,
	})
	if err != nil {
		return httptransport.CompareVersionsResponse{}, err
	}
	return httptransport.CompareVersionsResponse{
		Version1: mapVersion(result.Version1),
		Version2: mapVersion(result.Version2),
		Differences: httptransport.VersionDifferencesPayload{
			Title:           result.Differences.Title,
			Slug:            result.Differences.Slug,
			Excerpt:         result.Differences.Excerpt,
			HeroImageURL:    result.Differences.HeroImageURL,
			PageData:        result.Differences.PageData,
			MetaTitle:       result.Differences.MetaTitle,
			MetaDescription: result.Differences.MetaDescription,
		},
	}, nil
}

func mapContentItem(item entities.ContentItem) httptransport.ContentItemPayload {
	payload := httptransport.ContentItemPayload{
		ID:              item.ContentID,
		ContentTypeID:   item.ContentTypeID,
		Title:           item.Title,
		Slug:            item.Slug,
		Excerpt:         item.Excerpt,
		HeroImageURL:    item.HeroImageURL,
		PageData:        pageDataToPayload(item.PageData),
		MetaTitle:       item.MetaTitle,
		MetaDescription: item.MetaDescription,
		MetaKeywords:    append([]string(nil), item.MetaKeywords...),
		Status:          string(item.Status),
		AuthorID:        item.AuthorID,
		DepartmentID:    item.DepartmentID,
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if item.PublishAt != nil {
		payload.PublishAt = item.PublishAt.UTC().Format(time.RFC3339)
	}
	if item.UnpublishAt != nil {
		payload.UnpublishAt = item.UnpublishAt.UTC().Format(time.RFC3339)
	}
	return payload
}

func mapVersion(version entities.ContentVersion) httptransport.VersionPayload {
	return httptransport.VersionPayload{
		ID:              version.VersionID,
		ContentID:       version.ContentID,
		VersionNumber:   version.VersionNumber,
		Title:           version.Title,
		Slug:            version.Slug,
		Excerpt:         version.Excerpt,
		HeroImageURL:    version.HeroImageURL,
		PageData:        pageDataToPayload(version.PageData),
		MetaTitle:       version.MetaTitle,
		MetaDescription: version.MetaDescription,
		MetaKeywords:    append([]string(nil), version.MetaKeywords...),
		CreatedBy:       version.CreatedBy,
		CreatedAt:       version.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func pageDataFromPayload(payload *httptransport.PageDataPayload) *entities.PageData {
	if payload == nil {
		return nil
	}
	blocks := make([]entities.Block, 0, len(payload.Blocks))
	for _, block := range payload.Blocks {
		blocks = append(blocks, entities.Block{
			ID:   strings.TrimSpace(block.ID),
			Type: strings.TrimSpace(block.Type),
			Data: block.Data,
		})
	}
	return &entities.PageData{Blocks: blocks}
}

func pageDataToPayload(data *entities.PageData) *httptransport.PageDataPayload {
	if data == nil {
		return nil
	}
	blocks := make([]httptransport.BlockPayload, 0, len(data.Blocks))
	for _, block := range data.Blocks {
		blocks = append(blocks, httptransport.BlockPayload{
			ID:   block.ID,
			Type: block.Type,
			Data: block.Data,
		})
	}
	return &httptransport.PageDataPayload{Blocks: blocks}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
