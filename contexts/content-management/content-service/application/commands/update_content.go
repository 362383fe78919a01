package commands

import (
	"context"
	"log/slog"
	"strings"

	application "vellum/contexts/content-management/content-service/application"
	"vellum/contexts/content-management/content-service/domain/entities"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
	"vellum/contexts/content-management/content-service/ports"
)

type UpdateContentCommand struct {
	ContentID       string
	ActorID         string
	ActorRole       string
	Title           *string
	Slug            *string
	Excerpt         *string
	HeroImageURL    *string
	PageData        *entities.PageData
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *[]string
	DepartmentID    *string
}

type UpdateContentUseCase struct {
	Contents ports.Repository
	Gate     ports.EditGate
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// Execute applies the partial update. The pre-update state is snapshotted as
// the next version in the same transaction, so every edit stays recoverable.
func (uc UpdateContentUseCase) Execute(ctx context.Context, cmd UpdateContentCommand) (entities.ContentItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	item, found, err := uc.Contents.GetContent(ctx, strings.TrimSpace(cmd.ContentID))
	if err != nil {
		return entities.ContentItem{}, err
	}
	if !found {
		return entities.ContentItem{}, domainerrors.ErrContentNotFound
	}
	if !uc.Gate.CanEdit(cmd.ActorID, cmd.ActorRole, item.AuthorID) {
		return entities.ContentItem{}, domainerrors.ErrForbidden
	}

	versionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ContentItem{}, err
	}
	now := uc.Clock.Now().UTC()
	snapshot := entities.SnapshotOf(item, cmd.ActorID, now)
	snapshot.VersionID = versionID

	if cmd.Title != nil {
		item.Title = strings.TrimSpace(*cmd.Title)
	}
	if cmd.Slug != nil {
		item.Slug = strings.TrimSpace(*cmd.Slug)
	}
	if cmd.Excerpt != nil {
		item.Excerpt = strings.TrimSpace(*cmd.Excerpt)
	}
	if cmd.HeroImageURL != nil {
		item.HeroImageURL = strings.TrimSpace(*cmd.HeroImageURL)
	}
	if cmd.PageData != nil {
		item.PageData = cmd.PageData
	}
	if cmd.MetaTitle != nil {
		item.MetaTitle = strings.TrimSpace(*cmd.MetaTitle)
	}
	if cmd.MetaDescription != nil {
		item.MetaDescription = strings.TrimSpace(*cmd.MetaDescription)
	}
	if cmd.MetaKeywords != nil {
		item.MetaKeywords = append([]string(nil), (*cmd.MetaKeywords)...)
	}
	if cmd.DepartmentID != nil {
		item.DepartmentID = strings.TrimSpace(*cmd.DepartmentID)
	}
	item.UpdatedAt = now

	if !item.ValidateBasics() {
		return entities.ContentItem{}, domainerrors.ErrInvalidRequest
	}

	audit := ports.AuditEntry{
		UserID:       strings.TrimSpace(cmd.ActorID),
		Action:       "UPDATE",
		ResourceType: "content_item",
		ResourceID:   item.ContentID,
		ResourceName: item.Title,
	}
	if err := uc.Contents.UpdateContent(ctx, item, snapshot, audit); err != nil {
		return entities.ContentItem{}, err
	}

	logger.Info("content updated",
		"event", "content_updated",
		"module", "content-management/content-service",
		"layer", "application",
		"content_id", item.ContentID,
	)
	return item, nil
}
