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

// creatorRoles is the explicit allow list for creating content. Approver is
// deliberately absent: approvers review, they do not author.
var creatorRoles = map[string]struct{}{
	"Author":    {},
	"Editor":    {},
	"Publisher": {},
	"Admin":     {},
}

type CreateContentCommand struct {
	ActorID         string
	ActorRole       string
	ContentTypeID   string
	Title           string
	Slug            string
	Excerpt         string
	HeroImageURL    string
	PageData        *entities.PageData
	MetaTitle       string
	MetaDescription string
	MetaKeywords    []string
	DepartmentID    string
}

type CreateContentUseCase struct {
	Contents ports.Repository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CreateContentUseCase) Execute(ctx context.Context, cmd CreateContentCommand) (entities.ContentItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.ContentItem{}, domainerrors.ErrInvalidRequest
	}
	if _, ok := creatorRoles[cmd.ActorRole]; !ok {
		return entities.ContentItem{}, domainerrors.ErrForbidden
	}

	contentID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ContentItem{}, err
	}
	now := uc.Clock.Now().UTC()
	item := entities.ContentItem{
		ContentID:       contentID,
		ContentTypeID:   strings.TrimSpace(cmd.ContentTypeID),
		Title:           strings.TrimSpace(cmd.Title),
		Slug:            strings.TrimSpace(cmd.Slug),
		Excerpt:         strings.TrimSpace(cmd.Excerpt),
		HeroImageURL:    strings.TrimSpace(cmd.HeroImageURL),
		PageData:        cmd.PageData,
		MetaTitle:       strings.TrimSpace(cmd.MetaTitle),
		MetaDescription: strings.TrimSpace(cmd.MetaDescription),
		MetaKeywords:    append([]string(nil), cmd.MetaKeywords...),
		Status:          entities.StatusDraft,
		AuthorID:        strings.TrimSpace(cmd.ActorID),
		DepartmentID:    strings.TrimSpace(cmd.DepartmentID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !item.ValidateBasics() {
		return entities.ContentItem{}, domainerrors.ErrInvalidRequest
	}

	audit := ports.AuditEntry{
		UserID:       item.AuthorID,
		Action:       "CREATE",
		ResourceType: "content_item",
		ResourceID:   item.ContentID,
		ResourceName: item.Title,
	}
	if err := uc.Contents.CreateContent(ctx, item, audit); err != nil {
		return entities.ContentItem{}, err
	}

	logger.Info("content created",
		"event", "content_created",
		"module", "content-management/content-service",
		"layer", "application",
		"content_id", item.ContentID,
		"author_id", item.AuthorID,
	)
	return item, nil
}
