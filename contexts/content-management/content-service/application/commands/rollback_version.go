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

type RollbackVersionCommand struct {
	ContentID     string
	VersionNumber int
	ActorID       string
	ActorRole     string
}

type RollbackVersionUseCase struct {
	Contents ports.Repository
	Versions ports.VersionRepository
	Gate     ports.EditGate
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// Execute restores the editable fields from the target version. Status is
// untouched: rollback is an editorial operation, not a workflow transition.
// The pre-rollback state is snapshotted first so the rollback itself can be
// rolled back.
func (uc RollbackVersionUseCase) Execute(ctx context.Context, cmd RollbackVersionCommand) (entities.ContentItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.VersionNumber <= 0 {
		return entities.ContentItem{}, domainerrors.ErrInvalidRequest
	}
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
	target, found, err := uc.Versions.GetVersionByNumber(ctx, item.ContentID, cmd.VersionNumber)
	if err != nil {
		return entities.ContentItem{}, err
	}
	if !found {
		return entities.ContentItem{}, domainerrors.ErrVersionNotFound
	}

	versionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ContentItem{}, err
	}
	now := uc.Clock.Now().UTC()
	snapshot := entities.SnapshotOf(item, cmd.ActorID, now)
	snapshot.VersionID = versionID

	item.Title = target.Title
	item.Slug = target.Slug
	item.Excerpt = target.Excerpt
	item.HeroImageURL = target.HeroImageURL
	item.PageData = target.PageData
	item.MetaTitle = target.MetaTitle
	item.MetaDescription = target.MetaDescription
	item.MetaKeywords = append([]string(nil), target.MetaKeywords...)
	item.UpdatedAt = now

	audit := ports.AuditEntry{
		UserID:       strings.TrimSpace(cmd.ActorID),
		Action:       "UPDATE",
		ResourceType: "content_item",
		ResourceID:   item.ContentID,
		ResourceName: item.Title,
		Metadata: map[string]any{
			"action":                 "rollback",
			"rolled_back_to_version": target.VersionNumber,
		},
	}
	if err := uc.Versions.RollbackContent(ctx, item, snapshot, audit); err != nil {
		return entities.ContentItem{}, err
	}

	logger.Info("content rolled back",
		"event", "content_rolled_back",
		"module", "content-management/content-service",
		"layer", "application",
		"content_id", item.ContentID,
		"version_number", target.VersionNumber,
	)
	return item, nil
}
