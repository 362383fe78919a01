package commands

import (
	"context"
	"log/slog"
	"strings"

	application "vellum/contexts/content-management/content-service/application"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
	"vellum/contexts/content-management/content-service/ports"
)

type DeleteContentCommand struct {
	ContentID string
	ActorID   string
	ActorRole string
}

type DeleteContentUseCase struct {
	Contents ports.Repository
	Logger   *slog.Logger
}

func (uc DeleteContentUseCase) Execute(ctx context.Context, cmd DeleteContentCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.ActorRole != "Admin" {
		return domainerrors.ErrForbidden
	}
	item, found, err := uc.Contents.GetContent(ctx, strings.TrimSpace(cmd.ContentID))
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrContentNotFound
	}

	audit := ports.AuditEntry{
		UserID:       strings.TrimSpace(cmd.ActorID),
		Action:       "DELETE",
		ResourceType: "content_item",
		ResourceID:   item.ContentID,
		ResourceName: item.Title,
	}
	if err := uc.Contents.DeleteContent(ctx, item.ContentID, audit); err != nil {
		return err
	}

	logger.Info("content deleted",
		"event", "content_deleted",
		"module", "content-management/content-service",
		"layer", "application",
		"content_id", item.ContentID,
	)
	return nil
}
