package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vellum/contexts/identity-access/access-service/application"
	"vellum/contexts/identity-access/access-service/domain/entities"
	httptransport "vellum/contexts/identity-access/access-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListUsersHandler(ctx context.Context, actorRole string) (httptransport.ListUsersResponse, error) {
	users, roles, err := h.Service.ListUsers(ctx, entities.Role(actorRole))
	if err != nil {
		return httptransport.ListUsersResponse{}, err
	}

	resp := httptransport.ListUsersResponse{Users: make([]httptransport.UserSummary, 0, len(users))}
	for _, user := range users {
		resp.Users = append(resp.Users, mapUserSummary(user, roles[user.UserID]))
	}
	return resp, nil
}

func (h Handler) GetUserHandler(ctx context.Context, actorRole string, userID string) (httptransport.UserSummary, error) {
	user, role, err := h.Service.GetUser(ctx, entities.Role(actorRole), strings.TrimSpace(userID))
	if err != nil {
		return httptransport.UserSummary{}, err
	}
	return mapUserSummary(user, role), nil
}

func (h Handler) AssignRoleHandler(ctx context.Context, actorID string, actorRole string, userID string, req httptransport.AssignRoleRequest) (httptransport.AssignRoleResponse, error) {
	assignment, err := h.Service.AssignRole(ctx, actorID, entities.Role(actorRole), userID, entities.Role(strings.TrimSpace(req.Role)))
	if err != nil {
		return httptransport.AssignRoleResponse{}, err
	}
	return httptransport.AssignRoleResponse{
		Message: "Role assigned successfully",
		UserID:  assignment.UserID,
		Role:    string(assignment.Role),
	}, nil
}

func (h Handler) RemoveRoleHandler(ctx context.Context, actorID string, actorRole string, userID string) error {
	return h.Service.RemoveRole(ctx, actorID, entities.Role(actorRole), userID)
}

func mapUserSummary(user entities.User, role entities.Role) httptransport.UserSummary {
	summary := httptransport.UserSummary{
		ID:        user.UserID,
		Email:     user.Email,
		Role:      string(role),
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
	if user.LastSignInAt != nil {
		summary.LastSignInAt = user.LastSignInAt.UTC().Format(time.RFC3339)
	}
	return summary
}
