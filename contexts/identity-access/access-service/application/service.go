package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vellum/contexts/identity-access/access-service/domain/entities"
	domainerrors "vellum/contexts/identity-access/access-service/domain/errors"
	"vellum/contexts/identity-access/access-service/domain/services"
	"vellum/contexts/identity-access/access-service/ports"
)

type Service struct {
	Repo      ports.Repository
	Directory ports.Directory
	Audit     ports.AuditRecorder
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// ResolveRole maps a principal id to its single effective role. Explicit
// assignment wins, then the directory default, then Author. Callers resolve
// once per request and carry the value with the actor.
func (s Service) ResolveRole(ctx context.Context, userID string) (entities.Role, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domainerrors.ErrInvalidRequest
	}

	user, err := s.Directory.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}

	assignment, found, err := s.Repo.GetAssignment(ctx, userID)
	if err != nil {
		return "", err
	}
	if found && entities.IsSupportedRole(assignment.Role) {
		return assignment.Role, nil
	}
	if entities.IsSupportedRole(user.DefaultRole) {
		return user.DefaultRole, nil
	}
	return entities.RoleAuthor, nil
}

// CanEdit is the edit-permission oracle exposed to the content and workflow
// services.
func (s Service) CanEdit(userID string, role string, authorID string) bool {
	return services.CanEditContent(userID, entities.Role(role), authorID)
}

func (s Service) ListUsers(ctx context.Context, actorRole entities.Role) ([]entities.User, map[string]entities.Role, error) {
	if !services.Allowed(actorRole, entities.RoleAdmin) {
		return nil, nil, domainerrors.ErrForbidden
	}

	users, err := s.Directory.ListUsers(ctx)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := s.Repo.ListAssignments(ctx)
	if err != nil {
		return nil, nil, err
	}
	roles := make(map[string]entities.Role, len(assignments))
	for _, assignment := range assignments {
		roles[assignment.UserID] = assignment.Role
	}
	return users, roles, nil
}

func (s Service) GetUser(ctx context.Context, actorRole entities.Role, userID string) (entities.User, entities.Role, error) {
	if !services.Allowed(actorRole, entities.RoleAdmin) {
		return entities.User{}, "", domainerrors.ErrForbidden
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.User{}, "", domainerrors.ErrInvalidRequest
	}

	user, err := s.Directory.GetUser(ctx, userID)
	if err != nil {
		return entities.User{}, "", err
	}
	role, err := s.ResolveRole(ctx, userID)
	if err != nil {
		return entities.User{}, "", err
	}
	return user, role, nil
}

// AssignRole upserts the single role row for a user. Admin only.
func (s Service) AssignRole(ctx context.Context, actorID string, actorRole entities.Role, userID string, role entities.Role) (entities.RoleAssignment, error) {
	if !services.Allowed(actorRole, entities.RoleAdmin) {
		return entities.RoleAssignment{}, domainerrors.ErrForbidden
	}
	actorID = strings.TrimSpace(actorID)
	userID = strings.TrimSpace(userID)
	if actorID == "" || userID == "" {
		return entities.RoleAssignment{}, domainerrors.ErrInvalidRequest
	}
	if !entities.IsSupportedRole(role) {
		return entities.RoleAssignment{}, domainerrors.ErrInvalidRole
	}

	user, err := s.Directory.GetUser(ctx, userID)
	if err != nil {
		return entities.RoleAssignment{}, err
	}

	now := s.now()
	assignmentID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.RoleAssignment{}, err
	}
	assignment := entities.RoleAssignment{
		AssignmentID: assignmentID,
		UserID:       userID,
		Role:         role,
		AssignedBy:   actorID,
		AssignedAt:   now,
		UpdatedAt:    now,
	}
	if existing, found, err := s.Repo.GetAssignment(ctx, userID); err != nil {
		return entities.RoleAssignment{}, err
	} else if found {
		assignment.AssignmentID = existing.AssignmentID
		assignment.AssignedAt = existing.AssignedAt
	}

	if err := s.Repo.UpsertAssignment(ctx, assignment); err != nil {
		return entities.RoleAssignment{}, err
	}

	if s.Audit != nil {
		if err := s.Audit.Record(ctx, ports.AuditEntry{
			UserID:       actorID,
			Action:       "UPDATE",
			ResourceType: "user_role",
			ResourceID:   userID,
			ResourceName: user.Email,
			Metadata:     map[string]any{"role": string(role)},
		}); err != nil {
			return entities.RoleAssignment{}, err
		}
	}

	resolveLogger(s.Logger).Info("role assigned",
		"event", "access_role_assigned",
		"module", "identity-access/access-service",
		"layer", "application",
		"user_id", userID,
		"role", string(role),
		"assigned_by", actorID,
	)
	return assignment, nil
}

// RemoveRole deletes the explicit role row; the user falls back to the
// directory default. Admin only.
func (s Service) RemoveRole(ctx context.Context, actorID string, actorRole entities.Role, userID string) error {
	if !services.Allowed(actorRole, entities.RoleAdmin) {
		return domainerrors.ErrForbidden
	}
	userID = strings.TrimSpace(userID)
	if strings.TrimSpace(actorID) == "" || userID == "" {
		return domainerrors.ErrInvalidRequest
	}

	if _, found, err := s.Repo.GetAssignment(ctx, userID); err != nil {
		return err
	} else if !found {
		return domainerrors.ErrUserNotFound
	}
	if err := s.Repo.DeleteAssignment(ctx, userID); err != nil {
		return err
	}

	resolveLogger(s.Logger).Info("role removed",
		"event", "access_role_removed",
		"module", "identity-access/access-service",
		"layer", "application",
		"user_id", userID,
		"removed_by", actorID,
	)
	return nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
