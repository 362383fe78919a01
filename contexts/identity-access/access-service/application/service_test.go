package application

import (
	"context"
	"errors"
	"testing"

	"vellum/contexts/identity-access/access-service/adapters/memory"
	"vellum/contexts/identity-access/access-service/domain/entities"
	domainerrors "vellum/contexts/identity-access/access-service/domain/errors"
	"vellum/contexts/identity-access/access-service/ports"
)

type captureRecorder struct {
	entries []ports.AuditEntry
}

func (r *captureRecorder) Record(_ context.Context, entry ports.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func newService(store *memory.Store, recorder ports.AuditRecorder) Service {
	return Service{Repo: store, Directory: store, Audit: recorder, Clock: store, IDGen: store}
}

func seedUsers() []entities.User {
	return []entities.User{
		{UserID: "admin-1", Email: "admin@vellum.local", DefaultRole: entities.RoleAdmin},
		{UserID: "editor-1", Email: "editor@vellum.local", DefaultRole: entities.RoleEditor},
		{UserID: "author-1", Email: "author@vellum.local"},
	}
}

func TestResolveRolePrefersExplicitAssignment(t *testing.T) {
	store := memory.NewStore(seedUsers())
	svc := newService(store, nil)

	if _, err := svc.AssignRole(context.Background(), "admin-1", entities.RoleAdmin, "editor-1", entities.RolePublisher); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	role, err := svc.ResolveRole(context.Background(), "editor-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if role != entities.RolePublisher {
		t.Fatalf("expected assignment to win over default, got %s", role)
	}
}

func TestResolveRoleFallsBackToDirectoryDefault(t *testing.T) {
	svc := newService(memory.NewStore(seedUsers()), nil)

	role, err := svc.ResolveRole(context.Background(), "editor-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if role != entities.RoleEditor {
		t.Fatalf("expected directory default Editor, got %s", role)
	}
}

func TestResolveRoleDefaultsToAuthor(t *testing.T) {
	svc := newService(memory.NewStore(seedUsers()), nil)

	role, err := svc.ResolveRole(context.Background(), "author-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if role != entities.RoleAuthor {
		t.Fatalf("expected Author fallback, got %s", role)
	}
}

func TestResolveRoleUnknownUser(t *testing.T) {
	svc := newService(memory.NewStore(seedUsers()), nil)

	if _, err := svc.ResolveRole(context.Background(), "ghost"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestCanEditAuthorOwnsItem(t *testing.T) {
	svc := newService(memory.NewStore(nil), nil)

	if !svc.CanEdit("author-1", "Author", "author-1") {
		t.Fatalf("author must edit own content")
	}
	if svc.CanEdit("author-1", "Author", "author-2") {
		t.Fatalf("author must not edit another author's content")
	}
	if !svc.CanEdit("someone", "Approver", "author-2") {
		t.Fatalf("approver must edit any content")
	}
}

func TestAssignRoleAdminOnly(t *testing.T) {
	svc := newService(memory.NewStore(seedUsers()), nil)

	for _, role := range []entities.Role{entities.RoleAuthor, entities.RoleEditor, entities.RoleApprover, entities.RolePublisher} {
		_, err := svc.AssignRole(context.Background(), "editor-1", role, "author-1", entities.RoleEditor)
		if !errors.Is(err, domainerrors.ErrForbidden) {
			t.Fatalf("role %s: expected forbidden, got %v", role, err)
		}
	}
}

func TestAssignRoleRejectsUnknownRole(t *testing.T) {
	svc := newService(memory.NewStore(seedUsers()), nil)

	_, err := svc.AssignRole(context.Background(), "admin-1", entities.RoleAdmin, "author-1", entities.Role("Overlord"))
	if !errors.Is(err, domainerrors.ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}
}

func TestAssignRoleRejectsUnknownUser(t *testing.T) {
	svc := newService(memory.NewStore(seedUsers()), nil)

	_, err := svc.AssignRole(context.Background(), "admin-1", entities.RoleAdmin, "ghost", entities.RoleEditor)
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestAssignRoleRecordsAudit(t *testing.T) {
	recorder := &captureRecorder{}
	svc := newService(memory.NewStore(seedUsers()), recorder)

	if _, err := svc.AssignRole(context.Background(), "admin-1", entities.RoleAdmin, "author-1", entities.RoleEditor); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if len(recorder.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(recorder.entries))
	}
	entry := recorder.entries[0]
	if entry.Action != "UPDATE" || entry.ResourceType != "user_role" || entry.ResourceID != "author-1" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
	if entry.Metadata["role"] != "Editor" {
		t.Fatalf("expected role metadata, got %+v", entry.Metadata)
	}
}

func TestAssignRoleUpsertKeepsOriginalAssignment(t *testing.T) {
	store := memory.NewStore(seedUsers())
	svc := newService(store, nil)

	first, err := svc.AssignRole(context.Background(), "admin-1", entities.RoleAdmin, "author-1", entities.RoleEditor)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	second, err := svc.AssignRole(context.Background(), "admin-1", entities.RoleAdmin, "author-1", entities.RolePublisher)
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	if second.AssignmentID != first.AssignmentID {
		t.Fatalf("reassignment must keep the assignment id")
	}
	if !second.AssignedAt.Equal(first.AssignedAt) {
		t.Fatalf("reassignment must keep the original assigned_at")
	}

	role, err := svc.ResolveRole(context.Background(), "author-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if role != entities.RolePublisher {
		t.Fatalf("expected Publisher after reassignment, got %s", role)
	}
}

func TestRemoveRoleRestoresDefault(t *testing.T) {
	svc := newService(memory.NewStore(seedUsers()), nil)

	if _, err := svc.AssignRole(context.Background(), "admin-1", entities.RoleAdmin, "editor-1", entities.RoleApprover); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := svc.RemoveRole(context.Background(), "admin-1", entities.RoleAdmin, "editor-1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	role, err := svc.ResolveRole(context.Background(), "editor-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if role != entities.RoleEditor {
		t.Fatalf("expected fallback to directory default, got %s", role)
	}
}

func TestRemoveRoleWithoutAssignment(t *testing.T) {
	svc := newService(memory.NewStore(seedUsers()), nil)

	if err := svc.RemoveRole(context.Background(), "admin-1", entities.RoleAdmin, "editor-1"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected user not found for bare removal, got %v", err)
	}
}

func TestListUsersIncludesAssignments(t *testing.T) {
	svc := newService(memory.NewStore(seedUsers()), nil)

	if _, err := svc.AssignRole(context.Background(), "admin-1", entities.RoleAdmin, "author-1", entities.RoleEditor); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	users, roles, err := svc.ListUsers(context.Background(), entities.RoleAdmin)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected three users, got %d", len(users))
	}
	if roles["author-1"] != entities.RoleEditor {
		t.Fatalf("expected author-1 assignment in role map, got %+v", roles)
	}

	if _, _, err := svc.ListUsers(context.Background(), entities.RolePublisher); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for publisher, got %v", err)
	}
}
