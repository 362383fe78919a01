package commands

import (
	"context"
	"errors"
	"testing"

	"vellum/contexts/content-management/content-service/adapters/memory"
	"vellum/contexts/content-management/content-service/domain/entities"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
)

type stubGate struct{}

func (stubGate) CanEdit(userID, role, authorID string) bool {
	if userID != "" && userID == authorID {
		return true
	}
	switch role {
	case "Editor", "Approver", "Publisher", "Admin":
		return true
	default:
		return false
	}
}

func newCreateUseCase(store *memory.Store) CreateContentUseCase {
	return CreateContentUseCase{Contents: store, Clock: store, IDGen: store}
}

func TestCreateContentStartsInDraft(t *testing.T) {
	store := memory.NewStore(nil, nil)
	uc := newCreateUseCase(store)

	item, err := uc.Execute(context.Background(), CreateContentCommand{
		ActorID:       "user-1",
		ActorRole:     "Author",
		ContentTypeID: "type-1",
		Title:         "Launch notes",
		Slug:          "launch-notes",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.Status != entities.StatusDraft {
		t.Fatalf("expected Draft status, got %s", item.Status)
	}
	if item.AuthorID != "user-1" {
		t.Fatalf("expected author user-1, got %s", item.AuthorID)
	}
	audits := store.AuditEntries()
	if len(audits) != 1 || audits[0].Action != "CREATE" {
		t.Fatalf("expected one CREATE audit entry, got %+v", audits)
	}
}

func TestCreateContentRejectsApprover(t *testing.T) {
	store := memory.NewStore(nil, nil)
	uc := newCreateUseCase(store)

	_, err := uc.Execute(context.Background(), CreateContentCommand{
		ActorID:       "user-2",
		ActorRole:     "Approver",
		ContentTypeID: "type-1",
		Title:         "Draft",
		Slug:          "draft",
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(store.AuditEntries()) != 0 {
		t.Fatalf("denied create must not audit")
	}
}

func TestCreateContentValidatesSlug(t *testing.T) {
	store := memory.NewStore(nil, nil)
	uc := newCreateUseCase(store)

	_, err := uc.Execute(context.Background(), CreateContentCommand{
		ActorID:       "user-1",
		ActorRole:     "Author",
		ContentTypeID: "type-1",
		Title:         "Bad slug",
		Slug:          "Bad Slug!",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestUpdateContentSnapshotsPreviousState(t *testing.T) {
	store := memory.NewStore(nil, nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateContentCommand{
		ActorID:       "user-1",
		ActorRole:     "Author",
		ContentTypeID: "type-1",
		Title:         "Original title",
		Slug:          "original",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	update := UpdateContentUseCase{Contents: store, Gate: stubGate{}, Clock: store, IDGen: store}
	newTitle := "Revised title"
	item, err := update.Execute(context.Background(), UpdateContentCommand{
		ContentID: created.ContentID,
		ActorID:   "user-1",
		ActorRole: "Author",
		Title:     &newTitle,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if item.Title != "Revised title" {
		t.Fatalf("expected updated title, got %q", item.Title)
	}

	version, found, err := store.GetVersionByNumber(context.Background(), created.ContentID, 1)
	if err != nil || !found {
		t.Fatalf("expected version 1, found=%v err=%v", found, err)
	}
	if version.Title != "Original title" {
		t.Fatalf("snapshot must hold the pre-update title, got %q", version.Title)
	}
}

func TestUpdateContentRequiresEditPermission(t *testing.T) {
	store := memory.NewStore(nil, nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateContentCommand{
		ActorID:       "user-1",
		ActorRole:     "Author",
		ContentTypeID: "type-1",
		Title:         "Owned",
		Slug:          "owned",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	update := UpdateContentUseCase{Contents: store, Gate: stubGate{}, Clock: store, IDGen: store}
	otherTitle := "Hijacked"
	_, err = update.Execute(context.Background(), UpdateContentCommand{
		ContentID: created.ContentID,
		ActorID:   "user-9",
		ActorRole: "Author",
		Title:     &otherTitle,
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	current, _, _ := store.GetContent(context.Background(), created.ContentID)
	if current.Title != "Owned" {
		t.Fatalf("denied update must not mutate, got %q", current.Title)
	}
}

func TestDeleteContentAdminOnly(t *testing.T) {
	store := memory.NewStore(nil, nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateContentCommand{
		ActorID:       "user-1",
		ActorRole:     "Author",
		ContentTypeID: "type-1",
		Title:         "Disposable",
		Slug:          "disposable",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	del := DeleteContentUseCase{Contents: store}
	if err := del.Execute(context.Background(), DeleteContentCommand{
		ContentID: created.ContentID,
		ActorID:   "user-2",
		ActorRole: "Publisher",
	}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for publisher, got %v", err)
	}

	if err := del.Execute(context.Background(), DeleteContentCommand{
		ContentID: created.ContentID,
		ActorID:   "admin-1",
		ActorRole: "Admin",
	}); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, found, _ := store.GetContent(context.Background(), created.ContentID); found {
		t.Fatalf("content should be gone after delete")
	}
}

func TestRollbackRestoresFieldsWithoutTouchingStatus(t *testing.T) {
	store := memory.NewStore(nil, nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateContentCommand{
		ActorID:       "user-1",
		ActorRole:     "Author",
		ContentTypeID: "type-1",
		Title:         "First",
		Slug:          "first",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	update := UpdateContentUseCase{Contents: store, Gate: stubGate{}, Clock: store, IDGen: store}
	second := "Second"
	if _, err := update.Execute(context.Background(), UpdateContentCommand{
		ContentID: created.ContentID,
		ActorID:   "user-1",
		ActorRole: "Author",
		Title:     &second,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rollback := RollbackVersionUseCase{
		Contents: store,
		Versions: store,
		Gate:     stubGate{},
		Clock:    store,
		IDGen:    store,
	}
	item, err := rollback.Execute(context.Background(), RollbackVersionCommand{
		ContentID:     created.ContentID,
		VersionNumber: 1,
		ActorID:       "user-1",
		ActorRole:     "Author",
	})
	if err != nil {
		t.Fatalf("rollback failed: %v", err)
	}
	if item.Title != "First" {
		t.Fatalf("expected title restored to First, got %q", item.Title)
	}
	if item.Status != entities.StatusDraft {
		t.Fatalf("rollback must not change status, got %s", item.Status)
	}

	audits := store.AuditEntries()
	last := audits[len(audits)-1]
	if last.Action != "UPDATE" {
		t.Fatalf("expected rollback audited as UPDATE, got %s", last.Action)
	}
	if last.Metadata["action"] != "rollback" {
		t.Fatalf("expected rollback metadata, got %+v", last.Metadata)
	}
	if last.Metadata["rolled_back_to_version"] != 1 {
		t.Fatalf("expected rolled_back_to_version=1, got %+v", last.Metadata)
	}
}

func TestRollbackUnknownVersion(t *testing.T) {
	store := memory.NewStore(nil, nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateContentCommand{
		ActorID:       "user-1",
		ActorRole:     "Author",
		ContentTypeID: "type-1",
		Title:         "Solo",
		Slug:          "solo",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rollback := RollbackVersionUseCase{
		Contents: store,
		Versions: store,
		Gate:     stubGate{},
		Clock:    store,
		IDGen:    store,
	}
	_, err = rollback.Execute(context.Background(), RollbackVersionCommand{
		ContentID:     created.ContentID,
		VersionNumber: 7,
		ActorID:       "user-1",
		ActorRole:     "Author",
	})
	if !errors.Is(err, domainerrors.ErrVersionNotFound) {
		t.Fatalf("expected version not found, got %v", err)
	}
}

func TestRollbackRepeatedToSameVersion(t *testing.T) {
	store := memory.NewStore(nil, nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateContentCommand{
		ActorID:       "user-1",
		ActorRole:     "Author",
		ContentTypeID: "type-1",
		Title:         "Original",
		Slug:          "original",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	update := UpdateContentUseCase{Contents: store, Gate: stubGate{}, Clock: store, IDGen: store}
	revised := "Revised"
	if _, err := update.Execute(context.Background(), UpdateContentCommand{
		ContentID: created.ContentID,
		ActorID:   "user-1",
		ActorRole: "Author",
		Title:     &revised,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rollback := RollbackVersionUseCase{
		Contents: store,
		Versions: store,
		Gate:     stubGate{},
		Clock:    store,
		IDGen:    store,
	}
	first, err := rollback.Execute(context.Background(), RollbackVersionCommand{
		ContentID:     created.ContentID,
		VersionNumber: 1,
		ActorID:       "user-1",
		ActorRole:     "Author",
	})
	if err != nil {
		t.Fatalf("first rollback failed: %v", err)
	}
	second, err := rollback.Execute(context.Background(), RollbackVersionCommand{
		ContentID:     created.ContentID,
		VersionNumber: 1,
		ActorID:       "user-1",
		ActorRole:     "Author",
	})
	if err != nil {
		t.Fatalf("second rollback failed: %v", err)
	}

	if second.Title != "Original" || second.Title != first.Title {
		t.Fatalf("repeated rollback must land on the same title, got %q then %q", first.Title, second.Title)
	}
	if second.Slug != first.Slug {
		t.Fatalf("repeated rollback must land on the same slug, got %q then %q", first.Slug, second.Slug)
	}
	if second.Status != first.Status {
		t.Fatalf("repeated rollback must not move status, got %s then %s", first.Status, second.Status)
	}

	audits := store.AuditEntries()
	last := audits[len(audits)-1]
	if last.Metadata["rolled_back_to_version"] != 1 {
		t.Fatalf("expected second rollback audited against version 1, got %+v", last.Metadata)
	}
}
