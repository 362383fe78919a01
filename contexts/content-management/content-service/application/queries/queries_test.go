package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"vellum/contexts/content-management/content-service/adapters/memory"
	"vellum/contexts/content-management/content-service/domain/entities"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
	"vellum/contexts/content-management/content-service/ports"
)

func seedItem(id, slug string, status entities.ContentStatus, createdAt time.Time) entities.ContentItem {
	return entities.ContentItem{
		ContentID:     id,
		ContentTypeID: "type-1",
		Title:         "Item " + id,
		Slug:          slug,
		Status:        status,
		AuthorID:      "user-1",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestListContentFiltersByStatus(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.ContentItem{
		seedItem("c-1", "one", entities.StatusDraft, base),
		seedItem("c-2", "two", entities.StatusPublished, base.Add(time.Hour)),
		seedItem("c-3", "three", entities.StatusPublished, base.Add(2*time.Hour)),
	}, nil)

	uc := ListContentUseCase{Contents: store}
	result, err := uc.Execute(context.Background(), ListContentQuery{Status: "Published"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 || len(result.Items) != 2 {
		t.Fatalf("expected 2 published items, got total=%d len=%d", result.Total, len(result.Items))
	}
	if result.Items[0].ContentID != "c-3" {
		t.Fatalf("expected newest first, got %s", result.Items[0].ContentID)
	}
}

func TestListContentRejectsUnknownStatus(t *testing.T) {
	store := memory.NewStore(nil, nil)
	uc := ListContentUseCase{Contents: store}
	_, err := uc.Execute(context.Background(), ListContentQuery{Status: "Archived"})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestListContentCapsLimit(t *testing.T) {
	store := memory.NewStore(nil, nil)
	uc := ListContentUseCase{Contents: store}
	result, err := uc.Execute(context.Background(), ListContentQuery{Limit: 500})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", result.Limit)
	}
}

func TestListVersionsNewestFirst(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.ContentItem{
		seedItem("c-1", "one", entities.StatusDraft, base),
	}, nil)

	item, _, _ := store.GetContent(context.Background(), "c-1")
	for i := 0; i < 3; i++ {
		snapshot := entities.SnapshotOf(item, "user-1", base.Add(time.Duration(i)*time.Minute))
		id, _ := store.NewID(context.Background())
		snapshot.VersionID = id
		if err := store.UpdateContent(context.Background(), item, snapshot, ports.AuditEntry{Action: "UPDATE"}); err != nil {
			t.Fatalf("seed update failed: %v", err)
		}
	}

	uc := ListVersionsUseCase{Contents: store, Versions: store}
	result, err := uc.Execute(context.Background(), ListVersionsQuery{ContentID: "c-1"})
	if err != nil {
		t.Fatalf("list versions failed: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("expected 3 versions, got %d", result.Total)
	}
	if result.Versions[0].VersionNumber != 3 || result.Versions[2].VersionNumber != 1 {
		t.Fatalf("expected descending version numbers, got %d..%d", result.Versions[0].VersionNumber, result.Versions[2].VersionNumber)
	}
}

func TestListVersionsUnknownContent(t *testing.T) {
	store := memory.NewStore(nil, nil)
	uc := ListVersionsUseCase{Contents: store, Versions: store}
	_, err := uc.Execute(context.Background(), ListVersionsQuery{ContentID: "missing"})
	if !errors.Is(err, domainerrors.ErrContentNotFound) {
		t.Fatalf("expected content not found, got %v", err)
	}
}

func TestCompareVersionsReportsChangedFields(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.ContentItem{
		seedItem("c-1", "one", entities.StatusDraft, base),
	}, nil)

	item, _, _ := store.GetContent(context.Background(), "c-1")
	first := entities.SnapshotOf(item, "user-1", base)
	first.VersionID = "v-1"
	if err := store.UpdateContent(context.Background(), item, first, ports.AuditEntry{Action: "UPDATE"}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	item.Title = "Changed title"
	item.PageData = &entities.PageData{Blocks: []entities.Block{{ID: "b1", Type: "text", Data: map[string]any{"body": "hello"}}}}
	second := entities.SnapshotOf(item, "user-1", base.Add(time.Minute))
	second.VersionID = "v-2"
	if err := store.UpdateContent(context.Background(), item, second, ports.AuditEntry{Action: "UPDATE"}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	uc := CompareVersionsUseCase{Versions: store}
	result, err := uc.Execute(context.Background(), CompareVersionsQuery{VersionID1: "v-1", VersionID2: "v-2"})
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !result.Differences.Title {
		t.Fatalf("expected title flagged as changed")
	}
	if !result.Differences.PageData {
		t.Fatalf("expected page_data flagged as changed")
	}
	if result.Differences.Slug || result.Differences.Excerpt {
		t.Fatalf("unchanged fields must not be flagged: %+v", result.Differences)
	}
}

func TestCompareVersionsMissingVersion(t *testing.T) {
	store := memory.NewStore(nil, nil)
	uc := CompareVersionsUseCase{Versions: store}
	_, err := uc.Execute(context.Background(), CompareVersionsQuery{VersionID1: "v-x", VersionID2: "v-y"})
	if !errors.Is(err, domainerrors.ErrVersionNotFound) {
		t.Fatalf("expected version not found, got %v", err)
	}
}

func TestCompareVersionsOrderIndependent(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.ContentItem{
		seedItem("c-1", "one", entities.StatusDraft, base),
	}, nil)

	item, _, _ := store.GetContent(context.Background(), "c-1")
	first := entities.SnapshotOf(item, "user-1", base)
	first.VersionID = "v-1"
	if err := store.UpdateContent(context.Background(), item, first, ports.AuditEntry{Action: "UPDATE"}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	item.Title = "Changed title"
	item.Excerpt = "fresh excerpt"
	second := entities.SnapshotOf(item, "user-1", base.Add(time.Minute))
	second.VersionID = "v-2"
	if err := store.UpdateContent(context.Background(), item, second, ports.AuditEntry{Action: "UPDATE"}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	uc := CompareVersionsUseCase{Versions: store}
	forward, err := uc.Execute(context.Background(), CompareVersionsQuery{VersionID1: "v-1", VersionID2: "v-2"})
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	reversed, err := uc.Execute(context.Background(), CompareVersionsQuery{VersionID1: "v-2", VersionID2: "v-1"})
	if err != nil {
		t.Fatalf("reversed compare failed: %v", err)
	}
	if forward.Differences != reversed.Differences {
		t.Fatalf("differences must not depend on argument order: %+v vs %+v", forward.Differences, reversed.Differences)
	}
	if !forward.Differences.Title || !forward.Differences.Excerpt {
		t.Fatalf("expected title and excerpt flagged: %+v", forward.Differences)
	}
}
