package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"vellum/contexts/audit-trail/audit-service/adapters/memory"
	"vellum/contexts/audit-trail/audit-service/domain/entities"
	domainerrors "vellum/contexts/audit-trail/audit-service/domain/errors"
	"vellum/contexts/audit-trail/audit-service/ports"
)

func newService(store *memory.Store) Service {
	return Service{Repo: store, Clock: store, IDGen: store}
}

func seedEntries(t *testing.T, svc Service, inputs ...RecordInput) []entities.AuditLog {
	t.Helper()
	entries := make([]entities.AuditLog, 0, len(inputs))
	for _, input := range inputs {
		entry, err := svc.Record(context.Background(), input)
		if err != nil {
			t.Fatalf("seed record failed: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)

	entry, err := svc.Record(context.Background(), RecordInput{
		UserID:       "publisher-1",
		Action:       entities.ActionPublish,
		ResourceType: "content_item",
		ResourceID:   "c-1",
		ResourceName: "Launch notes",
		Metadata:     map[string]any{"from_status": "Approved"},
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if entry.LogID == "" {
		t.Fatalf("expected generated log id")
	}
	if entry.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}

	stored, err := svc.Get(context.Background(), "Admin", entry.LogID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Action != entities.ActionPublish || stored.ResourceID != "c-1" {
		t.Fatalf("stored entry mismatch: %+v", stored)
	}
}

func TestRecordRejectsUnsupportedAction(t *testing.T) {
	svc := newService(memory.NewStore())

	_, err := svc.Record(context.Background(), RecordInput{
		UserID:       "admin-1",
		Action:       entities.Action("SHRED"),
		ResourceType: "content_item",
		ResourceID:   "c-1",
	})
	if !errors.Is(err, domainerrors.ErrInvalidAction) {
		t.Fatalf("expected invalid action, got %v", err)
	}
}

func TestRecordRequiresResourceIdentity(t *testing.T) {
	svc := newService(memory.NewStore())

	_, err := svc.Record(context.Background(), RecordInput{
		UserID: "admin-1",
		Action: entities.ActionCreate,
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestListGatedToPublisherAndAdmin(t *testing.T) {
	svc := newService(memory.NewStore())
	seedEntries(t, svc, RecordInput{
		UserID: "author-1", Action: entities.ActionCreate,
		ResourceType: "content_item", ResourceID: "c-1",
	})

	for _, role := range []string{"Author", "Editor", "Approver"} {
		if _, _, err := svc.List(context.Background(), role, ports.LogFilter{}); !errors.Is(err, domainerrors.ErrForbidden) {
			t.Fatalf("role %s: expected forbidden, got %v", role, err)
		}
	}
	for _, role := range []string{"Publisher", "Admin"} {
		logs, total, err := svc.List(context.Background(), role, ports.LogFilter{})
		if err != nil {
			t.Fatalf("role %s: list failed: %v", role, err)
		}
		if total != 1 || len(logs) != 1 {
			t.Fatalf("role %s: expected one entry, got %d/%d", role, len(logs), total)
		}
	}
}

func TestListFiltersByActionAndResource(t *testing.T) {
	svc := newService(memory.NewStore())
	seedEntries(t, svc,
		RecordInput{UserID: "author-1", Action: entities.ActionCreate, ResourceType: "content_item", ResourceID: "c-1"},
		RecordInput{UserID: "publisher-1", Action: entities.ActionPublish, ResourceType: "content_item", ResourceID: "c-1"},
		RecordInput{UserID: "admin-1", Action: entities.ActionUpdate, ResourceType: "user_role", ResourceID: "author-1"},
	)

	logs, total, err := svc.List(context.Background(), "Admin", ports.LogFilter{Action: "PUBLISH"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || logs[0].UserID != "publisher-1" {
		t.Fatalf("expected single publish entry, got %+v", logs)
	}

	logs, total, err = svc.List(context.Background(), "Admin", ports.LogFilter{ResourceType: "user_role"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || logs[0].ResourceID != "author-1" {
		t.Fatalf("expected single role entry, got %+v", logs)
	}
}

func TestListRejectsUnknownActionFilter(t *testing.T) {
	svc := newService(memory.NewStore())

	_, _, err := svc.List(context.Background(), "Admin", ports.LogFilter{Action: "SHRED"})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestExportAdminOnly(t *testing.T) {
	svc := newService(memory.NewStore())

	if _, _, err := svc.Export(context.Background(), "Publisher", "json", ports.LogFilter{}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for publisher, got %v", err)
	}
}

func TestExportJSONIncludesCount(t *testing.T) {
	svc := newService(memory.NewStore())
	seedEntries(t, svc,
		RecordInput{UserID: "author-1", Action: entities.ActionCreate, ResourceType: "content_item", ResourceID: "c-1"},
		RecordInput{UserID: "author-1", Action: entities.ActionUpdate, ResourceType: "content_item", ResourceID: "c-1"},
	)

	contentType, payload, err := svc.Export(context.Background(), "Admin", "json", ports.LogFilter{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if contentType != "application/json" {
		t.Fatalf("expected json content type, got %s", contentType)
	}
	var body struct {
		Count int               `json:"count"`
		Data  []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		t.Fatalf("export payload not json: %v", err)
	}
	if body.Count != 2 || len(body.Data) != 2 {
		t.Fatalf("expected two exported entries, got count=%d data=%d", body.Count, len(body.Data))
	}
}

func TestExportCSVRendersHeaderAndRows(t *testing.T) {
	svc := newService(memory.NewStore())
	seedEntries(t, svc, RecordInput{
		UserID: "publisher-1", Action: entities.ActionUnpublish,
		ResourceType: "content_item", ResourceID: "c-9", ResourceName: "Old promo",
	})

	contentType, payload, err := svc.Export(context.Background(), "Admin", "csv", ports.LogFilter{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if contentType != "text/csv" {
		t.Fatalf("expected csv content type, got %s", contentType)
	}
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,user_id,action") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "UNPUBLISH") || !strings.Contains(lines[1], "Old promo") {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newService(memory.NewStore())

	if _, _, err := svc.Export(context.Background(), "Admin", "xml", ports.LogFilter{}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestStatsCountsPerAction(t *testing.T) {
	svc := newService(memory.NewStore())
	seedEntries(t, svc,
		RecordInput{UserID: "author-1", Action: entities.ActionCreate, ResourceType: "content_item", ResourceID: "c-1"},
		RecordInput{UserID: "author-1", Action: entities.ActionUpdate, ResourceType: "content_item", ResourceID: "c-1"},
		RecordInput{UserID: "author-1", Action: entities.ActionUpdate, ResourceType: "content_item", ResourceID: "c-1"},
	)

	total, counts, err := svc.Stats(context.Background(), "Admin", nil, nil)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if counts["UPDATE"] != 2 || counts["CREATE"] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestStatsRespectsWindow(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	seedEntries(t, svc, RecordInput{
		UserID: "author-1", Action: entities.ActionCreate,
		ResourceType: "content_item", ResourceID: "c-1",
	})

	past := time.Now().UTC().Add(-time.Hour)
	total, _, err := svc.Stats(context.Background(), "Admin", nil, &past)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no entries before window end, got %d", total)
	}
}
