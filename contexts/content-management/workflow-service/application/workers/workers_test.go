package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"vellum/contexts/content-management/workflow-service/adapters/memory"
	"vellum/contexts/content-management/workflow-service/domain/entities"
	"vellum/contexts/content-management/workflow-service/ports"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []ports.EventEnvelope
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func TestScheduledPublisherPublishesDueContent(t *testing.T) {
	past := time.Now().UTC().Add(-time.Minute)
	store := memory.NewStore([]entities.ContentRef{
		{
			ContentID: "c-due",
			Title:     "Due item",
			Status:    entities.StatusApproved,
			AuthorID:  "author-1",
			PublishAt: &past,
		},
		{
			ContentID: "c-early",
			Title:     "Not yet",
			Status:    entities.StatusApproved,
			AuthorID:  "author-1",
			PublishAt: timePtr(time.Now().UTC().Add(time.Hour)),
		},
	}, nil)

	sweep := ScheduledPublisher{Repo: store, Scheduler: store, Clock: store, IDGen: store}
	if err := sweep.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	due, _, _ := store.GetContent(context.Background(), "c-due")
	if due.Status != entities.StatusPublished {
		t.Fatalf("expected due content published, got %s", due.Status)
	}
	early, _, _ := store.GetContent(context.Background(), "c-early")
	if early.Status != entities.StatusApproved {
		t.Fatalf("future-scheduled content must stay Approved, got %s", early.Status)
	}

	audits := store.AuditEntries()
	if len(audits) != 1 || audits[0].Action != "PUBLISH" || audits[0].UserID != "system" {
		t.Fatalf("expected one system PUBLISH audit, got %+v", audits)
	}
}

func TestScheduledPublisherUnpublishesExpiredContent(t *testing.T) {
	past := time.Now().UTC().Add(-time.Minute)
	store := memory.NewStore([]entities.ContentRef{
		{
			ContentID:   "c-expired",
			Title:       "Expired item",
			Status:      entities.StatusPublished,
			AuthorID:    "author-1",
			UnpublishAt: &past,
		},
	}, nil)

	sweep := ScheduledPublisher{Repo: store, Scheduler: store, Clock: store, IDGen: store}
	if err := sweep.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	expired, _, _ := store.GetContent(context.Background(), "c-expired")
	if expired.Status != entities.StatusUnpublished {
		t.Fatalf("expected expired content unpublished, got %s", expired.Status)
	}
	audits := store.AuditEntries()
	if len(audits) != 1 || audits[0].Action != "UNPUBLISH" {
		t.Fatalf("expected one UNPUBLISH audit, got %+v", audits)
	}
}

func TestOutboxRelayDrainsPendingEvents(t *testing.T) {
	past := time.Now().UTC().Add(-time.Minute)
	store := memory.NewStore([]entities.ContentRef{
		{
			ContentID: "c-due",
			Title:     "Due item",
			Status:    entities.StatusApproved,
			AuthorID:  "author-1",
			PublishAt: &past,
		},
	}, nil)

	sweep := ScheduledPublisher{Repo: store, Scheduler: store, Clock: store, IDGen: store}
	if err := sweep.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	publisher := &capturePublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	if publisher.events[0].EventType != "content.published" {
		t.Fatalf("expected content.published event, got %s", publisher.events[0].EventType)
	}

	// Second run must find nothing pending.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("outbox rows must publish exactly once, got %d", len(publisher.events))
	}
}

func timePtr(value time.Time) *time.Time {
	return &value
}
