package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"vellum/contexts/content-management/workflow-service/domain/entities"
	domainerrors "vellum/contexts/content-management/workflow-service/domain/errors"
	"vellum/contexts/content-management/workflow-service/ports"

	"github.com/google/uuid"
)

// AuditSink receives the audit entry of a committed transition. In-process
// wiring points this at the audit-trail module.
type AuditSink interface {
	Record(ctx context.Context, entry ports.AuditEntry) error
}

type Store struct {
	mu sync.RWMutex

	contents  map[string]entities.ContentRef
	instances map[string]entities.WorkflowInstance
	steps     map[string]entities.WorkflowStep
	approvals map[string]entities.WorkflowApproval

	outbox    []ports.OutboxMessage
	published map[string]time.Time

	audit    AuditSink
	auditLog []ports.AuditEntry
}

func NewStore(seed []entities.ContentRef, audit AuditSink) *Store {
	contents := make(map[string]entities.ContentRef, len(seed))
	for _, item := range seed {
		contents[item.ContentID] = item
	}
	return &Store{
		contents:  contents,
		instances: make(map[string]entities.WorkflowInstance),
		steps:     make(map[string]entities.WorkflowStep),
		approvals: make(map[string]entities.WorkflowApproval),
		published: make(map[string]time.Time),
		audit:     audit,
	}
}

func (s *Store) GetContent(_ context.Context, contentID string) (entities.ContentRef, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.contents[strings.TrimSpace(contentID)]
	return item, exists, nil
}

func (s *Store) GetInstance(_ context.Context, instanceID string) (entities.WorkflowInstance, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instance, exists := s.instances[strings.TrimSpace(instanceID)]
	return instance, exists, nil
}

func (s *Store) FindActiveInstance(_ context.Context, contentID string) (entities.WorkflowInstance, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, instance := range s.instances {
		if instance.ContentID == contentID && instance.Status == entities.WorkflowActive {
			return instance, true, nil
		}
	}
	return entities.WorkflowInstance{}, false, nil
}

func (s *Store) ListSteps(_ context.Context, instanceID string) ([]entities.WorkflowStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	steps := make([]entities.WorkflowStep, 0)
	for _, step := range s.steps {
		if step.InstanceID == instanceID {
			steps = append(steps, step)
		}
	}
	sort.Slice(steps, func(i, j int) bool {
		return steps[i].CreatedAt.Before(steps[j].CreatedAt)
	})
	return steps, nil
}

// ApplyTransition commits the full effect set under one lock, mirroring the
// transactional guarantee of the SQL adapter.
func (s *Store) ApplyTransition(ctx context.Context, effects ports.TransitionEffects) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if effects.Content != nil {
		item, exists := s.contents[effects.Content.ContentID]
		if !exists {
			return domainerrors.ErrContentNotFound
		}
		item.Status = effects.Content.Status
		item.PublishAt = effects.Content.PublishAt
		item.UnpublishAt = effects.Content.UnpublishAt
		item.UpdatedAt = effects.Content.UpdatedAt
		s.contents[item.ContentID] = item
	}
	if effects.Instance != nil {
		s.instances[effects.Instance.InstanceID] = *effects.Instance
	}
	if effects.Step != nil {
		s.steps[effects.Step.StepID] = *effects.Step
	}
	if effects.Approval != nil {
		s.approvals[effects.Approval.ApprovalID] = *effects.Approval
	}
	if effects.Event != nil {
		payload, err := json.Marshal(effects.Event)
		if err != nil {
			return err
		}
		s.outbox = append(s.outbox, ports.OutboxMessage{
			OutboxID:     effects.Event.EventID,
			EventType:    effects.Event.EventType,
			PartitionKey: effects.Event.PartitionKey,
			Payload:      payload,
			CreatedAt:    effects.Event.OccurredAt.UTC(),
		})
	}

	s.auditLog = append(s.auditLog, effects.Audit)
	if s.audit != nil {
		return s.audit.Record(ctx, effects.Audit)
	}
	return nil
}

func (s *Store) ListDueForPublish(_ context.Context, now time.Time, limit int) ([]entities.ContentRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	due := make([]entities.ContentRef, 0)
	for _, item := range s.contents {
		if item.Status != entities.StatusApproved || item.PublishAt == nil {
			continue
		}
		if item.PublishAt.After(now) {
			continue
		}
		due = append(due, item)
		if limit > 0 && len(due) >= limit {
			break
		}
	}
	return due, nil
}

func (s *Store) ListDueForUnpublish(_ context.Context, now time.Time, limit int) ([]entities.ContentRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	due := make([]entities.ContentRef, 0)
	for _, item := range s.contents {
		if item.Status != entities.StatusPublished || item.UnpublishAt == nil {
			continue
		}
		if item.UnpublishAt.After(now) {
			continue
		}
		due = append(due, item)
		if limit > 0 && len(due) >= limit {
			break
		}
	}
	return due, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if _, done := s.published[row.OutboxID]; done {
			continue
		}
		pending = append(pending, row)
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.published[outboxID] = publishedAt.UTC()
	return nil
}

// SeedContent inserts or replaces a content row. Test helper.
func (s *Store) SeedContent(item entities.ContentRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contents[item.ContentID] = item
}

// AuditEntries exposes the recorded audit entries for tests.
func (s *Store) AuditEntries() []ports.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ports.AuditEntry(nil), s.auditLog...)
}

// Approvals exposes the recorded approvals for tests.
func (s *Store) Approvals() []entities.WorkflowApproval {
	s.mu.RLock()
	defer s.mu.RUnlock()

	approvals := make([]entities.WorkflowApproval, 0, len(s.approvals))
	for _, approval := range s.approvals {
		approvals = append(approvals, approval)
	}
	return approvals
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
