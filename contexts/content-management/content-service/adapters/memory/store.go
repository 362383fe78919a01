package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"vellum/contexts/content-management/content-service/domain/entities"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
	"vellum/contexts/content-management/content-service/ports"

	"github.com/google/uuid"
)

// AuditSink receives the audit entry of a committed mutation. In-process
// wiring points this at the audit-trail module.
type AuditSink interface {
	Record(ctx context.Context, entry ports.AuditEntry) error
}

type Store struct {
	mu sync.RWMutex

	contents map[string]entities.ContentItem
	versions map[string]entities.ContentVersion

	audit    AuditSink
	auditLog []ports.AuditEntry
}

func NewStore(seed []entities.ContentItem, audit AuditSink) *Store {
	contents := make(map[string]entities.ContentItem, len(seed))
	for _, item := range seed {
		contents[item.ContentID] = item
	}
	return &Store{
		contents: contents,
		versions: make(map[string]entities.ContentVersion),
		audit:    audit,
	}
}

func (s *Store) CreateContent(ctx context.Context, item entities.ContentItem, audit ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contents[item.ContentID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	for _, existing := range s.contents {
		if existing.Slug == item.Slug {
			return domainerrors.ErrSlugConflict
		}
	}
	s.contents[item.ContentID] = item
	return s.record(ctx, audit)
}

func (s *Store) UpdateContent(ctx context.Context, item entities.ContentItem, snapshot entities.ContentVersion, audit ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contents[item.ContentID]; !exists {
		return domainerrors.ErrContentNotFound
	}
	for _, existing := range s.contents {
		if existing.ContentID != item.ContentID && existing.Slug == item.Slug {
			return domainerrors.ErrSlugConflict
		}
	}
	snapshot.VersionNumber = s.nextVersionNumber(item.ContentID)
	s.versions[snapshot.VersionID] = snapshot
	s.contents[item.ContentID] = item
	return s.record(ctx, audit)
}

func (s *Store) DeleteContent(ctx context.Context, contentID string, audit ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contents[contentID]; !exists {
		return domainerrors.ErrContentNotFound
	}
	delete(s.contents, contentID)
	for id, version := range s.versions {
		if version.ContentID == contentID {
			delete(s.versions, id)
		}
	}
	return s.record(ctx, audit)
}

func (s *Store) GetContent(_ context.Context, contentID string) (entities.ContentItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.contents[strings.TrimSpace(contentID)]
	return item, exists, nil
}

func (s *Store) ListContent(_ context.Context, filter ports.ContentFilter) ([]entities.ContentItem, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.ContentItem, 0, len(s.contents))
	for _, item := range s.contents {
		if filter.Status != "" && string(item.Status) != filter.Status {
			continue
		}
		if filter.ContentTypeID != "" && item.ContentTypeID != filter.ContentTypeID {
			continue
		}
		if filter.AuthorID != "" && item.AuthorID != filter.AuthorID {
			continue
		}
		if filter.DepartmentID != "" && item.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.Search != "" && !matchesSearch(item, filter.Search) {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	matched = paginateContent(matched, filter.Offset, filter.Limit)
	return matched, total, nil
}

func (s *Store) GetVersion(_ context.Context, versionID string) (entities.ContentVersion, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, exists := s.versions[strings.TrimSpace(versionID)]
	return version, exists, nil
}

func (s *Store) GetVersionByNumber(_ context.Context, contentID string, number int) (entities.ContentVersion, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, version := range s.versions {
		if version.ContentID == contentID && version.VersionNumber == number {
			return version, true, nil
		}
	}
	return entities.ContentVersion{}, false, nil
}

func (s *Store) ListVersions(_ context.Context, contentID string, filter ports.VersionFilter) ([]entities.ContentVersion, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.ContentVersion, 0)
	for _, version := range s.versions {
		if version.ContentID == contentID {
			matched = append(matched, version)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].VersionNumber > matched[j].VersionNumber
	})
	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (s *Store) RollbackContent(ctx context.Context, item entities.ContentItem, snapshot entities.ContentVersion, audit ports.AuditEntry) error {
	return s.UpdateContent(ctx, item, snapshot, audit)
}

// AuditEntries exposes the recorded audit entries for tests.
func (s *Store) AuditEntries() []ports.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ports.AuditEntry(nil), s.auditLog...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// record must be called with the write lock held.
func (s *Store) record(ctx context.Context, entry ports.AuditEntry) error {
	s.auditLog = append(s.auditLog, entry)
	if s.audit == nil {
		return nil
	}
	return s.audit.Record(ctx, entry)
}

func (s *Store) nextVersionNumber(contentID string) int {
	next := 1
	for _, version := range s.versions {
		if version.ContentID == contentID && version.VersionNumber >= next {
			next = version.VersionNumber + 1
		}
	}
	return next
}

func matchesSearch(item entities.ContentItem, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(item.Title), term) ||
		strings.Contains(strings.ToLower(item.Slug), term) ||
		strings.Contains(strings.ToLower(item.Excerpt), term)
}

func paginateContent(items []entities.ContentItem, offset, limit int) []entities.ContentItem {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
