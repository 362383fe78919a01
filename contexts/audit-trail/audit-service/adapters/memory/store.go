package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vellum/contexts/audit-trail/audit-service/domain/entities"
	domainerrors "vellum/contexts/audit-trail/audit-service/domain/errors"
	"vellum/contexts/audit-trail/audit-service/ports"
)

// Store is an in-memory adapter implementing the audit-service ports for local
// runtime and tests. It is not intended as production persistence.
type Store struct {
	mu   sync.RWMutex
	logs []entities.AuditLog
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) InsertLog(_ context.Context, log entities.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	return nil
}

func (s *Store) ListLogs(_ context.Context, filter ports.LogFilter) ([]entities.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []entities.AuditLog
	for _, log := range s.logs {
		if filter.UserID != "" && log.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && string(log.Action) != filter.Action {
			continue
		}
		if filter.ResourceType != "" && log.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != "" && log.ResourceID != filter.ResourceID {
			continue
		}
		if filter.Start != nil && log.CreatedAt.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && log.CreatedAt.After(*filter.End) {
			continue
		}
		filtered = append(filtered, log)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].LogID > filtered[j].LogID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := int64(len(filtered))
	start := filter.Offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := len(filtered)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return append([]entities.AuditLog(nil), filtered[start:end]...), total, nil
}

func (s *Store) GetLog(_ context.Context, logID string) (entities.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logID = strings.TrimSpace(logID)
	for _, log := range s.logs {
		if log.LogID == logID {
			return log, nil
		}
	}
	return entities.AuditLog{}, domainerrors.ErrLogNotFound
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
