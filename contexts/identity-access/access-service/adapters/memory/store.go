package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vellum/contexts/identity-access/access-service/domain/entities"
	domainerrors "vellum/contexts/identity-access/access-service/domain/errors"
)

// Store is an in-memory adapter implementing the access-service ports for
// local runtime and tests. It is not intended as production persistence.
type Store struct {
	mu          sync.RWMutex
	users       map[string]entities.User
	assignments map[string]entities.RoleAssignment
}

func NewStore(seedUsers []entities.User) *Store {
	users := make(map[string]entities.User, len(seedUsers))
	for _, user := range seedUsers {
		users[user.UserID] = user
	}
	return &Store{
		users:       users,
		assignments: make(map[string]entities.RoleAssignment),
	}
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[strings.TrimSpace(userID)]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) ListUsers(_ context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (s *Store) GetAssignment(_ context.Context, userID string) (entities.RoleAssignment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignment, ok := s.assignments[strings.TrimSpace(userID)]
	return assignment, ok, nil
}

func (s *Store) UpsertAssignment(_ context.Context, assignment entities.RoleAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[assignment.UserID] = assignment
	return nil
}

func (s *Store) DeleteAssignment(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments, strings.TrimSpace(userID))
	return nil
}

func (s *Store) ListAssignments(_ context.Context) ([]entities.RoleAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignments := make([]entities.RoleAssignment, 0, len(s.assignments))
	for _, assignment := range s.assignments {
		assignments = append(assignments, assignment)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].UserID < assignments[j].UserID })
	return assignments, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
