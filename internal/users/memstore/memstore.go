// Package memstore keeps users in process memory. It backs the service when
// no database is configured and serves as a fast store in tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/remiges-tech/usersvc/internal/users"
	"github.com/remiges-tech/usersvc/validations"
)

var _ users.Repository = (*Store)(nil)

// Store is a users.Repository safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	lastID int64
	users  map[int64]users.User
}

// New returns an empty Store.
func New() *Store {
	return &Store{users: make(map[int64]users.User)}
}

func (s *Store) FindByID(_ context.Context, id int64) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (s *Store) Save(_ context.Context, u users.User) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.BirthDate = validations.TruncateToDate(u.BirthDate)
	if u.ID == 0 {
		s.lastID++
		u.ID = s.lastID
	} else if _, ok := s.users[u.ID]; !ok {
		return users.User{}, users.ErrNotFound
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func (s *Store) FindAll(_ context.Context) ([]users.User, error) {
	return s.filter(func(users.User) bool { return true }), nil
}

func (s *Store) FindByBirthDateBetween(_ context.Context, from, to time.Time) ([]users.User, error) {
	from, to = validations.TruncateToDate(from), validations.TruncateToDate(to)
	return s.filter(func(u users.User) bool {
		return !u.BirthDate.Before(from) && !u.BirthDate.After(to)
	}), nil
}

// filter returns the matching users ordered by identifier, which is
// insertion order.
func (s *Store) filter(match func(users.User) bool) []users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]users.User, 0, len(s.users))
	for _, u := range s.users {
		if match(u) {
			found = append(found, u)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}
