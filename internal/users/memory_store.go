package users

import (
	"context"
	"sort"
)

// MemoryStore keeps user records in a map. It backs the directory when no
// database is configured.
type MemoryStore struct {
	records map[int64]User
}

// NewMemoryStore creates an empty memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]User),
	}
}

// SaveUser stores or replaces the record for user.ID
func (s *MemoryStore) SaveUser(ctx context.Context, user User) error {
	s.records[user.ID] = user
	return nil
}

// InsertUser stores user unless its ID is already held
func (s *MemoryStore) InsertUser(ctx context.Context, user User) (bool, error) {
	if _, ok := s.records[user.ID]; ok {
		return false, nil
	}
	s.records[user.ID] = user
	return true, nil
}

// ListUsers returns the stored users ordered by ID
func (s *MemoryStore) ListUsers(ctx context.Context) ([]User, error) {
	list := make([]User, 0, len(s.records))
	for _, u := range s.records {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// DeleteUser removes the record and reports whether it existed
func (s *MemoryStore) DeleteUser(ctx context.Context, userID int64) (bool, error) {
	if _, ok := s.records[userID]; !ok {
		return false, nil
	}
	delete(s.records, userID)
	return true, nil
}
