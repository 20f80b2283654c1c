package user

import (
	"context"
	"sort"
	"sync"

	"fleetflow/internal/types"
)

// MemoryStore keeps users in a map. Used by tests and the in-memory
// server profile.
type MemoryStore struct {
	mu   sync.Mutex
	data map[types.ID]*User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[types.ID]*User)}
}

func (m *MemoryStore) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.data {
		if existing.Email == u.Email {
			return ErrConflict
		}
	}
	cp := *u
	m.data[u.ID] = &cp
	return nil
}

func (m *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.data {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) List(_ context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.data))
	for _, u := range m.data {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[id]; !ok {
		return ErrNotFound
	}
	delete(m.data, id)
	return nil
}
