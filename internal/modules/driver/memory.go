// README: In-memory driver store for tests and single-node setups.
package driver

import (
	"context"
	"sort"
	"sync"

	"fleetflow/internal/types"
)

type MemoryStore struct {
	mu   sync.Mutex
	data map[types.ID]*Driver

	referenced func(types.ID) bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[types.ID]*Driver{}}
}

// SetReferencedCheck installs the delete-guard callback.
func (s *MemoryStore) SetReferencedCheck(fn func(types.ID) bool) {
	s.referenced = fn
}

func (s *MemoryStore) Create(_ context.Context, d *Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	s.data[d.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Driver, 0, len(s.data))
	for _, d := range s.data {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) ListByStatus(_ context.Context, status Status) ([]Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Driver
	for _, d := range s.data {
		if d.Status == status {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, id types.ID, name, licenseCategory string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}
	d.Name = name
	d.LicenseCategory = licenseCategory
	return nil
}

func (s *MemoryStore) CompareAndSwapStatus(_ context.Context, id types.ID, from, to Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[id]
	if !ok {
		return false, ErrNotFound
	}
	if d.Status != from {
		return false, nil
	}
	d.Status = to
	return true, nil
}

func (s *MemoryStore) ForceStatus(_ context.Context, id types.ID, to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}
	d.Status = to
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id types.ID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if s.referenced != nil && s.referenced(id) {
		return ErrConflict
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}
