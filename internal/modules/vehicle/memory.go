// README: In-memory vehicle store for tests and single-node setups.
package vehicle

import (
	"context"
	"sort"
	"sync"

	"fleetflow/internal/types"
)

// MemoryStore keeps vehicles in a mutex-guarded map. Status changes go through
// CompareAndSwapStatus so concurrent reservations resolve to one winner.
type MemoryStore struct {
	mu   sync.Mutex
	data map[types.ID]*Vehicle

	// referenced reports whether another record still points at the vehicle.
	// Wired after construction because the trip store is built later.
	referenced func(types.ID) bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[types.ID]*Vehicle{}}
}

// SetReferencedCheck installs the delete-guard callback.
func (s *MemoryStore) SetReferencedCheck(fn func(types.ID) bool) {
	s.referenced = fn
}

func (s *MemoryStore) Create(_ context.Context, v *Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data {
		if existing.LicensePlate == v.LicensePlate {
			return ErrConflict
		}
	}
	cp := *v
	s.data[v.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Vehicle, 0, len(s.data))
	for _, v := range s.data {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) ListByStatus(_ context.Context, status Status) ([]Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Vehicle
	for _, v := range s.data {
		if v.Status == status {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, id types.ID, model, vtype string, maxCapacityKg int, odometerKm int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}
	if odometerKm < v.OdometerKm {
		return ErrBadRequest
	}
	v.Model = model
	v.Type = vtype
	v.MaxCapacityKg = maxCapacityKg
	v.OdometerKm = odometerKm
	return nil
}

// Delete removes a vehicle unless the referenced check holds. The check runs
// outside the store lock; the other memory stores take their own locks.
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

// CompareAndSwapStatus flips the status only when the current value matches
// from. Reports whether the swap happened.
func (s *MemoryStore) CompareAndSwapStatus(_ context.Context, id types.ID, from, to Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[id]
	if !ok {
		return false, ErrNotFound
	}
	if v.Status != from {
		return false, nil
	}
	v.Status = to
	return true, nil
}
