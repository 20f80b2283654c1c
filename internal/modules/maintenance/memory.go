// README: In-memory maintenance store for tests and single-node setups.
package maintenance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

func nowUTC() time.Time { return time.Now().UTC() }

// MemoryStore mirrors the Postgres store's coupling semantics against a
// vehicle.MemoryStore. Vehicle status flips go through the vehicle store's
// CAS so races with the trip engine resolve to one winner.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[types.ID]*Log
	vehicles *vehicle.MemoryStore
}

func NewMemoryStore(vehicles *vehicle.MemoryStore) *MemoryStore {
	return &MemoryStore{data: map[types.ID]*Log{}, vehicles: vehicles}
}

func (s *MemoryStore) Open(ctx context.Context, l *Log) error {
	// idle -> in_shop, or already in_shop (second open log on the same vehicle).
	ok, err := s.vehicles.CompareAndSwapStatus(ctx, l.VehicleID, vehicle.StatusIdle, vehicle.StatusInShop)
	if err != nil {
		return err
	}
	if !ok {
		v, err := s.vehicles.Get(ctx, l.VehicleID)
		if err != nil {
			return err
		}
		if v.Status == vehicle.StatusOnTrip {
			return ErrVehicleOnTrip
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *l
	s.data[l.ID] = &cp
	return nil
}

// ForceOpen records a log without touching the vehicle, for logs entered
// outside the normal flow (defects reported while the vehicle is out).
func (s *MemoryStore) ForceOpen(_ context.Context, l *Log) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *l
	s.data[l.ID] = &cp
}

func (s *MemoryStore) Close(ctx context.Context, id types.ID) (bool, types.ID, error) {
	s.mu.Lock()
	l, ok := s.data[id]
	if !ok {
		s.mu.Unlock()
		return false, "", ErrNotFound
	}
	if l.Status != StatusInShop {
		s.mu.Unlock()
		return false, "", fmt.Errorf("%w: log already closed", ErrBadRequest)
	}
	l.Status = StatusClosed
	now := nowUTC()
	l.ClosedAt = &now
	vid := l.VehicleID
	lastOpen := true
	for _, other := range s.data {
		if other.VehicleID == vid && other.Status == StatusInShop {
			lastOpen = false
			break
		}
	}
	s.mu.Unlock()

	if !lastOpen {
		return false, vid, nil
	}
	restored, err := s.vehicles.CompareAndSwapStatus(ctx, vid, vehicle.StatusInShop, vehicle.StatusIdle)
	if err != nil {
		return false, vid, err
	}
	return restored, vid, nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Log, 0, len(s.data))
	for _, l := range s.data {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *MemoryStore) HasOpenForVehicle(_ context.Context, vehicleID types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.data {
		if l.VehicleID == vehicleID && l.Status == StatusInShop {
			return true, nil
		}
	}
	return false, nil
}
