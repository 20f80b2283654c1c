// README: In-memory trip store; mirrors the Postgres reservation semantics via CAS.
package trip

import (
	"context"
	"sort"
	"sync"
	"time"

	"fleetflow/internal/modules/driver"
	"fleetflow/internal/modules/maintenance"
	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

// MemoryStore coordinates the memory vehicle/driver/maintenance stores.
// Reservation is CAS-based: vehicle first, then driver, with a compensating
// release when the driver swap loses. Exactly one of any set of racing
// reservations can win the vehicle CAS.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[types.ID]*Trip
	vehicles *vehicle.MemoryStore
	drivers  *driver.MemoryStore
	maint    *maintenance.MemoryStore
}

func NewMemoryStore(vehicles *vehicle.MemoryStore, drivers *driver.MemoryStore, maint *maintenance.MemoryStore) *MemoryStore {
	return &MemoryStore{
		data:     map[types.ID]*Trip{},
		vehicles: vehicles,
		drivers:  drivers,
		maint:    maint,
	}
}

func (s *MemoryStore) CreateReserving(ctx context.Context, t *Trip) error {
	ok, err := s.vehicles.CompareAndSwapStatus(ctx, t.VehicleID, vehicle.StatusIdle, vehicle.StatusOnTrip)
	if err != nil {
		return ErrNotFound
	}
	if !ok {
		return ErrVehicleUnavailable
	}

	ok, err = s.drivers.CompareAndSwapStatus(ctx, t.DriverID, driver.StatusOnDuty, driver.StatusOnTrip)
	if err != nil || !ok {
		// Undo the vehicle reservation; nobody else can have touched it while
		// it shows on_trip.
		_, _ = s.vehicles.CompareAndSwapStatus(ctx, t.VehicleID, vehicle.StatusOnTrip, vehicle.StatusIdle)
		if err != nil {
			return ErrNotFound
		}
		return ErrDriverUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.data[t.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, status Status) ([]Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Trip
	for _, t := range s.data {
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data[id]
	if !ok {
		return false, ErrNotFound
	}
	if t.Status != from || t.StatusVersion != version {
		return false, nil
	}
	t.Status = to
	t.StatusVersion++
	if to == StatusDispatched && t.DispatchedAt == nil {
		now := nowUTC()
		t.DispatchedAt = &now
	}
	return true, nil
}

func (s *MemoryStore) CloseReleasing(ctx context.Context, t *Trip, to Status) (bool, error) {
	s.mu.Lock()
	cur, ok := s.data[t.ID]
	if !ok {
		s.mu.Unlock()
		return false, ErrNotFound
	}
	if cur.Status != t.Status || cur.StatusVersion != t.StatusVersion {
		s.mu.Unlock()
		return false, nil
	}
	cur.Status = to
	cur.StatusVersion++
	now := nowUTC()
	switch to {
	case StatusCompleted:
		cur.CompletedAt = &now
	case StatusCancelled:
		cur.CancelledAt = &now
	}
	vid, did := cur.VehicleID, cur.DriverID
	s.mu.Unlock()

	// Only the transition winner reaches this point, so the releases cannot race
	// another releaser. An open maintenance log re-routes the vehicle to the shop.
	open, err := s.maint.HasOpenForVehicle(ctx, vid)
	if err != nil {
		return false, err
	}
	target := vehicle.StatusIdle
	if open {
		target = vehicle.StatusInShop
	}
	if _, err := s.vehicles.CompareAndSwapStatus(ctx, vid, vehicle.StatusOnTrip, target); err != nil {
		return false, err
	}
	// A driver suspended mid-trip no longer shows on_trip; the swap is a no-op
	// and the suspension sticks.
	if _, err := s.drivers.CompareAndSwapStatus(ctx, did, driver.StatusOnTrip, driver.StatusOnDuty); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) HasActiveForVehicle(_ context.Context, vehicleID types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.data {
		if t.VehicleID == vehicleID && !Terminal(t.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) HasActiveForDriver(_ context.Context, driverID types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.data {
		if t.DriverID == driverID && !Terminal(t.Status) {
			return true, nil
		}
	}
	return false, nil
}

func nowUTC() time.Time { return time.Now().UTC() }
