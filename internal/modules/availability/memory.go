// README: In-memory availability index for tests and single-node setups.
package availability

import (
	"context"
	"sync"

	"fleetflow/internal/types"
)

type MemoryIndex struct {
	mu       sync.Mutex
	vehicles map[types.ID]bool
	drivers  map[types.ID]bool
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{vehicles: map[types.ID]bool{}, drivers: map[types.ID]bool{}}
}

func (i *MemoryIndex) HideVehicle(_ context.Context, id types.ID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.vehicles, id)
	return nil
}

func (i *MemoryIndex) RestoreVehicle(_ context.Context, id types.ID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.vehicles[id] = true
	return nil
}

func (i *MemoryIndex) HideDriver(_ context.Context, id types.ID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.drivers, id)
	return nil
}

func (i *MemoryIndex) RestoreDriver(_ context.Context, id types.ID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.drivers[id] = true
	return nil
}

func (i *MemoryIndex) VehicleIDs(_ context.Context) ([]types.ID, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return keys(i.vehicles), nil
}

func (i *MemoryIndex) DriverIDs(_ context.Context) ([]types.ID, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return keys(i.drivers), nil
}

func (i *MemoryIndex) ResetVehicles(_ context.Context, ids []types.ID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.vehicles = fromSlice(ids)
	return nil
}

func (i *MemoryIndex) ResetDrivers(_ context.Context, ids []types.ID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.drivers = fromSlice(ids)
	return nil
}

func keys(m map[types.ID]bool) []types.ID {
	out := make([]types.ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}

func fromSlice(ids []types.ID) map[types.ID]bool {
	m := make(map[types.ID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
