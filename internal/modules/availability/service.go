// README: Availability service; index reads re-validated against the entity store.
package availability

import (
	"context"
	"sort"

	"fleetflow/internal/logger"
	"fleetflow/internal/modules/driver"
	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

type VehicleReader interface {
	Get(ctx context.Context, id types.ID) (*vehicle.Vehicle, error)
	ListByStatus(ctx context.Context, status vehicle.Status) ([]vehicle.Vehicle, error)
}

type DriverReader interface {
	Get(ctx context.Context, id types.ID) (*driver.Driver, error)
	ListByStatus(ctx context.Context, status driver.Status) ([]driver.Driver, error)
}

// Service answers "who is eligible right now". The index supplies candidate
// ids; every candidate is re-validated against the entity store, so a
// reservation that has committed is never reported as eligible no matter how
// stale the projection is.
type Service struct {
	index    Index
	vehicles VehicleReader
	drivers  DriverReader
	log      logger.Logger
}

func NewService(index Index, vehicles VehicleReader, drivers DriverReader, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{index: index, vehicles: vehicles, drivers: drivers, log: log}
}

// EligibleVehicles returns vehicles reservable for a new trip (status idle).
func (s *Service) EligibleVehicles(ctx context.Context) ([]vehicle.Vehicle, error) {
	ids, err := s.index.VehicleIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]vehicle.Vehicle, 0, len(ids))
	for _, id := range ids {
		v, err := s.vehicles.Get(ctx, id)
		if err != nil {
			continue // dropped from the store; rebuild will clean the set
		}
		if v.Status == vehicle.StatusIdle {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// EligibleDrivers returns drivers reservable for a new trip (status on_duty;
// suspended and on_trip are never included).
func (s *Service) EligibleDrivers(ctx context.Context) ([]driver.Driver, error) {
	ids, err := s.index.DriverIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]driver.Driver, 0, len(ids))
	for _, id := range ids {
		d, err := s.drivers.Get(ctx, id)
		if err != nil {
			continue
		}
		if d.Status == driver.StatusOnDuty {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Rebuild recomputes both candidate sets from the entity store. Run at
// startup and whenever the projection is suspected stale.
func (s *Service) Rebuild(ctx context.Context) error {
	vs, err := s.vehicles.ListByStatus(ctx, vehicle.StatusIdle)
	if err != nil {
		return err
	}
	vids := make([]types.ID, len(vs))
	for i, v := range vs {
		vids[i] = v.ID
	}
	if err := s.index.ResetVehicles(ctx, vids); err != nil {
		return err
	}

	ds, err := s.drivers.ListByStatus(ctx, driver.StatusOnDuty)
	if err != nil {
		return err
	}
	dids := make([]types.ID, len(ds))
	for i, d := range ds {
		dids[i] = d.ID
	}
	if err := s.index.ResetDrivers(ctx, dids); err != nil {
		return err
	}
	s.log.Infof("availability index rebuilt: %d vehicles, %d drivers", len(vids), len(dids))
	return nil
}
