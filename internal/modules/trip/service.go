// README: Trip lifecycle engine; reservation at draft, release at terminal states.
package trip

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fleetflow/internal/logger"
	"fleetflow/internal/metrics"
	"fleetflow/internal/modules/driver"
	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

// DefaultCurrency applies when an estimated fuel cost arrives without one.
const DefaultCurrency = "INR"

type Store interface {
	CreateReserving(ctx context.Context, t *Trip) error
	Get(ctx context.Context, id types.ID) (*Trip, error)
	List(ctx context.Context, status Status) ([]Trip, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error)
	CloseReleasing(ctx context.Context, t *Trip, to Status) (bool, error)
}

type VehicleReader interface {
	Get(ctx context.Context, id types.ID) (*vehicle.Vehicle, error)
}

type DriverReader interface {
	Get(ctx context.Context, id types.ID) (*driver.Driver, error)
}

// AvailabilityIndex is the projection the engine keeps in step with its
// commits: hide before reserving, restore after releasing.
type AvailabilityIndex interface {
	HideVehicle(ctx context.Context, id types.ID) error
	RestoreVehicle(ctx context.Context, id types.ID) error
	HideDriver(ctx context.Context, id types.ID) error
	RestoreDriver(ctx context.Context, id types.ID) error
}

type Service struct {
	store    Store
	vehicles VehicleReader
	drivers  DriverReader
	index    AvailabilityIndex
	log      logger.Logger
}

func NewService(store Store, vehicles VehicleReader, drivers DriverReader, index AvailabilityIndex, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{store: store, vehicles: vehicles, drivers: drivers, index: index, log: log}
}

type CreateCommand struct {
	VehicleID         types.ID
	DriverID          types.ID
	CargoWeightKg     int
	Origin            string
	Destination       string
	EstimatedFuelCost types.Money
}

// Create drafts a trip, reserving vehicle and driver atomically. The status
// reads are advisory pre-checks for precise errors; the conditional updates
// inside CreateReserving are what actually prevents a double booking.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Trip, error) {
	if cmd.VehicleID == "" || cmd.DriverID == "" || cmd.Origin == "" || cmd.Destination == "" {
		return nil, ErrBadRequest
	}
	if cmd.CargoWeightKg <= 0 {
		return nil, ErrBadRequest
	}

	v, err := s.vehicles.Get(ctx, cmd.VehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if v.Status != vehicle.StatusIdle {
		metrics.TripCheckFailures.WithLabelValues("vehicle_unavailable").Inc()
		return nil, ErrVehicleUnavailable
	}
	d, err := s.drivers.Get(ctx, cmd.DriverID)
	if err != nil {
		if errors.Is(err, driver.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.Status != driver.StatusOnDuty {
		metrics.TripCheckFailures.WithLabelValues("driver_unavailable").Inc()
		return nil, ErrDriverUnavailable
	}
	if err := CheckCapacity(cmd.CargoWeightKg, v.MaxCapacityKg); err != nil {
		metrics.TripCheckFailures.WithLabelValues("capacity").Inc()
		return nil, err
	}

	if cmd.EstimatedFuelCost.Currency == "" {
		cmd.EstimatedFuelCost.Currency = DefaultCurrency
	}
	t := &Trip{
		ID:                types.ID(uuid.NewString()),
		VehicleID:         cmd.VehicleID,
		DriverID:          cmd.DriverID,
		Origin:            cmd.Origin,
		Destination:       cmd.Destination,
		CargoWeightKg:     cmd.CargoWeightKg,
		EstimatedFuelCost: cmd.EstimatedFuelCost,
		Status:            StatusDraft,
		StatusVersion:     0,
		CreatedAt:         time.Now().UTC(),
	}

	// Hide before the commit so eligibility reads cannot offer entities whose
	// reservation has already landed.
	if err := s.index.HideVehicle(ctx, cmd.VehicleID); err != nil {
		return nil, err
	}
	if err := s.index.HideDriver(ctx, cmd.DriverID); err != nil {
		return nil, err
	}

	if err := s.store.CreateReserving(ctx, t); err != nil {
		s.restoreIfEligible(ctx, cmd.VehicleID, cmd.DriverID)
		switch {
		case errors.Is(err, ErrVehicleUnavailable):
			metrics.TripCheckFailures.WithLabelValues("vehicle_unavailable").Inc()
		case errors.Is(err, ErrDriverUnavailable):
			metrics.TripCheckFailures.WithLabelValues("driver_unavailable").Inc()
		}
		return nil, err
	}

	metrics.TripsCreated.Inc()
	s.log.Debugw("trip drafted", map[string]any{
		"trip_id":    t.ID,
		"vehicle_id": t.VehicleID,
		"driver_id":  t.DriverID,
	})
	return t, nil
}

// UpdateStatus applies one edge of the state machine. draft -> dispatched
// re-checks nothing: drafting already reserved the resources, so there is no
// check/use gap to exploit. Terminal transitions release them.
func (s *Service) UpdateStatus(ctx context.Context, id types.ID, requested Status) (*Trip, error) {
	if !ValidStatus(requested) {
		return nil, ErrBadRequest
	}
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(t.Status, requested) {
		return nil, ErrInvalidTransition
	}

	switch requested {
	case StatusDispatched:
		ok, err := s.store.UpdateStatus(ctx, id, t.Status, requested, t.StatusVersion)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrConflict
		}
	case StatusCompleted, StatusCancelled:
		ok, err := s.store.CloseReleasing(ctx, t, requested)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrConflict
		}
		s.restoreIfEligible(ctx, t.VehicleID, t.DriverID)
	}

	metrics.TripTransitions.WithLabelValues(string(requested)).Inc()
	return s.store.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Trip, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status Status) ([]Trip, error) {
	if status != "" && !ValidStatus(status) {
		return nil, ErrBadRequest
	}
	return s.store.List(ctx, status)
}

// restoreIfEligible re-adds entities to the index only when the store says
// they are eligible again; a vehicle parked in the shop or a driver suspended
// mid-trip stays hidden.
func (s *Service) restoreIfEligible(ctx context.Context, vehicleID, driverID types.ID) {
	if v, err := s.vehicles.Get(ctx, vehicleID); err == nil && v.Status == vehicle.StatusIdle {
		if err := s.index.RestoreVehicle(ctx, vehicleID); err != nil {
			s.log.Warnf("restore vehicle %s in availability index: %v", vehicleID, err)
		}
	}
	if d, err := s.drivers.Get(ctx, driverID); err == nil && d.Status == driver.StatusOnDuty {
		if err := s.index.RestoreDriver(ctx, driverID); err != nil {
			s.log.Warnf("restore driver %s in availability index: %v", driverID, err)
		}
	}
}
