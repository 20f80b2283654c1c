// README: Vehicle registry service (registration, updates, guarded delete).
package vehicle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleetflow/internal/types"
)

type Store interface {
	Create(ctx context.Context, v *Vehicle) error
	Get(ctx context.Context, id types.ID) (*Vehicle, error)
	List(ctx context.Context) ([]Vehicle, error)
	ListByStatus(ctx context.Context, status Status) ([]Vehicle, error)
	Update(ctx context.Context, id types.ID, model, vtype string, maxCapacityKg int, odometerKm int64) error
	Delete(ctx context.Context, id types.ID) error
}

// Index is the slice of the availability projection this service maintains:
// a freshly registered vehicle is a candidate, a deleted one is not.
type Index interface {
	HideVehicle(ctx context.Context, id types.ID) error
	RestoreVehicle(ctx context.Context, id types.ID) error
}

type Service struct {
	store Store
	index Index
}

func NewService(store Store, index Index) *Service {
	return &Service{store: store, index: index}
}

type RegisterCommand struct {
	LicensePlate  string
	Model         string
	Type          string
	MaxCapacityKg int
	OdometerKm    int64
}

// Register adds a vehicle in status idle. Duplicate license plates fail with
// ErrConflict.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Vehicle, error) {
	if cmd.LicensePlate == "" || cmd.Model == "" || cmd.Type == "" || cmd.MaxCapacityKg <= 0 {
		return nil, ErrBadRequest
	}
	if cmd.OdometerKm < 0 {
		return nil, ErrBadRequest
	}
	v := &Vehicle{
		ID:            types.ID(uuid.NewString()),
		LicensePlate:  cmd.LicensePlate,
		Model:         cmd.Model,
		Type:          cmd.Type,
		MaxCapacityKg: cmd.MaxCapacityKg,
		OdometerKm:    cmd.OdometerKm,
		Status:        StatusIdle,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Create(ctx, v); err != nil {
		return nil, err
	}
	if err := s.index.RestoreVehicle(ctx, v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Vehicle, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Vehicle, error) {
	return s.store.List(ctx)
}

type UpdateCommand struct {
	Model         string
	Type          string
	MaxCapacityKg int
	OdometerKm    int64
}

// Update rewrites the registration fields. The odometer may only grow.
func (s *Service) Update(ctx context.Context, id types.ID, cmd UpdateCommand) (*Vehicle, error) {
	if cmd.Model == "" || cmd.Type == "" || cmd.MaxCapacityKg <= 0 || cmd.OdometerKm < 0 {
		return nil, ErrBadRequest
	}
	if err := s.store.Update(ctx, id, cmd.Model, cmd.Type, cmd.MaxCapacityKg, cmd.OdometerKm); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

// Delete fails with ErrConflict while a non-terminal trip or open maintenance
// log references the vehicle.
func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	return s.index.HideVehicle(ctx, id)
}
