// README: Maintenance coupler; opening a log auto-hides the vehicle, closing the last one restores it.
package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleetflow/internal/metrics"
	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

// DefaultCurrency applies when a cost arrives without one.
const DefaultCurrency = "INR"

type Store interface {
	Open(ctx context.Context, l *Log) error
	Close(ctx context.Context, id types.ID) (restored bool, vehicleID types.ID, err error)
	Get(ctx context.Context, id types.ID) (*Log, error)
	List(ctx context.Context) ([]Log, error)
	HasOpenForVehicle(ctx context.Context, vehicleID types.ID) (bool, error)
}

// Index is the slice of the availability projection this service maintains.
type Index interface {
	HideVehicle(ctx context.Context, id types.ID) error
	RestoreVehicle(ctx context.Context, id types.ID) error
}

type VehicleReader interface {
	Get(ctx context.Context, id types.ID) (*vehicle.Vehicle, error)
}

type Service struct {
	store    Store
	vehicles VehicleReader
	index    Index
}

func NewService(store Store, vehicles VehicleReader, index Index) *Service {
	return &Service{store: store, vehicles: vehicles, index: index}
}

type OpenCommand struct {
	VehicleID types.ID
	Issue     string
	Date      time.Time
	Cost      types.Money
}

// Open creates an in_shop log and forces the vehicle out of eligibility.
// A vehicle currently on a trip cannot be serviced (ErrVehicleOnTrip).
func (s *Service) Open(ctx context.Context, cmd OpenCommand) (*Log, error) {
	if cmd.VehicleID == "" || cmd.Issue == "" || cmd.Date.IsZero() {
		return nil, ErrBadRequest
	}
	if cmd.Cost.Currency == "" {
		cmd.Cost.Currency = DefaultCurrency
	}
	l := &Log{
		ID:        types.ID(uuid.NewString()),
		VehicleID: cmd.VehicleID,
		Issue:     cmd.Issue,
		Date:      cmd.Date,
		Cost:      cmd.Cost,
		Status:    StatusInShop,
		CreatedAt: time.Now().UTC(),
	}
	// Hide before committing so the index never offers a vehicle whose
	// in_shop commit has already landed.
	if err := s.index.HideVehicle(ctx, cmd.VehicleID); err != nil {
		return nil, err
	}
	if err := s.store.Open(ctx, l); err != nil {
		s.restoreIfIdle(ctx, cmd.VehicleID)
		return nil, err
	}
	metrics.OpenMaintenance.Inc()
	return l, nil
}

// Close marks the log closed; when no other open log remains the vehicle
// returns to idle and re-enters the availability index.
func (s *Service) Close(ctx context.Context, id types.ID) (*Log, error) {
	restored, vehicleID, err := s.store.Close(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.OpenMaintenance.Dec()
	if restored {
		if err := s.index.RestoreVehicle(ctx, vehicleID); err != nil {
			return nil, err
		}
	}
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Log, error) {
	return s.store.List(ctx)
}

// restoreIfIdle compensates a speculative hide after a failed open. The
// entity store stays authoritative: only a still-idle vehicle re-enters.
func (s *Service) restoreIfIdle(ctx context.Context, id types.ID) {
	if v, err := s.vehicles.Get(ctx, id); err == nil && v.Status == vehicle.StatusIdle {
		_ = s.index.RestoreVehicle(ctx, id)
	}
}
