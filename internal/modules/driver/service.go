// README: Driver roster service; duty-status changes feed the availability index.
package driver

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleetflow/internal/types"
)

type Store interface {
	Create(ctx context.Context, d *Driver) error
	Get(ctx context.Context, id types.ID) (*Driver, error)
	List(ctx context.Context) ([]Driver, error)
	ListByStatus(ctx context.Context, status Status) ([]Driver, error)
	Update(ctx context.Context, id types.ID, name, licenseCategory string) error
	CompareAndSwapStatus(ctx context.Context, id types.ID, from, to Status) (bool, error)
	ForceStatus(ctx context.Context, id types.ID, to Status) error
	Delete(ctx context.Context, id types.ID) error
}

// Index is the slice of the availability projection this service maintains.
type Index interface {
	HideDriver(ctx context.Context, id types.ID) error
	RestoreDriver(ctx context.Context, id types.ID) error
}

type Service struct {
	store Store
	index Index
}

func NewService(store Store, index Index) *Service {
	return &Service{store: store, index: index}
}

type AddCommand struct {
	Name            string
	LicenseCategory string
}

// Add registers a driver off duty; a shift change brings them on duty.
func (s *Service) Add(ctx context.Context, cmd AddCommand) (*Driver, error) {
	if cmd.Name == "" || cmd.LicenseCategory == "" {
		return nil, ErrBadRequest
	}
	d := &Driver{
		ID:              types.ID(uuid.NewString()),
		Name:            cmd.Name,
		LicenseCategory: cmd.LicenseCategory,
		Status:          StatusOffDuty,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Driver, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.store.List(ctx)
}

func (s *Service) Update(ctx context.Context, id types.ID, name, licenseCategory string) (*Driver, error) {
	if name == "" || licenseCategory == "" {
		return nil, ErrBadRequest
	}
	if err := s.store.Update(ctx, id, name, licenseCategory); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

// SetStatus applies a duty-status change requested through the dashboard.
// on_trip is owned by the trip engine and cannot be requested here.
// Suspension overrides any state, including an active trip: the trip keeps
// running, but the driver drops out of eligibility and stays suspended when
// the trip releases them.
func (s *Service) SetStatus(ctx context.Context, id types.ID, to Status) (*Driver, error) {
	switch to {
	case StatusSuspended:
		if err := s.index.HideDriver(ctx, id); err != nil {
			return nil, err
		}
		if err := s.store.ForceStatus(ctx, id, StatusSuspended); err != nil {
			return nil, err
		}
	case StatusOnDuty:
		ok, err := s.store.CompareAndSwapStatus(ctx, id, StatusOffDuty, StatusOnDuty)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInvalidStatus
		}
		if err := s.index.RestoreDriver(ctx, id); err != nil {
			return nil, err
		}
	case StatusOffDuty:
		cur, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if cur.Status != StatusOnDuty && cur.Status != StatusSuspended {
			return nil, ErrInvalidStatus
		}
		if err := s.index.HideDriver(ctx, id); err != nil {
			return nil, err
		}
		ok, err := s.store.CompareAndSwapStatus(ctx, id, cur.Status, StatusOffDuty)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrConflict
		}
	default:
		return nil, ErrInvalidStatus
	}
	return s.store.Get(ctx, id)
}

// Delete fails with ErrConflict while a non-terminal trip references the driver.
func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	return s.index.HideDriver(ctx, id)
}
