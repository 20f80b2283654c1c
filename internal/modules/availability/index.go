// README: Availability index; derived eligibility projection, never the source of truth.
package availability

import (
	"context"

	"fleetflow/internal/types"
)

// Index holds the candidate sets of eligible vehicle/driver ids. The engine
// hides ids before a reserving commit and restores them after a releasing
// one, so the sets may transiently under-report but are cheap to read.
// Authoritative filtering happens in the Service on top of the entity store.
type Index interface {
	HideVehicle(ctx context.Context, id types.ID) error
	RestoreVehicle(ctx context.Context, id types.ID) error
	HideDriver(ctx context.Context, id types.ID) error
	RestoreDriver(ctx context.Context, id types.ID) error

	VehicleIDs(ctx context.Context) ([]types.ID, error)
	DriverIDs(ctx context.Context) ([]types.ID, error)

	ResetVehicles(ctx context.Context, ids []types.ID) error
	ResetDrivers(ctx context.Context, ids []types.ID) error
}
