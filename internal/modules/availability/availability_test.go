package availability

import (
	"context"
	"testing"
	"time"

	"fleetflow/internal/modules/driver"
	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

func seed(t *testing.T) (*Service, *MemoryIndex, *vehicle.MemoryStore, *driver.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	vehicles := vehicle.NewMemoryStore()
	drivers := driver.NewMemoryStore()
	index := NewMemoryIndex()

	base := time.Now().UTC()
	for i, spec := range []struct {
		id     string
		status vehicle.Status
	}{
		{"v-idle", vehicle.StatusIdle},
		{"v-trip", vehicle.StatusOnTrip},
		{"v-shop", vehicle.StatusInShop},
	} {
		err := vehicles.Create(ctx, &vehicle.Vehicle{
			ID: types.ID(spec.id), LicensePlate: spec.id, Model: "m", Type: "t",
			MaxCapacityKg: 100, Status: spec.status,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("seed vehicle: %v", err)
		}
	}
	for i, spec := range []struct {
		id     string
		status driver.Status
	}{
		{"d-duty", driver.StatusOnDuty},
		{"d-trip", driver.StatusOnTrip},
		{"d-susp", driver.StatusSuspended},
	} {
		err := drivers.Create(ctx, &driver.Driver{
			ID: types.ID(spec.id), Name: spec.id, LicenseCategory: "LMV",
			Status: spec.status, CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("seed driver: %v", err)
		}
	}
	return NewService(index, vehicles, drivers, nil), index, vehicles, drivers
}

func TestRebuild_PopulatesOnlyEligible(t *testing.T) {
	svc, index, _, _ := seed(t)
	ctx := context.Background()

	if err := svc.Rebuild(ctx); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	vids, _ := index.VehicleIDs(ctx)
	if len(vids) != 1 || vids[0] != "v-idle" {
		t.Fatalf("expected only the idle vehicle, got %v", vids)
	}
	dids, _ := index.DriverIDs(ctx)
	if len(dids) != 1 || dids[0] != "d-duty" {
		t.Fatalf("expected only the on-duty driver, got %v", dids)
	}
}

// A stale candidate (entity reserved after the set was built) must be
// filtered out by the store re-validation.
func TestEligible_RevalidatesAgainstStore(t *testing.T) {
	svc, _, vehicles, drivers := seed(t)
	ctx := context.Background()
	if err := svc.Rebuild(ctx); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if _, err := vehicles.CompareAndSwapStatus(ctx, "v-idle", vehicle.StatusIdle, vehicle.StatusOnTrip); err != nil {
		t.Fatalf("reserve vehicle: %v", err)
	}
	if _, err := drivers.CompareAndSwapStatus(ctx, "d-duty", driver.StatusOnDuty, driver.StatusOnTrip); err != nil {
		t.Fatalf("reserve driver: %v", err)
	}

	vs, err := svc.EligibleVehicles(ctx)
	if err != nil {
		t.Fatalf("eligible vehicles: %v", err)
	}
	if len(vs) != 0 {
		t.Fatalf("stale vehicle candidate leaked: %v", vs)
	}
	ds, err := svc.EligibleDrivers(ctx)
	if err != nil {
		t.Fatalf("eligible drivers: %v", err)
	}
	if len(ds) != 0 {
		t.Fatalf("stale driver candidate leaked: %v", ds)
	}
}

func TestEligible_DroppedEntityIsSkipped(t *testing.T) {
	svc, index, vehicles, _ := seed(t)
	ctx := context.Background()
	if err := svc.Rebuild(ctx); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if err := vehicles.Delete(ctx, "v-idle"); err != nil {
		t.Fatalf("delete vehicle: %v", err)
	}
	vs, err := svc.EligibleVehicles(ctx)
	if err != nil {
		t.Fatalf("eligible vehicles: %v", err)
	}
	if len(vs) != 0 {
		t.Fatalf("deleted vehicle still eligible: %v", vs)
	}
	// The id is still in the set until the next rebuild; reads do not error.
	ids, _ := index.VehicleIDs(ctx)
	if len(ids) != 1 {
		t.Fatalf("expected the stale id to remain in the raw set, got %v", ids)
	}
}
