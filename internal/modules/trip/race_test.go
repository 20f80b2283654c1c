package trip

import (
	"context"
	"sync"
	"testing"

	"fleetflow/internal/modules/driver"
	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

// Many dispatchers grab the same vehicle at once; the conditional swap inside
// the store must let exactly one through.
func TestCreate_ConcurrentSingleVehicle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedVehicle(t, "v1", vehicle.StatusIdle, 1000)

	const n = 32
	for i := 0; i < n; i++ {
		f.seedDriver(t, string(rune('a'+i%26))+string(rune('0'+i/26)), driver.StatusOnDuty)
	}
	driverIDs := make([]types.ID, 0, n)
	drivers, _ := f.drivers.List(ctx)
	for _, d := range drivers {
		driverIDs = append(driverIDs, d.ID)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.Create(ctx, CreateCommand{
				VehicleID:     "v1",
				DriverID:      driverIDs[i],
				Origin:        "a",
				Destination:   "b",
				CargoWeightKg: 10,
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	var won, unavailable int
	for _, err := range errs {
		switch err {
		case nil:
			won++
		case ErrVehicleUnavailable:
			unavailable++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}
	if unavailable != n-1 {
		t.Fatalf("expected %d unavailable, got %d", n-1, unavailable)
	}

	v, _ := f.vehicles.Get(ctx, "v1")
	if v.Status != vehicle.StatusOnTrip {
		t.Fatalf("vehicle should be reserved, got %s", v.Status)
	}
}

// Two dispatchers race one driver across two vehicles; one trip drafts, the
// loser's vehicle reservation is rolled back.
func TestCreate_ConcurrentSingleDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedVehicle(t, "v1", vehicle.StatusIdle, 1000)
	f.seedVehicle(t, "v2", vehicle.StatusIdle, 1000)
	f.seedDriver(t, "d1", driver.StatusOnDuty)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, vid := range []types.ID{"v1", "v2"} {
		wg.Add(1)
		go func(i int, vid types.ID) {
			defer wg.Done()
			_, err := f.svc.Create(ctx, CreateCommand{
				VehicleID:     vid,
				DriverID:      "d1",
				Origin:        "a",
				Destination:   "b",
				CargoWeightKg: 10,
			})
			errs[i] = err
		}(i, vid)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else if err != ErrDriverUnavailable {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}

	// The losing vehicle must have been released by the compensating undo.
	var reserved int
	for _, vid := range []types.ID{"v1", "v2"} {
		v, _ := f.vehicles.Get(ctx, vid)
		if v.Status == vehicle.StatusOnTrip {
			reserved++
		}
	}
	if reserved != 1 {
		t.Fatalf("expected exactly one reserved vehicle, got %d", reserved)
	}
}
