package vehicle_test

import (
	"context"
	"errors"
	"testing"

	"fleetflow/internal/modules/availability"
	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

func newTestService() (*vehicle.Service, *vehicle.MemoryStore, *availability.MemoryIndex) {
	store := vehicle.NewMemoryStore()
	index := availability.NewMemoryIndex()
	return vehicle.NewService(store, index), store, index
}

func TestRegister_DefaultsToIdleAndIndexed(t *testing.T) {
	svc, _, index := newTestService()
	ctx := context.Background()

	v, err := svc.Register(ctx, vehicle.RegisterCommand{
		LicensePlate: "KA-01-AB-1234", Model: "Tata Ace", Type: "mini_truck", MaxCapacityKg: 750,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if v.Status != vehicle.StatusIdle {
		t.Fatalf("expected idle, got %s", v.Status)
	}
	if v.ID == "" {
		t.Fatal("expected generated id")
	}
	ids, _ := index.VehicleIDs(ctx)
	if len(ids) != 1 || ids[0] != v.ID {
		t.Fatalf("new vehicle should be an availability candidate, got %v", ids)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	cases := []vehicle.RegisterCommand{
		{Model: "m", Type: "t", MaxCapacityKg: 10},
		{LicensePlate: "p", Type: "t", MaxCapacityKg: 10},
		{LicensePlate: "p", Model: "m", Type: "t"},
		{LicensePlate: "p", Model: "m", Type: "t", MaxCapacityKg: -5},
		{LicensePlate: "p", Model: "m", Type: "t", MaxCapacityKg: 10, OdometerKm: -1},
	}
	for i, cmd := range cases {
		if _, err := svc.Register(context.Background(), cmd); !errors.Is(err, vehicle.ErrBadRequest) {
			t.Errorf("case %d: expected ErrBadRequest, got %v", i, err)
		}
	}
}

func TestRegister_DuplicatePlate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	cmd := vehicle.RegisterCommand{LicensePlate: "KA-01-AB-1234", Model: "m", Type: "t", MaxCapacityKg: 10}
	if _, err := svc.Register(ctx, cmd); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, cmd); !errors.Is(err, vehicle.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdate_OdometerNeverDecreases(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	v, err := svc.Register(ctx, vehicle.RegisterCommand{
		LicensePlate: "p", Model: "m", Type: "t", MaxCapacityKg: 10, OdometerKm: 5000,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.Update(ctx, v.ID, vehicle.UpdateCommand{Model: "m2", Type: "t", MaxCapacityKg: 20, OdometerKm: 6000})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.OdometerKm != 6000 || updated.Model != "m2" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := svc.Update(ctx, v.ID, vehicle.UpdateCommand{Model: "m2", Type: "t", MaxCapacityKg: 20, OdometerKm: 5999}); !errors.Is(err, vehicle.ErrBadRequest) {
		t.Fatalf("rollback odometer: expected ErrBadRequest, got %v", err)
	}
}

func TestDelete_GuardedByReferences(t *testing.T) {
	svc, store, index := newTestService()
	ctx := context.Background()
	v, err := svc.Register(ctx, vehicle.RegisterCommand{LicensePlate: "p", Model: "m", Type: "t", MaxCapacityKg: 10})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	referenced := true
	store.SetReferencedCheck(func(types.ID) bool { return referenced })

	if err := svc.Delete(ctx, v.ID); !errors.Is(err, vehicle.ErrConflict) {
		t.Fatalf("referenced delete: expected ErrConflict, got %v", err)
	}

	referenced = false
	if err := svc.Delete(ctx, v.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, v.ID); !errors.Is(err, vehicle.ErrNotFound) {
		t.Fatalf("expected vehicle gone, got %v", err)
	}
	ids, _ := index.VehicleIDs(ctx)
	if len(ids) != 0 {
		t.Fatalf("deleted vehicle still indexed: %v", ids)
	}
	if err := svc.Delete(ctx, "ghost"); !errors.Is(err, vehicle.ErrNotFound) {
		t.Fatalf("unknown delete: expected ErrNotFound, got %v", err)
	}
}
