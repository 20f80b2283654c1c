package access

import "testing"

func TestCan_Table(t *testing.T) {
	cases := []struct {
		role Role
		op   Operation
		want bool
	}{
		{RoleManager, OpDeleteVehicle, true},
		{RoleManager, OpOpenMaintenance, true},
		{RoleManager, OpCreateUser, true},

		{RoleDispatcher, OpCreateTrip, true},
		{RoleDispatcher, OpUpdateTripStatus, true},
		{RoleDispatcher, OpReadVehicles, true},
		{RoleDispatcher, OpOpenMaintenance, false},
		{RoleDispatcher, OpRegisterVehicle, false},
		{RoleDispatcher, OpSetDriverDuty, false},
		{RoleDispatcher, OpCreateUser, false},

		{RoleSafety, OpSuspendDriver, true},
		{RoleSafety, OpUnsuspendDriver, true},
		{RoleSafety, OpReadDrivers, true},
		{RoleSafety, OpReadTrips, true},
		{RoleSafety, OpCreateTrip, false},
		{RoleSafety, OpReadVehicles, false},
		{RoleSafety, OpSetDriverDuty, false},

		{RoleAnalyst, OpReadAnalytics, true},
		{RoleAnalyst, OpReadMaintenance, true},
		{RoleAnalyst, OpReadUsers, true},
		{RoleAnalyst, OpCreateTrip, false},
		{RoleAnalyst, OpSuspendDriver, false},
		{RoleDispatcher, OpUnsuspendDriver, false},

		{Role("intern"), OpReadTrips, false},
		{Role(""), OpReadTrips, false},
	}
	for _, tc := range cases {
		if got := Can(tc.role, tc.op); got != tc.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tc.role, tc.op, got, tc.want)
		}
	}
}

func TestCheck_ReturnsForbidden(t *testing.T) {
	if err := Check(RoleDispatcher, OpOpenMaintenance); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := Check(RoleManager, OpOpenMaintenance); err != nil {
		t.Fatalf("manager should pass, got %v", err)
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleManager, RoleDispatcher, RoleSafety, RoleAnalyst} {
		if !ValidRole(r) {
			t.Errorf("expected %s valid", r)
		}
	}
	if ValidRole("admin") {
		t.Error("unknown role must be invalid")
	}
}
