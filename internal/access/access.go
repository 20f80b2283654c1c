// README: Role-to-operation allow-list; checked before any service call.
package access

import "errors"

// ErrForbidden is returned when a role is not allowed to invoke an operation.
var ErrForbidden = errors.New("forbidden")

type Role string

const (
	RoleManager    Role = "manager"
	RoleDispatcher Role = "dispatcher"
	RoleSafety     Role = "safety"
	RoleAnalyst    Role = "analyst"
)

// ValidRole reports whether r is one of the known dashboard roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleManager, RoleDispatcher, RoleSafety, RoleAnalyst:
		return true
	}
	return false
}

type Operation string

const (
	OpCreateTrip       Operation = "trip:create"
	OpUpdateTripStatus Operation = "trip:update_status"
	OpReadTrips        Operation = "trip:read"

	OpRegisterVehicle Operation = "vehicle:register"
	OpUpdateVehicle   Operation = "vehicle:update"
	OpDeleteVehicle   Operation = "vehicle:delete"
	OpReadVehicles    Operation = "vehicle:read"

	OpAddDriver       Operation = "driver:add"
	OpUpdateDriver    Operation = "driver:update"
	OpDeleteDriver    Operation = "driver:delete"
	OpReadDrivers     Operation = "driver:read"
	OpSetDriverDuty   Operation = "driver:set_duty"
	OpSuspendDriver   Operation = "driver:suspend"
	OpUnsuspendDriver Operation = "driver:unsuspend"

	OpOpenMaintenance  Operation = "maintenance:open"
	OpCloseMaintenance Operation = "maintenance:close"
	OpReadMaintenance  Operation = "maintenance:read"

	OpCreateUser Operation = "user:create"
	OpReadUsers  Operation = "user:read"
	OpDeleteUser Operation = "user:delete"

	OpReadAnalytics Operation = "analytics:read"
)

// allowed is the static allow-list. Managers bypass it entirely.
var allowed = map[Role]map[Operation]bool{
	RoleDispatcher: set(
		OpCreateTrip, OpUpdateTripStatus, OpReadTrips,
		OpReadVehicles, OpReadDrivers,
	),
	RoleSafety: set(
		OpReadDrivers, OpReadTrips, OpSuspendDriver, OpUnsuspendDriver,
	),
	RoleAnalyst: set(
		OpReadTrips, OpReadVehicles, OpReadDrivers,
		OpReadMaintenance, OpReadUsers, OpReadAnalytics,
	),
}

// Can reports whether role may invoke op.
func Can(role Role, op Operation) bool {
	if role == RoleManager {
		return true
	}
	return allowed[role][op]
}

// Check returns ErrForbidden when role may not invoke op.
func Check(role Role, op Operation) error {
	if !Can(role, op) {
		return ErrForbidden
	}
	return nil
}

func set(ops ...Operation) map[Operation]bool {
	m := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}
