// README: Trip aggregate, status machine, and pure constraint checks.
package trip

import (
	"errors"
	"time"

	"fleetflow/internal/types"
)

var (
	ErrVehicleUnavailable = errors.New("vehicle unavailable")
	ErrDriverUnavailable  = errors.New("driver unavailable")
	ErrCapacityExceeded   = errors.New("cargo weight exceeds vehicle capacity")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotFound           = errors.New("trip not found")
	ErrConflict           = errors.New("trip state conflict")
	ErrBadRequest         = errors.New("bad request")
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusDispatched Status = "dispatched"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusDispatched, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AllowedTransitions represents the trip state flow as code. completed and
// cancelled are terminal.
var AllowedTransitions = map[Status][]Status{
	StatusDraft:      {StatusDispatched, StatusCancelled},
	StatusDispatched: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from -> to is an allowed edge. Re-submitting
// the current status is not a transition and is rejected.
func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func Terminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CheckCapacity rejects cargo heavier than the vehicle's maximum payload.
// Equality passes.
func CheckCapacity(cargoKg, maxCapacityKg int) error {
	if cargoKg > maxCapacityKg {
		return ErrCapacityExceeded
	}
	return nil
}

type Trip struct {
	ID                types.ID    `json:"id"`
	VehicleID         types.ID    `json:"vehicle_id"`
	DriverID          types.ID    `json:"driver_id"`
	Origin            string      `json:"origin"`
	Destination       string      `json:"destination"`
	CargoWeightKg     int         `json:"cargo_weight_kg"`
	EstimatedFuelCost types.Money `json:"estimated_fuel_cost"`
	Status            Status      `json:"status"`
	StatusVersion     int         `json:"-"`
	CreatedAt         time.Time   `json:"created_at"`
	DispatchedAt      *time.Time  `json:"dispatched_at,omitempty"`
	CompletedAt       *time.Time  `json:"completed_at,omitempty"`
	CancelledAt       *time.Time  `json:"cancelled_at,omitempty"`
}
