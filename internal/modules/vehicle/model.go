// README: Vehicle record and status definitions.
package vehicle

import (
	"errors"
	"time"

	"fleetflow/internal/types"
)

var (
	ErrNotFound   = errors.New("vehicle not found")
	ErrConflict   = errors.New("vehicle conflict")
	ErrBadRequest = errors.New("bad request")
)

type Status string

const (
	// StatusIdle means the vehicle is reservable for a new trip.
	StatusIdle Status = "idle"
	// StatusOnTrip means the vehicle is reserved by a draft or dispatched trip.
	StatusOnTrip Status = "on_trip"
	// StatusInShop means an open maintenance log holds the vehicle out of service.
	StatusInShop Status = "in_shop"
)

type Vehicle struct {
	ID            types.ID  `json:"id"`
	LicensePlate  string    `json:"license_plate"`
	Model         string    `json:"model"`
	Type          string    `json:"vehicle_type"`
	MaxCapacityKg int       `json:"max_capacity_kg"`
	OdometerKm    int64     `json:"odometer_km"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
