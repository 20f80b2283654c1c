// README: Driver record and duty status definitions.
package driver

import (
	"errors"
	"time"

	"fleetflow/internal/types"
)

var (
	ErrNotFound      = errors.New("driver not found")
	ErrConflict      = errors.New("driver conflict")
	ErrBadRequest    = errors.New("bad request")
	ErrInvalidStatus = errors.New("invalid duty status change")
)

type Status string

const (
	// StatusOnDuty means the driver is reservable for a new trip.
	StatusOnDuty Status = "on_duty"
	// StatusOnTrip means the driver is reserved by a draft or dispatched trip.
	StatusOnTrip  Status = "on_trip"
	StatusOffDuty Status = "off_duty"
	// StatusSuspended is set by the safety process and always wins over duty
	// state; a suspended driver is never eligible.
	StatusSuspended Status = "suspended"
)

type Driver struct {
	ID              types.ID  `json:"id"`
	Name            string    `json:"name"`
	LicenseCategory string    `json:"license_category"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
