// README: Maintenance log record; an open log holds its vehicle in the shop.
package maintenance

import (
	"errors"
	"time"

	"fleetflow/internal/types"
)

var (
	ErrNotFound      = errors.New("maintenance log not found")
	ErrVehicleOnTrip = errors.New("vehicle is on a trip")
	ErrBadRequest    = errors.New("bad request")
)

type Status string

const (
	// StatusInShop marks an open log; the vehicle is forced out of eligibility.
	StatusInShop Status = "in_shop"
	StatusClosed Status = "closed"
)

type Log struct {
	ID        types.ID    `json:"id"`
	VehicleID types.ID    `json:"vehicle_id"`
	Issue     string      `json:"issue"`
	Date      time.Time   `json:"date"`
	Cost      types.Money `json:"cost"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	ClosedAt  *time.Time  `json:"closed_at,omitempty"`
}
