// README: Trip handlers: create (reserving resources), status updates, reads.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/access"
	"fleetflow/internal/modules/trip"
	"fleetflow/internal/types"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(svc *trip.Service) *TripHandler {
	return &TripHandler{trips: svc}
}

type createTripReq struct {
	VehicleID         string      `json:"vehicle_id"`
	DriverID          string      `json:"driver_id"`
	Origin            string      `json:"origin"`
	Destination       string      `json:"destination"`
	CargoWeightKg     int         `json:"cargo_weight_kg"`
	EstimatedFuelCost types.Money `json:"estimated_fuel_cost"`
}

func (h *TripHandler) Create(c *gin.Context) {
	if !authorize(c, access.OpCreateTrip) {
		return
	}
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	t, err := h.trips.Create(c.Request.Context(), trip.CreateCommand{
		VehicleID:         types.ID(req.VehicleID),
		DriverID:          types.ID(req.DriverID),
		Origin:            req.Origin,
		Destination:       req.Destination,
		CargoWeightKg:     req.CargoWeightKg,
		EstimatedFuelCost: req.EstimatedFuelCost,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

type updateTripReq struct {
	Status string `json:"status"`
}

func (h *TripHandler) UpdateStatus(c *gin.Context) {
	if !authorize(c, access.OpUpdateTripStatus) {
		return
	}
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing trip id")
		return
	}
	var req updateTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	t, err := h.trips.UpdateStatus(c.Request.Context(), types.ID(id), trip.Status(req.Status))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) Get(c *gin.Context) {
	if !authorize(c, access.OpReadTrips) {
		return
	}
	t, err := h.trips.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) List(c *gin.Context) {
	if !authorize(c, access.OpReadTrips) {
		return
	}
	status := trip.Status(c.Query("status"))
	if status != "" && !trip.ValidStatus(status) {
		writeError(c, http.StatusBadRequest, "unknown status filter")
		return
	}
	trips, err := h.trips.List(c.Request.Context(), status)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": trips})
}
