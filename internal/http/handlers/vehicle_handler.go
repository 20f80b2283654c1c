// README: Vehicle CRUD handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/access"
	"fleetflow/internal/modules/availability"
	"fleetflow/internal/modules/vehicle"
	"fleetflow/internal/types"
)

type VehicleHandler struct {
	vehicles     *vehicle.Service
	availability *availability.Service
}

func NewVehicleHandler(svc *vehicle.Service, avail *availability.Service) *VehicleHandler {
	return &VehicleHandler{vehicles: svc, availability: avail}
}

type registerVehicleReq struct {
	LicensePlate  string `json:"license_plate"`
	Model         string `json:"model"`
	Type          string `json:"vehicle_type"`
	MaxCapacityKg int    `json:"max_capacity_kg"`
	OdometerKm    int64  `json:"odometer_km"`
}

func (h *VehicleHandler) Register(c *gin.Context) {
	if !authorize(c, access.OpRegisterVehicle) {
		return
	}
	var req registerVehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	v, err := h.vehicles.Register(c.Request.Context(), vehicle.RegisterCommand{
		LicensePlate:  req.LicensePlate,
		Model:         req.Model,
		Type:          req.Type,
		MaxCapacityKg: req.MaxCapacityKg,
		OdometerKm:    req.OdometerKm,
	})
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, v)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	if !authorize(c, access.OpReadVehicles) {
		return
	}
	v, err := h.vehicles.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *VehicleHandler) List(c *gin.Context) {
	if !authorize(c, access.OpReadVehicles) {
		return
	}
	vehicles, err := h.vehicles.List(c.Request.Context())
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

// ListAvailable mirrors the driver endpoint: index candidates re-checked
// against the store, so a reserved vehicle never shows up.
func (h *VehicleHandler) ListAvailable(c *gin.Context) {
	if !authorize(c, access.OpReadVehicles) {
		return
	}
	vehicles, err := h.availability.EligibleVehicles(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

type updateVehicleReq struct {
	Model         string `json:"model"`
	Type          string `json:"vehicle_type"`
	MaxCapacityKg int    `json:"max_capacity_kg"`
	OdometerKm    int64  `json:"odometer_km"`
}

func (h *VehicleHandler) Update(c *gin.Context) {
	if !authorize(c, access.OpUpdateVehicle) {
		return
	}
	var req updateVehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	v, err := h.vehicles.Update(c.Request.Context(), types.ID(c.Param("id")), vehicle.UpdateCommand{
		Model:         req.Model,
		Type:          req.Type,
		MaxCapacityKg: req.MaxCapacityKg,
		OdometerKm:    req.OdometerKm,
	})
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	if !authorize(c, access.OpDeleteVehicle) {
		return
	}
	if err := h.vehicles.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeVehicleError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"message": "vehicle deleted"})
}
