// README: Driver CRUD, duty/suspension status changes, availability listing.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/access"
	"fleetflow/internal/modules/availability"
	"fleetflow/internal/modules/driver"
	"fleetflow/internal/types"
)

type DriverHandler struct {
	drivers      *driver.Service
	availability *availability.Service
}

func NewDriverHandler(svc *driver.Service, avail *availability.Service) *DriverHandler {
	return &DriverHandler{drivers: svc, availability: avail}
}

type addDriverReq struct {
	Name            string `json:"name"`
	LicenseCategory string `json:"license_category"`
}

func (h *DriverHandler) Add(c *gin.Context) {
	if !authorize(c, access.OpAddDriver) {
		return
	}
	var req addDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	d, err := h.drivers.Add(c.Request.Context(), driver.AddCommand{
		Name:            req.Name,
		LicenseCategory: req.LicenseCategory,
	})
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

func (h *DriverHandler) Get(c *gin.Context) {
	if !authorize(c, access.OpReadDrivers) {
		return
	}
	d, err := h.drivers.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *DriverHandler) List(c *gin.Context) {
	if !authorize(c, access.OpReadDrivers) {
		return
	}
	drivers, err := h.drivers.List(c.Request.Context())
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"drivers": drivers})
}

// ListAvailable serves the dispatch screen: candidates come from the
// availability index and are re-checked against the store before leaving.
func (h *DriverHandler) ListAvailable(c *gin.Context) {
	if !authorize(c, access.OpReadDrivers) {
		return
	}
	drivers, err := h.availability.EligibleDrivers(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"drivers": drivers})
}

type updateDriverReq struct {
	Name            string `json:"name"`
	LicenseCategory string `json:"license_category"`
}

func (h *DriverHandler) Update(c *gin.Context) {
	if !authorize(c, access.OpUpdateDriver) {
		return
	}
	var req updateDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	d, err := h.drivers.Update(c.Request.Context(), types.ID(c.Param("id")), req.Name, req.LicenseCategory)
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

type setDriverStatusReq struct {
	Status string `json:"status"`
}

// SetStatus routes duty toggles and suspension to different permissions:
// suspension and reinstatement are open to the safety role, ordinary duty
// changes are not. Reinstatement is the suspended -> off_duty edge.
func (h *DriverHandler) SetStatus(c *gin.Context) {
	var req setDriverStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	target := driver.Status(req.Status)
	op := access.OpSetDriverDuty
	switch target {
	case driver.StatusSuspended:
		op = access.OpSuspendDriver
	case driver.StatusOffDuty:
		d, err := h.drivers.Get(c.Request.Context(), types.ID(c.Param("id")))
		if err != nil {
			writeDriverError(c, err)
			return
		}
		if d.Status == driver.StatusSuspended {
			op = access.OpUnsuspendDriver
		}
	}
	if !authorize(c, op) {
		return
	}
	d, err := h.drivers.SetStatus(c.Request.Context(), types.ID(c.Param("id")), target)
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *DriverHandler) Delete(c *gin.Context) {
	if !authorize(c, access.OpDeleteDriver) {
		return
	}
	if err := h.drivers.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"message": "driver deleted"})
}
