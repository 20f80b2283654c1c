// README: Maintenance log handlers: open, close, list.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/access"
	"fleetflow/internal/modules/maintenance"
	"fleetflow/internal/types"
)

type MaintenanceHandler struct {
	maintenance *maintenance.Service
}

func NewMaintenanceHandler(svc *maintenance.Service) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: svc}
}

type openMaintenanceReq struct {
	VehicleID string      `json:"vehicle_id"`
	Issue     string      `json:"issue"`
	Date      string      `json:"date"`
	Cost      types.Money `json:"cost"`
}

func (h *MaintenanceHandler) Open(c *gin.Context) {
	if !authorize(c, access.OpOpenMaintenance) {
		return
	}
	var req openMaintenanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}
	l, err := h.maintenance.Open(c.Request.Context(), maintenance.OpenCommand{
		VehicleID: types.ID(req.VehicleID),
		Issue:     req.Issue,
		Date:      date,
		Cost:      req.Cost,
	})
	if err != nil {
		writeMaintenanceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, l)
}

func (h *MaintenanceHandler) Close(c *gin.Context) {
	if !authorize(c, access.OpCloseMaintenance) {
		return
	}
	l, err := h.maintenance.Close(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeMaintenanceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, l)
}

func (h *MaintenanceHandler) List(c *gin.Context) {
	if !authorize(c, access.OpReadMaintenance) {
		return
	}
	logs, err := h.maintenance.List(c.Request.Context())
	if err != nil {
		writeMaintenanceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"maintenance_logs": logs})
}
