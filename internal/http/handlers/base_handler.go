// README: Shared handler utilities (JSON helpers, error mapping, role gate).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/access"
	"fleetflow/internal/http/middleware"
	"fleetflow/internal/modules/driver"
	"fleetflow/internal/modules/maintenance"
	"fleetflow/internal/modules/trip"
	"fleetflow/internal/modules/user"
	"fleetflow/internal/modules/vehicle"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// authorize checks the caller's role against the operation and writes a 403
// when the gate rejects. Returns false if the request is already answered.
func authorize(c *gin.Context, op access.Operation) bool {
	if err := access.Check(middleware.CallerRole(c), op); err != nil {
		writeError(c, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrVehicleUnavailable),
		errors.Is(err, trip.ErrDriverUnavailable),
		errors.Is(err, trip.ErrCapacityExceeded),
		errors.Is(err, trip.ErrInvalidTransition),
		errors.Is(err, trip.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeVehicleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vehicle.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, vehicle.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, vehicle.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeDriverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, driver.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, driver.ErrBadRequest), errors.Is(err, driver.ErrInvalidStatus):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, driver.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeMaintenanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, maintenance.ErrNotFound), errors.Is(err, vehicle.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, maintenance.ErrVehicleOnTrip),
		errors.Is(err, maintenance.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, user.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
