// README: Dashboard KPI handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/access"
	"fleetflow/internal/modules/analytics"
)

type AnalyticsHandler struct {
	analytics *analytics.Service
}

func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: svc}
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	if !authorize(c, access.OpReadAnalytics) {
		return
	}
	d, err := h.analytics.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, d)
}
