package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/backend/internal/logger"
	"github.com/driftwell/backend/internal/service"
)

// AnalyticsHandler serves the composed sleep analytics snapshot.
type AnalyticsHandler struct {
	sleepService service.SleepService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(sleepService service.SleepService) *AnalyticsHandler {
	return &AnalyticsHandler{sleepService: sleepService}
}

// GetSleepAnalytics handles GET /api/v1/analytics/sleep
func (h *AnalyticsHandler) GetSleepAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	period, ok := periodFromQuery(c)
	if !ok {
		return
	}

	analytics, err := h.sleepService.GetSleepAnalytics(c.Request.Context(), userID, period)
	if err != nil {
		log := logger.Ctx(c.Request.Context())
		log.Debug("analytics unavailable", logger.String("period", string(period)), logger.Err(err))
		writeServiceError(c, err, period)
		return
	}

	c.JSON(http.StatusOK, analytics)
}
