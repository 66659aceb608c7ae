package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/backend/internal/apierror"
	"github.com/driftwell/backend/internal/models"
	"github.com/driftwell/backend/internal/service"
)

// SleepHandler handles daily sleep recording and trend queries.
type SleepHandler struct {
	sleepService service.SleepService
}

// NewSleepHandler creates a new sleep handler.
func NewSleepHandler(sleepService service.SleepService) *SleepHandler {
	return &SleepHandler{sleepService: sleepService}
}

// RecordDailySleep handles POST /api/v1/sleep
func (h *SleepHandler) RecordDailySleep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.RecordDailySleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	entry, err := h.sleepService.RecordDailySleep(c.Request.Context(), userID, &req)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetSleepTrends handles GET /api/v1/sleep/trends
// An empty list is a valid result here, unlike analytics.
func (h *SleepHandler) GetSleepTrends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	period, ok := periodFromQuery(c)
	if !ok {
		return
	}

	trends, err := h.sleepService.GetSleepTrends(c.Request.Context(), userID, period)
	if err != nil {
		writeServiceError(c, err, period)
		return
	}
	if trends == nil {
		trends = []models.SleepTrendEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"period": period,
		"trends": trends,
	})
}
