package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/backend/internal/apierror"
	"github.com/driftwell/backend/internal/models"
	"github.com/driftwell/backend/internal/service"
)

// SessionHandler handles breathing session recording and queries.
type SessionHandler struct {
	sleepService service.SleepService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sleepService service.SleepService) *SessionHandler {
	return &SessionHandler{sleepService: sleepService}
}

// RecordSession handles POST /api/v1/breathing/sessions
func (h *SessionHandler) RecordSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.RecordBreathingSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	session, err := h.sleepService.RecordBreathingSession(c.Request.Context(), userID, &req)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSessions handles GET /api/v1/breathing/sessions
func (h *SessionHandler) GetSessions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	period, ok := periodFromQuery(c)
	if !ok {
		return
	}

	sessions, err := h.sleepService.GetBreathingSessions(c.Request.Context(), userID, period)
	if err != nil {
		writeServiceError(c, err, period)
		return
	}
	if sessions == nil {
		sessions = []models.BreathingSession{}
	}

	c.JSON(http.StatusOK, gin.H{
		"period":   period,
		"sessions": sessions,
	})
}
