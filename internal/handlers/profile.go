package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftwell/backend/internal/apierror"
	"github.com/driftwell/backend/internal/models"
	"github.com/driftwell/backend/internal/service"
)

// ProfileHandler handles sleep profile requests.
type ProfileHandler struct {
	sleepService service.SleepService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(sleepService service.SleepService) *ProfileHandler {
	return &ProfileHandler{sleepService: sleepService}
}

// SaveProfile handles PUT /api/v1/profile
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	profile, err := h.sleepService.SaveProfile(c.Request.Context(), userID, &req)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.sleepService.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, service.ErrProfileMissing) {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "sleep profile"))
		return
	}
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, profile)
}
