package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/driftwell/backend/internal/apierror"
	"github.com/driftwell/backend/internal/logger"
	"github.com/driftwell/backend/internal/models"
	"github.com/driftwell/backend/internal/service"
)

// storageRetryAfterSeconds is the Retry-After hint for 503 responses.
const storageRetryAfterSeconds = 30

// currentUserID extracts the authenticated user ID set by the identity
// middleware. Writes a 401 problem and returns false when absent.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return userID.(string), true
}

// periodFromQuery parses the period query parameter, defaulting to month.
// Writes a validation problem and returns false for unknown values.
func periodFromQuery(c *gin.Context) (models.Period, bool) {
	period := models.Period(c.DefaultQuery("period", string(models.PeriodMonth)))
	if !period.Valid() {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
			{Field: "period", Message: "must be one of week, month, quarter", Code: "invalid_value"},
		}))
		return "", false
	}
	return period, true
}

// writeServiceError maps facade error kinds to problem responses.
func writeServiceError(c *gin.Context, err error, period models.Period) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrMalformedInput):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors(err)))
	case errors.Is(err, service.ErrProfileMissing):
		apierror.WriteProblem(c, apierror.NewProfileMissingError(requestID))
	case errors.Is(err, service.ErrInsufficientData):
		apierror.WriteProblem(c, apierror.NewInsufficientDataError(requestID, string(period)))
	case errors.Is(err, service.ErrStorageUnavailable):
		logger.Ctx(c.Request.Context()).Error("storage unavailable", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewStorageUnavailableError(requestID, storageRetryAfterSeconds))
	default:
		logger.Ctx(c.Request.Context()).Error("unexpected service error", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}

// fieldErrors flattens validator errors into per-field problem entries.
func fieldErrors(err error) []apierror.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apierror.FieldError{{Field: "request", Message: err.Error()}}
	}
	out := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apierror.FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			Code:    fe.Tag(),
		})
	}
	return out
}
