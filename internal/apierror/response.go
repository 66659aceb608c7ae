package apierror

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes a ProblemDetails response to the gin context, setting
// the Content-Type and, when present, the Retry-After header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}
	c.JSON(problem.Status, problem)
}

// GetRequestID extracts the request ID from the gin context, falling back
// to the X-Request-ID header.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError creates a 400 response carrying per-field errors.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "One or more fields failed validation",
		RequestID:   requestID,
		UserMessage: "Please check your input and try again",
		Errors:      errors,
	}
}

// NewBadRequestError creates a 400 response for malformed requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewUnauthorizedError creates a 401 response.
func NewUnauthorizedError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUnauthorized,
		Title:       TitleUnauthorized,
		Status:      http.StatusUnauthorized,
		Detail:      "A user identity is required to access this resource",
		RequestID:   requestID,
		UserMessage: "Please sign in to continue",
	}
}

// NewNotFoundError creates a 404 response.
func NewNotFoundError(requestID, resource string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("%s was not found", resource),
		RequestID:   requestID,
		UserMessage: fmt.Sprintf("The requested %s could not be found", resource),
	}
}

// NewProfileMissingError creates a 412 response for recording attempts made
// before a sleep profile was saved.
func NewProfileMissingError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeProfileMissing,
		Title:       TitleProfileMissing,
		Status:      http.StatusPreconditionFailed,
		Detail:      "A sleep profile must be saved before recording daily sleep",
		RequestID:   requestID,
		UserMessage: "Set up your sleep profile first",
	}
}

// NewInsufficientDataError creates a 422 response for analytics requests
// with no qualifying entries in the window.
func NewInsufficientDataError(requestID string, period string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInsufficientData,
		Title:       TitleInsufficientData,
		Status:      http.StatusUnprocessableEntity,
		Detail:      fmt.Sprintf("No sleep entries recorded in the requested %s window", period),
		RequestID:   requestID,
		UserMessage: "Record a few nights of sleep to unlock analytics",
	}
}

// NewInternalError creates a 500 response. The underlying error is
// intentionally hidden from the client and should be logged server-side.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}

// NewStorageUnavailableError creates a 503 response for persistence
// adapter failures. retryAfter is in seconds.
func NewStorageUnavailableError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeStorageUnavailable,
		Title:       TitleStorageUnavailable,
		Status:      http.StatusServiceUnavailable,
		Detail:      "The sleep data store is temporarily unavailable",
		RequestID:   requestID,
		UserMessage: "Service is temporarily unavailable. Please try again later.",
		RetryAfter:  &retryAfter,
	}
}
