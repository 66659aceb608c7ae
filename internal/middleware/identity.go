package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/driftwell/backend/internal/apierror"
	"github.com/driftwell/backend/internal/logger"
)

// Identity resolves the caller's user ID. Authentication is performed by
// an upstream gateway, which forwards the verified identity in the
// X-User-ID header; requests without it are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
			c.Abort()
			return
		}

		c.Set("user_id", userID)

		ctx := logger.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
