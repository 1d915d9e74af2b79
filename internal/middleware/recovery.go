package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sessioncal/internal/logger"
)

// RecoveryMiddleware returns a Gin middleware that recovers from panics in
// handlers, logs the stack trace and answers with a standardized JSON error.
//
// Behavior:
//   - Logs the panic value, the request ID and the stack through the "http" logger.
//   - Returns a 500 Internal Server Error response using dto.NewErrorResponse.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				rid, _ := c.Get(RequestIDKey)
				logger.With("http").Error().
					Str("request_id", toString(rid)).
					Str("panic", fmt.Sprintf("%v", r)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				AbortWithError(c, http.StatusInternalServerError, "Internal server error", fmt.Errorf("%v", r))
			}
		}()

		c.Next()
	}
}
