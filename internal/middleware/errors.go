package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sessioncal/internal/apperror"
	"github.com/guttosm/sessioncal/internal/domain/dto"
)

// ErrorHandler renders the last error attached to the context with c.Error,
// unless a response was already written.
//
// Behavior:
//   - *apperror.AppError in the chain: status from HTTPStatus(), message and code from the error.
//   - Any other error: 500 with a generic message and the error text as details.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err

	var ae *apperror.AppError
	if errors.As(err, &ae) {
		c.AbortWithStatusJSON(ae.HTTPStatus(), dto.FromAppError(ae))
		return
	}
	AbortWithError(c, http.StatusInternalServerError, "Internal server error", err)
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
