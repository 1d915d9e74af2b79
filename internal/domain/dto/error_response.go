package dto

import (
	"errors"
	"time"

	"github.com/guttosm/sessioncal/internal/apperror"
)

// ErrorResponse is the JSON body of every failed request.
//
// Fields:
//   - Message: human readable summary.
//   - ErrorDetails: underlying error text, if any.
//   - Code: apperror code when the failure is a domain error (e.g., "NOT_FOUND").
//   - Timestamp: when the response was built (UTC).
type ErrorResponse struct {
	Message      string    `json:"message"`
	ErrorDetails string    `json:"error,omitempty"`
	Code         string    `json:"code,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// inner error. Domain errors contribute their code.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err == nil {
		return resp
	}
	resp.ErrorDetails = err.Error()
	var ae *apperror.AppError
	if errors.As(err, &ae) {
		resp.Code = string(ae.Code())
	}
	return resp
}

// FromAppError renders a domain error: its message becomes the response
// message and no details are repeated.
func FromAppError(ae *apperror.AppError) ErrorResponse {
	return ErrorResponse{Message: ae.Message(), Code: string(ae.Code()), Timestamp: time.Now().UTC()}
}
