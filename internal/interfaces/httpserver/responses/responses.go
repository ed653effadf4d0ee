package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// Envelope is the uniform response shape: success plus either data or error.
type Envelope struct {
	Success bool          `json:"success"`
	Data    any           `json:"data,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// ErrorPayload carries machine readable error details.
type ErrorPayload struct {
	Code      string `json:"code,omitempty"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// HandleError maps domain errors onto HTTP status codes and the error
// envelope.
func HandleError(c *gin.Context, err error, message string) {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		status := platformerrors.ErrorTypeToHTTPStatus(platformErr.GetErrorType())
		c.AbortWithStatusJSON(status, Envelope{
			Success: false,
			Error: &ErrorPayload{
				Code:      platformErr.GetUUID(),
				Type:      string(platformErr.GetErrorType()),
				Message:   message,
				RequestID: platformErr.GetRequestID(),
			},
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Error: &ErrorPayload{
			Type:    string(platformerrors.ErrorTypeInternal),
			Message: message,
		},
	})
}

// HandleNewError creates a typed error at the route layer and writes it.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message, uuid string) {
	err := platformerrors.NewError(c.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, uuid)
	HandleError(c, err, message)
}
