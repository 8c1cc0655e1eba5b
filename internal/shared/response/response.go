package response

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success writes the standard success envelope.
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the standard error envelope. Details is meant for the
// caller; internals never leak here.
func ErrorResponse(c *gin.Context, statusCode int, message string, details interface{}) {
	if err, ok := details.(error); ok {
		details = err.Error()
	}
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Message: message,
			Details: details,
		},
	})
}
