package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope for the machine-facing endpoints.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes data in the envelope. Success follows the status code.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: statusCode < 400,
		Data:    data,
	})
}

// ErrorResponse writes an error envelope and aborts.
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
