package apperrors

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the wire shape of every failure. Success is always
// false and the message is human-readable.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    ErrorCode   `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// GinErrorHandler converts AppError values into HTTP responses. Debug
// mode (development config) surfaces downstream technical causes;
// production collapses them to a generic retry message.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	message := appErr.Message
	details := appErr.Details
	if !h.Debug {
		if appErr.Code.IsDownstream() {
			message = "Form submission failed. Please try again."
			details = nil
		} else if appErr.Code == CodeInternalError {
			message = "Internal server error"
			details = nil
		}
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		slog.Error("server error", "code", appErr.Code, "error", appErr.Error())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Message: message,
		Code:    appErr.Code,
		Details: details,
	})
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
