package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// respondError logs and aborts with the standard error envelope.
func respondError(c *gin.Context, logger *slog.Logger, status int, code, message string, details any) {
	logger.Warn("http.error",
		"status", status,
		"code", code,
		"message", message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", c.GetString(requestIDKey),
	)
	c.AbortWithStatusJSON(status, errorResponse{
		Error: errorBody{Code: code, Message: message, Details: details},
	})
}
