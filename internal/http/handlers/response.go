// Package handlers implements the pigbot game API consumed by the Telegram
// bot frontends.
//
// This file holds the response helpers every endpoint uses. Errors always
// carry an ErrorResponse with a stable code; 5xx responses are logged with
// the request-scoped logger.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fr0staman/pigbot/internal/http/middleware"
	"github.com/fr0staman/pigbot/internal/services"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go)
	Code string `json:"code" example:"no_pig"`
	// Human-readable message
	Message string `json:"message" example:"no pig"`
}

// fail aborts with an ErrorResponse.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail for router fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// retryAfter renders the countdown as whole seconds, at least 1.
func retryAfter(e *services.AlreadyFedError) string {
	return strconv.FormatInt(max(int64(e.Next.Duration().Seconds()), 1), 10)
}
