// Package middleware contains the Gin middleware shared by the pigbot API.
//
// Request correlation, access logging and panic recovery live here and are
// installed in this order:
//
//	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
//
// Bodies and headers are never logged; player names and bearer tokens stay
// out of the access log.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
	maxQueryLog     = 512
)

// RequestID keeps an incoming X-Request-ID or mints a UUID and echoes it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger attaches a request-scoped logger and writes one access line when
// the chain returns. The client is read afterwards so ServiceAuth may run
// later in the chain.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		fields := log.With().
			Str("request_id", requestIDOf(c)).
			Str("method", c.Request.Method).
			Str("path", route).
			Str("remote_ip", c.ClientIP())
		if q := c.Request.URL.RawQuery; q != "" {
			fields = fields.Str("query", truncate(q, maxQueryLog))
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			fields = fields.Str("trace_id", sc.TraceID().String())
		}
		reqLog := fields.Logger()
		c.Set(loggerKey, &reqLog)

		c.Next()

		status := c.Writer.Status()
		ev := reqLog.WithLevel(accessLevel(status, len(c.Errors) > 0)).
			Int("status", status).
			Dur("latency", time.Since(began)).
			Int("bytes_out", c.Writer.Size())
		if client := ClientFrom(c); client != "" {
			ev = ev.Str("client", client)
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Msg("request")
	}
}

func accessLevel(status int, handlerErrors bool) zerolog.Level {
	switch {
	case handlerErrors || status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}

// Recovery converts a panic into a JSON 500. When the handler already wrote
// part of a response only the status is set.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			id := requestIDOf(c)
			log.Error().
				Str("request_id", id).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Header(requestIDHeader, id)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": id,
				"code":       "internal_error",
				"message":    "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the logger installed by Logger, falling back to the
// global one.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if lg, ok := c.Value(loggerKey).(*zerolog.Logger); ok {
		return lg
	}
	return &log.Logger
}

func requestIDOf(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// truncate cuts s to n bytes plus an ellipsis. n <= 0 keeps s.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
