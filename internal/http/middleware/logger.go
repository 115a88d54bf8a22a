package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// errorLocalKey holds an internal error for the request log. It never reaches the client.
const errorLocalKey = "internal_error"

// SetError records err so that Logger includes it in the request entry.
func SetError(c *fiber.Ctx, err error) {
	c.Locals(errorLocalKey, err)
}

// Logger is a middleware that logs each HTTP request through log.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - user_id (set by Auth on protected routes)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - trace_id (when the request is sampled)
// - error (internal cause recorded with SetError)
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		uid, _ := c.Locals(UserIDLocalKey).(string)
		status := responseStatus(c, err)
		latency := float64(time.Since(start).Microseconds()) / 1000

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("latency", latency),
		}
		if uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}
		if cause, ok := c.Locals(errorLocalKey).(error); ok {
			fields = append(fields, zap.Error(cause))
		} else if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
		return err
	}
}

// responseStatus resolves the status the client will see. Errors returned down
// the chain are rendered later by the app's error handler.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
