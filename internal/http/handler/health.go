package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"projectapi/internal/http/middleware"
)

// ReadinessChecker is a dependency that can report whether it is usable.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// HealthCheck godoc
// @Summary      Readiness probe
// @Description  Checks database and object storage connectivity
// @Tags         ops
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  errorPayload
// @Router       /health [get]
func HealthCheck(db *sql.DB, store ReadinessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			middleware.SetError(c, err)
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "database unavailable")
		}
		status := fiber.Map{"status": "healthy", "database": "ok"}
		if store != nil {
			if err := store.Ready(ctx); err != nil {
				middleware.SetError(c, err)
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "storage unavailable")
			}
			status["storage"] = "ok"
		}
		return c.Status(fiber.StatusOK).JSON(status)
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Metrics exposes g in the Prometheus text format. Scrapes are traced like any other HTTP call.
func Metrics(g prometheus.Gatherer) fiber.Handler {
	h := promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	return adaptor.HTTPHandler(otelhttp.NewHandler(h, "metrics"))
}
