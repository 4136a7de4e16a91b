package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"tokoshop/pkg/metrics"
)

// Metrics records request count and latency per route pattern.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		// route pattern, not the raw path, keeps label cardinality bounded
		path := c.Route().Path
		m.ObserveRequest(c.Method(), path, status, time.Since(start).Seconds())
		return err
	}
}
