package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
	"github.com/jhoicas/utility-backoffice-api/pkg/metrics"
)

// RequestLogger registra cada petición y alimenta las métricas HTTP.
// El label de ruta es el patrón registrado (/api/bills/:id), no la URL concreta.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler escriba la respuesta para conocer el status final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Route().Path
		m.ObserveHTTP(c.Method(), route, status, elapsed)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
