package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger registra cada petición: método, ruta, estado, latencia y clínica.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// el ErrorHandler de Fiber aún no escribió el estado
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		evt := log.Info()
		switch {
		case err != nil || status >= fiber.StatusInternalServerError:
			evt = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			evt = log.Warn()
		}
		evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("clinic_id", GetClinicID(c)).
			Str("remote_ip", c.IP()).
			Msg("request")

		return err
	}
}
