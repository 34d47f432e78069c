package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/labourlink/internal/metrics"
)

// RequestLogger logs each request and records its metrics once the handler chain returns.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			// the app error handler runs after us and sets the final status
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(chainErr, &fe) {
				status = fe.Code
			}
		}
		elapsed := time.Since(start)

		route := c.Route().Path
		metrics.ObserveHTTPRequest(c.Method(), route, strconv.Itoa(status), elapsed)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
			zap.String("ip", c.IP()),
		}
		if s, ok := CurrentSession(c); ok {
			fields = append(fields, zap.String("user_id", s.UserID.String()))
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return chainErr
	}
}
