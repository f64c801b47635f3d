package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"zapbridge/platform/logger"
)

// HTTPLogger registra cada requisição com método, rota, status e latência.
func HTTPLogger(appLogger *logger.Logger) fiber.Handler {
	log := appLogger.WithModule("http")

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		statusCode := c.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			statusCode = fiberErr.Code
		}

		fields := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status_code": statusCode,
			"latency_ms":  time.Since(start).Milliseconds(),
			"ip":          c.IP(),
		}
		if requestID := GetRequestID(c); requestID != "" {
			fields["request_id"] = requestID
		}

		message := fmt.Sprintf("HTTP %s %s", c.Method(), c.Path())

		switch {
		case statusCode >= 500:
			log.ErrorWithFields(message, fields)
		case statusCode >= 400:
			log.WarnWithFields(message, fields)
		default:
			log.InfoWithFields(message, fields)
		}

		return err
	}
}
