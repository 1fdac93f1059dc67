package middleware

import (
	"time"

	"cobbler-shop/logger"
	"cobbler-shop/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Request/response bodies above this size are truncated before logging
// so base64 photo payloads do not bloat the logs table.
const maxLoggedBodyBytes = 4096

// RequestLogger records every request into the logs table through the
// async logger so the response is never delayed by the insert.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("X-Request-Id", requestID)
		requestBody := truncate(c.Body())

		err := c.Next()

		asyncLogger.Log(types.LogEntry{
			RequestID:    requestID,
			Method:       c.Method(),
			Path:         c.OriginalURL(),
			ClientIP:     c.IP(),
			RequestBody:  requestBody,
			ResponseBody: truncate(c.Response().Body()),
			StatusCode:   c.Response().StatusCode(),
			LatencyMs:    time.Since(start).Milliseconds(),
			CreatedAt:    time.Now(),
		})

		return err
	}
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBodyBytes {
		return string(body[:maxLoggedBodyBytes]) + "...(truncated)"
	}
	return string(body)
}
