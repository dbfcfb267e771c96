package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Locals keys handlers use to enrich the per-request log entry.
const (
	LocalRequestID = "request_id"
	LocalResult    = "result"
	LocalMessageID = "message_id"
	LocalDuplicate = "dup"
)

// RequestLogger emits exactly one structured log entry per request:
// correlation id, method, path, status, latency and whatever outcome the
// handler recorded. Errors are translated to responses here so the final
// status code is known when the entry is written.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(LocalRequestID, uuid.NewString())

		chainErr := c.Next()
		if chainErr != nil {
			errHandler := c.App().Config().ErrorHandler
			if err := errHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("request_id", localString(c, LocalRequestID)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000),
		}

		if result := localString(c, LocalResult); result != "" {
			fields = append(fields, zap.String("result", result))
		}
		if messageID := localString(c, LocalMessageID); messageID != "" {
			fields = append(fields, zap.String("message_id", messageID))
		}
		if dup, ok := c.Locals(LocalDuplicate).(bool); ok {
			fields = append(fields, zap.Bool("dup", dup))
		}

		if status >= fiber.StatusBadRequest {
			logger.Error("request completed", fields...)
		} else {
			logger.Info("request completed", fields...)
		}

		return nil
	}
}

func localString(c *fiber.Ctx, key string) string {
	v, _ := c.Locals(key).(string)
	return v
}
