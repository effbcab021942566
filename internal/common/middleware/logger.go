package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger пишет строку на каждый запрос. В production время в UTC
// и без заголовков запроса.
func Logger(environment string) fiber.Handler {
	if environment == "production" {
		return logger.New(logger.Config{
			Format:     "${time} ${status} ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02T15:04:05Z07:00",
			TimeZone:   "UTC",
		})
	}
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | route: ${route}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
