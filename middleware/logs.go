package middleware

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

var requestLog = func() *log.Logger {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return log.Default()
	}
	f, err := os.OpenFile("logs/requests.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening request log file: %v\n", err)
		return log.Default()
	}
	return log.New(f, "", log.Ldate|log.Ltime)
}()

// RequestLogger logs method, path, status, latency and the acting user for
// every request, to stdout and logs/requests.log.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		email := "-"
		if user, ok := CurrentUser(c); ok {
			email = user.Email
		}

		line := c.Method() + " " + c.Path()
		latency := time.Since(start)
		log.Printf("%s %d %s %s", line, status, latency, email)
		requestLog.Printf("%s %d %s %s %s", line, status, latency, c.IP(), email)

		return err
	}
}
