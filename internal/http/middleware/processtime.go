package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ProcessTimeHeader carries the server-side handling time in seconds.
const ProcessTimeHeader = "X-Process-Time"

// ProcessTime measures wall-clock time spent in the rest of the chain and
// reports it on the response. It must be registered first so the header is
// also present on error responses.
func ProcessTime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		c.Set(ProcessTimeHeader, strconv.FormatFloat(time.Since(start).Seconds(), 'f', -1, 64))
		return err
	}
}
