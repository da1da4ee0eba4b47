package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware keeps an incoming X-Request-ID or assigns a new one.
func RequestIDMiddleware(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Locals("request_id", id)
	c.Set(RequestIDHeader, id)
	return c.Next()
}

func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals("request_id").(string)
	return id
}
