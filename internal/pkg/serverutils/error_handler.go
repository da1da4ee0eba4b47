package serverutils

import (
	"errors"

	"ai-contact-search-be/internal/pkg/logger"
	"ai-contact-search-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON envelope.
// Upstream and internal failures are logged before the response is written.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		var providerErr *rag.ProviderError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &validationErr):
			resp := ErrorResponse(fiber.StatusBadRequest, "Invalid request")
			resp.Errors = validationErr.Fields
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		case errors.As(err, &providerErr):
			log.Error("HTTP", "Upstream provider failed", requestDetails(c, err, fiber.StatusBadGateway))
			return c.Status(fiber.StatusBadGateway).JSON(
				ErrorResponse(fiber.StatusBadGateway, "Upstream "+providerErr.Stage+" provider failed"))
		case errors.As(err, &fiberErr):
			if fiberErr.Code >= fiber.StatusInternalServerError {
				log.Error("HTTP", "Request failed", requestDetails(c, err, fiberErr.Code))
			}
			return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		default:
			log.Error("HTTP", "Request failed", requestDetails(c, err, fiber.StatusInternalServerError))
			return c.Status(fiber.StatusInternalServerError).JSON(
				ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
		}
	}
}

func requestDetails(c *fiber.Ctx, err error, status int) map[string]interface{} {
	return map[string]interface{}{
		"request_id": RequestID(c),
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     status,
		"error":      err,
	}
}
