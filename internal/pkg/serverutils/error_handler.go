package serverutils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into JSON
// responses. Unknown errors are logged and masked with a generic 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			res := Response[map[string]string]{
				Code:    appErr.Code,
				Message: appErr.Message,
				Data:    appErr.Fields,
			}
			return ctx.Status(appErr.Code).JSON(res)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Printf("[ERROR] Unhandled error: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
