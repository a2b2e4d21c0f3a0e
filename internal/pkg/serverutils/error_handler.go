package serverutils

import (
	"errors"

	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/pkg/interview"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var fe *fiber.Error
	var ve *ValidationError
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, interview.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, interview.ErrEmptyAnswer):
		return fiber.StatusBadRequest
	default:
		// Upstream and malformed collaborator responses land here too
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns errors returned by handlers into the error
// envelope. 5xx details are logged, not echoed.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		body := ErrorResponse(code, err.Error())

		var ve *ValidationError
		if errors.As(err, &ve) {
			body.Fields = ve.Fields
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
			body.Error = publicMessage(err)
		}

		return ctx.Status(code).JSON(body)
	}
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, interview.ErrUpstreamFailure):
		return "An upstream service failed. Please try again."
	case errors.Is(err, interview.ErrMalformedResponse):
		return "An upstream service returned an invalid response."
	default:
		return "Internal server error"
	}
}
