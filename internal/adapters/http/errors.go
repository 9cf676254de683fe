package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/pluscodes/internal/core/usecases"
	"github.com/samirrijal/pluscodes/olc"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, invalid_code, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errInvalidCode returns a 400 error for a code that fails validation.
func errInvalidCode(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "invalid_code", msg)
}

// errTooLarge returns a 413 error.
func errTooLarge(c *fiber.Ctx, msg string) error {
	return newError(c, 413, "payload_too_large", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// errFromService maps a CodeService error to its HTTP response.
func errFromService(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, olc.ErrInvalidCode):
		return errInvalidCode(c, err.Error())
	case errors.Is(err, olc.ErrInvalidArgument), errors.Is(err, usecases.ErrEmptyBatch):
		return errBadRequest(c, err.Error())
	case errors.Is(err, usecases.ErrBatchTooLarge):
		return errTooLarge(c, err.Error())
	default:
		LoggerFromCtx(c.UserContext()).Error("codec request failed", "error", err)
		return errInternal(c, "internal error")
	}
}
