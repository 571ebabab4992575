package server

import (
	"errors"

	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the :id route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps an AppError code to an HTTP status and writes the
// standard error response. Uniqueness conflicts surface as 400 alongside
// validation failures; unknown errors surface as 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			status = fiber.StatusNotFound
		case models.CodeConflict, models.CodeValidation:
			status = fiber.StatusBadRequest
		case models.CodeUnauthorized:
			status = fiber.StatusUnauthorized
		}
	}
	return models.RespondWithError(c, status, err)
}
