package server

import (
	"errors"

	"thalanet/internal/models"
	"thalanet/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the :id route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondError writes err with its mapped HTTP status. Internal failures are
// additionally recorded on the active trace span.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		observability.RecordErrorInContext(c.UserContext(), err)
	}
	return models.RespondWithError(c, status, err)
}

// statusForError maps domain error codes to HTTP statuses.
func statusForError(err error) int {
	switch {
	case models.IsCode(err, models.CodeValidation), models.IsCode(err, models.CodeInvalidExpiry):
		return fiber.StatusBadRequest
	case models.IsCode(err, models.CodeNotFound):
		return fiber.StatusNotFound
	case models.IsCode(err, models.CodeInvalidTransition):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
