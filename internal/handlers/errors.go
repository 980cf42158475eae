package handlers

import (
	"log"

	"lapak/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForKind maps domain error kinds to HTTP statuses.
var statusForKind = map[models.ErrorKind]int{
	models.KindUnauthorized: fiber.StatusUnauthorized,
	models.KindForbidden:    fiber.StatusForbidden,
	models.KindValidation:   fiber.StatusBadRequest,
	models.KindEmptyCart:    fiber.StatusBadRequest,
	models.KindNotFound:     fiber.StatusNotFound,
	models.KindInternal:     fiber.StatusInternalServerError,
}

// respondError translates a domain error into an HTTP response. Unknown
// errors are reported as an opaque server error.
func respondError(c *fiber.Ctx, err error) error {
	kind := models.KindOf(err)
	status, ok := statusForKind[kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"message": err.Error(),
		"kind":    kind,
	})
}
