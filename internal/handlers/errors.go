package handlers

import (
	"errors"
	"fmt"

	"warung/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusForError maps domain error kinds onto HTTP statuses. Anything
// unrecognized is an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrNoCapacity):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrConflict):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// serviceError writes a JSON error response with the status derived from the
// error kind.
func serviceError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// validationMessage turns the first failing validation rule into a
// human-readable message.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "Validation failed"
	}

	e := validationErrors[0]
	switch {
	case e.Field() == "FirstName" && e.Tag() == "min":
		return "First name must be at least 3 characters long"
	case e.Field() == "LastName" && e.Tag() == "min":
		return "Last name must be at least 3 characters long"
	case e.Field() == "Name" && e.Tag() == "min":
		return "Name must be at least 3 characters long"
	case e.Field() == "Password" && e.Tag() == "min":
		return "Password must be at least 6 characters long"
	case e.Field() == "ConfirmPassword":
		return "Passwords do not match"
	case e.Field() == "Phone":
		return "Phone number must be 11 digits long"
	case e.Tag() == "required":
		return fmt.Sprintf("Field '%s' is required", e.Field())
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
	}
}
