package server

import (
	"strconv"
	"strings"

	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts and validates the :id route parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// parseIDList parses a comma-separated list of numeric IDs from a query
// parameter. An empty value yields a nil slice; any non-numeric token is a
// validation error.
func parseIDList(value, param string) ([]uint, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, models.NewValidationError(
				"Invalid " + param + " filter: expected comma-separated numeric IDs")
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// parseAssignedOnly interprets the assigned_only query parameter. Any
// non-zero integer enables the filter; absent or zero disables it.
func parseAssignedOnly(value string) bool {
	if value == "" {
		return false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	return n != 0
}

// respondServiceError maps service-layer errors onto HTTP responses.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// currentUserID reads the authenticated user ID stored by the auth middleware.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
