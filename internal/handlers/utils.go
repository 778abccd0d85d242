package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when the user context is missing or invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext extracts the authenticated user's ID, set by the
// auth middleware under "user_id".
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	value := c.Get("user_id")
	if value == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

// getIsAdminFromContext reports whether the auth middleware flagged the
// caller as an admin. Missing or mistyped values mean not admin.
func getIsAdminFromContext(c echo.Context) bool {
	isAdmin, ok := c.Get("is_admin").(bool)
	return ok && isAdmin
}

// getIntParam reads an integer query parameter, falling back to the
// default on absence or parse failure.
func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}
