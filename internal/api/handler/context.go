package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the identity injected by the Auth middleware and
// fast-fails before any service call: an empty user id means the gate did not
// run on this route, which is a wiring bug surfaced as 401 rather than a
// panic downstream.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return userID, nil
}
