package rest

import (
	"errors"

	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

var errUnauthorized = errors.New("unauthorized")

// userID reads the id AuthMiddleware stored on the context.
func userID(c echo.Context) (uint, error) {
	id, ok := c.Get("user_id").(uint)
	if !ok || id == 0 {
		return 0, errUnauthorized
	}
	return id, nil
}
