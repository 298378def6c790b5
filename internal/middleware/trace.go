package middleware

import (
	"crimeChronicles/business/recommendation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestTrace puts the request id on the request context so recommendation
// logs can be correlated with access logs. It reuses the id set by echo's
// RequestID middleware and mints one when that middleware is absent.
func RequestTrace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id == "" {
				id = uuid.NewString()
				c.Response().Header().Set(echo.HeaderXRequestID, id)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(recommendation.WithTraceID(req.Context(), id)))

			return next(c)
		}
	}
}
