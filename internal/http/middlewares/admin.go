package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly lets through only the configured administrator. Must run after Identity.
func AdminOnly(adminID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid := CurrentUserID(c); uid == "" || uid != adminID {
				return echo.NewHTTPError(http.StatusForbidden, "only the administrator can review transactions")
			}
			return next(c)
		}
	}
}
