package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DemoGate fences the name-based identity routes. When demo mode is off the
// routes answer 404, indistinguishable from not being registered at all, so
// the demo backdoor is unreachable in a hardened deployment.
func DemoGate(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return echo.NewHTTPError(http.StatusNotFound, "not found")
			}
			return next(c)
		}
	}
}
