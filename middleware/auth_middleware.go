// middleware/auth_middleware.go
package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/tripnest/tripnest_backend/models"
)

// RequireRole checks if the authenticated admin has one of the allowed roles
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := ExtractRole(c)

			if role == "" {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication failed: role not found",
				})
			}

			for _, allowed := range allowedRoles {
				if role == allowed {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied for your role",
			})
		}
	}
}

// RequireAPIKey guards the public intake endpoint with the static
// shared secret the marketing site sends in X-API-Key. The comparison
// is constant time.
func RequireAPIKey() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			expected := os.Getenv("INTAKE_API_KEY")
			if expected == "" {
				return c.JSON(http.StatusInternalServerError, models.Response{
					Status:  http.StatusInternalServerError,
					Message: "Intake API key not configured",
				})
			}

			provided := c.Request().Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Invalid API key",
				})
			}

			return next(c)
		}
	}
}
