package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// CORSWithConfig returns CORS middleware allowing the marketing site
// and admin panel origins, extendable via CORS_ALLOWED_ORIGINS.
func CORSWithConfig() echo.MiddlewareFunc {
	origins := []string{
		"http://localhost:3000", // admin panel dev server
		"http://localhost:8080", // site dev server
		"https://tripnest.in",
		"https://www.tripnest.in",
		"https://admin.tripnest.in",
	}

	if envOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); envOrigins != "" {
		for _, origin := range strings.Split(envOrigins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "X-API-Key"},
		MaxAge:       3600,
	})
}
