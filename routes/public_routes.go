package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tripnest/tripnest_backend/controllers"
	"github.com/tripnest/tripnest_backend/middleware"
	"github.com/tripnest/tripnest_backend/repositories"
)

// RegisterPublicRoutes sets up the marketing-site-facing routes:
// inquiry-form intake, the homepage carousel and page content.
func RegisterPublicRoutes(e *echo.Echo, db *mongo.Database) {
	store := repositories.NewSubmissionRepository(db)
	submissionController := controllers.NewSubmissionController(store)
	carouselController := controllers.NewCarouselController(db)
	contentController := controllers.NewContentController(db)

	api := e.Group("/api")

	// Intake is guarded by the site's static API key
	intake := api.Group("/submissions")
	intake.Use(middleware.RequireAPIKey())
	intake.POST("/:type", submissionController.CreateSubmission)

	api.GET("/carousel", carouselController.GetActiveItems)
	api.GET("/content/:page", contentController.GetPageContent)
}
