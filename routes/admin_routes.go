package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tripnest/tripnest_backend/controllers"
	"github.com/tripnest/tripnest_backend/middleware"
	"github.com/tripnest/tripnest_backend/repositories"
)

// RegisterAdminRoutes sets up all admin-related routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Database) {
	store := repositories.NewSubmissionRepository(db)
	authController := controllers.NewAuthController(db)
	adminSubmissionController := controllers.NewAdminSubmissionController(store)
	carouselController := controllers.NewCarouselController(db)
	contentController := controllers.NewContentController(db)

	// Admin routes group
	admin := e.Group("/api/admin")

	// Public routes (no auth required)
	admin.POST("/login", authController.Login)

	// Super-admin protected routes
	superAdmin := admin.Group("")
	superAdmin.Use(middleware.JWTMiddleware())
	superAdmin.Use(middleware.RequireRole("super_admin"))
	superAdmin.POST("/register", authController.RegisterAdmin)

	// Protected routes (require admin authentication)
	protected := admin.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.Use(middleware.RequireRole("admin", "super_admin"))

	protected.POST("/logout", authController.Logout)

	// Submission triage routes
	protected.GET("/submissions", adminSubmissionController.ListSubmissions)
	protected.GET("/submissions/stats", adminSubmissionController.GetStats)
	protected.GET("/submission/:type/:id", adminSubmissionController.GetSubmission)
	protected.PUT("/submission/:type/:id/status", adminSubmissionController.UpdateStatus)
	protected.PUT("/submission/:type/:id/read", adminSubmissionController.MarkRead)
	protected.PUT("/submission/:type/:id/unread", adminSubmissionController.MarkUnread)
	protected.DELETE("/submission/:type/:id", adminSubmissionController.DeleteSubmission)
	protected.GET("/export/submissions", adminSubmissionController.ExportSubmissions)

	// Carousel management routes
	protected.POST("/carousel", carouselController.CreateItem)
	protected.GET("/carousel", carouselController.GetAllItems)
	protected.PUT("/carousel/:id", carouselController.UpdateItem)
	protected.DELETE("/carousel/:id", carouselController.DeleteItem)

	// Page content routes
	protected.PUT("/content/:page/:section", contentController.UpsertSection)
	protected.DELETE("/content/:page/:section", contentController.DeleteSection)
}
