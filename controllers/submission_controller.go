package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tripnest/tripnest_backend/models"
	"github.com/tripnest/tripnest_backend/repositories"
	"github.com/tripnest/tripnest_backend/services"
	"github.com/tripnest/tripnest_backend/utils"
)

// SubmissionController handles the public inquiry-form intake
type SubmissionController struct {
	store  repositories.SubmissionStore
	intake *services.IntakeService
}

// NewSubmissionController creates a new submission controller
func NewSubmissionController(store repositories.SubmissionStore) *SubmissionController {
	return &SubmissionController{
		store:  store,
		intake: services.NewIntakeService(),
	}
}

// CreateSubmission validates and persists one inquiry-form payload.
// POST /api/submissions/:type
func (sc *SubmissionController) CreateSubmission(c echo.Context) error {
	subType := c.Param("type")

	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, models.IntakeResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}

	meta := services.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	submission, fieldErrors, err := sc.intake.Validate(subType, payload, meta)
	if err == models.ErrUnknownSubmissionType {
		return c.JSON(http.StatusBadRequest, models.IntakeResponse{
			Success: false,
			Message: "Unknown submission type",
		})
	}
	if len(fieldErrors) > 0 {
		return c.JSON(http.StatusBadRequest, models.IntakeResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  fieldErrors,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := sc.store.Insert(ctx, submission)
	if err != nil {
		log.Printf("Failed to persist %s submission: %v", subType, err)
		return c.JSON(http.StatusInternalServerError, models.IntakeResponse{
			Success: false,
			Message: "Submission could not be saved, please try again",
		})
	}

	// Staff notification is best-effort and must not delay the response
	go func(sub models.Submission) {
		_ = utils.SendInquiryNotification(&sub)
	}(*submission)

	return c.JSON(http.StatusCreated, models.IntakeResponse{
		Success: true,
		Message: "Submission received",
		ID:      id.Hex(),
	})
}
