package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tripnest/tripnest_backend/config"
	"github.com/tripnest/tripnest_backend/models"
	"github.com/tripnest/tripnest_backend/repositories"
	"github.com/tripnest/tripnest_backend/services"
)

const (
	statsCacheKey = "admin:submission_stats"
	statsCacheTTL = 60 * time.Second

	// exportFetchCap bounds how many records one CSV export carries
	exportFetchCap = 5000
)

// AdminSubmissionController serves the admin triage surface: the
// aggregated listing, status updates and the CSV export.
type AdminSubmissionController struct {
	store      repositories.SubmissionStore
	aggregator *services.AggregatorService
	lifecycle  *services.LifecycleService
	exporter   *services.ExportService
}

// NewAdminSubmissionController creates a new admin submission controller
func NewAdminSubmissionController(store repositories.SubmissionStore) *AdminSubmissionController {
	return &AdminSubmissionController{
		store:      store,
		aggregator: services.NewAggregatorService(store),
		lifecycle:  services.NewLifecycleService(store),
		exporter:   services.NewExportService(),
	}
}

// queryParamsFrom parses the shared listing filter off the request.
func queryParamsFrom(c echo.Context) services.QueryParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	params := services.QueryParams{
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	}

	if fromStr := c.QueryParam("fromDate"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			params.FromDate = &from
		}
	}
	if toStr := c.QueryParam("toDate"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			params.ToDate = &to
		}
	}

	return params
}

// ListSubmissions returns one page of the aggregated feed.
// GET /api/admin/submissions
func (ac *AdminSubmissionController) ListSubmissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	result, err := ac.aggregator.Query(ctx, queryParamsFrom(c))
	if err != nil {
		log.Printf("Error listing submissions: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve submissions",
		})
	}

	submissions := result.Submissions
	if submissions == nil {
		submissions = []models.Submission{}
	}

	return c.JSON(http.StatusOK, models.ListResponse{
		Success:     true,
		Submissions: submissions,
		Pagination: models.Pagination{
			Total: result.TotalCount,
			Page:  result.CurrentPage,
			Limit: result.Limit,
			Pages: result.TotalPages,
		},
	})
}

// GetSubmission fetches a single record.
// GET /api/admin/submission/:type/:id
func (ac *AdminSubmissionController) GetSubmission(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	submission, err := ac.store.FindByID(ctx, c.Param("type"), c.Param("id"))
	if err != nil {
		return submissionError(c, err, "Failed to retrieve submission")
	}

	return c.JSON(http.StatusOK, models.SingleResponse{
		Success:    true,
		Submission: submission,
	})
}

// UpdateStatus moves a submission through triage.
// PUT /api/admin/submission/:type/:id/status
func (ac *AdminSubmissionController) UpdateStatus(c echo.Context) error {
	var req models.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	submission, err := ac.lifecycle.SetStatus(ctx, c.Param("type"), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		return submissionError(c, err, "Failed to update status")
	}

	return c.JSON(http.StatusOK, models.SingleResponse{
		Success:    true,
		Message:    "Status updated",
		Submission: submission,
	})
}

// MarkRead flags a submission as reviewed.
// PUT /api/admin/submission/:type/:id/read
func (ac *AdminSubmissionController) MarkRead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	submission, err := ac.lifecycle.MarkRead(ctx, c.Param("type"), c.Param("id"))
	if err != nil {
		return submissionError(c, err, "Failed to mark submission read")
	}

	return c.JSON(http.StatusOK, models.SingleResponse{
		Success:    true,
		Message:    "Marked read",
		Submission: submission,
	})
}

// MarkUnread clears the read flag.
// PUT /api/admin/submission/:type/:id/unread
func (ac *AdminSubmissionController) MarkUnread(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	submission, err := ac.lifecycle.MarkUnread(ctx, c.Param("type"), c.Param("id"))
	if err != nil {
		return submissionError(c, err, "Failed to mark submission unread")
	}

	return c.JSON(http.StatusOK, models.SingleResponse{
		Success:    true,
		Message:    "Marked unread",
		Submission: submission,
	})
}

// DeleteSubmission hard-deletes a record. Tour routes carry the
// expected tourType in the path type and fail on mismatch.
// DELETE /api/admin/submission/:type/:id
func (ac *AdminSubmissionController) DeleteSubmission(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := ac.lifecycle.Delete(ctx, c.Param("type"), c.Param("id")); err != nil {
		return submissionError(c, err, "Failed to delete submission")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Submission deleted",
	})
}

// ExportSubmissions streams the filtered aggregate as a CSV attachment.
// GET /api/admin/export/submissions
func (ac *AdminSubmissionController) ExportSubmissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	result, err := ac.aggregator.QueryForExport(ctx, queryParamsFrom(c), exportFetchCap)
	if err != nil {
		log.Printf("Error exporting submissions: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to export submissions",
		})
	}

	csvData, err := ac.exporter.ToCSV(result.Submissions)
	if err != nil {
		log.Printf("Error building CSV export: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to build CSV export",
		})
	}

	filename := fmt.Sprintf("submissions_%s.csv", time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "text/csv", []byte(csvData))
}

// GetStats returns dashboard counters, cached briefly in Redis.
// GET /api/admin/submissions/stats
func (ac *AdminSubmissionController) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if redisClient := config.GetRedisClient(); redisClient != nil {
		if cached, err := redisClient.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats models.SubmissionStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Submission stats retrieved successfully",
					Data:    stats,
				})
			}
		}
	}

	stats := models.SubmissionStats{
		ByType:   make(map[string]int64),
		ByStatus: make(map[string]int64),
	}

	for _, subType := range models.KnownTypes {
		count, err := ac.store.Count(ctx, subType, models.ListFilter{})
		if err != nil {
			log.Printf("Error counting %s submissions for stats: %v", subType, err)
			continue
		}
		stats.ByType[subType] = count
		stats.Total += count
	}

	for _, status := range []string{models.StatusNew, models.StatusInProgress, models.StatusResolved} {
		var total int64
		for _, subType := range models.KnownTypes {
			count, err := ac.store.Count(ctx, subType, models.ListFilter{Status: status})
			if err != nil {
				continue
			}
			total += count
		}
		stats.ByStatus[status] = total
	}

	// Unread is the isRead flag, not status new: a new record can be
	// read and an in-progress one unread.
	unread := false
	for _, subType := range models.KnownTypes {
		count, err := ac.store.Count(ctx, subType, models.ListFilter{IsRead: &unread})
		if err != nil {
			continue
		}
		stats.Unread += count
	}

	if redisClient := config.GetRedisClient(); redisClient != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			if err := redisClient.Set(ctx, statsCacheKey, encoded, statsCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache submission stats: %v", err)
			}
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Submission stats retrieved successfully",
		Data:    stats,
	})
}

// submissionError maps service errors onto HTTP responses.
func submissionError(c echo.Context, err error, fallback string) error {
	switch err {
	case models.ErrNotFound:
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Submission not found",
		})
	case models.ErrUnknownSubmissionType:
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown submission type",
		})
	case models.ErrInvalidStatus:
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid status value",
		})
	case models.ErrTypeMismatch:
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Tour type does not match the stored record",
		})
	}
	log.Printf("%s: %v", fallback, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Status:  http.StatusInternalServerError,
		Message: fallback,
	})
}
