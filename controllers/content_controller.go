package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tripnest/tripnest_backend/middleware"
	"github.com/tripnest/tripnest_backend/models"
	"github.com/tripnest/tripnest_backend/utils"
)

// ContentController manages the editable page content blocks
type ContentController struct {
	DB *mongo.Database
}

// NewContentController creates a new content controller
func NewContentController(db *mongo.Database) *ContentController {
	return &ContentController{DB: db}
}

// GetPageContent lists the content blocks of one public page.
// GET /api/content/:page
func (cc *ContentController) GetPageContent(c echo.Context) error {
	page := strings.ToLower(c.Param("page"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	cursor, err := cc.DB.Collection("pageContent").Find(ctx, bson.M{"page": page},
		options.Find().SetSort(bson.D{{Key: "section", Value: 1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch page content",
		})
	}
	defer cursor.Close(ctx)

	blocks := []models.PageContent{}
	if err := cursor.All(ctx, &blocks); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode page content",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Page content retrieved successfully",
		Data:    blocks,
	})
}

// UpsertSection creates or replaces one content block.
// PUT /api/admin/content/:page/:section
func (cc *ContentController) UpsertSection(c echo.Context) error {
	page := strings.ToLower(c.Param("page"))
	section := strings.ToLower(c.Param("section"))

	var req models.PageContentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Body is required",
		})
	}

	updatedBy := ""
	if claims := middleware.GetAdminFromToken(c); claims != nil {
		updatedBy = claims.Email
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":     utils.SanitizeInput(req.Title),
			"body":      req.Body,
			"updatedBy": updatedBy,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"page":      page,
			"section":   section,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var block models.PageContent
	err := cc.DB.Collection("pageContent").
		FindOneAndUpdate(ctx, bson.M{"page": page, "section": section}, update, opts).
		Decode(&block)
	if err != nil {
		log.Printf("Failed to upsert content block %s/%s: %v", page, section, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save page content",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Page content saved successfully",
		Data:    block,
	})
}

// DeleteSection removes one content block.
// DELETE /api/admin/content/:page/:section
func (cc *ContentController) DeleteSection(c echo.Context) error {
	page := strings.ToLower(c.Param("page"))
	section := strings.ToLower(c.Param("section"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.Collection("pageContent").DeleteOne(ctx, bson.M{"page": page, "section": section})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete page content",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Content block not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Content block deleted successfully",
	})
}
