package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tripnest/tripnest_backend/models"
	"github.com/tripnest/tripnest_backend/utils"
)

// CarouselController manages the homepage image carousel
type CarouselController struct {
	DB *mongo.Database
}

// NewCarouselController creates a new carousel controller
func NewCarouselController(db *mongo.Database) *CarouselController {
	return &CarouselController{DB: db}
}

// CreateItem uploads a slide image and creates the carousel entry.
// POST /api/admin/carousel (multipart form)
func (cc *CarouselController) CreateItem(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Image file is required",
		})
	}

	imageURL, thumbnailURL, err := utils.SaveCarouselImage(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	sortOrder, _ := strconv.Atoi(c.FormValue("sortOrder"))

	now := time.Now()
	item := models.CarouselItem{
		ID:           primitive.NewObjectID(),
		Title:        utils.SanitizeInput(c.FormValue("title")),
		Subtitle:     utils.SanitizeInput(c.FormValue("subtitle")),
		ImageURL:     imageURL,
		ThumbnailURL: thumbnailURL,
		LinkURL:      utils.SanitizeInput(c.FormValue("linkUrl")),
		SortOrder:    sortOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := cc.DB.Collection("carouselItems").InsertOne(ctx, item); err != nil {
		log.Printf("Failed to save carousel item: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save carousel item",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Carousel item created successfully",
		Data:    item,
	})
}

// GetActiveItems lists the active slides for the public homepage.
// GET /api/carousel
func (cc *CarouselController) GetActiveItems(c echo.Context) error {
	return cc.listItems(c, bson.M{"isActive": true})
}

// GetAllItems lists every slide for the admin panel.
// GET /api/admin/carousel
func (cc *CarouselController) GetAllItems(c echo.Context) error {
	return cc.listItems(c, bson.M{})
}

func (cc *CarouselController) listItems(c echo.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "createdAt", Value: -1}})
	cursor, err := cc.DB.Collection("carouselItems").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch carousel items",
		})
	}
	defer cursor.Close(ctx)

	items := []models.CarouselItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode carousel items",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Carousel items retrieved successfully",
		Data:    items,
	})
}

// UpdateItem edits slide fields; only the fields sent are changed.
// PUT /api/admin/carousel/:id
func (cc *CarouselController) UpdateItem(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid carousel item ID",
		})
	}

	var req models.CarouselUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Title != nil {
		set["title"] = utils.SanitizeInput(*req.Title)
	}
	if req.Subtitle != nil {
		set["subtitle"] = utils.SanitizeInput(*req.Subtitle)
	}
	if req.LinkURL != nil {
		set["linkUrl"] = utils.SanitizeInput(*req.LinkURL)
	}
	if req.SortOrder != nil {
		set["sortOrder"] = *req.SortOrder
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.CarouselItem
	err = cc.DB.Collection("carouselItems").
		FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Carousel item not found",
			})
		}
		log.Printf("Failed to update carousel item: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update carousel item",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Carousel item updated successfully",
		Data:    updated,
	})
}

// DeleteItem removes a slide and its stored images.
// DELETE /api/admin/carousel/:id
func (cc *CarouselController) DeleteItem(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid carousel item ID",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var item models.CarouselItem
	err = cc.DB.Collection("carouselItems").FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Carousel item not found",
			})
		}
		log.Printf("Failed to delete carousel item: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete carousel item",
		})
	}

	// Best-effort file cleanup
	if err := utils.DeleteUploadedFile(item.ImageURL); err != nil {
		log.Printf("Failed to remove carousel image %s: %v", item.ImageURL, err)
	}
	if err := utils.DeleteUploadedFile(item.ThumbnailURL); err != nil {
		log.Printf("Failed to remove carousel thumbnail %s: %v", item.ThumbnailURL, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Carousel item deleted successfully",
	})
}
