package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarouselItem is one slide of the homepage image carousel.
type CarouselItem struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Subtitle     string             `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	ImageURL     string             `json:"imageUrl" bson:"imageUrl"`
	ThumbnailURL string             `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	LinkURL      string             `json:"linkUrl,omitempty" bson:"linkUrl,omitempty"`
	SortOrder    int                `json:"sortOrder" bson:"sortOrder"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CarouselUpdateRequest carries the mutable slide fields. Pointer
// fields distinguish "not sent" from zero values.
type CarouselUpdateRequest struct {
	Title     *string `json:"title,omitempty"`
	Subtitle  *string `json:"subtitle,omitempty"`
	LinkURL   *string `json:"linkUrl,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}
