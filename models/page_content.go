package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageContent is one editable content block on a public page,
// addressed by the (page, section) pair.
type PageContent struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Page      string             `json:"page" bson:"page"`
	Section   string             `json:"section" bson:"section"`
	Title     string             `json:"title,omitempty" bson:"title,omitempty"`
	Body      string             `json:"body" bson:"body"`
	UpdatedBy string             `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PageContentRequest is the body of PUT /api/admin/content/:page/:section
type PageContentRequest struct {
	Title string `json:"title"`
	Body  string `json:"body" validate:"required"`
}
