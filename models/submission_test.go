package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input     string
		canonical string
		ok        bool
	}{
		{"new", StatusNew, true},
		{"in-progress", StatusInProgress, true},
		{"resolved", StatusResolved, true},
		{"pending", StatusNew, true},
		{"processing", StatusInProgress, true},
		{"completed", StatusResolved, true},
		{"cancelled", StatusResolved, true},
		{"archived", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		canonical, ok := NormalizeStatus(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.canonical, canonical, "input %q", tc.input)
	}
}

func TestIsKnownType(t *testing.T) {
	for _, known := range KnownTypes {
		assert.True(t, IsKnownType(known), known)
	}
	assert.False(t, IsKnownType("tour"), "tour is a stored type, not an addressed one")
	assert.False(t, IsKnownType("newsletter"))
}

func TestSubmissionMarshalJSONFlattensDetails(t *testing.T) {
	created := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	sub := Submission{
		ID:        primitive.NewObjectID(),
		Type:      TypeFlight,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "5550100",
		Status:    StatusNew,
		CreatedAt: created,
		UpdatedAt: created,
		Details: map[string]interface{}{
			"departureCity": "Mumbai",
			"destination":   "Dubai",
			"adults":        2,
		},
	}

	raw, err := json.Marshal(sub)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Detail fields surface at the top level next to the envelope
	assert.Equal(t, "Mumbai", decoded["departureCity"])
	assert.Equal(t, "Dubai", decoded["destination"])
	assert.Equal(t, float64(2), decoded["adults"])
	assert.Equal(t, "flight", decoded["type"])
	assert.Equal(t, "Jane Doe", decoded["name"])

	// The raw details map must not leak as a nested object
	_, hasDetails := decoded["Details"]
	assert.False(t, hasDetails)
}

func TestSubmissionMarshalJSONEnvelopeWinsOnCollision(t *testing.T) {
	sub := Submission{
		Type:   TypeContact,
		Name:   "Real Name",
		Status: StatusNew,
		Details: map[string]interface{}{
			"name": "Spoofed Name",
		},
	}

	raw, err := json.Marshal(sub)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Real Name", decoded["name"])
}

func TestTourType(t *testing.T) {
	tour := Submission{
		Type:    TypeTour,
		Details: map[string]interface{}{"tourType": TypeInternational},
	}
	assert.Equal(t, TypeInternational, tour.TourType())

	contact := Submission{Type: TypeContact, Details: map[string]interface{}{}}
	assert.Equal(t, "", contact.TourType())
}
