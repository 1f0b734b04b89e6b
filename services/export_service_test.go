package services

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tripnest/tripnest_backend/models"
)

func TestToCSVHeaderAndRow(t *testing.T) {
	created := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	sub := models.Submission{
		ID:        primitive.NewObjectID(),
		Type:      models.TypeContact,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "5550100",
		Status:    models.StatusNew,
		CreatedAt: created,
		Details: map[string]interface{}{
			"subject": "Trip query",
			"message": "Looking for a package",
		},
	}

	out, err := NewExportService().ToCSV([]models.Submission{sub})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, exportColumns, records[0])

	row := records[1]
	assert.Equal(t, sub.ID.Hex(), row[0])
	assert.Equal(t, "contact", row[1])
	assert.Equal(t, "Jane Doe", row[2])
	assert.Equal(t, "2025-06-15", row[6])
	assert.Equal(t, "09:30:00", row[7])
	assert.Equal(t, "Trip query", row[8])
}

func TestToCSVEscapesCommasAndQuotes(t *testing.T) {
	sub := models.Submission{
		ID:        primitive.NewObjectID(),
		Type:      models.TypeContact,
		Name:      `O'Brien, "Pat"`,
		Email:     "pat@example.com",
		Status:    models.StatusNew,
		CreatedAt: time.Now(),
		Details: map[string]interface{}{
			"message": "Line one\nline two, with a comma",
		},
	}

	out, err := NewExportService().ToCSV([]models.Submission{sub})
	require.NoError(t, err)

	// The document must parse back to the exact field values
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `O'Brien, "Pat"`, records[1][2])
	assert.Equal(t, "Line one\nline two, with a comma", records[1][9])
}

func TestToCSVAliasFallbacks(t *testing.T) {
	tour := models.Submission{
		ID:        primitive.NewObjectID(),
		Type:      models.TypeDomestic,
		Status:    models.StatusNew,
		CreatedAt: time.Now(),
		Details: map[string]interface{}{
			"tourDestination":   "Kerala",
			"travelDates":       "2025-09-01",
			"numberOfTravelers": float64(4),
		},
	}
	flight := models.Submission{
		ID:        primitive.NewObjectID(),
		Type:      models.TypeFlight,
		Status:    models.StatusNew,
		CreatedAt: time.Now(),
		Details: map[string]interface{}{
			"destination":   "Dubai",
			"departureDate": "2025-10-05",
			"adults":        float64(2),
		},
	}

	out, err := NewExportService().ToCSV([]models.Submission{tour, flight})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Kerala", records[1][10])
	assert.Equal(t, "2025-09-01", records[1][11])
	assert.Equal(t, "4", records[1][14])

	assert.Equal(t, "Dubai", records[2][10])
	assert.Equal(t, "2025-10-05", records[2][11])
	assert.Equal(t, "2", records[2][14])
}

func TestToCSVEmptyAggregate(t *testing.T) {
	out, err := NewExportService().ToCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, exportColumns, records[0])
}
