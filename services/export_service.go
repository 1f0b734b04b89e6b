package services

import (
	"encoding/csv"
	"fmt"
	"log"
	"strings"

	"github.com/tripnest/tripnest_backend/models"
)

// exportColumns is the fixed CSV column set every submission type is
// flattened onto.
var exportColumns = []string{
	"ID", "Type", "Name", "Email", "Phone", "Status",
	"Date", "Time", "Subject", "Message", "Destination",
	"Travel Date", "Duration", "Budget", "Travelers",
}

// ExportService flattens the cross-type aggregate into a single CSV.
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// ToCSV renders submissions as a CSV document with the fixed column
// set. A row that fails to build is logged and skipped; the export
// stays valid for every other row.
func (s *ExportService) ToCSV(submissions []models.Submission) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(exportColumns); err != nil {
		return "", err
	}

	for i := range submissions {
		row, err := buildRow(&submissions[i])
		if err != nil {
			log.Printf("Skipping submission %s in export: %v", submissions[i].ID.Hex(), err)
			continue
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

func buildRow(sub *models.Submission) (row []string, err error) {
	// A malformed Details value must cost one row, not the export
	defer func() {
		if r := recover(); r != nil {
			row, err = nil, fmt.Errorf("row build panic: %v", r)
		}
	}()

	row = []string{
		sub.ID.Hex(),
		sub.Type,
		sub.Name,
		sub.Email,
		sub.Phone,
		sub.Status,
		sub.CreatedAt.Format("2006-01-02"),
		sub.CreatedAt.Format("15:04:05"),
		detail(sub, "subject"),
		detail(sub, "message"),
		detail(sub, "destination", "tourDestination"),
		detail(sub, "departureDate", "travelDate", "travelDates"),
		detail(sub, "duration"),
		detail(sub, "budget"),
		detail(sub, "travelers", "numberOfTravelers", "adults", "numberOfApplicants"),
	}
	return row, nil
}

// detail resolves the first non-empty field among the aliases a column
// falls back across.
func detail(sub *models.Submission, aliases ...string) string {
	for _, alias := range aliases {
		value, ok := sub.Details[alias]
		if !ok || value == nil {
			continue
		}
		var rendered string
		switch v := value.(type) {
		case string:
			rendered = v
		case float64:
			if v == float64(int64(v)) {
				rendered = fmt.Sprintf("%d", int64(v))
			} else {
				rendered = fmt.Sprintf("%g", v)
			}
		default:
			rendered = fmt.Sprintf("%v", v)
		}
		if rendered != "" {
			return rendered
		}
	}
	return ""
}
