package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tripnest/tripnest_backend/models"
	"github.com/tripnest/tripnest_backend/utils"
)

// requiredFields is the per-type required-field table. Defaults are
// applied before this check runs, so defaulted fields (adults,
// travelClass...) only fail when sent explicitly empty.
var requiredFields = map[string][]string{
	models.TypeContact:       {"name", "email", "phone", "subject", "message"},
	models.TypeFlight:        {"name", "email", "phone", "from", "to", "departureDate", "tripType", "adults", "travelClass"},
	models.TypeVisa:          {"name", "email", "phone", "destination", "visaType", "travelDate"},
	models.TypePassport:      {"name", "email", "phone", "applicationType", "expectedDate", "urgency", "numberOfApplicants"},
	models.TypeForex:         {"name", "email", "phone", "serviceType", "currencyFrom", "currencyTo", "amount"},
	models.TypeHoneymoon:     {"name", "email", "phone", "destination", "travelDates", "duration", "budget"},
	models.TypeDomestic:      {"name", "email", "phone", "destination", "departureDate"},
	models.TypeInternational: {"name", "email", "phone", "destination", "departureDate"},
}

// dateFields lists the payload fields coerced to YYYY-MM-DD per type.
var dateFields = map[string][]string{
	models.TypeFlight:        {"departureDate", "returnDate"},
	models.TypeVisa:          {"travelDate"},
	models.TypePassport:      {"expectedDate"},
	models.TypeForex:         {"travelDate"},
	models.TypeHoneymoon:     {"weddingDate"},
	models.TypeDomestic:      {"departureDate"},
	models.TypeInternational: {"departureDate"},
}

// acceptedDateLayouts are tried in order when coercing date fields.
var acceptedDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"01/02/2006",
}

// RequestMeta carries the provenance captured at submission time.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// IntakeService validates and normalizes public form payloads into
// submission records. It never persists anything itself.
type IntakeService struct{}

// NewIntakeService creates a new intake service
func NewIntakeService() *IntakeService {
	return &IntakeService{}
}

// Validate checks a raw payload against the required-field table for
// subType and returns the normalized, not-yet-persisted record. Field
// problems come back as the second return; the error return is reserved
// for an unknown type.
func (s *IntakeService) Validate(subType string, payload map[string]interface{}, meta RequestMeta) (*models.Submission, []models.FieldError, error) {
	subType = strings.ToLower(strings.TrimSpace(subType))

	// The generic tour route folds into domestic/international via the
	// tourType discriminator, defaulting to domestic.
	if subType == models.TypeTour {
		subType = models.TypeDomestic
		if tt, _ := payload["tourType"].(string); tt == "international" {
			subType = models.TypeInternational
		}
	}

	if !models.IsKnownType(subType) {
		return nil, nil, models.ErrUnknownSubmissionType
	}

	applyDefaults(subType, payload)

	var fieldErrors []models.FieldError
	for _, field := range requiredFields[subType] {
		if isEmpty(payload[field]) {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s is required", field),
			})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	email, err := utils.SanitizeEmail(stringValue(payload["email"]))
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "email", Message: err.Error()})
	}

	phone, err := utils.SanitizePhone(stringValue(payload["phone"]))
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "phone", Message: err.Error()})
	}

	for _, field := range dateFields[subType] {
		raw := stringValue(payload[field])
		if raw == "" {
			continue
		}
		normalized, ok := coerceDate(raw)
		if !ok {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be a valid date", field),
			})
			continue
		}
		payload[field] = normalized
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	now := time.Now()
	submission := &models.Submission{
		Type:      subType,
		Name:      utils.SanitizeInput(stringValue(payload["name"])),
		Email:     email,
		Phone:     phone,
		Status:    models.StatusNew,
		IsRead:    false,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
		UpdatedAt: now,
		Details:   extractDetails(subType, payload),
	}

	// Tours are stored under the shared collection with their
	// discriminator; everything else stores its route type.
	if subType == models.TypeDomestic || subType == models.TypeInternational {
		submission.Type = models.TypeTour
		submission.Details["tourType"] = subType
	}

	return submission, nil, nil
}

// applyDefaults fills the per-type intake defaults into the payload.
func applyDefaults(subType string, payload map[string]interface{}) {
	setDefault := func(field string, value interface{}) {
		if isEmpty(payload[field]) {
			payload[field] = value
		}
	}

	switch subType {
	case models.TypeFlight:
		setDefault("adults", 1)
		setDefault("children", 0)
		setDefault("travelClass", "economy")
	case models.TypeDomestic, models.TypeInternational:
		setDefault("accommodationType", "standard")
	case models.TypeHoneymoon:
		setDefault("isDirectBooking", false)
	}
}

// extractDetails copies the type-specific fields out of the payload,
// sanitizing string values. Every envelope field stays out: Details is
// stored inline, so a stray createdAt or ipAddress key in the payload
// would collide with the struct fields at encode time.
func extractDetails(subType string, payload map[string]interface{}) map[string]interface{} {
	envelope := map[string]bool{
		"id": true, "_id": true, "type": true,
		"name": true, "email": true, "phone": true,
		"status": true, "isRead": true, "readAt": true, "notes": true,
		"ipAddress": true, "userAgent": true,
		"createdAt": true, "updatedAt": true,
	}

	details := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		if envelope[key] {
			continue
		}
		if str, ok := value.(string); ok {
			value = utils.SanitizeInput(str)
		}
		details[key] = value
	}
	return details
}

// coerceDate normalizes a date string to YYYY-MM-DD.
func coerceDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// isEmpty reports whether a payload value is missing or blank.
func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

// stringValue renders a payload value as a string. JSON numbers arrive
// as float64 and are formatted without a trailing fraction.
func stringValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
