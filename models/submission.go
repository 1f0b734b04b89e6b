package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission types. Domestic and international tours share the tours
// collection and are told apart by the tourType field.
const (
	TypeContact       = "contact"
	TypeFlight        = "flight"
	TypeVisa          = "visa"
	TypePassport      = "passport"
	TypeForex         = "forex"
	TypeHoneymoon     = "honeymoon"
	TypeDomestic      = "domestic"
	TypeInternational = "international"

	// TypeTour is the stored type of tour records; the public routes
	// and the aggregator always address tours as domestic or
	// international.
	TypeTour = "tour"
)

// KnownTypes lists every valid submission type discriminator, in the
// order the aggregator fans out over them.
var KnownTypes = []string{
	TypeContact,
	TypeFlight,
	TypeVisa,
	TypePassport,
	TypeForex,
	TypeHoneymoon,
	TypeDomestic,
	TypeInternational,
}

// IsKnownType reports whether t is one of the eight discriminators.
func IsKnownType(t string) bool {
	for _, known := range KnownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Canonical submission statuses. READ is not a status: it is the
// orthogonal isRead flag on the record.
const (
	StatusNew        = "new"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// legacyStatusMap maps the status vocabularies used by older clients
// onto the canonical enum. "cancelled" maps to resolved: a dropped
// inquiry and a handled one both leave the triage queue.
var legacyStatusMap = map[string]string{
	"pending":    StatusNew,
	"processing": StatusInProgress,
	"completed":  StatusResolved,
	"cancelled":  StatusResolved,
}

// NormalizeStatus resolves a status value (canonical or legacy) to the
// canonical enum. The second return is false for unknown values.
func NormalizeStatus(status string) (string, bool) {
	switch status {
	case StatusNew, StatusInProgress, StatusResolved:
		return status, true
	}
	if canonical, ok := legacyStatusMap[status]; ok {
		return canonical, true
	}
	return "", false
}

// Submission is the common envelope for every inquiry-form record.
// Type-specific fields (flight routes, visa destinations, budgets...)
// live in Details, stored inline at the top level of the document so
// each collection keeps the flat shape the admin UI expects.
type Submission struct {
	ID        primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	Type      string                 `json:"type" bson:"type"`
	Name      string                 `json:"name" bson:"name"`
	Email     string                 `json:"email" bson:"email"`
	Phone     string                 `json:"phone" bson:"phone"`
	Status    string                 `json:"status" bson:"status"`
	IsRead    bool                   `json:"isRead" bson:"isRead"`
	ReadAt    *time.Time             `json:"readAt,omitempty" bson:"readAt,omitempty"`
	Notes     string                 `json:"notes,omitempty" bson:"notes,omitempty"`
	IPAddress string                 `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent string                 `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	CreatedAt time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt" bson:"updatedAt"`
	Details   map[string]interface{} `json:"-" bson:",inline"`
}

// MarshalJSON flattens Details into the top-level object so API
// responses carry flight/visa/tour fields alongside the common ones,
// matching the stored document shape. Envelope fields win on collision.
func (s Submission) MarshalJSON() ([]byte, error) {
	type alias Submission
	base, err := json.Marshal(alias(s))
	if err != nil {
		return nil, err
	}

	merged := make(map[string]interface{}, len(s.Details)+12)
	for k, v := range s.Details {
		merged[k] = v
	}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	return json.Marshal(merged)
}

// TourType returns the tour discriminator for tour records, empty for
// everything else.
func (s *Submission) TourType() string {
	if tt, ok := s.Details["tourType"].(string); ok {
		return tt
	}
	return ""
}

// FieldError describes a single invalid or missing intake field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ListFilter is the shared filter contract every submission collection
// is queried with during aggregation. Zero values mean "no constraint".
type ListFilter struct {
	Status   string
	IsRead   *bool
	FromDate *time.Time
	ToDate   *time.Time
	Search   string
}

// Pagination echoes back the window of a listing response.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// StatusUpdateRequest is the body of PUT .../status.
type StatusUpdateRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}
