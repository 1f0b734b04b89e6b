package models

// Response is the envelope used by the admin back-office endpoints
// (auth, carousel, page content, stats).
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// IntakeResponse is the envelope for the public form-submit endpoint.
// The marketing site's form handlers key off the success flag.
type IntakeResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	ID      string       `json:"id,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// ListResponse is the envelope for the aggregated admin listing.
type ListResponse struct {
	Success     bool         `json:"success"`
	Submissions []Submission `json:"submissions"`
	Pagination  Pagination   `json:"pagination"`
}

// SingleResponse wraps one submission for the admin detail endpoints.
type SingleResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Submission *Submission `json:"submission,omitempty"`
}
