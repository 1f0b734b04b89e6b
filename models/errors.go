package models

import "errors"

// Sentinel errors shared by the repositories and services. Controllers
// map them onto HTTP statuses.
var (
	// ErrNotFound means the (type, id) pair resolved to no record.
	ErrNotFound = errors.New("submission not found")

	// ErrUnknownSubmissionType means the type discriminator is not one
	// of the eight known values.
	ErrUnknownSubmissionType = errors.New("unknown submission type")

	// ErrInvalidStatus means a status value outside the canonical and
	// legacy vocabularies was supplied on a write path.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrTypeMismatch means a tour record was addressed through the
	// wrong domestic/international route.
	ErrTypeMismatch = errors.New("tour type mismatch")
)
