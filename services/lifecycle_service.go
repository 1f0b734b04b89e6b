package services

import (
	"context"
	"time"

	"github.com/tripnest/tripnest_backend/models"
	"github.com/tripnest/tripnest_backend/repositories"
)

// LifecycleService moves submissions through triage: status changes,
// read tracking, notes and deletion.
type LifecycleService struct {
	store repositories.SubmissionStore
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(store repositories.SubmissionStore) *LifecycleService {
	return &LifecycleService{store: store}
}

// SetStatus updates a submission's status, optionally replacing its
// triage notes. Any status may be set from any other: admins jump
// straight to resolved routinely, so no ordering is enforced. Legacy
// status vocabulary is accepted and mapped to the canonical enum.
func (s *LifecycleService) SetStatus(ctx context.Context, subType, id, status string, notes *string) (*models.Submission, error) {
	canonical, ok := models.NormalizeStatus(status)
	if !ok {
		return nil, models.ErrInvalidStatus
	}

	fields := map[string]interface{}{"status": canonical}
	if notes != nil {
		fields["notes"] = *notes
	}
	return s.store.UpdateFields(ctx, subType, id, fields)
}

// MarkRead flags a submission as reviewed, independent of its status.
func (s *LifecycleService) MarkRead(ctx context.Context, subType, id string) (*models.Submission, error) {
	now := time.Now()
	return s.store.UpdateFields(ctx, subType, id, map[string]interface{}{
		"isRead": true,
		"readAt": now,
	})
}

// MarkUnread clears the read flag and timestamp.
func (s *LifecycleService) MarkUnread(ctx context.Context, subType, id string) (*models.Submission, error) {
	return s.store.UpdateFields(ctx, subType, id, map[string]interface{}{
		"isRead": false,
		"readAt": nil,
	})
}

// Delete hard-deletes a submission. Tour deletes are guarded: the
// record's stored tourType must agree with the addressed type, so a
// domestic route can never remove an international record through the
// shared collection.
func (s *LifecycleService) Delete(ctx context.Context, subType, id string) error {
	if subType == models.TypeDomestic || subType == models.TypeInternational {
		// Look up without the tourType discriminator so a mismatch is
		// distinguishable from a missing record
		record, err := s.store.FindByID(ctx, models.TypeTour, id)
		if err != nil {
			return err
		}
		if record.TourType() != subType {
			return models.ErrTypeMismatch
		}
	}
	return s.store.Delete(ctx, subType, id)
}
