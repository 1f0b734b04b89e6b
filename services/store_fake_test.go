package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tripnest/tripnest_backend/models"
)

// fakeStore is an in-memory SubmissionStore mirroring the Mongo
// repository's semantics: one bucket per collection, tours shared
// between the domestic and international discriminators.
type fakeStore struct {
	mu      sync.Mutex
	buckets map[string][]models.Submission
	// failTypes makes Find/Count error for the given addressed types
	failTypes map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		buckets:   make(map[string][]models.Submission),
		failTypes: make(map[string]bool),
	}
}

// bucketKey maps an addressed type onto its collection bucket.
func bucketKey(subType string) string {
	switch subType {
	case models.TypeDomestic, models.TypeInternational, models.TypeTour:
		return models.TypeTour
	}
	return subType
}

// matchesDiscriminator applies the tourType scoping of the shared
// tours bucket.
func matchesDiscriminator(subType string, sub *models.Submission) bool {
	switch subType {
	case models.TypeDomestic, models.TypeInternational:
		return sub.TourType() == subType
	}
	return true
}

func matchesFilter(sub *models.Submission, filter models.ListFilter) bool {
	if filter.Status != "" && sub.Status != filter.Status {
		return false
	}
	if filter.IsRead != nil && sub.IsRead != *filter.IsRead {
		return false
	}
	if filter.FromDate != nil && sub.CreatedAt.Before(*filter.FromDate) {
		return false
	}
	if filter.ToDate != nil && sub.CreatedAt.After(*filter.ToDate) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(sub.Name), needle) &&
			!strings.Contains(strings.ToLower(sub.Email), needle) &&
			!strings.Contains(strings.ToLower(sub.Phone), needle) {
			return false
		}
	}
	return true
}

func (f *fakeStore) Insert(_ context.Context, submission *models.Submission) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if submission.ID.IsZero() {
		submission.ID = primitive.NewObjectID()
	}
	key := bucketKey(submission.Type)
	f.buckets[key] = append(f.buckets[key], *submission)
	return submission.ID, nil
}

func (f *fakeStore) FindByID(_ context.Context, subType, id string) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.buckets[bucketKey(subType)] {
		sub := f.buckets[bucketKey(subType)][i]
		if sub.ID.Hex() == id && matchesDiscriminator(subType, &sub) {
			sub.Type = subType
			return &sub, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) Find(_ context.Context, subType string, filter models.ListFilter, skip, limit int64) ([]models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failTypes[subType] {
		return nil, errors.New("store unavailable")
	}

	var matched []models.Submission
	for i := range f.buckets[bucketKey(subType)] {
		sub := f.buckets[bucketKey(subType)][i]
		if matchesDiscriminator(subType, &sub) && matchesFilter(&sub, filter) {
			sub.Type = subType
			matched = append(matched, sub)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})

	if skip > int64(len(matched)) {
		skip = int64(len(matched))
	}
	matched = matched[skip:]
	if limit > 0 && limit < int64(len(matched)) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeStore) Count(_ context.Context, subType string, filter models.ListFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failTypes[subType] {
		return 0, errors.New("store unavailable")
	}

	var count int64
	for i := range f.buckets[bucketKey(subType)] {
		sub := f.buckets[bucketKey(subType)][i]
		if matchesDiscriminator(subType, &sub) && matchesFilter(&sub, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) UpdateFields(_ context.Context, subType, id string, fields map[string]interface{}) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := bucketKey(subType)
	for i := range f.buckets[key] {
		sub := &f.buckets[key][i]
		if sub.ID.Hex() != id || !matchesDiscriminator(subType, sub) {
			continue
		}
		for field, value := range fields {
			switch field {
			case "status":
				sub.Status = value.(string)
			case "notes":
				sub.Notes = value.(string)
			case "isRead":
				sub.IsRead = value.(bool)
			case "readAt":
				if value == nil {
					sub.ReadAt = nil
				} else {
					at := value.(time.Time)
					sub.ReadAt = &at
				}
			}
		}
		sub.UpdatedAt = time.Now()
		updated := *sub
		updated.Type = subType
		return &updated, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, subType, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := bucketKey(subType)
	for i := range f.buckets[key] {
		sub := f.buckets[key][i]
		if sub.ID.Hex() == id && matchesDiscriminator(subType, &sub) {
			f.buckets[key] = append(f.buckets[key][:i], f.buckets[key][i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// seed inserts a submission with the given stored type and createdAt.
func (f *fakeStore) seed(subType string, createdAt time.Time, status string) models.Submission {
	sub := models.Submission{
		Type:      subType,
		Name:      "Seed User",
		Email:     "seed@example.com",
		Phone:     "+15550100",
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Details:   map[string]interface{}{},
	}
	if subType == models.TypeDomestic || subType == models.TypeInternational {
		sub.Details["tourType"] = subType
		sub.Type = models.TypeTour
	}
	_, _ = f.Insert(context.Background(), &sub)
	return sub
}
