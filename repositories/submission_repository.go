package repositories

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tripnest/tripnest_backend/models"
)

// SubmissionStore is the storage contract the intake, aggregation and
// lifecycle services operate against. The tests substitute an
// in-memory implementation.
type SubmissionStore interface {
	Insert(ctx context.Context, submission *models.Submission) (primitive.ObjectID, error)
	FindByID(ctx context.Context, subType, id string) (*models.Submission, error)
	Find(ctx context.Context, subType string, filter models.ListFilter, skip, limit int64) ([]models.Submission, error)
	Count(ctx context.Context, subType string, filter models.ListFilter) (int64, error)
	UpdateFields(ctx context.Context, subType, id string, fields map[string]interface{}) (*models.Submission, error)
	Delete(ctx context.Context, subType, id string) error
}

// SubmissionRepository stores submissions in MongoDB, one collection
// per inquiry domain. Domestic and international tours share the tours
// collection, discriminated by the tourType field.
//
// Status updates are last-writer-wins: there is no optimistic
// concurrency token, which is acceptable at this system's admin-edit
// contention.
type SubmissionRepository struct {
	db *mongo.Database
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// collectionFor resolves a submission type to its collection and the
// discriminator filter that scopes shared collections.
func (r *SubmissionRepository) collectionFor(subType string) (*mongo.Collection, bson.M, error) {
	switch subType {
	case models.TypeContact:
		return r.db.Collection("contacts"), bson.M{}, nil
	case models.TypeFlight:
		return r.db.Collection("flightInquiries"), bson.M{}, nil
	case models.TypeVisa:
		return r.db.Collection("visaInquiries"), bson.M{}, nil
	case models.TypePassport:
		return r.db.Collection("passportInquiries"), bson.M{}, nil
	case models.TypeForex:
		return r.db.Collection("forexInquiries"), bson.M{}, nil
	case models.TypeHoneymoon:
		return r.db.Collection("honeymoonInquiries"), bson.M{}, nil
	case models.TypeDomestic:
		return r.db.Collection("tours"), bson.M{"tourType": "domestic"}, nil
	case models.TypeInternational:
		return r.db.Collection("tours"), bson.M{"tourType": "international"}, nil
	case models.TypeTour:
		// Insert path only: tour records carry their own tourType
		return r.db.Collection("tours"), bson.M{}, nil
	}
	return nil, nil, models.ErrUnknownSubmissionType
}

// buildFilter converts the shared filter contract into a Mongo query.
// Date bounds are inclusive on both ends; callers normalize toDate to
// end-of-day before passing it in.
func buildFilter(discriminator bson.M, filter models.ListFilter) bson.M {
	query := bson.M{}
	for k, v := range discriminator {
		query[k] = v
	}

	if filter.Status != "" {
		query["status"] = filter.Status
	}

	if filter.IsRead != nil {
		query["isRead"] = *filter.IsRead
	}

	if filter.FromDate != nil || filter.ToDate != nil {
		dateRange := bson.M{}
		if filter.FromDate != nil {
			dateRange["$gte"] = *filter.FromDate
		}
		if filter.ToDate != nil {
			dateRange["$lte"] = *filter.ToDate
		}
		query["createdAt"] = dateRange
	}

	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"name": pattern},
			{"email": pattern},
			{"phone": pattern},
		}
	}

	return query
}

// Insert persists a new submission and returns its assigned id.
func (r *SubmissionRepository) Insert(ctx context.Context, submission *models.Submission) (primitive.ObjectID, error) {
	coll, _, err := r.collectionFor(submission.Type)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if submission.ID.IsZero() {
		submission.ID = primitive.NewObjectID()
	}

	_, err = coll.InsertOne(ctx, submission)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return submission.ID, nil
}

// FindByID fetches a single submission by its (type, id) pair.
func (r *SubmissionRepository) FindByID(ctx context.Context, subType, id string) (*models.Submission, error) {
	coll, discriminator, err := r.collectionFor(subType)
	if err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	query := bson.M{"_id": objID}
	for k, v := range discriminator {
		query[k] = v
	}

	var submission models.Submission
	err = coll.FindOne(ctx, query).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	submission.Type = subType
	return &submission, nil
}

// Find lists submissions of one type under the shared filter, sorted by
// createdAt then id descending.
func (r *SubmissionRepository) Find(ctx context.Context, subType string, filter models.ListFilter, skip, limit int64) ([]models.Submission, error) {
	coll, discriminator, err := r.collectionFor(subType)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := coll.Find(ctx, buildFilter(discriminator, filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []models.Submission
	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	for i := range submissions {
		submissions[i].Type = subType
	}
	return submissions, nil
}

// Count returns the number of submissions matching the shared filter.
func (r *SubmissionRepository) Count(ctx context.Context, subType string, filter models.ListFilter) (int64, error) {
	coll, discriminator, err := r.collectionFor(subType)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, buildFilter(discriminator, filter))
}

// UpdateFields applies a $set of the given fields and returns the
// updated record.
func (r *SubmissionRepository) UpdateFields(ctx context.Context, subType, id string, fields map[string]interface{}) (*models.Submission, error) {
	coll, discriminator, err := r.collectionFor(subType)
	if err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	query := bson.M{"_id": objID}
	for k, v := range discriminator {
		query[k] = v
	}

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Submission
	err = coll.FindOneAndUpdate(ctx, query, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	updated.Type = subType
	return &updated, nil
}

// Delete hard-deletes a submission. Tour records are only matched when
// the collection's tourType agrees with the addressed type.
func (r *SubmissionRepository) Delete(ctx context.Context, subType, id string) error {
	coll, discriminator, err := r.collectionFor(subType)
	if err != nil {
		return err
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	query := bson.M{"_id": objID}
	for k, v := range discriminator {
		query[k] = v
	}

	result, err := coll.DeleteOne(ctx, query)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
