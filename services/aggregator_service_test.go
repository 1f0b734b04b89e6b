package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripnest/tripnest_backend/models"
)

func TestQuerySingleTypePagination(t *testing.T) {
	store := newFakeStore()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		store.seed(models.TypeContact, base.Add(time.Duration(i)*time.Hour), models.StatusNew)
	}

	agg := NewAggregatorService(store)
	result, err := agg.Query(context.Background(), QueryParams{
		Type:  models.TypeContact,
		Page:  2,
		Limit: 10,
	})
	require.NoError(t, err)

	assert.Len(t, result.Submissions, 10)
	assert.Equal(t, int64(25), result.TotalCount)
	assert.Equal(t, 2, result.CurrentPage)
	assert.Equal(t, 3, result.TotalPages)

	// Page 2 starts at the 11th newest record
	assert.Equal(t, base.Add(14*time.Hour), result.Submissions[0].CreatedAt)
	assert.Equal(t, base.Add(5*time.Hour), result.Submissions[9].CreatedAt)
}

func TestQueryAllMergesAcrossTypes(t *testing.T) {
	store := newFakeStore()
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	store.seed(models.TypeContact, base.Add(1*time.Hour), models.StatusNew)
	store.seed(models.TypeFlight, base.Add(2*time.Hour), models.StatusNew)
	store.seed(models.TypeVisa, base.Add(3*time.Hour), models.StatusNew)
	store.seed(models.TypeDomestic, base.Add(4*time.Hour), models.StatusNew)
	store.seed(models.TypeInternational, base.Add(5*time.Hour), models.StatusNew)

	agg := NewAggregatorService(store)
	result, err := agg.Query(context.Background(), QueryParams{Type: "all"})
	require.NoError(t, err)

	require.Len(t, result.Submissions, 5)
	assert.Equal(t, int64(5), result.TotalCount)

	// Newest first, interleaved across stores
	for i := 1; i < len(result.Submissions); i++ {
		assert.False(t, result.Submissions[i].CreatedAt.After(result.Submissions[i-1].CreatedAt))
	}
	assert.Equal(t, models.TypeInternational, result.Submissions[0].Type)
	assert.Equal(t, models.TypeContact, result.Submissions[4].Type)

	// No duplicate (type, id) pairs in the merge
	seen := make(map[string]bool)
	for _, sub := range result.Submissions {
		key := sub.Type + "/" + sub.ID.Hex()
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
}

func TestQueryAllStatusFilterWithPaging(t *testing.T) {
	store := newFakeStore()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		store.seed(models.TypeContact, base.Add(time.Duration(i)*time.Minute), models.StatusNew)
	}
	for i := 0; i < 4; i++ {
		store.seed(models.TypeFlight, base.Add(time.Duration(10+i)*time.Minute), models.StatusNew)
	}
	// Resolved records must not count
	store.seed(models.TypeVisa, base, models.StatusResolved)

	agg := NewAggregatorService(store)
	result, err := agg.Query(context.Background(), QueryParams{
		Type:   "all",
		Status: models.StatusNew,
		Page:   1,
		Limit:  5,
	})
	require.NoError(t, err)

	assert.Len(t, result.Submissions, 5)
	assert.Equal(t, int64(7), result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
}

func TestQueryLegacyStatusFilter(t *testing.T) {
	store := newFakeStore()
	store.seed(models.TypeContact, time.Now(), models.StatusInProgress)

	agg := NewAggregatorService(store)
	result, err := agg.Query(context.Background(), QueryParams{
		Type:   models.TypeContact,
		Status: "processing", // legacy vocabulary
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
}

func TestQueryInvalidEnumsNormalizeToAll(t *testing.T) {
	store := newFakeStore()
	store.seed(models.TypeContact, time.Now(), models.StatusNew)
	store.seed(models.TypeFlight, time.Now(), models.StatusResolved)

	agg := NewAggregatorService(store)
	result, err := agg.Query(context.Background(), QueryParams{
		Type:   "bogus",
		Status: "whatever",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCount)
}

func TestQueryAllSurvivesFailingStore(t *testing.T) {
	store := newFakeStore()
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	store.seed(models.TypeContact, base.Add(time.Hour), models.StatusNew)
	store.seed(models.TypeFlight, base.Add(2*time.Hour), models.StatusNew)
	store.failTypes[models.TypeFlight] = true

	agg := NewAggregatorService(store)
	result, err := agg.Query(context.Background(), QueryParams{Type: "all"})
	require.NoError(t, err)

	// The failed store contributes nothing, the rest still lists
	assert.Len(t, result.Submissions, 1)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, models.TypeContact, result.Submissions[0].Type)
}

func TestQueryDeepPageStraddlingFetchCap(t *testing.T) {
	store := newFakeStore()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 510; i++ {
		store.seed(models.TypeContact, base.Add(time.Duration(i)*time.Minute), models.StatusNew)
	}

	// page*limit = 540 exceeds the 500-record over-fetch cap; the fetch
	// must still read up to the cap so the straddling window is served
	agg := NewAggregatorService(store)
	result, err := agg.Query(context.Background(), QueryParams{
		Type:  "all",
		Page:  9,
		Limit: 60,
	})
	require.NoError(t, err)

	require.Len(t, result.Submissions, 20)
	assert.Equal(t, int64(510), result.TotalCount)
	assert.Equal(t, 9, result.TotalPages)
	assert.Equal(t, base.Add(29*time.Minute), result.Submissions[0].CreatedAt)
	assert.Equal(t, base.Add(10*time.Minute), result.Submissions[19].CreatedAt)
}

func TestQueryDateRangeInclusiveToDate(t *testing.T) {
	store := newFakeStore()
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	store.seed(models.TypeContact, day.Add(23*time.Hour), models.StatusNew)   // late on toDate
	store.seed(models.TypeContact, day.Add(48*time.Hour), models.StatusNew)   // after range
	store.seed(models.TypeContact, day.Add(-24*time.Hour), models.StatusNew)  // before range

	from := day
	to := day // same-day range; end-of-day inclusivity matters
	agg := NewAggregatorService(store)
	result, err := agg.Query(context.Background(), QueryParams{
		Type:     models.TypeContact,
		FromDate: &from,
		ToDate:   &to,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
}
