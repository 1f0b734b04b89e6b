package services

import (
	"context"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/tripnest/tripnest_backend/models"
	"github.com/tripnest/tripnest_backend/repositories"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100

	// overFetchCap bounds the per-store fan-out fetch. Pages deep
	// enough that one store's matches exceed the bound can
	// under-represent that store; the totals stay exact because they
	// come from per-store counts. Fixing this for real would need a
	// unified cross-type index.
	overFetchCap = 500
)

// QueryParams is the shared filter contract of the admin listing.
type QueryParams struct {
	Type     string
	Status   string
	FromDate *time.Time
	ToDate   *time.Time
	Search   string
	Page     int
	Limit    int
}

// QueryResult is one page of the aggregated, time-ordered feed. Limit
// echoes the normalized page size applied.
type QueryResult struct {
	Submissions []models.Submission
	TotalCount  int64
	CurrentPage int
	TotalPages  int
	Limit       int
}

// AggregatorService queries across the per-type submission collections
// as one logical stream.
type AggregatorService struct {
	store repositories.SubmissionStore
}

// NewAggregatorService creates a new aggregator service
func NewAggregatorService(store repositories.SubmissionStore) *AggregatorService {
	return &AggregatorService{store: store}
}

// Query lists one page of submissions. A type of "all" fans out over
// every collection concurrently and merges the partial results by
// createdAt descending; a specific type paginates directly in the
// store. Invalid type or status values are normalized to "all" with a
// logged warning rather than rejected: the read path stays permissive
// for stale admin UI filters.
func (s *AggregatorService) Query(ctx context.Context, params QueryParams) (*QueryResult, error) {
	return s.query(ctx, params, maxPageLimit)
}

// QueryForExport runs the same aggregate with the export-sized window
// instead of the listing page clamp.
func (s *AggregatorService) QueryForExport(ctx context.Context, params QueryParams, maxRows int) (*QueryResult, error) {
	params.Page = 1
	params.Limit = maxRows
	return s.query(ctx, params, maxRows)
}

func (s *AggregatorService) query(ctx context.Context, params QueryParams, limitCap int) (*QueryResult, error) {
	subType := params.Type
	if subType == "" || subType == "all" {
		subType = "all"
	} else if !models.IsKnownType(subType) {
		log.Printf("Warning: unknown submission type filter %q, listing all types", subType)
		subType = "all"
	}

	status := params.Status
	if status == "" || status == "all" {
		status = ""
	} else if canonical, ok := models.NormalizeStatus(status); ok {
		status = canonical
	} else {
		log.Printf("Warning: unknown status filter %q, listing all statuses", status)
		status = ""
	}

	page := params.Page
	if page <= 0 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > limitCap {
		limit = limitCap
	}

	filter := models.ListFilter{
		Status:   status,
		FromDate: params.FromDate,
		ToDate:   endOfDay(params.ToDate),
		Search:   params.Search,
	}

	if subType != "all" {
		return s.querySingle(ctx, subType, filter, page, limit)
	}
	return s.queryAll(ctx, filter, page, limit)
}

func (s *AggregatorService) querySingle(ctx context.Context, subType string, filter models.ListFilter, page, limit int) (*QueryResult, error) {
	skip := int64((page - 1) * limit)

	submissions, err := s.store.Find(ctx, subType, filter, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	total, err := s.store.Count(ctx, subType, filter)
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Submissions: submissions,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		Limit:       limit,
	}, nil
}

// queryAll merges a bounded over-fetch from every store. No single
// store can paginate the merged feed, so each is read from the top with
// fetchLimit records and the page window is sliced from the sorted
// merge.
func (s *AggregatorService) queryAll(ctx context.Context, filter models.ListFilter, page, limit int) (*QueryResult, error) {
	cap64 := int64(overFetchCap)
	if int64(limit) > cap64 {
		// Export windows exceed the listing cap; each store may need to
		// contribute the whole window
		cap64 = int64(limit)
	}
	fetchLimit := int64(limit * len(models.KnownTypes))
	// Deep pages need the whole prefix of each store's feed, up to the
	// cap
	if needed := int64(page * limit); needed > fetchLimit {
		fetchLimit = needed
	}
	if fetchLimit > cap64 {
		fetchLimit = cap64
	}

	var (
		mu         sync.Mutex
		merged     []models.Submission
		totalCount int64
		wg         sync.WaitGroup
	)

	for _, subType := range models.KnownTypes {
		wg.Add(1)
		go func(subType string) {
			defer wg.Done()

			submissions, err := s.store.Find(ctx, subType, filter, 0, fetchLimit)
			if err != nil {
				// One failing collection must not abort the aggregate
				log.Printf("Error querying %s submissions: %v", subType, err)
				return
			}
			count, err := s.store.Count(ctx, subType, filter)
			if err != nil {
				log.Printf("Error counting %s submissions: %v", subType, err)
				return
			}

			mu.Lock()
			merged = append(merged, submissions...)
			totalCount += count
			mu.Unlock()
		}(subType)
	}
	wg.Wait()

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		// Secondary id ordering keeps equal timestamps deterministic
		return merged[i].ID.Hex() > merged[j].ID.Hex()
	})

	start := (page - 1) * limit
	if start > len(merged) {
		start = len(merged)
	}
	end := start + limit
	if end > len(merged) {
		end = len(merged)
	}

	return &QueryResult{
		Submissions: merged[start:end],
		TotalCount:  totalCount,
		CurrentPage: page,
		TotalPages:  totalPages(totalCount, limit),
		Limit:       limit,
	}, nil
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

// endOfDay pushes an inclusive to-date to the last instant of its day.
func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	eod := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
	return &eod
}
