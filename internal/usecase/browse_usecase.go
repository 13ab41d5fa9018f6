package usecase

import (
	"context"
	"errors"
	"log"

	"gigboard/internal/repository"

	"github.com/google/uuid"
)

// maxPageSize clamps oversized page requests instead of rejecting them.
const maxPageSize = 50

type BrowseJobsParams struct {
	Search    string
	Skills    []string
	Locations []string
	MinRate   *float64
	MaxRate   *float64
	Page      int
	Limit     int
}

type BrowseJobItem struct {
	Job        repository.Job
	HasApplied bool
}

type BrowseJobsResult struct {
	Items []BrowseJobItem
	Total int
	Page  int
	Pages int
}

type BrowseUsecase interface {
	BrowseOpenJobs(ctx context.Context, freelancerID uuid.UUID, params BrowseJobsParams) (BrowseJobsResult, error)
	GetOpenJob(ctx context.Context, freelancerID, jobID uuid.UUID) (BrowseJobItem, error)
}

type BrowseService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	cache        SearchCache
	logger       *log.Logger
}

func NewBrowseUsecase(jobs repository.JobRepository, applications repository.ApplicationRepository, cache SearchCache, logger *log.Logger) *BrowseService {
	if logger == nil {
		logger = log.Default()
	}
	return &BrowseService{jobs: jobs, applications: applications, cache: cache, logger: logger}
}

// cached portion of a browse result; hasApplied is per-caller and always
// annotated fresh
type browseCacheEntry struct {
	Jobs  []repository.Job `json:"jobs"`
	Total int              `json:"total"`
}

func (u *BrowseService) BrowseOpenJobs(ctx context.Context, freelancerID uuid.UUID, params BrowseJobsParams) (BrowseJobsResult, error) {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	params.Page = page
	params.Limit = limit
	params.Skills = cleanSkills(params.Skills)
	params.Locations = cleanSkills(params.Locations)

	filter := repository.BrowseFilter{
		TitleSearch: params.Search,
		Skills:      params.Skills,
		Locations:   params.Locations,
		MinBudget:   params.MinRate,
		MaxBudget:   params.MaxRate,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}

	cacheable := u.cache != nil && hasBrowseFilter(params)
	cacheKey := ""

	var entry browseCacheEntry
	loaded := false
	if cacheable {
		cacheKey = BrowseJobsCacheKey(params)
		hit, err := u.cache.GetJSON(ctx, cacheKey, &entry)
		if err == nil && hit {
			u.logger.Printf("[Browse] cache hit | key=%s", cacheKey)
			loaded = true
		}
	}

	// single writer fills a missing cache entry; everyone else waits for it
	lockKey := ""
	lockAcquired := false
	if !loaded && cacheable {
		lockKey = BrowseJobsLockKey(cacheKey)
		var hit bool
		lockAcquired, hit = waitForCacheFill(ctx, u.cache, cacheKey, lockKey, &entry)
		if hit {
			u.logger.Printf("[Browse] cache hit after lock wait | key=%s", cacheKey)
			loaded = true
		}
	}

	if !loaded {
		jobs, total, err := u.jobs.BrowseOpen(ctx, filter)
		if err != nil {
			return BrowseJobsResult{}, ErrInternal
		}
		entry = browseCacheEntry{Jobs: jobs, Total: total}

		if cacheable {
			_ = u.cache.SetJSON(ctx, cacheKey, entry, searchCacheTTL)
			if lockAcquired {
				_ = u.cache.Delete(ctx, lockKey)
			}
		}
	}

	appliedJobIDs, err := u.applications.JobIDsByApplicant(ctx, freelancerID)
	if err != nil {
		return BrowseJobsResult{}, ErrInternal
	}
	applied := make(map[uuid.UUID]bool, len(appliedJobIDs))
	for _, id := range appliedJobIDs {
		applied[id] = true
	}

	items := make([]BrowseJobItem, 0, len(entry.Jobs))
	for _, j := range entry.Jobs {
		items = append(items, BrowseJobItem{Job: j, HasApplied: applied[j.ID]})
	}

	pages := entry.Total / limit
	if entry.Total%limit != 0 {
		pages++
	}

	return BrowseJobsResult{Items: items, Total: entry.Total, Page: page, Pages: pages}, nil
}

func (u *BrowseService) GetOpenJob(ctx context.Context, freelancerID, jobID uuid.UUID) (BrowseJobItem, error) {
	j, err := u.jobs.GetOpenByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return BrowseJobItem{}, ErrJobNotFound
		}
		return BrowseJobItem{}, ErrInternal
	}

	hasApplied, err := u.applications.ExistsForJobAndApplicant(ctx, jobID, freelancerID)
	if err != nil {
		return BrowseJobItem{}, ErrInternal
	}

	return BrowseJobItem{Job: j, HasApplied: hasApplied}, nil
}

func hasBrowseFilter(p BrowseJobsParams) bool {
	return p.Search != "" || len(p.Skills) > 0 || len(p.Locations) > 0 || p.MinRate != nil || p.MaxRate != nil
}
