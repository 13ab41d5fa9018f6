package usecase

import (
	"context"
	"log"

	"gigboard/internal/repository"

	"github.com/google/uuid"
)

type SearchFreelancersParams struct {
	Name   string
	Skills []string
	Page   int
	Limit  int
}

// FreelancerResult is one search row: profile merged with identity, plus the
// freelancer's application history relative to the requesting client.
type FreelancerResult struct {
	ProfileID          uuid.UUID
	Name               string
	Email              string
	Role               string
	Bio                string
	Location           string
	Skills             []string
	Qualifications     []string
	YearsOfExperience  int
	HourlyRate         float64
	Portfolio          []repository.PortfolioItem
	Certificates       []repository.CertificateItem
	Experience         []repository.ExperienceItem
	TotalApplications  int
	ApplicationsToYou  int
	RecentApplications []repository.ApplicationDetail
}

type SearchFreelancersResult struct {
	Freelancers []FreelancerResult
	CurrentPage int
	Limit       int
	Total       int
	TotalPages  int
}

type SearchUsecase interface {
	SearchFreelancers(ctx context.Context, clientID uuid.UUID, params SearchFreelancersParams) (SearchFreelancersResult, error)
}

type SearchService struct {
	profiles     repository.ProfileRepository
	applications repository.ApplicationRepository
	cache        SearchCache
	logger       *log.Logger
}

const recentApplicationsShown = 3

func NewSearchUsecase(profiles repository.ProfileRepository, applications repository.ApplicationRepository, cache SearchCache, logger *log.Logger) *SearchService {
	if logger == nil {
		logger = log.Default()
	}
	return &SearchService{profiles: profiles, applications: applications, cache: cache, logger: logger}
}

type freelancerSearchCacheEntry struct {
	Rows  []repository.ProfileWithIdentity `json:"rows"`
	Total int                              `json:"total"`
}

func (u *SearchService) SearchFreelancers(ctx context.Context, clientID uuid.UUID, params SearchFreelancersParams) (SearchFreelancersResult, error) {
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

	filter := repository.ProfileSearchFilter{
		NameSearch: params.Name,
		Skills:     params.Skills,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	cacheable := u.cache != nil && (params.Name != "" || len(params.Skills) > 0)
	cacheKey := ""

	var entry freelancerSearchCacheEntry
	loaded := false
	if cacheable {
		cacheKey = FreelancerSearchCacheKey(params)
		hit, err := u.cache.GetJSON(ctx, cacheKey, &entry)
		if err == nil && hit {
			u.logger.Printf("[Search] cache hit | key=%s", cacheKey)
			loaded = true
		}
	}

	// single writer fills a missing cache entry; everyone else waits for it
	lockKey := ""
	lockAcquired := false
	if !loaded && cacheable {
		lockKey = FreelancerSearchLockKey(cacheKey)
		var hit bool
		lockAcquired, hit = waitForCacheFill(ctx, u.cache, cacheKey, lockKey, &entry)
		if hit {
			u.logger.Printf("[Search] cache hit after lock wait | key=%s", cacheKey)
			loaded = true
		}
	}

	if !loaded {
		rows, total, err := u.profiles.Search(ctx, filter)
		if err != nil {
			return SearchFreelancersResult{}, ErrInternal
		}
		entry = freelancerSearchCacheEntry{Rows: rows, Total: total}

		if cacheable {
			_ = u.cache.SetJSON(ctx, cacheKey, entry, searchCacheTTL)
			if lockAcquired {
				_ = u.cache.Delete(ctx, lockKey)
			}
		}
	}

	// application history is per-requester, so it's always joined fresh
	applicantIDs := make([]uuid.UUID, 0, len(entry.Rows))
	for _, row := range entry.Rows {
		applicantIDs = append(applicantIDs, row.UserID)
	}

	apps, err := u.applications.ListByApplicants(ctx, applicantIDs)
	if err != nil {
		return SearchFreelancersResult{}, ErrInternal
	}

	byApplicant := make(map[uuid.UUID][]repository.ApplicationDetail, len(applicantIDs))
	for _, a := range apps {
		byApplicant[a.ApplicantID] = append(byApplicant[a.ApplicantID], a)
	}

	freelancers := make([]FreelancerResult, 0, len(entry.Rows))
	for _, row := range entry.Rows {
		all := byApplicant[row.UserID]

		toYou := make([]repository.ApplicationDetail, 0)
		for _, a := range all {
			if a.JobClientID == clientID {
				toYou = append(toYou, a)
			}
		}

		recent := toYou
		if len(recent) > recentApplicationsShown {
			recent = recent[:recentApplicationsShown]
		}

		freelancers = append(freelancers, FreelancerResult{
			ProfileID:          row.ID,
			Name:               row.Name,
			Email:              row.Email,
			Role:               row.Role,
			Bio:                row.Description,
			Location:           row.Location,
			Skills:             row.Skills,
			Qualifications:     row.Qualifications,
			YearsOfExperience:  row.YearsOfExperience,
			HourlyRate:         row.HourlyRate,
			Portfolio:          row.Portfolio,
			Certificates:       row.Certificates,
			Experience:         row.Experience,
			TotalApplications:  len(all),
			ApplicationsToYou:  len(toYou),
			RecentApplications: recent,
		})
	}

	totalPages := entry.Total / limit
	if entry.Total%limit != 0 {
		totalPages++
	}

	return SearchFreelancersResult{
		Freelancers: freelancers,
		CurrentPage: page,
		Limit:       limit,
		Total:       entry.Total,
		TotalPages:  totalPages,
	}, nil
}
