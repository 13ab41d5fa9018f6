package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

const (
	searchCacheTTL = 2 * time.Minute
	searchLockTTL  = 30 * time.Second
	searchLockWait = 300 * time.Millisecond
)

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func normalizeSearchValues(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = normalizeSearchValue(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

type browseCacheKeyInput struct {
	Search    string   `json:"search"`
	Skills    []string `json:"skills"`
	Locations []string `json:"locations"`
	MinRate   *float64 `json:"min_rate"`
	MaxRate   *float64 `json:"max_rate"`
	Page      int      `json:"page"`
	Limit     int      `json:"limit"`
}

func BrowseJobsCacheKey(p BrowseJobsParams) string {
	in := browseCacheKeyInput{
		Search:    normalizeSearchValue(p.Search),
		Skills:    normalizeSearchValues(p.Skills),
		Locations: normalizeSearchValues(p.Locations),
		MinRate:   p.MinRate,
		MaxRate:   p.MaxRate,
		Page:      p.Page,
		Limit:     p.Limit,
	}
	return "jobs:browse:" + hashKey(in)
}

type freelancerSearchCacheKeyInput struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
	Page   int      `json:"page"`
	Limit  int      `json:"limit"`
}

func FreelancerSearchCacheKey(p SearchFreelancersParams) string {
	in := freelancerSearchCacheKeyInput{
		Name:   normalizeSearchValue(p.Name),
		Skills: normalizeSearchValues(p.Skills),
		Page:   p.Page,
		Limit:  p.Limit,
	}
	return "freelancers:search:" + hashKey(in)
}

// BrowseJobsLockKey derives the cache fill lock for a browse cache key.
func BrowseJobsLockKey(cacheKey string) string {
	return "jobs:lock:" + strings.TrimPrefix(cacheKey, "jobs:browse:")
}

// FreelancerSearchLockKey derives the cache fill lock for a search cache key.
func FreelancerSearchLockKey(cacheKey string) string {
	return "freelancers:lock:" + strings.TrimPrefix(cacheKey, "freelancers:search:")
}

// waitForCacheFill tries to take the fill lock for cacheKey. When another
// worker already holds it, waits briefly for that worker to populate the
// cache and retries the read once; a miss after the wait means the caller
// falls through to the database without the lock.
func waitForCacheFill(ctx context.Context, cache SearchCache, cacheKey, lockKey string, out any) (acquired, hit bool) {
	ok, err := cache.SetIfNotExists(ctx, lockKey, "1", searchLockTTL)
	if err != nil || ok {
		return err == nil, false
	}

	jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
	time.Sleep(searchLockWait + jitter)

	found, err := cache.GetJSON(ctx, cacheKey, out)
	return false, err == nil && found
}

func hashKey(v any) string {
	b, _ := json.Marshal(v)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
