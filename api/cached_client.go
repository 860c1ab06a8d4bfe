package api

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kevinchua6/cp-buddies/cache"
	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/utils"
)

// CachedStatsClient 캐시 기능을 포함한 플랫폼 통계 클라이언트입니다
type CachedStatsClient struct {
	leetcode   *LeetCodeClient
	codeforces *CodeforcesClient
	cache      interface {
		GetLeetCodeStats(string) (interface{}, bool)
		SetLeetCodeStats(string, interface{})
		GetSubmissions(string) (interface{}, bool)
		SetSubmissions(string, interface{})
		GetStats() cache.CacheStats
		Clear()
	}
	cleanupCancel context.CancelFunc

	// 성능 메트릭
	cacheHits   int64
	cacheMisses int64
	totalCalls  int64
}

// NewCachedStatsClient 새로운 CachedStatsClient 인스턴스를 생성합니다.
// 빈 base URL은 각 플랫폼의 기본 엔드포인트로 대체됩니다.
func NewCachedStatsClient(leetcodeBaseURL, codeforcesBaseURL string) *CachedStatsClient {
	utils.Info("Creating cached platform stats client")

	apiCache := cache.NewAPICache()

	client := &CachedStatsClient{
		leetcode:   NewLeetCodeClient(leetcodeBaseURL),
		codeforces: NewCodeforcesClient(codeforcesBaseURL),
		cache:      apiCache,
	}

	// 캐시 정리 워커 시작
	client.cleanupCancel = apiCache.StartCleanupWorker(constants.CacheCleanupInterval)
	return client
}

// Close 캐시 정리 워커를 중지시킵니다.
func (cachedClient *CachedStatsClient) Close() {
	if cachedClient.cleanupCancel != nil {
		cachedClient.cleanupCancel()
		utils.Info("Cache cleanup worker stopped.")
	}
}

// GetLeetCodeStats 캐시를 통해 LeetCode 통계를 조회합니다
func (cachedClient *CachedStatsClient) GetLeetCodeStats(ctx context.Context, username string) (*LeetCodeStats, error) {
	atomic.AddInt64(&cachedClient.totalCalls, 1)

	// 캐시에서 먼저 조회
	if cachedData, found := cachedClient.cache.GetLeetCodeStats(username); found {
		atomic.AddInt64(&cachedClient.cacheHits, 1)
		utils.Debug("Cache hit for leetcode stats: %s", username)
		return cachedData.(*LeetCodeStats), nil
	}

	// 캐시 미스 - API 호출
	atomic.AddInt64(&cachedClient.cacheMisses, 1)
	utils.Debug("Cache miss for leetcode stats: %s, calling API", username)

	stats, err := cachedClient.leetcode.GetUserStats(ctx, username)
	if err != nil {
		return nil, err
	}

	// 성공한 응답만 캐시에 저장
	cachedClient.cache.SetLeetCodeStats(username, stats)

	return stats, nil
}

// GetCodeforcesSubmissions 캐시를 통해 Codeforces 제출 목록을 조회합니다
func (cachedClient *CachedStatsClient) GetCodeforcesSubmissions(ctx context.Context, handle string) ([]Submission, error) {
	atomic.AddInt64(&cachedClient.totalCalls, 1)

	// 캐시에서 먼저 조회
	if cachedData, found := cachedClient.cache.GetSubmissions(handle); found {
		atomic.AddInt64(&cachedClient.cacheHits, 1)
		utils.Debug("Cache hit for codeforces submissions: %s", handle)
		return cachedData.([]Submission), nil
	}

	// 캐시 미스 - API 호출
	atomic.AddInt64(&cachedClient.cacheMisses, 1)
	utils.Debug("Cache miss for codeforces submissions: %s, calling API", handle)

	submissions, err := cachedClient.codeforces.GetRecentSubmissions(ctx, handle)
	if err != nil {
		return nil, err
	}

	// 성공한 응답만 캐시에 저장
	cachedClient.cache.SetSubmissions(handle, submissions)

	return submissions, nil
}

// GetCacheStats 캐시 통계를 반환합니다
func (cachedClient *CachedStatsClient) GetCacheStats() CacheMetrics {
	cacheStats := cachedClient.cache.GetStats()

	totalCalls := atomic.LoadInt64(&cachedClient.totalCalls)
	hits := atomic.LoadInt64(&cachedClient.cacheHits)
	misses := atomic.LoadInt64(&cachedClient.cacheMisses)

	var hitRate float64
	if totalCalls > 0 {
		hitRate = float64(hits) / float64(totalCalls) * 100
	}

	return CacheMetrics{
		TotalCalls:          totalCalls,
		CacheHits:           hits,
		CacheMisses:         misses,
		HitRate:             hitRate,
		LeetCodeStatsCached: cacheStats.LeetCodeStatsCount,
		SubmissionsCached:   cacheStats.SubmissionsCount,
	}
}

// CacheMetrics 캐시 성능 메트릭을 나타냅니다
type CacheMetrics struct {
	TotalCalls          int64
	CacheHits           int64
	CacheMisses         int64
	HitRate             float64
	LeetCodeStatsCached int
	SubmissionsCached   int
}

// String CacheMetrics의 문자열 표현을 반환합니다
func (metrics CacheMetrics) String() string {
	return fmt.Sprintf("API Cache Stats: Calls=%d, Hits=%d, Misses=%d, Hit Rate=%.2f%%, Cached Items: LeetCode=%d, Submissions=%d",
		metrics.TotalCalls, metrics.CacheHits, metrics.CacheMisses, metrics.HitRate,
		metrics.LeetCodeStatsCached, metrics.SubmissionsCached)
}

// ClearCache 모든 캐시를 삭제합니다
func (cachedClient *CachedStatsClient) ClearCache() {
	cachedClient.cache.Clear()
	atomic.StoreInt64(&cachedClient.cacheHits, 0)
	atomic.StoreInt64(&cachedClient.cacheMisses, 0)
	atomic.StoreInt64(&cachedClient.totalCalls, 0)
	utils.Info("API cache cleared")
}

// WarmupCache 명단에 등록된 사용자들의 데이터를 미리 로드합니다
func (cachedClient *CachedStatsClient) WarmupCache(roster models.Roster) error {
	total := len(roster.LeetCode) + len(roster.Codeforces)
	utils.Info("Starting cache warmup for %d users", total)

	for _, username := range roster.LeetCode {
		// 이미 캐시에 있다면 스킵
		if _, found := cachedClient.cache.GetLeetCodeStats(username); found {
			continue
		}

		go func(user string) {
			ctx := context.Background()
			if _, err := cachedClient.GetLeetCodeStats(ctx, user); err != nil {
				utils.Warn("Cache warmup failed for leetcode stats %s: %v", user, err)
			}
		}(username)
	}

	for _, handle := range roster.Codeforces {
		if _, found := cachedClient.cache.GetSubmissions(handle); found {
			continue
		}

		go func(h string) {
			ctx := context.Background()
			if _, err := cachedClient.GetCodeforcesSubmissions(ctx, h); err != nil {
				utils.Warn("Cache warmup failed for codeforces submissions %s: %v", h, err)
			}
		}(handle)
	}

	utils.Info("Cache warmup initiated")
	return nil
}
