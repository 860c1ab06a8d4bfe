package cache

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/utils"
)

// CacheItem 캐시에 저장되는 개별 아이템을 나타냅니다
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// IsExpired 캐시 아이템이 만료되었는지 확인합니다
func (item *CacheItem) IsExpired() bool {
	return time.Now().After(item.ExpiresAt)
}

// CacheStats 캐시 통계 정보를 나타냅니다
type CacheStats struct {
	LeetCodeStatsCount int
	SubmissionsCount   int
}

// 캐시 종류 식별자
const (
	kindLeetCodeStats = "leetcodeStats"
	kindSubmissions   = "submissions"
)

// ExpirationEntry 만료 시간 기반 우선순위 큐의 항목
type ExpirationEntry struct {
	Key       string // cacheType이 포함된 전체 키
	Handle    string
	CacheType string
	ExpiresAt time.Time
	Index     int // 힙에서의 인덱스
}

// ExpirationQueue 만료 시간 기반 우선순위 큐 (최소 힙)
type ExpirationQueue []*ExpirationEntry

func (priorityQueue ExpirationQueue) Len() int { return len(priorityQueue) }

func (priorityQueue ExpirationQueue) Less(i, j int) bool {
	return priorityQueue[i].ExpiresAt.Before(priorityQueue[j].ExpiresAt)
}

func (priorityQueue ExpirationQueue) Swap(i, j int) {
	priorityQueue[i], priorityQueue[j] = priorityQueue[j], priorityQueue[i]
	priorityQueue[i].Index = i
	priorityQueue[j].Index = j
}

func (priorityQueue *ExpirationQueue) Push(x interface{}) {
	n := len(*priorityQueue)
	entry := x.(*ExpirationEntry)
	entry.Index = n
	*priorityQueue = append(*priorityQueue, entry)
}

func (priorityQueue *ExpirationQueue) Pop() interface{} {
	old := *priorityQueue
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.Index = -1
	*priorityQueue = old[0 : n-1]
	return entry
}

// APICache 우선순위 큐 기반 만료 관리를 포함한 플랫폼 응답 캐시입니다
type APICache struct {
	leetcodeStatsCache map[string]*CacheItem
	submissionsCache   map[string]*CacheItem

	// 만료 시간 추적을 위한 우선순위 큐와 인덱스
	expirationQueue *ExpirationQueue
	keyToEntry      map[string]*ExpirationEntry

	mu sync.RWMutex

	// 캐시 설정
	leetcodeStatsTTL time.Duration
	submissionsTTL   time.Duration

	// 효율적인 정리를 위한 설정
	lastCleanup        time.Time
	cleanupBatchSize   int
	maxCleanupDuration time.Duration
}

// NewAPICache 새로운 APICache 인스턴스를 생성합니다
func NewAPICache() *APICache {
	priorityQueue := &ExpirationQueue{}
	heap.Init(priorityQueue)

	return &APICache{
		leetcodeStatsCache: make(map[string]*CacheItem),
		submissionsCache:   make(map[string]*CacheItem),

		expirationQueue: priorityQueue,
		keyToEntry:      make(map[string]*ExpirationEntry),

		leetcodeStatsTTL: constants.LeetCodeStatsCacheTTL,
		submissionsTTL:   constants.SubmissionsCacheTTL,

		cleanupBatchSize:   constants.CacheCleanupBatchSize,
		maxCleanupDuration: constants.MaxCacheCleanupDuration,
		lastCleanup:        time.Now(),
	}
}

// 같은 핸들이 두 캐시 종류에 모두 존재할 수 있으므로 종류를 키에 포함합니다
func cacheKey(cacheType, handle string) string {
	return cacheType + ":" + handle
}

// setWithExpiration 공통 저장 로직 (우선순위 큐에도 추가)
func (cache *APICache) setWithExpiration(cacheType, handle string, data interface{}, ttl time.Duration) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	key := cacheKey(cacheType, handle)
	expiresAt := time.Now().Add(ttl)
	item := &CacheItem{
		Data:      data,
		ExpiresAt: expiresAt,
	}

	// 기존 항목이 있다면 무효화 처리 (힙에서 직접 제거하지 않음)
	if existingEntry, exists := cache.keyToEntry[key]; exists {
		existingEntry.ExpiresAt = time.Time{}
	}

	switch cacheType {
	case kindLeetCodeStats:
		cache.leetcodeStatsCache[handle] = item
	case kindSubmissions:
		cache.submissionsCache[handle] = item
	}

	entry := &ExpirationEntry{
		Key:       key,
		Handle:    handle,
		CacheType: cacheType,
		ExpiresAt: expiresAt,
	}
	heap.Push(cache.expirationQueue, entry)
	cache.keyToEntry[key] = entry
}

// getFromCache 공통 조회 로직. 만료된 항목은 미스로 처리합니다.
func (cache *APICache) getFromCache(cacheType, handle string) (interface{}, bool) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	var item *CacheItem
	switch cacheType {
	case kindLeetCodeStats:
		item = cache.leetcodeStatsCache[handle]
	case kindSubmissions:
		item = cache.submissionsCache[handle]
	}

	if item == nil || item.IsExpired() {
		return nil, false
	}
	return item.Data, true
}

// GetLeetCodeStats LeetCode 통계 캐시를 조회합니다
func (cache *APICache) GetLeetCodeStats(handle string) (interface{}, bool) {
	return cache.getFromCache(kindLeetCodeStats, handle)
}

// SetLeetCodeStats LeetCode 통계를 캐시에 저장합니다
func (cache *APICache) SetLeetCodeStats(handle string, stats interface{}) {
	cache.setWithExpiration(kindLeetCodeStats, handle, stats, cache.leetcodeStatsTTL)
}

// GetSubmissions Codeforces 제출 캐시를 조회합니다
func (cache *APICache) GetSubmissions(handle string) (interface{}, bool) {
	return cache.getFromCache(kindSubmissions, handle)
}

// SetSubmissions Codeforces 제출 목록을 캐시에 저장합니다
func (cache *APICache) SetSubmissions(handle string, submissions interface{}) {
	cache.setWithExpiration(kindSubmissions, handle, submissions, cache.submissionsTTL)
}

// GetStats 캐시 통계를 반환합니다
func (cache *APICache) GetStats() CacheStats {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	return CacheStats{
		LeetCodeStatsCount: len(cache.leetcodeStatsCache),
		SubmissionsCount:   len(cache.submissionsCache),
	}
}

// Clear 모든 캐시를 삭제합니다
func (cache *APICache) Clear() {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.leetcodeStatsCache = make(map[string]*CacheItem)
	cache.submissionsCache = make(map[string]*CacheItem)

	priorityQueue := &ExpirationQueue{}
	heap.Init(priorityQueue)
	cache.expirationQueue = priorityQueue
	cache.keyToEntry = make(map[string]*ExpirationEntry)
}

// cleanupExpiredBatch 우선순위 큐에서 만료된 항목을 배치 단위로 제거합니다
func (cache *APICache) cleanupExpiredBatch() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	start := time.Now()
	removed := 0
	now := time.Now()

	for cache.expirationQueue.Len() > 0 && removed < cache.cleanupBatchSize {
		if time.Since(start) > cache.maxCleanupDuration {
			break
		}

		entry := (*cache.expirationQueue)[0]

		// 무효화된 항목은 조용히 버립니다
		if entry.ExpiresAt.IsZero() {
			heap.Pop(cache.expirationQueue)
			continue
		}

		if entry.ExpiresAt.After(now) {
			break // 가장 이른 만료 시간이 아직 미래이면 종료
		}

		heap.Pop(cache.expirationQueue)
		delete(cache.keyToEntry, entry.Key)

		switch entry.CacheType {
		case kindLeetCodeStats:
			if item := cache.leetcodeStatsCache[entry.Handle]; item != nil && item.IsExpired() {
				delete(cache.leetcodeStatsCache, entry.Handle)
			}
		case kindSubmissions:
			if item := cache.submissionsCache[entry.Handle]; item != nil && item.IsExpired() {
				delete(cache.submissionsCache, entry.Handle)
			}
		}
		removed++
	}

	cache.lastCleanup = time.Now()
	return removed
}

// StartCleanupWorker 만료 항목을 주기적으로 정리하는 워커를 시작합니다.
// 반환된 CancelFunc으로 워커를 중지할 수 있습니다.
func (cache *APICache) StartCleanupWorker(interval time.Duration) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := cache.cleanupExpiredBatch(); removed > 0 {
					utils.Debug("Cache cleanup removed %d expired entries", removed)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return cancel
}
