package cache

import (
	"testing"
	"time"
)

func TestAPICache_SetAndGet(t *testing.T) {
	apiCache := NewAPICache()

	apiCache.SetLeetCodeStats("alice", "stats-data")

	data, found := apiCache.GetLeetCodeStats("alice")
	if !found {
		t.Fatal("Expected cache hit")
	}
	if data.(string) != "stats-data" {
		t.Errorf("Expected 'stats-data', got '%v'", data)
	}

	if _, found := apiCache.GetLeetCodeStats("bob"); found {
		t.Error("Expected cache miss for unknown handle")
	}
}

func TestAPICache_KindsAreIndependent(t *testing.T) {
	apiCache := NewAPICache()

	// 같은 핸들이라도 캐시 종류가 다르면 서로 간섭하지 않아야 합니다
	apiCache.SetLeetCodeStats("alice", "leetcode-data")
	apiCache.SetSubmissions("alice", "submissions-data")

	leetcodeData, found := apiCache.GetLeetCodeStats("alice")
	if !found || leetcodeData.(string) != "leetcode-data" {
		t.Errorf("Expected 'leetcode-data', got '%v' (found=%v)", leetcodeData, found)
	}

	submissionsData, found := apiCache.GetSubmissions("alice")
	if !found || submissionsData.(string) != "submissions-data" {
		t.Errorf("Expected 'submissions-data', got '%v' (found=%v)", submissionsData, found)
	}
}

func TestAPICache_ExpiredItemIsMiss(t *testing.T) {
	apiCache := NewAPICache()
	apiCache.leetcodeStatsTTL = 10 * time.Millisecond

	apiCache.SetLeetCodeStats("alice", "stats-data")
	time.Sleep(30 * time.Millisecond)

	if _, found := apiCache.GetLeetCodeStats("alice"); found {
		t.Error("Expected expired item to be a cache miss")
	}
}

func TestAPICache_GetStats(t *testing.T) {
	apiCache := NewAPICache()

	apiCache.SetLeetCodeStats("alice", "a")
	apiCache.SetLeetCodeStats("bob", "b")
	apiCache.SetSubmissions("carol", "c")

	stats := apiCache.GetStats()
	if stats.LeetCodeStatsCount != 2 {
		t.Errorf("Expected 2 leetcode entries, got %d", stats.LeetCodeStatsCount)
	}
	if stats.SubmissionsCount != 1 {
		t.Errorf("Expected 1 submissions entry, got %d", stats.SubmissionsCount)
	}
}

func TestAPICache_Clear(t *testing.T) {
	apiCache := NewAPICache()

	apiCache.SetLeetCodeStats("alice", "a")
	apiCache.SetSubmissions("bob", "b")
	apiCache.Clear()

	stats := apiCache.GetStats()
	if stats.LeetCodeStatsCount != 0 || stats.SubmissionsCount != 0 {
		t.Errorf("Expected empty cache after clear, got %+v", stats)
	}

	if _, found := apiCache.GetLeetCodeStats("alice"); found {
		t.Error("Expected cache miss after clear")
	}
}

func TestAPICache_CleanupRemovesExpired(t *testing.T) {
	apiCache := NewAPICache()
	apiCache.leetcodeStatsTTL = 10 * time.Millisecond
	apiCache.submissionsTTL = time.Hour

	apiCache.SetLeetCodeStats("alice", "a")
	apiCache.SetSubmissions("bob", "b")
	time.Sleep(30 * time.Millisecond)

	removed := apiCache.cleanupExpiredBatch()
	if removed != 1 {
		t.Errorf("Expected 1 removed entry, got %d", removed)
	}

	stats := apiCache.GetStats()
	if stats.LeetCodeStatsCount != 0 {
		t.Errorf("Expected expired leetcode entry removed, got %d", stats.LeetCodeStatsCount)
	}
	if stats.SubmissionsCount != 1 {
		t.Errorf("Expected live submissions entry kept, got %d", stats.SubmissionsCount)
	}
}

func TestAPICache_OverwriteInvalidatesOldEntry(t *testing.T) {
	apiCache := NewAPICache()

	apiCache.SetLeetCodeStats("alice", "old")
	apiCache.SetLeetCodeStats("alice", "new")

	data, found := apiCache.GetLeetCodeStats("alice")
	if !found || data.(string) != "new" {
		t.Errorf("Expected 'new', got '%v' (found=%v)", data, found)
	}

	stats := apiCache.GetStats()
	if stats.LeetCodeStatsCount != 1 {
		t.Errorf("Expected 1 entry after overwrite, got %d", stats.LeetCodeStatsCount)
	}
}

func TestAPICache_StartCleanupWorker(t *testing.T) {
	apiCache := NewAPICache()
	apiCache.leetcodeStatsTTL = 10 * time.Millisecond

	cancel := apiCache.StartCleanupWorker(20 * time.Millisecond)
	defer cancel()

	apiCache.SetLeetCodeStats("alice", "a")
	time.Sleep(100 * time.Millisecond)

	stats := apiCache.GetStats()
	if stats.LeetCodeStatsCount != 0 {
		t.Errorf("Expected cleanup worker to remove expired entry, got %d", stats.LeetCodeStatsCount)
	}
}
