package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kevinchua6/cp-buddies/api"
	"github.com/kevinchua6/cp-buddies/config"
	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/errors"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/storage"
	"github.com/kevinchua6/cp-buddies/tracker"
)

// fakeStatsClient 미리 정의된 응답을 반환하는 테스트용 클라이언트입니다
type fakeStatsClient struct {
	stats    map[string]*api.LeetCodeStats
	statsErr map[string]error
	subs     map[string][]api.Submission
	subsErr  map[string]error
}

func (f *fakeStatsClient) GetLeetCodeStats(ctx context.Context, username string) (*api.LeetCodeStats, error) {
	if err, ok := f.statsErr[username]; ok {
		return nil, err
	}
	if stats, ok := f.stats[username]; ok {
		return stats, nil
	}
	return nil, errors.NewNotFoundError("LEETCODE_USER_NOT_FOUND", "not found", "not found")
}

func (f *fakeStatsClient) GetCodeforcesSubmissions(ctx context.Context, handle string) ([]api.Submission, error) {
	if err, ok := f.subsErr[handle]; ok {
		return nil, err
	}
	if subs, ok := f.subs[handle]; ok {
		return subs, nil
	}
	return nil, errors.NewNotFoundError("CODEFORCES_USER_NOT_FOUND", "not found", "not found")
}

func leetcodeStats(username string, easy, medium, hard int) *api.LeetCodeStats {
	return &api.LeetCodeStats{
		Status:             "success",
		Username:           username,
		EasySolved:         easy,
		MediumSolved:       medium,
		HardSolved:         hard,
		SubmissionCalendar: map[string]int{},
	}
}

func newTestScoreboardManager(t *testing.T, client *fakeStatsClient, cfg *config.Config) (*ScoreboardManager, *tracker.RosterController) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}

	rosterController := tracker.NewRosterController(storage.NewInMemoryStorage())
	manager := NewScoreboardManager(rosterController, client, nil, cfg)
	return manager, rosterController
}

func TestGenerateScoreboard_EmptyRoster(t *testing.T) {
	manager, _ := newTestScoreboardManager(t, &fakeStatsClient{}, nil)

	embed, err := manager.GenerateScoreboard(nil, "", models.SortDaily)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if embed.Description != constants.MsgScoreboardEmpty {
		t.Errorf("Expected empty roster message, got %q", embed.Description)
	}
}

func TestGenerateScoreboard_RendersTrackedUsers(t *testing.T) {
	client := &fakeStatsClient{
		stats: map[string]*api.LeetCodeStats{
			"alice": leetcodeStats("alice", 10, 5, 2),
		},
		subs: map[string][]api.Submission{
			"tourist": {
				{
					CreationTimeSeconds: time.Now().Unix(),
					Problem:             api.Problem{Name: "Watermelon"},
				},
			},
		},
	}

	manager, rosterController := newTestScoreboardManager(t, client, nil)
	if err := rosterController.Add(models.PlatformLeetCode, "alice"); err != nil {
		t.Fatalf("Failed to add alice: %v", err)
	}
	if err := rosterController.Add(models.PlatformCodeforces, "tourist"); err != nil {
		t.Fatalf("Failed to add tourist: %v", err)
	}

	embed, err := manager.GenerateScoreboard(nil, "", models.SortAllTime)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(embed.Fields) != 2 {
		t.Fatalf("Expected 2 platform sections, got %d", len(embed.Fields))
	}

	var combined strings.Builder
	for _, field := range embed.Fields {
		combined.WriteString(field.Value)
	}
	rendered := combined.String()

	if !strings.Contains(rendered, "alice") {
		t.Errorf("Expected alice in scoreboard, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "17 solved") {
		t.Errorf("Expected all-time total for alice, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "tourist") {
		t.Errorf("Expected tourist in scoreboard, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Watermelon") {
		t.Errorf("Expected problem breakdown for tourist, got:\n%s", rendered)
	}
}

func TestGenerateScoreboard_EvictsMissingUser(t *testing.T) {
	client := &fakeStatsClient{
		stats: map[string]*api.LeetCodeStats{
			"alice": leetcodeStats("alice", 1, 0, 0),
		},
	}

	manager, rosterController := newTestScoreboardManager(t, client, nil)
	rosterController.Add(models.PlatformLeetCode, "alice")
	rosterController.Add(models.PlatformLeetCode, "ghost")

	if _, err := manager.GenerateScoreboard(nil, "", models.SortDaily); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rosterController.Contains(models.PlatformLeetCode, "ghost") {
		t.Error("Expected ghost to be evicted after not-found fetch")
	}
	if !rosterController.Contains(models.PlatformLeetCode, "alice") {
		t.Error("Expected alice to remain tracked")
	}
}

func TestGenerateScoreboard_EvictsOnUpstreamFailureByDefault(t *testing.T) {
	client := &fakeStatsClient{
		statsErr: map[string]error{
			"flaky": errors.NewUpstreamError("LEETCODE_FETCH_FAILED", "boom", nil),
		},
	}

	manager, rosterController := newTestScoreboardManager(t, client, nil)
	rosterController.Add(models.PlatformLeetCode, "flaky")

	if _, err := manager.GenerateScoreboard(nil, "", models.SortDaily); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rosterController.Contains(models.PlatformLeetCode, "flaky") {
		t.Error("Expected flaky to be evicted after upstream failure")
	}
}

func TestGenerateScoreboard_KeepOnUpstreamError(t *testing.T) {
	client := &fakeStatsClient{
		statsErr: map[string]error{
			"flaky": errors.NewUpstreamError("LEETCODE_FETCH_FAILED", "boom", nil),
		},
	}

	cfg := &config.Config{}
	cfg.Features.KeepOnUpstreamError = true

	manager, rosterController := newTestScoreboardManager(t, client, cfg)
	rosterController.Add(models.PlatformLeetCode, "flaky")

	if _, err := manager.GenerateScoreboard(nil, "", models.SortDaily); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !rosterController.Contains(models.PlatformLeetCode, "flaky") {
		t.Error("Expected flaky to remain tracked with KeepOnUpstreamError enabled")
	}
}

func TestGenerateScoreboard_KeepsUserOnLocalTimeout(t *testing.T) {
	// 데드라인 초과로 끊긴 조회는 플랫폼의 판정이 아니므로 명단이 유지되어야 합니다
	client := &fakeStatsClient{
		statsErr: map[string]error{
			"slowpoke": errors.NewUpstreamError("LEETCODE_FETCH_FAILED",
				"request timed out", context.DeadlineExceeded),
		},
	}

	manager, rosterController := newTestScoreboardManager(t, client, nil)
	rosterController.Add(models.PlatformLeetCode, "slowpoke")

	if _, err := manager.GenerateScoreboard(nil, "", models.SortDaily); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !rosterController.Contains(models.PlatformLeetCode, "slowpoke") {
		t.Error("Expected slowpoke to remain tracked after local timeout")
	}
}

func TestFetchBudget_ScalesWithRosterSize(t *testing.T) {
	if budget := fetchBudget(0); budget != constants.APITimeout {
		t.Errorf("Expected one batch budget for empty roster, got %v", budget)
	}
	if budget := fetchBudget(constants.AdaptiveConcurrencyMinLimit); budget != constants.APITimeout {
		t.Errorf("Expected one batch budget, got %v", budget)
	}

	large := constants.AdaptiveConcurrencyMinLimit*3 + 1
	if budget := fetchBudget(large); budget != 4*constants.APITimeout {
		t.Errorf("Expected four batch budget for %d users, got %v", large, budget)
	}
}

func TestCollectRecords_SkipsFailuresWithoutEviction(t *testing.T) {
	client := &fakeStatsClient{
		stats: map[string]*api.LeetCodeStats{
			"alice": leetcodeStats("alice", 3, 0, 0),
		},
	}

	manager, rosterController := newTestScoreboardManager(t, client, nil)
	rosterController.Add(models.PlatformLeetCode, "alice")
	rosterController.Add(models.PlatformLeetCode, "ghost")

	records := manager.CollectRecords(context.Background())

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Username != "alice" {
		t.Errorf("Expected alice record, got %q", records[0].Username)
	}

	// 내보내기 경로에서는 명단을 정리하지 않습니다
	if !rosterController.Contains(models.PlatformLeetCode, "ghost") {
		t.Error("Expected ghost to remain tracked after export collection")
	}
}

func TestSetSortMode(t *testing.T) {
	manager, _ := newTestScoreboardManager(t, &fakeStatsClient{}, nil)

	if manager.SortMode() != models.SortDaily {
		t.Errorf("Expected default sort mode Daily, got %s", manager.SortMode())
	}

	manager.SetSortMode(models.SortAllTime)
	if manager.SortMode() != models.SortAllTime {
		t.Errorf("Expected sort mode AllTime, got %s", manager.SortMode())
	}
}
