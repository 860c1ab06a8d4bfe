package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kevinchua6/cp-buddies/config"
	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/errors"
	"github.com/kevinchua6/cp-buddies/fetcher"
	"github.com/kevinchua6/cp-buddies/interfaces"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/performance"
	"github.com/kevinchua6/cp-buddies/scoring"
	"github.com/kevinchua6/cp-buddies/telemetry"
	"github.com/kevinchua6/cp-buddies/tracker"
	"github.com/kevinchua6/cp-buddies/utils"
)

// ScoreboardManager 명단의 통계를 수집하고 스코어보드를 렌더링합니다.
// 정렬 모드는 UI 상태로만 유지되며 저장되지 않습니다.
type ScoreboardManager struct {
	tracker         *tracker.RosterController
	statsFetcher    *fetcher.StatsFetcher
	platformManager *models.PlatformManager
	metricsClient   *telemetry.MetricsClient
	cfg             *config.Config

	mu       sync.RWMutex
	sortMode models.SortMode
}

// NewScoreboardManager 새로운 ScoreboardManager 인스턴스를 생성합니다
func NewScoreboardManager(
	rosterController *tracker.RosterController,
	statsClient interfaces.StatsClient,
	metricsClient *telemetry.MetricsClient,
	cfg *config.Config,
) *ScoreboardManager {
	return &ScoreboardManager{
		tracker:         rosterController,
		statsFetcher:    fetcher.NewStatsFetcher(statsClient),
		platformManager: models.GetPlatformManager(),
		metricsClient:   metricsClient,
		cfg:             cfg,
		sortMode:        models.SortDaily,
	}
}

// SortMode 현재 기본 정렬 모드를 반환합니다
func (manager *ScoreboardManager) SortMode() models.SortMode {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.sortMode
}

// SetSortMode 기본 정렬 모드를 변경합니다
func (manager *ScoreboardManager) SetSortMode(mode models.SortMode) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.sortMode = mode
	utils.Info("Scoreboard sort mode changed to %s", mode)
}

// GenerateScoreboard 명단 전체의 통계를 수집하여 스코어보드 임베드를 생성합니다.
// 존재하지 않는 사용자와 (설정에 따라) 장애가 발생한 사용자는 명단에서
// 제거되고 채널에 알림이 전송됩니다.
func (manager *ScoreboardManager) GenerateScoreboard(session *discordgo.Session, channelID string, mode models.SortMode) (*discordgo.MessageEmbed, error) {
	roster := manager.tracker.Roster()
	if roster.Total() == 0 {
		return &discordgo.MessageEmbed{
			Title:       fmt.Sprintf(constants.MsgScoreboardTitle, mode),
			Description: constants.MsgScoreboardEmpty,
			Color:       constants.ColorNeutral,
		}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchBudget(roster.Total()))
	defer cancel()

	results := manager.statsFetcher.FetchAll(ctx, roster)
	records := manager.collectRecords(session, channelID, results)

	scoring.SortRecords(records, mode)
	return manager.formatScoreboard(records, mode), nil
}

// CollectRecords 현재 명단의 통계 레코드를 수집합니다 (내보내기용).
// 조회 실패 사용자는 건너뛰며 명단 정리나 알림은 수행하지 않습니다.
func (manager *ScoreboardManager) CollectRecords(ctx context.Context) []models.DisplayRecord {
	results := manager.statsFetcher.FetchAll(ctx, manager.tracker.Roster())

	now := time.Now()
	records := make([]models.DisplayRecord, 0, len(results))
	for _, result := range results {
		if result.Outcome != fetcher.OutcomeSuccess {
			continue
		}
		if !manager.tracker.Contains(result.Platform, result.Username) {
			continue
		}
		records = append(records, buildRecord(result, now))
	}

	mode := manager.SortMode()
	scoring.SortRecords(records, mode)
	return records
}

// fetchBudget 명단 크기에 비례한 전체 수집 데드라인을 계산합니다.
// 동시성 제한이 낮아져도 후순위 요청이 데드라인에 걸리지 않도록
// 최소 동시성 기준의 배치 수만큼 시간을 배정합니다.
func fetchBudget(total int) time.Duration {
	batches := (total + constants.AdaptiveConcurrencyMinLimit - 1) / constants.AdaptiveConcurrencyMinLimit
	if batches < 1 {
		batches = 1
	}
	return constants.APITimeout * time.Duration(batches)
}

// collectRecords 조회 결과를 표시용 레코드로 변환하고 실패를 처리합니다
func (manager *ScoreboardManager) collectRecords(session *discordgo.Session, channelID string, results []fetcher.Result) []models.DisplayRecord {
	recordsPtr := performance.GetRecordSlice()
	defer performance.PutRecordSlice(recordsPtr)
	records := *recordsPtr

	now := time.Now()
	for _, result := range results {
		if manager.metricsClient != nil {
			manager.metricsClient.SendFetchOutcomeMetric(string(result.Platform), result.Outcome.String())
		}

		// 조회 도중 명단에서 제거된 사용자의 늦은 결과는 버립니다
		if !manager.tracker.Contains(result.Platform, result.Username) {
			continue
		}

		switch result.Outcome {
		case fetcher.OutcomeSuccess:
			records = append(records, buildRecord(result, now))
		case fetcher.OutcomeNotFound:
			manager.evictUser(session, channelID, result,
				fmt.Sprintf(constants.MsgUserNotFound, result.Username, manager.platformManager.GetName(result.Platform)))
		case fetcher.OutcomeUpstreamError:
			manager.handleUpstreamFailure(session, channelID, result)
		case fetcher.OutcomeAborted:
			// 로컬 타임아웃이나 취소는 플랫폼의 판정이 아니므로 명단은 건드리지 않습니다
			utils.Warn("Fetch aborted for %s on %s, keeping roster entry", result.Username, result.Platform)
		}
	}

	// 풀의 슬라이스는 재사용되므로 결과 복사본을 반환합니다
	collected := make([]models.DisplayRecord, len(records))
	copy(collected, records)
	return collected
}

// buildRecord 단일 조회 결과를 표시용 레코드로 변환합니다
func buildRecord(result fetcher.Result, now time.Time) models.DisplayRecord {
	if result.Platform == models.PlatformLeetCode {
		return scoring.BuildLeetCodeRecord(result.LeetCode, now)
	}
	return scoring.BuildCodeforcesRecord(result.Username, result.Submissions, now)
}

// handleUpstreamFailure 업스트림 장애 사용자를 처리합니다.
// KeepOnUpstreamError가 켜져 있으면 명단은 유지하고 알림만 전송합니다.
func (manager *ScoreboardManager) handleUpstreamFailure(session *discordgo.Session, channelID string, result fetcher.Result) {
	if manager.cfg != nil && manager.cfg.Features.KeepOnUpstreamError {
		utils.Warn("Keeping %s on %s despite upstream failure", result.Username, result.Platform)
		if session != nil {
			if err := errors.SendDiscordWarning(session, channelID, constants.MsgUpstreamError); err != nil {
				utils.Error("Failed to send upstream warning: %v", err)
			}
		}
		return
	}

	manager.evictUser(session, channelID, result, constants.MsgUpstreamError)
}

// evictUser 조회가 불가능한 사용자를 명단에서 제거하고 알림을 전송합니다
func (manager *ScoreboardManager) evictUser(session *discordgo.Session, channelID string, result fetcher.Result, reason string) {
	if err := manager.tracker.Remove(result.Platform, result.Username); err != nil {
		utils.Error("Failed to evict %s from %s roster: %v", result.Username, result.Platform, err)
		return
	}

	utils.Info("Evicted %s from %s roster (outcome: %s)", result.Username, result.Platform, result.Outcome)

	if session == nil {
		return
	}

	notification := fmt.Sprintf("%s\n%s", reason,
		fmt.Sprintf(constants.MsgRemovedFromRoster, result.Username,
			manager.platformManager.GetName(result.Platform)))
	if err := errors.SendDiscordWarning(session, channelID, notification); err != nil {
		utils.Error("Failed to send eviction notification: %v", err)
	}
}

// formatScoreboard 레코드를 Discord 임베드로 렌더링합니다
func (manager *ScoreboardManager) formatScoreboard(records []models.DisplayRecord, mode models.SortMode) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf(constants.MsgScoreboardTitle, mode),
		Color: constants.ColorScoreboard,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s %s", constants.EmojiClock, utils.FormatDateTime(time.Now())),
		},
	}

	if len(records) == 0 {
		embed.Description = constants.MsgScoreboardNoResults
		return embed
	}

	for _, platform := range manager.platformManager.SelectablePlatforms() {
		section := manager.formatPlatformSection(records, platform, mode)
		if section == "" {
			continue
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s", constants.EmojiTarget, manager.platformManager.GetName(platform)),
			Value: section,
		})
	}

	return embed
}

// formatPlatformSection 플랫폼별 순위 텍스트를 생성합니다
func (manager *ScoreboardManager) formatPlatformSection(records []models.DisplayRecord, platform models.Platform, mode models.SortMode) string {
	builder := performance.GetStringBuilder()
	defer performance.PutStringBuilder(builder)

	rank := 0
	for _, record := range records {
		if record.Platform != platform {
			continue
		}
		rank++

		switch platform {
		case models.PlatformLeetCode:
			if mode == models.SortAllTime {
				builder.WriteString(fmt.Sprintf("`%2d.` **%s** — %d solved (E:%d M:%d H:%d)\n",
					rank, record.Username, record.AllTimeSolved(),
					record.Easy, record.Medium, record.Hard))
			} else {
				builder.WriteString(fmt.Sprintf("`%2d.` **%s** — %d solved today\n",
					rank, record.Username, record.DailySolved))
			}
		case models.PlatformCodeforces:
			builder.WriteString(fmt.Sprintf("`%2d.` **%s** — %d submissions today\n",
				rank, record.Username, record.SubmissionsToday))
			for _, group := range record.Submissions {
				if group.Count > 1 {
					builder.WriteString(fmt.Sprintf("      • %s (x%d)\n", group.Name, group.Count))
				} else {
					builder.WriteString(fmt.Sprintf("      • %s\n", group.Name))
				}
			}
		}
	}

	return builder.String()
}

// TrackedFriends 현재 추적 중인 친구 수를 반환합니다
func (manager *ScoreboardManager) TrackedFriends() int {
	return manager.tracker.Total()
}

// ConcurrencyStats 수집기의 동시성 통계를 반환합니다
func (manager *ScoreboardManager) ConcurrencyStats() performance.ConcurrencyStats {
	return manager.statsFetcher.ConcurrencyStats()
}

// SendDailyScoreboard 매일 스코어보드를 지정된 채널에 전송합니다
func (manager *ScoreboardManager) SendDailyScoreboard(session *discordgo.Session, channelID string) error {
	embed, err := manager.GenerateScoreboard(session, channelID, manager.SortMode())
	if err != nil {
		return err
	}

	_, err = session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		utils.Error("DISCORD API ERROR: Failed to send daily scoreboard: %v", err)
	}
	return err
}
