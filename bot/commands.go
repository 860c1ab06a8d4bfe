package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kevinchua6/cp-buddies/api"
	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/errors"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/utils"
)

type CommandHandler struct {
	deps *CommandDependencies
}

func NewCommandHandler(deps *CommandDependencies) *CommandHandler {
	return &CommandHandler{deps: deps}
}

// HandleMessage Discord 메시지를 처리합니다
func (ch *CommandHandler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if ch.shouldIgnoreMessage(s, m) {
		return
	}

	command, params := ch.parseMessage(m)
	if command == "" {
		return
	}

	ch.routeCommand(s, m, command, params)
}

// shouldIgnoreMessage 메시지를 무시해야 하는지 확인합니다
func (ch *CommandHandler) shouldIgnoreMessage(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	// 봇 자신의 메시지는 무시
	if m.Author.ID == s.State.User.ID {
		return true
	}

	// DM 디버깅 로그
	if m.GuildID == "" {
		utils.Debug("DM received from %s", m.Author.Username)
	}

	return false
}

// parseMessage 메시지를 파싱하여 명령어와 매개변수를 추출합니다
func (ch *CommandHandler) parseMessage(m *discordgo.MessageCreate) (command string, params []string) {
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, constants.CommandPrefix) {
		return "", nil
	}

	args := strings.Fields(content)
	if len(args) == 0 {
		return "", nil
	}

	command = strings.ToLower(args[0][constants.CommandPrefixLength:])
	params = args[1:]

	return command, params
}

// routeCommand 명령어를 해당 핸들러로 라우팅합니다
func (ch *CommandHandler) routeCommand(s *discordgo.Session, m *discordgo.MessageCreate, command string, params []string) {
	// 명령어 사용 텔레메트리 전송
	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendCommandMetric(command)
	}

	switch command {
	case "help":
		ch.handleHelp(s, m)
	case "add":
		ch.handleAdd(s, m, params)
	case "remove":
		ch.handleRemove(s, m, params)
	case "friends":
		ch.handleFriends(s, m)
	case "scoreboard":
		ch.handleScoreboard(s, m, params)
	case "sort":
		ch.handleSort(s, m, params)
	case "profile":
		ch.handleProfile(s, m, params)
	case "cache":
		ch.handleCacheStats(s, m)
	case "export":
		ch.handleExport(s, m)
	case "ping":
		ch.handlePing(s, m)
	}
}

func (ch *CommandHandler) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := s.ChannelMessageSend(m.ChannelID, constants.HelpMessage); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send help message: %v", err)
	}
}

// handlePing ping 명령어를 처리합니다
func (ch *CommandHandler) handlePing(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgPong); err != nil {
		utils.Error("Failed to send ping response: %v", err)
	}
}

func (ch *CommandHandler) handleAdd(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	// 1. 매개변수 검증
	platform, username, ok := ch.validateUserParams(params, constants.MsgAddUsage, errorHandlers)
	if !ok {
		return
	}

	// 2. 플랫폼에 사용자가 실제로 존재하는지 확인
	if !ch.verifyUserExists(s, m.ChannelID, platform, username, errorHandlers) {
		return
	}

	// 3. 명단에 추가
	if err := ch.deps.Tracker.Add(platform, username); err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	// 4. 명단 크기 텔레메트리 전송
	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendRosterMetric("friend_added", ch.deps.Tracker.Total())
	}

	response := fmt.Sprintf(constants.MsgAddSuccess, username, ch.deps.PlatformManager.GetName(platform))
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send add response: %v", err)
	}
}

// validateUserParams <platform> <username> 형태의 매개변수를 검증합니다
func (ch *CommandHandler) validateUserParams(params []string, usage string, errorHandlers *utils.ErrorHandlerFactory) (models.Platform, string, bool) {
	if len(params) < 2 {
		errorHandlers.Validation().HandleInvalidParams("INVALID_PARAMS",
			"Missing platform or username parameter", usage)
		return "", "", false
	}

	platform, ok := models.ParsePlatform(params[0])
	if !ok {
		errorHandlers.Validation().HandleInvalidPlatform(params[0])
		return "", "", false
	}

	// AtCoder는 명단 문서에는 존재하지만 아직 조회를 지원하지 않습니다
	if !ch.deps.PlatformManager.IsSelectable(platform) {
		errorHandlers.Validation().HandleInvalidParams("PLATFORM_NOT_LISTED",
			fmt.Sprintf("platform %s is not selectable", platform),
			constants.MsgPlatformNotListed)
		return "", "", false
	}

	username := params[1]
	if !utils.IsValidHandle(username) {
		errorHandlers.Validation().HandleInvalidHandle(username)
		return "", "", false
	}

	return platform, username, true
}

// verifyUserExists 플랫폼 API를 통해 사용자 존재 여부를 확인합니다
func (ch *CommandHandler) verifyUserExists(s *discordgo.Session, channelID string, platform models.Platform, username string, errorHandlers *utils.ErrorHandlerFactory) bool {
	ctx, cancel := context.WithTimeout(context.Background(), constants.APITimeout)
	defer cancel()

	var err error
	if platform == models.PlatformLeetCode {
		_, err = ch.deps.StatsClient.GetLeetCodeStats(ctx, username)
	} else {
		_, err = ch.deps.StatsClient.GetCodeforcesSubmissions(ctx, username)
	}

	if err == nil {
		return true
	}

	platformName := ch.deps.PlatformManager.GetName(platform)
	if errors.IsNotFound(err) {
		errorHandlers.API().HandleUserNotFound(platformName, username)
	} else {
		errorHandlers.API().HandleUpstreamFailure(platformName, username, err)
	}
	return false
}

func (ch *CommandHandler) handleRemove(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	platform, username, ok := ch.validateUserParams(params, constants.MsgRemoveUsage, errorHandlers)
	if !ok {
		return
	}

	// 등록되지 않은 사용자 제거도 성공으로 처리됩니다
	if err := ch.deps.Tracker.Remove(platform, username); err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendRosterMetric("friend_removed", ch.deps.Tracker.Total())
	}

	response := fmt.Sprintf(constants.MsgRemoveSuccess, ch.deps.PlatformManager.GetName(platform), username)
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send remove response: %v", err)
	}
}

func (ch *CommandHandler) handleFriends(s *discordgo.Session, m *discordgo.MessageCreate) {
	roster := ch.deps.Tracker.Roster()
	if roster.Total() == 0 {
		if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgFriendsEmpty); err != nil {
			utils.Error("Failed to send friends response: %v", err)
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: constants.MsgFriendsTitle,
		Color: constants.ColorNeutral,
	}

	for _, platform := range ch.deps.PlatformManager.SelectablePlatforms() {
		users := roster.Users(platform)
		if len(users) == 0 {
			continue
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (%d)", ch.deps.PlatformManager.GetName(platform), len(users)),
			Value:  strings.Join(users, "\n"),
			Inline: true,
		})
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send friends list: %v", err)
	}
}

func (ch *CommandHandler) handleScoreboard(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	// 정렬 모드 매개변수가 없으면 기본 모드를 사용합니다
	mode := ch.deps.ScoreboardManager.SortMode()
	if len(params) > 0 {
		parsed, ok := models.ParseSortMode(params[0])
		if !ok {
			errorHandlers.Validation().HandleInvalidParams("SCOREBOARD_INVALID_MODE",
				fmt.Sprintf("unknown sort mode: %s", params[0]),
				constants.MsgSortUsage)
			return
		}
		mode = parsed
	}

	utils.Info("Scoreboard command received from user: %s (ID: %s)", m.Author.Username, m.Author.ID)

	startTime := time.Now()
	embed, err := ch.deps.ScoreboardManager.GenerateScoreboard(s, m.ChannelID, mode)
	duration := time.Since(startTime)

	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendPerformanceMetric("scoreboard_generation", duration, err == nil)
	}

	if err != nil {
		utils.Error("Failed to generate scoreboard: %v", err)
		errorHandlers.System().HandleSystemError("SCOREBOARD_FAILED",
			"Failed to generate scoreboard", constants.MsgUpstreamError, err)
		return
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send scoreboard embed: %v", err)
	}
}

func (ch *CommandHandler) handleSort(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if len(params) < 1 {
		errorHandlers.Validation().HandleInvalidParams("SORT_INVALID_PARAMS",
			"Missing sort mode parameter", constants.MsgSortUsage)
		return
	}

	mode, ok := models.ParseSortMode(params[0])
	if !ok {
		errorHandlers.Validation().HandleInvalidParams("SORT_INVALID_MODE",
			fmt.Sprintf("unknown sort mode: %s", params[0]),
			constants.MsgSortUsage)
		return
	}

	ch.deps.ScoreboardManager.SetSortMode(mode)

	response := fmt.Sprintf(constants.MsgSortChanged, mode)
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send sort response: %v", err)
	}
}

func (ch *CommandHandler) handleProfile(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	platform, username, ok := ch.validateUserParams(params, constants.MsgProfileUsage, errorHandlers)
	if !ok {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s @ %s", constants.EmojiUser, username,
			ch.deps.PlatformManager.GetName(platform)),
		Color: ch.deps.PlatformManager.GetColor(platform),
		Description: fmt.Sprintf("%s %s", constants.EmojiLink,
			ch.deps.PlatformManager.ProfileURL(platform, username)),
	}

	// LeetCode 프로필에는 활동 카드 이미지를 함께 보여줍니다
	if platform == models.PlatformLeetCode {
		embed.Image = &discordgo.MessageEmbedImage{
			URL: ch.deps.PlatformManager.LeetCardURL(username),
		}
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send profile embed: %v", err)
	}
}

// handleCacheStats 캐시 통계를 조회합니다
func (ch *CommandHandler) handleCacheStats(s *discordgo.Session, m *discordgo.MessageCreate) {
	cachedClient, ok := ch.deps.StatsClient.(*api.CachedStatsClient)
	if !ok {
		if err := errors.SendDiscordWarning(s, m.ChannelID, "Caching is disabled."); err != nil {
			utils.Error("Failed to send cache disabled warning: %v", err)
		}
		return
	}

	stats := cachedClient.GetCacheStats()

	message := fmt.Sprintf("```\n%s API Cache Statistics\n\n"+
		"Total API Calls: %d\n"+
		"Cache Hits: %d\n"+
		"Cache Misses: %d\n"+
		"Hit Rate: %.2f%%\n\n"+
		"Cached Items:\n"+
		"  - LeetCode Stats: %d\n"+
		"  - CF Submissions: %d\n```",
		constants.EmojiStats,
		stats.TotalCalls, stats.CacheHits, stats.CacheMisses, stats.HitRate,
		stats.LeetCodeStatsCached, stats.SubmissionsCached)

	if err := errors.SendDiscordInfo(s, m.ChannelID, message); err != nil {
		utils.Error("Failed to send cache stats response: %v", err)
	}

	// 캐시 메트릭도 함께 전송
	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendCacheMetrics(stats.TotalCalls, stats.CacheHits, stats.CacheMisses, stats.HitRate)
	}
}

// handleExport 스코어보드를 Google Sheets로 내보냅니다
func (ch *CommandHandler) handleExport(s *discordgo.Session, m *discordgo.MessageCreate) {
	if ch.deps.SheetsClient == nil || !ch.deps.Config.Sheets.Enabled {
		if err := errors.SendDiscordWarning(s, m.ChannelID, constants.MsgExportDisabled); err != nil {
			utils.Error("Failed to send export disabled warning: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.APITimeout)
	defer cancel()

	records := ch.deps.ScoreboardManager.CollectRecords(ctx)
	err := ch.deps.SheetsClient.ExportScoreboard(
		ch.deps.Config.Sheets.SpreadsheetID,
		ch.deps.Config.Sheets.SheetName,
		records,
		ch.deps.ScoreboardManager.SortMode(),
	)
	if err != nil {
		utils.Error("Failed to export scoreboard: %v", err)
		errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)
		errorHandlers.System().HandleSystemError("EXPORT_FAILED",
			"Failed to export scoreboard to sheets",
			constants.MsgUpstreamError, err)
		return
	}

	if err := errors.SendDiscordSuccess(s, m.ChannelID, constants.MsgExportSuccess); err != nil {
		utils.Error("Failed to send export response: %v", err)
	}
}
