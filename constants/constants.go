package constants

import "time"

// API 관련 상수
const (
	LeetCodeStatsBaseURL  = "https://leetcode-stats-api.herokuapp.com"
	CodeforcesBaseURL     = "https://codeforces.com/api"
	APITimeout            = 30 * time.Second
	MaxRetries            = 3
	RetryDelay            = 1 * time.Second
	APIRetryMultiplier    = 2
	MaxConcurrentRequests = 5

	// Codeforces user.status 조회 시 가져올 최근 제출 수
	CodeforcesSubmissionCount = 10
)

// 집계 관련 상수
const (
	// "오늘" 판정 기준 윈도우 (지금으로부터 24시간 전)
	DailyWindow        = 24 * time.Hour
	DailyWindowSeconds = int64(24 * 60 * 60)
)

// 외부 프로필 링크 형식
const (
	LeetCodeProfileURLFormat   = "https://leetcode.com/%s"
	LeetCardURLFormat          = "https://leetcard.jacoblin.cool/%s?theme=unicorn&font=Georama&ext=activity"
	CodeforcesProfileURLFormat = "https://codeforces.com/profile/%s"
)

// Discord 관련 상수
const (
	CommandPrefix       = "!"
	CommandPrefixLength = len(CommandPrefix)
)

// 스케줄 관련 상수
const (
	DailyScoreboardHour   = 9
	DailyScoreboardMinute = 0
	SchedulerInterval     = 24 * time.Hour
)

// Discord embed 색상
const (
	ColorScoreboard = 0xF1C40F // 골드
	ColorNeutral    = 0x36393F
)

// 이모지 상수
const (
	EmojiSuccess  = "✅"
	EmojiError    = "❌"
	EmojiInfo     = "ℹ️"
	EmojiWarning  = "⚠️"
	EmojiTrophy   = "🏆"
	EmojiUser     = "👤"
	EmojiTarget   = "🎯"
	EmojiStats    = "📊"
	EmojiCalendar = "📅"
	EmojiClock    = "⏰"
	EmojiPeople   = "👥"
	EmojiLink     = "🔗"
)

// 날짜 형식
const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "15:04:05"
	DateTimeFormat = "2006-01-02 15:04:05"
)
