package constants

import "time"

// 시스템 관련 상수
const (
	// 애플리케이션 버전
	BotVersion = "0.3.0"

	// 네트워크 관련
	DefaultHTTPPort = "8080" // 기본 HTTP 포트 (Railway 헬스체크용)

	// 메모리 관련
	BytesToMB = 1024 * 1024

	// 헬스체크 관련
	FirestoreHealthCheckTimeout = 5 * time.Second
	HealthCheckCollectionName   = "health_check"
	HealthStatusHealthy         = "healthy"
	HealthStatusUnhealthy       = "unhealthy"

	// HTTP 관련
	HTTPServerErrorThreshold = 500 // 서버 오류 임계값 (5xx)

	// 테스트 관련
	TestAPITimeout = 10 * time.Second
	TestRetryDelay = 2 * time.Second

	// 봇 상태 메시지
	BotStatusMessage = "!help | tracking your friends"
)

// 환경변수 키
const (
	EnvDiscordToken = "DISCORD_TOKEN"
	EnvChannelID    = "DISCORD_CHANNEL_ID"
	EnvLogLevel     = "LOG_LEVEL"
	EnvDebugMode    = "DEBUG_MODE"
)

// 로그 레벨 이름
const (
	LogLevelDebug = "DEBUG"
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)
