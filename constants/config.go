package constants

import "time"

// API 및 캐시 설정 상수
const (
	// 캐시 TTL 설정
	LeetCodeStatsCacheTTL = 5 * time.Minute  // LeetCode 통계 캐시 만료 시간
	SubmissionsCacheTTL   = 5 * time.Minute  // Codeforces 제출 캐시 만료 시간
	CacheCleanupInterval  = 5 * time.Minute  // 캐시 정리 간격

	// Discord API 재시도 설정
	MaxDiscordRetries = 3
	BaseRetryDelay    = 1 * time.Second
)

// 검증 규칙 상수
const (
	MinHandleLength = 1  // 사용자명 최소 길이
	MaxHandleLength = 30 // 사용자명 최대 길이
	MaxFriends      = 100
)

// 저장소 백엔드 이름
const (
	StorageBackendFile      = "file"
	StorageBackendFirestore = "firestore"
	StorageBackendMemory    = "memory"

	DefaultRosterFilePath = "roster.json"

	// Firestore 로스터 문서 경로
	RosterCollectionName = "rosters"
	RosterDocumentID     = "default"
)
