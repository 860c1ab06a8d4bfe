package models

import "strings"

// SortMode 스코어보드 정렬 기준입니다. UI 상태이며 저장되지 않습니다.
type SortMode int

const (
	SortDaily   SortMode = iota // 최근 24시간 기준
	SortAllTime                 // 전체 기간 기준
)

// String SortMode의 표시 이름을 반환합니다
func (m SortMode) String() string {
	switch m {
	case SortDaily:
		return "Daily"
	case SortAllTime:
		return "All Time"
	}
	return "Unknown"
}

// ParseSortMode 사용자 입력을 정렬 모드로 변환합니다
func ParseSortMode(input string) (SortMode, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "daily", "day":
		return SortDaily, true
	case "alltime", "all-time", "all":
		return SortAllTime, true
	}
	return SortDaily, false
}

// ProblemGroup 문제 이름으로 묶인 제출 그룹입니다.
// Tags는 처음 등장한 제출의 태그를 사용합니다.
type ProblemGroup struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

// DisplayRecord 스코어보드 한 칸에 렌더링되는 통합 레코드입니다.
// 매 렌더마다 원본 응답에서 새로 계산되며 저장되지 않습니다.
type DisplayRecord struct {
	Platform Platform `json:"platform"`
	Symbol   string   `json:"symbol"`
	Username string   `json:"username"`

	// LeetCode 계열
	Easy        int `json:"easy"`
	Medium      int `json:"medium"`
	Hard        int `json:"hard"`
	DailySolved int `json:"daily_solved"`

	// Codeforces 계열
	SubmissionsToday int            `json:"submissions_today"`
	Submissions      []ProblemGroup `json:"submissions"`
}

// AllTimeSolved 전체 기간 해결 수를 반환합니다 (LeetCode 계열 전용 키)
func (r DisplayRecord) AllTimeSolved() int {
	return r.Easy + r.Medium + r.Hard
}
