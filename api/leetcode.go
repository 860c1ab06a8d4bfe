package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/errors"
	"github.com/kevinchua6/cp-buddies/utils"
)

// LeetCodeStats leetcode-stats API의 사용자 통계 응답을 나타냅니다
type LeetCodeStats struct {
	Status             string         `json:"status"`
	Message            string         `json:"message"`
	TotalSolved        int            `json:"totalSolved"`
	TotalQuestions     int            `json:"totalQuestions"`
	EasySolved         int            `json:"easySolved"`
	TotalEasy          int            `json:"totalEasy"`
	MediumSolved       int            `json:"mediumSolved"`
	TotalMedium        int            `json:"totalMedium"`
	HardSolved         int            `json:"hardSolved"`
	TotalHard          int            `json:"totalHard"`
	AcceptanceRate     float64        `json:"acceptanceRate"`
	Ranking            int            `json:"ranking"`
	ContributionPoints int            `json:"contributionPoints"`
	Reputation         int            `json:"reputation"`
	SubmissionCalendar map[string]int `json:"submissionCalendar"`

	// 어떤 요청에 대한 응답인지 기록합니다. 응답이 불완전해도 항상 채워집니다.
	Username string `json:"-"`
}

// LeetCodeClient leetcode-stats API와 통신하는 클라이언트입니다
type LeetCodeClient struct {
	client  *http.Client
	baseURL string
}

// NewLeetCodeClient 새로운 LeetCodeClient 인스턴스를 생성합니다.
// baseURL이 비어 있으면 기본 엔드포인트를 사용합니다.
func NewLeetCodeClient(baseURL string) *LeetCodeClient {
	if baseURL == "" {
		baseURL = constants.LeetCodeStatsBaseURL
	}

	utils.Debug("Creating new LeetCode stats API client (base: %s)", baseURL)
	return &LeetCodeClient{
		client: &http.Client{
			Timeout: constants.APITimeout,
		},
		baseURL: baseURL,
	}
}

// GetUserStats 지정된 사용자명의 LeetCode 통계를 가져옵니다.
// 사용자가 존재하지 않으면 TypeNotFound, 그 외 실패는 TypeUpstream 오류를 반환합니다.
func (client *LeetCodeClient) GetUserStats(ctx context.Context, username string) (*LeetCodeStats, error) {
	if !utils.IsValidHandle(username) {
		return nil, errors.NewValidationError("LEETCODE_INVALID_HANDLE",
			fmt.Sprintf("invalid handle format: %s", username),
			fmt.Sprintf(constants.MsgInvalidHandle, username))
	}

	url := fmt.Sprintf("%s/%s", client.baseURL, username)
	body, err := doRequest(ctx, client.client, url, "leetcode stats", username)
	if err != nil {
		return nil, errors.NewUpstreamError("LEETCODE_FETCH_FAILED",
			fmt.Sprintf("failed to fetch leetcode stats for %s", username), err)
	}

	var stats LeetCodeStats
	if err := json.Unmarshal(body, &stats); err != nil {
		utils.Error("Failed to parse leetcode stats for %s: %v", username, err)
		return nil, errors.NewUpstreamError("LEETCODE_PARSE_FAILED",
			fmt.Sprintf("failed to parse leetcode stats for %s", username), err)
	}

	// status == "error"는 사용자가 존재하지 않는다는 의미입니다.
	// success가 아닌 그 외 상태는 서버 장애 또는 요청 한도 초과로 취급합니다.
	if stats.Status == "error" {
		return nil, errors.NewNotFoundError("LEETCODE_USER_NOT_FOUND",
			fmt.Sprintf("user %s not found on LeetCode: %s", username, stats.Message),
			fmt.Sprintf(constants.MsgUserNotFound, username, "LeetCode"))
	}
	if stats.Status != "success" {
		return nil, errors.NewUpstreamError("LEETCODE_BAD_STATUS",
			fmt.Sprintf("leetcode stats API returned status %q for %s", stats.Status, username), nil)
	}

	stats.Username = username
	utils.Debug("Successfully fetched leetcode stats for %s (solved: %d)", username, stats.TotalSolved)
	return &stats, nil
}
