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

// Problem Codeforces 문제 정보를 나타냅니다
type Problem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Points    float64  `json:"points"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}

// Submission Codeforces 제출 이벤트를 나타냅니다
type Submission struct {
	ID                  int64   `json:"id"`
	ContestID           int     `json:"contestId"`
	CreationTimeSeconds int64   `json:"creationTimeSeconds"`
	RelativeTimeSeconds int64   `json:"relativeTimeSeconds"`
	Problem             Problem `json:"problem"`
	ProgrammingLanguage string  `json:"programmingLanguage"`
	Verdict             string  `json:"verdict"`
}

// userStatusResponse user.status 엔드포인트의 전체 응답입니다
type userStatusResponse struct {
	Status  string       `json:"status"`
	Comment string       `json:"comment"`
	Result  []Submission `json:"result"`
}

// CodeforcesClient Codeforces API와 통신하는 클라이언트입니다
type CodeforcesClient struct {
	client  *http.Client
	baseURL string
}

// NewCodeforcesClient 새로운 CodeforcesClient 인스턴스를 생성합니다.
// baseURL이 비어 있으면 기본 엔드포인트를 사용합니다.
func NewCodeforcesClient(baseURL string) *CodeforcesClient {
	if baseURL == "" {
		baseURL = constants.CodeforcesBaseURL
	}

	utils.Debug("Creating new Codeforces API client (base: %s)", baseURL)
	return &CodeforcesClient{
		client: &http.Client{
			Timeout: constants.APITimeout,
		},
		baseURL: baseURL,
	}
}

// GetRecentSubmissions 지정된 핸들의 최근 제출 목록을 가져옵니다.
// 핸들이 존재하지 않으면 TypeNotFound, 그 외 실패는 TypeUpstream 오류를 반환합니다.
func (client *CodeforcesClient) GetRecentSubmissions(ctx context.Context, handle string) ([]Submission, error) {
	if !utils.IsValidHandle(handle) {
		return nil, errors.NewValidationError("CODEFORCES_INVALID_HANDLE",
			fmt.Sprintf("invalid handle format: %s", handle),
			fmt.Sprintf(constants.MsgInvalidHandle, handle))
	}

	url := fmt.Sprintf("%s/user.status?handle=%s&from=1&count=%d",
		client.baseURL, handle, constants.CodeforcesSubmissionCount)
	body, err := doRequest(ctx, client.client, url, "codeforces submissions", handle)
	if err != nil {
		return nil, errors.NewUpstreamError("CODEFORCES_FETCH_FAILED",
			fmt.Sprintf("failed to fetch submissions for %s", handle), err)
	}

	var response userStatusResponse
	if err := json.Unmarshal(body, &response); err != nil {
		utils.Error("Failed to parse codeforces response for %s: %v", handle, err)
		return nil, errors.NewUpstreamError("CODEFORCES_PARSE_FAILED",
			fmt.Sprintf("failed to parse submissions for %s", handle), err)
	}

	// status == "FAILED"는 핸들이 존재하지 않는다는 의미입니다.
	// OK가 아닌 그 외 상태는 서버 장애 또는 요청 한도 초과로 취급합니다.
	if response.Status == "FAILED" {
		return nil, errors.NewNotFoundError("CODEFORCES_USER_NOT_FOUND",
			fmt.Sprintf("handle %s not found on Codeforces: %s", handle, response.Comment),
			fmt.Sprintf(constants.MsgUserNotFound, handle, "CodeForces"))
	}
	if response.Status != "OK" {
		return nil, errors.NewUpstreamError("CODEFORCES_BAD_STATUS",
			fmt.Sprintf("codeforces API returned status %q for %s", response.Status, handle), nil)
	}

	utils.Debug("Successfully fetched %d submissions for %s", len(response.Result), handle)
	return response.Result, nil
}
