package fetcher

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/kevinchua6/cp-buddies/api"
	"github.com/kevinchua6/cp-buddies/errors"
	"github.com/kevinchua6/cp-buddies/interfaces"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/performance"
	"github.com/kevinchua6/cp-buddies/utils"
)

// Outcome 단일 사용자 조회의 결과 분류입니다
type Outcome int

const (
	// OutcomeSuccess 조회 성공
	OutcomeSuccess Outcome = iota
	// OutcomeNotFound 플랫폼에 해당 사용자가 존재하지 않음
	OutcomeNotFound
	// OutcomeUpstreamError 플랫폼 API 장애 또는 요청 한도 초과
	OutcomeUpstreamError
	// OutcomeAborted 로컬 데드라인 초과 또는 취소로 조회가 중단됨
	OutcomeAborted
)

// String Outcome의 문자열 표현을 반환합니다
func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUpstreamError:
		return "upstream_error"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result 명단의 사용자 한 명에 대한 조회 결과입니다.
// Outcome이 OutcomeSuccess일 때만 플랫폼별 데이터 필드가 채워집니다.
type Result struct {
	Platform    models.Platform
	Username    string
	Outcome     Outcome
	LeetCode    *api.LeetCodeStats
	Submissions []api.Submission
	Err         error
}

// StatsFetcher 명단 전체의 통계를 동시성 제한과 함께 수집합니다
type StatsFetcher struct {
	client      interfaces.StatsClient
	concurrency *performance.AdaptiveConcurrencyManager
}

// NewStatsFetcher 새로운 StatsFetcher 인스턴스를 생성합니다
func NewStatsFetcher(client interfaces.StatsClient) *StatsFetcher {
	return &StatsFetcher{
		client:      client,
		concurrency: performance.NewAdaptiveConcurrencyManager(),
	}
}

// ConcurrencyStats 현재 동시성 관리자 통계를 반환합니다
func (fetcher *StatsFetcher) ConcurrencyStats() performance.ConcurrencyStats {
	return fetcher.concurrency.GetStats()
}

// FetchAll 명단에 등록된 모든 사용자의 통계를 동시에 수집합니다.
// 반환 순서는 고정되어 있지 않으며, 각 사용자에 대해 결과가 하나씩 생성됩니다.
func (fetcher *StatsFetcher) FetchAll(ctx context.Context, roster models.Roster) []Result {
	total := len(roster.LeetCode) + len(roster.Codeforces)
	if total == 0 {
		return nil
	}

	limit := fetcher.concurrency.GetCurrentLimit()
	utils.Debug("Fetching stats for %d users with concurrency limit %d", total, limit)

	semaphore := performance.GetSemaphoreChannel(limit)
	defer performance.PutSemaphoreChannel(semaphore)

	results := make(chan Result, total)
	var waitGroup sync.WaitGroup

	for _, username := range roster.LeetCode {
		waitGroup.Add(1)
		go func(user string) {
			defer waitGroup.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results <- fetcher.fetchLeetCode(ctx, user)
		}(username)
	}

	for _, handle := range roster.Codeforces {
		waitGroup.Add(1)
		go func(h string) {
			defer waitGroup.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results <- fetcher.fetchCodeforces(ctx, h)
		}(handle)
	}

	waitGroup.Wait()
	close(results)

	collected := make([]Result, 0, total)
	for result := range results {
		collected = append(collected, result)
	}
	return collected
}

// fetchLeetCode LeetCode 사용자 한 명을 조회하고 결과를 분류합니다
func (fetcher *StatsFetcher) fetchLeetCode(ctx context.Context, username string) Result {
	start := time.Now()
	stats, err := fetcher.client.GetLeetCodeStats(ctx, username)
	fetcher.concurrency.RecordResponseTime(time.Since(start))

	result := Result{
		Platform: models.PlatformLeetCode,
		Username: username,
	}

	if err != nil {
		result.Outcome = classifyError(err)
		result.Err = err
		utils.Warn("LeetCode fetch for %s finished with outcome %s: %v", username, result.Outcome, err)
		return result
	}

	result.Outcome = OutcomeSuccess
	result.LeetCode = stats
	return result
}

// fetchCodeforces Codeforces 핸들 하나를 조회하고 결과를 분류합니다
func (fetcher *StatsFetcher) fetchCodeforces(ctx context.Context, handle string) Result {
	start := time.Now()
	submissions, err := fetcher.client.GetCodeforcesSubmissions(ctx, handle)
	fetcher.concurrency.RecordResponseTime(time.Since(start))

	result := Result{
		Platform: models.PlatformCodeforces,
		Username: handle,
	}

	if err != nil {
		result.Outcome = classifyError(err)
		result.Err = err
		utils.Warn("Codeforces fetch for %s finished with outcome %s: %v", handle, result.Outcome, err)
		return result
	}

	result.Outcome = OutcomeSuccess
	result.Submissions = submissions
	return result
}

// classifyError 오류 타입을 조회 결과 분류로 변환합니다.
// 존재하지 않는 사용자만 OutcomeNotFound로 구분합니다. 로컬 데드라인 초과나
// 취소는 플랫폼의 응답이 아니므로 OutcomeAborted로 분리하고, 나머지는
// 모두 일시적인 업스트림 장애로 취급합니다.
func classifyError(err error) Outcome {
	if errors.IsNotFound(err) {
		return OutcomeNotFound
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return OutcomeAborted
	}
	return OutcomeUpstreamError
}
