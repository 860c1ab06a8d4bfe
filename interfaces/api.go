package interfaces

import (
	"context"

	"github.com/kevinchua6/cp-buddies/api"
)

// StatsClient 외부 플랫폼 API와의 통신을 위한 인터페이스입니다
type StatsClient interface {
	GetLeetCodeStats(ctx context.Context, username string) (*api.LeetCodeStats, error)
	GetCodeforcesSubmissions(ctx context.Context, handle string) ([]api.Submission, error)
}
