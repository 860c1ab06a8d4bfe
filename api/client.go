package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/utils"
)

// doRequest 공통 HTTP 요청 및 재시도 로직
func doRequest(ctx context.Context, client *http.Client, url, requestType, handle string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < constants.MaxRetries; attempt++ {
		if attempt > 0 {
			utils.Debug("Retrying %s fetch for %s (attempt %d/%d)", requestType, handle, attempt+1, constants.MaxRetries)
			time.Sleep(constants.RetryDelay * time.Duration(attempt))
		}

		// 컨텍스트가 이미 만료되었으면 재시도는 무의미합니다
		if ctx.Err() != nil {
			if lastErr == nil {
				lastErr = ctx.Err()
			}
			break
		}

		utils.Debug("Fetching %s from: %s", requestType, url)

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			lastErr = fmt.Errorf("failed to build request: %w", err)
			continue
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%s fetch failed: %w", requestType, err)
			utils.Warn("Attempt %d failed for %s %s: %v", attempt+1, requestType, handle, err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			lastErr = fmt.Errorf("rate limit exceeded")
			utils.Warn("Rate limited for %s %s, attempt %d", requestType, handle, attempt+1)
			time.Sleep(constants.RetryDelay * constants.APIRetryMultiplier)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("API returned status code %d", resp.StatusCode)
			utils.Warn("API returned non-200 status for %s %s: %d", requestType, handle, resp.StatusCode)
			if resp.StatusCode >= constants.HTTPServerErrorThreshold {
				continue // 서버 에러는 재시도
			}
			break // 클라이언트 에러는 즉시 반환
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			utils.Error("Failed to read %s response body for %s: %v", requestType, handle, err)
			continue
		}

		return body, nil
	}

	utils.Error("Failed to fetch %s for %s after %d attempts: %v", requestType, handle, constants.MaxRetries, lastErr)
	return nil, lastErr
}
