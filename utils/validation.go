package utils

import (
	"regexp"
	"strings"

	"github.com/kevinchua6/cp-buddies/constants"
)

// 플랫폼 사용자명은 영숫자와 -, _, . 만 허용합니다
var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9\-_.]+$`)

// IsValidHandle 플랫폼 사용자명 형식을 검증합니다.
// 사용자명은 그대로 요청 URL에 들어가므로 추가 전에 반드시 검증해야 합니다.
func IsValidHandle(handle string) bool {
	if len(handle) < constants.MinHandleLength || len(handle) > constants.MaxHandleLength {
		return false
	}

	trimmed := strings.TrimSpace(handle)
	if len(trimmed) != len(handle) || len(trimmed) == 0 {
		return false
	}

	if !handlePattern.MatchString(handle) {
		return false
	}

	// 시작/끝이 특수문자인 경우 방지
	if strings.HasPrefix(handle, "-") || strings.HasSuffix(handle, "-") ||
		strings.HasPrefix(handle, ".") || strings.HasSuffix(handle, ".") {
		return false
	}

	return true
}

// TruncateString 문자열을 지정된 길이로 자릅니다
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
