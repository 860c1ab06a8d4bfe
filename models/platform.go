package models

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kevinchua6/cp-buddies/constants"
)

// Platform 지원하는 외부 플랫폼 식별자입니다. 로스터 문서의 JSON 키와 동일합니다.
type Platform string

const (
	PlatformLeetCode   Platform = "leetcode"
	PlatformAtCoder    Platform = "atcoder"
	PlatformCodeforces Platform = "cf"
)

// ParsePlatform 사용자 입력을 플랫폼 식별자로 변환합니다
func ParsePlatform(input string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "leetcode", "lc":
		return PlatformLeetCode, true
	case "cf", "codeforces":
		return PlatformCodeforces, true
	case "atcoder", "ac":
		return PlatformAtCoder, true
	}
	return "", false
}

// PlatformInfo 특정 플랫폼에 대한 표시 정보를 포함합니다
type PlatformInfo struct {
	ID         Platform
	Name       string // 표시 이름 (예: "LeetCode")
	Symbol     string // 스코어보드 심볼 (예: "LC")
	ColorCode  int    // Discord embed 색상 코드
	Selectable bool   // 명령어로 추가 가능한지 여부
}

// PlatformManager 모든 플랫폼 관련 기능을 관리합니다
type PlatformManager struct {
	platforms map[Platform]*PlatformInfo
}

var (
	globalPlatformManager *PlatformManager
	once                  sync.Once
)

// GetPlatformManager 전역 PlatformManager 인스턴스를 반환합니다 (싱글톤)
func GetPlatformManager() *PlatformManager {
	once.Do(func() {
		globalPlatformManager = &PlatformManager{
			platforms: make(map[Platform]*PlatformInfo),
		}
		globalPlatformManager.initializePlatforms()
	})
	return globalPlatformManager
}

// initializePlatforms 플랫폼 정보를 초기화합니다
func (pm *PlatformManager) initializePlatforms() {
	pm.platforms[PlatformLeetCode] = &PlatformInfo{PlatformLeetCode, "LeetCode", "LC", 0xFFA116, true}
	pm.platforms[PlatformCodeforces] = &PlatformInfo{PlatformCodeforces, "CodeForces", "CF", 0x1F8ACB, true}
	// AtCoder는 로스터 문서에는 존재하지만 아직 조회를 지원하지 않습니다
	pm.platforms[PlatformAtCoder] = &PlatformInfo{PlatformAtCoder, "AtCoder", "AC", 0x222222, false}
}

// GetInfo 플랫폼 정보를 반환합니다. 알 수 없는 플랫폼이면 nil을 반환합니다.
func (pm *PlatformManager) GetInfo(platform Platform) *PlatformInfo {
	return pm.platforms[platform]
}

// GetName 플랫폼의 표시 이름을 반환합니다
func (pm *PlatformManager) GetName(platform Platform) string {
	if info := pm.platforms[platform]; info != nil {
		return info.Name
	}
	return string(platform)
}

// GetSymbol 플랫폼의 스코어보드 심볼을 반환합니다
func (pm *PlatformManager) GetSymbol(platform Platform) string {
	if info := pm.platforms[platform]; info != nil {
		return info.Symbol
	}
	return "??"
}

// GetColor 플랫폼의 embed 색상 코드를 반환합니다
func (pm *PlatformManager) GetColor(platform Platform) int {
	if info := pm.platforms[platform]; info != nil {
		return info.ColorCode
	}
	return 0x36393F
}

// IsSelectable 명령어로 추가할 수 있는 플랫폼인지 확인합니다
func (pm *PlatformManager) IsSelectable(platform Platform) bool {
	info := pm.platforms[platform]
	return info != nil && info.Selectable
}

// SelectablePlatforms 추가 가능한 플랫폼 목록을 반환합니다
func (pm *PlatformManager) SelectablePlatforms() []Platform {
	return []Platform{PlatformLeetCode, PlatformCodeforces}
}

// ProfileURL 플랫폼별 외부 프로필 링크를 반환합니다
func (pm *PlatformManager) ProfileURL(platform Platform, username string) string {
	switch platform {
	case PlatformLeetCode:
		return fmt.Sprintf(constants.LeetCodeProfileURLFormat, username)
	case PlatformCodeforces:
		return fmt.Sprintf(constants.CodeforcesProfileURLFormat, username)
	}
	return ""
}

// LeetCardURL LeetCode 활동을 이미지로 렌더링해주는 외부 서비스 링크를 반환합니다
func (pm *PlatformManager) LeetCardURL(username string) string {
	return fmt.Sprintf(constants.LeetCardURLFormat, username)
}
