package models

// Roster 플랫폼별로 추적 중인 사용자명 목록을 담는 문서입니다.
// JSON/Firestore 키는 저장 문서 레이아웃과 일치합니다:
// {"leetcode": [...], "atcoder": [...], "cf": [...]}
type Roster struct {
	LeetCode   []string `json:"leetcode" firestore:"leetcode"`
	AtCoder    []string `json:"atcoder" firestore:"atcoder"`
	Codeforces []string `json:"cf" firestore:"cf"`
}

// NewRoster 세 플랫폼 목록이 모두 비어 있는 기본 로스터를 생성합니다
func NewRoster() Roster {
	return Roster{
		LeetCode:   []string{},
		AtCoder:    []string{},
		Codeforces: []string{},
	}
}

// Users 지정된 플랫폼의 사용자명 목록을 반환합니다
func (r Roster) Users(platform Platform) []string {
	switch platform {
	case PlatformLeetCode:
		return r.LeetCode
	case PlatformAtCoder:
		return r.AtCoder
	case PlatformCodeforces:
		return r.Codeforces
	}
	return nil
}

func (r *Roster) setUsers(platform Platform, users []string) {
	switch platform {
	case PlatformLeetCode:
		r.LeetCode = users
	case PlatformAtCoder:
		r.AtCoder = users
	case PlatformCodeforces:
		r.Codeforces = users
	}
}

// Contains 해당 플랫폼 목록에 사용자명이 존재하는지 확인합니다
func (r Roster) Contains(platform Platform, username string) bool {
	for _, u := range r.Users(platform) {
		if u == username {
			return true
		}
	}
	return false
}

// Add 사용자명을 플랫폼 목록 끝에 추가합니다.
// 이미 존재하면 아무것도 하지 않고 false를 반환합니다.
func (r *Roster) Add(platform Platform, username string) bool {
	if r.Contains(platform, username) {
		return false
	}
	r.setUsers(platform, append(r.Users(platform), username))
	return true
}

// Remove 사용자명을 플랫폼 목록에서 제거합니다.
// 존재하지 않으면 아무것도 하지 않고 false를 반환합니다.
func (r *Roster) Remove(platform Platform, username string) bool {
	users := r.Users(platform)
	filtered := make([]string, 0, len(users))
	removed := false
	for _, u := range users {
		if u == username {
			removed = true
			continue
		}
		filtered = append(filtered, u)
	}
	if removed {
		r.setUsers(platform, filtered)
	}
	return removed
}

// Clone 로스터의 깊은 사본을 반환합니다
func (r Roster) Clone() Roster {
	clone := NewRoster()
	clone.LeetCode = append(clone.LeetCode, r.LeetCode...)
	clone.AtCoder = append(clone.AtCoder, r.AtCoder...)
	clone.Codeforces = append(clone.Codeforces, r.Codeforces...)
	return clone
}

// Normalize nil 목록을 빈 목록으로 바꿉니다. 저장소에서 읽은 문서에 사용합니다.
func (r *Roster) Normalize() {
	if r.LeetCode == nil {
		r.LeetCode = []string{}
	}
	if r.AtCoder == nil {
		r.AtCoder = []string{}
	}
	if r.Codeforces == nil {
		r.Codeforces = []string{}
	}
}

// Total 전체 플랫폼의 추적 사용자 수를 반환합니다
func (r Roster) Total() int {
	return len(r.LeetCode) + len(r.AtCoder) + len(r.Codeforces)
}
