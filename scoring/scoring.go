package scoring

import (
	"sort"
	"strconv"
	"time"

	"github.com/kevinchua6/cp-buddies/api"
	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/models"
)

// DailySolvedFromCalendar 제출 캘린더에서 최근 24시간 동안 푼 문제 수를 계산합니다.
// 캘린더 키는 epoch 초 단위의 날짜 버킷이며, 키가 기준 시각 이후인 버킷의
// 값만 합산합니다. 파싱할 수 없는 키는 무시합니다.
func DailySolvedFromCalendar(calendar map[string]int, now time.Time) int {
	threshold := now.Add(-constants.DailyWindow).Unix()

	total := 0
	for dayKey, count := range calendar {
		day, err := strconv.ParseInt(dayKey, 10, 64)
		if err != nil {
			continue
		}
		if day >= threshold {
			total += count
		}
	}
	return total
}

// CountSubmissionsToday 최근 24시간 내의 제출 수를 계산합니다.
func CountSubmissionsToday(submissions []api.Submission, now time.Time) int {
	threshold := now.Add(-constants.DailyWindow).Unix()

	count := 0
	for _, submission := range submissions {
		if submission.CreationTimeSeconds >= threshold {
			count++
		}
	}
	return count
}

// GroupSubmissionsByProblem 제출 목록을 문제 단위로 묶습니다.
// 문제가 처음 등장한 순서가 유지되며, 태그는 첫 제출 기준으로 기록됩니다.
func GroupSubmissionsByProblem(submissions []api.Submission) []models.ProblemGroup {
	groups := make([]models.ProblemGroup, 0, len(submissions))
	indexByName := make(map[string]int, len(submissions))

	for _, submission := range submissions {
		name := submission.Problem.Name
		if idx, seen := indexByName[name]; seen {
			groups[idx].Count++
			continue
		}

		indexByName[name] = len(groups)
		groups = append(groups, models.ProblemGroup{
			Name:  name,
			Tags:  submission.Problem.Tags,
			Count: 1,
		})
	}
	return groups
}

// BuildLeetCodeRecord LeetCode 통계 응답을 표시용 레코드로 변환합니다.
func BuildLeetCodeRecord(stats *api.LeetCodeStats, now time.Time) models.DisplayRecord {
	manager := models.GetPlatformManager()

	return models.DisplayRecord{
		Platform:    models.PlatformLeetCode,
		Symbol:      manager.GetSymbol(models.PlatformLeetCode),
		Username:    stats.Username,
		Easy:        stats.EasySolved,
		Medium:      stats.MediumSolved,
		Hard:        stats.HardSolved,
		DailySolved: DailySolvedFromCalendar(stats.SubmissionCalendar, now),
	}
}

// BuildCodeforcesRecord Codeforces 제출 목록을 표시용 레코드로 변환합니다.
func BuildCodeforcesRecord(handle string, submissions []api.Submission, now time.Time) models.DisplayRecord {
	manager := models.GetPlatformManager()

	return models.DisplayRecord{
		Platform:         models.PlatformCodeforces,
		Symbol:           manager.GetSymbol(models.PlatformCodeforces),
		Username:         handle,
		SubmissionsToday: CountSubmissionsToday(submissions, now),
		Submissions:      GroupSubmissionsByProblem(submissions),
	}
}

// SortRecords 정렬 모드에 따라 레코드를 내림차순으로 정렬합니다.
// 플랫폼이 서로 다른 레코드끼리는 순위를 매기지 않으며, 정렬은 안정적이므로
// 기존 상대 순서가 유지됩니다.
func SortRecords(records []models.DisplayRecord, mode models.SortMode) {
	sort.SliceStable(records, func(i, j int) bool {
		return recordLess(records[i], records[j], mode)
	})
}

func recordLess(a, b models.DisplayRecord, mode models.SortMode) bool {
	if a.Platform != b.Platform {
		return false
	}

	switch a.Platform {
	case models.PlatformLeetCode:
		if mode == models.SortAllTime {
			return a.AllTimeSolved() > b.AllTimeSolved()
		}
		return a.DailySolved > b.DailySolved
	case models.PlatformCodeforces:
		// Codeforces에는 누적 지표가 없으므로 전체 기간 모드에서는 순서를 바꾸지 않습니다
		if mode == models.SortDaily {
			return a.SubmissionsToday > b.SubmissionsToday
		}
	}
	return false
}
