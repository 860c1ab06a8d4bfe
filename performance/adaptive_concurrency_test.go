package performance

import (
	"testing"
	"time"

	"github.com/kevinchua6/cp-buddies/constants"
)

func TestNewAdaptiveConcurrencyManager_Defaults(t *testing.T) {
	manager := NewAdaptiveConcurrencyManager()

	if manager.GetCurrentLimit() != constants.MaxConcurrentRequests {
		t.Errorf("Expected initial limit %d, got %d",
			constants.MaxConcurrentRequests, manager.GetCurrentLimit())
	}

	stats := manager.GetStats()
	if stats.MinLimit != constants.AdaptiveConcurrencyMinLimit {
		t.Errorf("Expected min limit %d, got %d", constants.AdaptiveConcurrencyMinLimit, stats.MinLimit)
	}
	if stats.MaxLimit != constants.AdaptiveConcurrencyMaxLimit {
		t.Errorf("Expected max limit %d, got %d", constants.AdaptiveConcurrencyMaxLimit, stats.MaxLimit)
	}
}

func TestRecordResponseTime_DecreasesOnSlowResponses(t *testing.T) {
	manager := NewAdaptiveConcurrencyManager()
	initial := manager.GetCurrentLimit()

	// 쿨다운이 지난 것처럼 설정
	manager.lastAdjustment = time.Now().Add(-constants.ConcurrencyAdjustmentCooldown * 2)

	for i := 0; i < constants.MinResponseTimeWindowSize; i++ {
		manager.RecordResponseTime(2 * time.Second)
	}

	if manager.GetCurrentLimit() >= initial {
		t.Errorf("Expected limit to decrease below %d, got %d", initial, manager.GetCurrentLimit())
	}
}

func TestRecordResponseTime_NeverBelowMinimum(t *testing.T) {
	manager := NewAdaptiveConcurrencyManager()
	manager.currentLimit = constants.AdaptiveConcurrencyMinLimit
	manager.lastAdjustment = time.Now().Add(-constants.ConcurrencyAdjustmentCooldown * 2)

	for i := 0; i < constants.MinResponseTimeWindowSize; i++ {
		manager.RecordResponseTime(5 * time.Second)
	}

	if manager.GetCurrentLimit() < constants.AdaptiveConcurrencyMinLimit {
		t.Errorf("Expected limit to stay at minimum %d, got %d",
			constants.AdaptiveConcurrencyMinLimit, manager.GetCurrentLimit())
	}
}

func TestRecordResponseTime_IncreasesOnFastResponses(t *testing.T) {
	manager := NewAdaptiveConcurrencyManager()
	initial := manager.GetCurrentLimit()
	manager.lastAdjustment = time.Now().Add(-constants.ConcurrencyAdjustmentCooldown * 2)

	for i := 0; i < constants.MinResponseTimeWindowSize; i++ {
		manager.RecordResponseTime(10 * time.Millisecond)
	}

	if manager.GetCurrentLimit() <= initial {
		t.Errorf("Expected limit to increase above %d, got %d", initial, manager.GetCurrentLimit())
	}
}

func TestRecordResponseTime_RespectsCooldown(t *testing.T) {
	manager := NewAdaptiveConcurrencyManager()
	initial := manager.GetCurrentLimit()

	// 쿨다운 내에서는 조정하지 않습니다
	for i := 0; i < constants.MinResponseTimeWindowSize; i++ {
		manager.RecordResponseTime(5 * time.Second)
	}

	if manager.GetCurrentLimit() != initial {
		t.Errorf("Expected limit unchanged during cooldown, got %d", manager.GetCurrentLimit())
	}
}

func TestRecordResponseTime_WindowBounded(t *testing.T) {
	manager := NewAdaptiveConcurrencyManager()

	for i := 0; i < constants.ResponseTimeWindowSize*2; i++ {
		manager.RecordResponseTime(100 * time.Millisecond)
	}

	stats := manager.GetStats()
	if stats.WindowSize > constants.ResponseTimeWindowSize {
		t.Errorf("Expected window bounded at %d, got %d",
			constants.ResponseTimeWindowSize, stats.WindowSize)
	}
}

func TestGetStats_ResponseTimes(t *testing.T) {
	manager := NewAdaptiveConcurrencyManager()

	manager.RecordResponseTime(100 * time.Millisecond)
	manager.RecordResponseTime(300 * time.Millisecond)

	stats := manager.GetStats()
	if stats.AverageResponse != 200*time.Millisecond {
		t.Errorf("Expected average 200ms, got %v", stats.AverageResponse)
	}
	if stats.WindowSize != 2 {
		t.Errorf("Expected window size 2, got %d", stats.WindowSize)
	}
}
