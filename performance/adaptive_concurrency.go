package performance

import (
	"sync"
	"time"

	"github.com/kevinchua6/cp-buddies/constants"
)

// AdaptiveConcurrencyManager 외부 API 응답 시간에 따라 동시 요청 수를 동적으로 조정합니다
type AdaptiveConcurrencyManager struct {
	mutex               sync.RWMutex
	currentLimit        int
	minLimit            int
	maxLimit            int
	responseTimeWindow  []time.Duration
	windowSize          int
	adjustmentThreshold time.Duration
	decreaseThreshold   time.Duration
	lastAdjustment      time.Time
	adjustmentCooldown  time.Duration
	successiveIncreases int
	successiveDecreases int
}

// NewAdaptiveConcurrencyManager 새로운 적응형 동시성 관리자를 생성합니다
func NewAdaptiveConcurrencyManager() *AdaptiveConcurrencyManager {
	return &AdaptiveConcurrencyManager{
		currentLimit:        constants.MaxConcurrentRequests,
		minLimit:            constants.AdaptiveConcurrencyMinLimit,
		maxLimit:            constants.AdaptiveConcurrencyMaxLimit,
		responseTimeWindow:  make([]time.Duration, 0, constants.ResponseTimeWindowSize),
		windowSize:          constants.ResponseTimeWindowSize,
		adjustmentThreshold: constants.ConcurrencyAdjustmentThreshold,
		decreaseThreshold:   constants.ConcurrencyDecreaseThreshold,
		adjustmentCooldown:  constants.ConcurrencyAdjustmentCooldown,
		lastAdjustment:      time.Now(),
	}
}

// GetCurrentLimit 현재 동시성 제한을 반환합니다
func (manager *AdaptiveConcurrencyManager) GetCurrentLimit() int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()
	return manager.currentLimit
}

// RecordResponseTime API 응답 시간을 기록하고 필요시 동시성을 조정합니다
func (manager *AdaptiveConcurrencyManager) RecordResponseTime(responseTime time.Duration) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	manager.responseTimeWindow = append(manager.responseTimeWindow, responseTime)
	if len(manager.responseTimeWindow) > manager.windowSize {
		manager.responseTimeWindow = manager.responseTimeWindow[1:]
	}

	// 충분한 데이터가 있고 쿨다운이 지났으면 조정 시도
	if len(manager.responseTimeWindow) >= constants.MinResponseTimeWindowSize &&
		time.Since(manager.lastAdjustment) > manager.adjustmentCooldown {
		manager.adjustConcurrency()
	}
}

// adjustConcurrency 응답 시간 통계를 기반으로 동시성을 조정합니다.
// 주의: Lock()이 걸린 상태에서만 호출되어야 합니다
func (manager *AdaptiveConcurrencyManager) adjustConcurrency() {
	avgResponseTime := manager.calculateAverageResponseTime()
	p95ResponseTime := manager.calculateP95ResponseTime()

	oldLimit := manager.currentLimit

	if p95ResponseTime > manager.decreaseThreshold || avgResponseTime > manager.adjustmentThreshold {
		// 응답이 느려지면 동시성 감소
		if manager.currentLimit > manager.minLimit {
			manager.currentLimit--
			manager.successiveDecreases++
			manager.successiveIncreases = 0
		}
	} else if avgResponseTime < manager.adjustmentThreshold/2 {
		// 응답이 충분히 빠르면 보수적으로 증가
		if manager.currentLimit < manager.maxLimit && manager.successiveDecreases == 0 {
			if manager.successiveIncreases < constants.MaxSuccessiveIncreases {
				manager.currentLimit++
				manager.successiveIncreases++
			}
		}
		manager.successiveDecreases = 0
	}

	if oldLimit != manager.currentLimit {
		manager.lastAdjustment = time.Now()
	}
}

// calculateAverageResponseTime 평균 응답 시간을 계산합니다.
// 주의: RLock() 또는 Lock()이 걸린 상태에서만 호출되어야 합니다
func (manager *AdaptiveConcurrencyManager) calculateAverageResponseTime() time.Duration {
	if len(manager.responseTimeWindow) == 0 {
		return 0
	}

	var total time.Duration
	for _, responseTime := range manager.responseTimeWindow {
		total += responseTime
	}
	return total / time.Duration(len(manager.responseTimeWindow))
}

// calculateP95ResponseTime 95 퍼센타일 응답 시간의 근사치를 계산합니다.
// 주의: RLock() 또는 Lock()이 걸린 상태에서만 호출되어야 합니다
func (manager *AdaptiveConcurrencyManager) calculateP95ResponseTime() time.Duration {
	if len(manager.responseTimeWindow) == 0 {
		return 0
	}

	var maxTime time.Duration
	for _, responseTime := range manager.responseTimeWindow {
		if responseTime > maxTime {
			maxTime = responseTime
		}
	}

	return time.Duration(float64(maxTime) * constants.P95PercentileRatio)
}

// GetStats 현재 통계를 반환합니다
func (manager *AdaptiveConcurrencyManager) GetStats() ConcurrencyStats {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	return ConcurrencyStats{
		CurrentLimit:    manager.currentLimit,
		MinLimit:        manager.minLimit,
		MaxLimit:        manager.maxLimit,
		AverageResponse: manager.calculateAverageResponseTime(),
		P95Response:     manager.calculateP95ResponseTime(),
		WindowSize:      len(manager.responseTimeWindow),
		LastAdjustment:  manager.lastAdjustment,
		SuccessiveInc:   manager.successiveIncreases,
		SuccessiveDec:   manager.successiveDecreases,
	}
}

// ConcurrencyStats 동시성 관리자의 통계 정보
type ConcurrencyStats struct {
	CurrentLimit    int
	MinLimit        int
	MaxLimit        int
	AverageResponse time.Duration
	P95Response     time.Duration
	WindowSize      int
	LastAdjustment  time.Time
	SuccessiveInc   int
	SuccessiveDec   int
}
