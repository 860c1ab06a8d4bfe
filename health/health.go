package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/kevinchua6/cp-buddies/constants"
)

// HealthStatus 헬스체크 응답 구조체
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	GoVersion string            `json:"go_version"`
	Memory    string            `json:"memory_usage"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthChecker 개별 의존성의 상태를 점검합니다
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

var (
	startTime = time.Now()

	checkersMu sync.RWMutex
	checkers   []HealthChecker
)

// RegisterHealthChecker 헬스체크 대상 의존성을 등록합니다
func RegisterHealthChecker(checker HealthChecker) {
	checkersMu.Lock()
	defer checkersMu.Unlock()
	checkers = append(checkers, checker)
}

// StartHealthServer 헬스체크 HTTP 서버를 시작합니다
func StartHealthServer(port string) {
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = constants.DefaultHTTPPort
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/", healthHandler) // Railway의 기본 헬스체크

	go func() {
		fmt.Printf("Health check server starting on port %s\n", port)
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			fmt.Printf("Health server error: %v\n", err)
		}
	}()
}

// healthHandler 헬스체크 핸들러
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := HealthStatus{
		Status:    constants.HealthStatusHealthy,
		Timestamp: time.Now(),
		Uptime:    time.Since(startTime).String(),
		Version:   constants.BotVersion,
		GoVersion: runtime.Version(),
		Memory:    fmt.Sprintf("%.2f MB", float64(memStats.Alloc)/constants.BytesToMB),
	}

	checkersMu.RLock()
	registered := make([]HealthChecker, len(checkers))
	copy(registered, checkers)
	checkersMu.RUnlock()

	if len(registered) > 0 {
		status.Checks = make(map[string]string, len(registered))

		ctx, cancel := context.WithTimeout(r.Context(), constants.FirestoreHealthCheckTimeout)
		defer cancel()

		for _, checker := range registered {
			if err := checker.Check(ctx); err != nil {
				status.Status = constants.HealthStatusUnhealthy
				status.Checks[checker.Name()] = err.Error()
				continue
			}
			status.Checks[checker.Name()] = constants.HealthStatusHealthy
		}
	}

	if status.Status == constants.HealthStatusHealthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}

// FirestoreHealthChecker Firestore 연결 상태를 점검합니다
type FirestoreHealthChecker struct {
	client *firestore.Client
}

// NewFirestoreHealthChecker FirestoreHealthChecker 생성자
func NewFirestoreHealthChecker(client *firestore.Client) *FirestoreHealthChecker {
	return &FirestoreHealthChecker{client: client}
}

func (f *FirestoreHealthChecker) Name() string {
	return "firestore"
}

// Check 헬스체크용 컬렉션을 한 건 조회하여 연결을 확인합니다
func (f *FirestoreHealthChecker) Check(ctx context.Context) error {
	if f.client == nil {
		return fmt.Errorf("firestore client not initialized")
	}

	docs := f.client.Collection(constants.HealthCheckCollectionName).Limit(1).Documents(ctx)
	defer docs.Stop()

	if _, err := docs.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("firestore health check failed: %w", err)
	}
	return nil
}
