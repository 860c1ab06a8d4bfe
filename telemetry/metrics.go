package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3"
	"google.golang.org/genproto/googleapis/api/metric"
	"google.golang.org/genproto/googleapis/api/monitoredres"
	monitoringpb "google.golang.org/genproto/googleapis/monitoring/v3"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/kevinchua6/cp-buddies/utils"
)

// MetricsClient Google Cloud Monitoring 클라이언트를 래핑합니다
type MetricsClient struct {
	client    *monitoring.MetricClient
	projectID string
	enabled   bool
}

// NewMetricsClient 새로운 MetricsClient 인스턴스를 생성합니다
func NewMetricsClient(projectID string) *MetricsClient {
	if projectID == "" {
		utils.Warn("Project ID not provided, telemetry disabled")
		return &MetricsClient{enabled: false}
	}

	// Firebase 인증 정보를 임시 파일로 생성하여 Google Cloud 인증에 사용
	if err := setupGoogleCloudCredentials(); err != nil {
		utils.Warn("Failed to setup Google Cloud credentials: %v", err)
		utils.Warn("Telemetry disabled - ensure Firebase credentials are available")
		return &MetricsClient{enabled: false}
	}

	client, err := monitoring.NewMetricClient(context.Background())
	if err != nil {
		utils.Warn("Failed to create monitoring client: %v", err)
		utils.Warn("Telemetry disabled")
		return &MetricsClient{enabled: false}
	}

	utils.Info("Google Cloud Monitoring telemetry enabled for project: %s", projectID)
	return &MetricsClient{
		client:    client,
		projectID: projectID,
		enabled:   true,
	}
}

// SendCommandMetric 명령어 사용 메트릭을 전송합니다
func (m *MetricsClient) SendCommandMetric(command string) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "cp_buddies/commands/usage", 1.0, now, map[string]string{
		"command": command,
	}); err != nil {
		utils.Warn("Failed to send command metric: %v", err)
		return
	}

	utils.Debug("Command metric sent: %s", command)
}

// SendCacheMetrics 캐시 메트릭을 전송합니다
func (m *MetricsClient) SendCacheMetrics(totalCalls, cacheHits, cacheMisses int64, hitRate float64) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendCustomMetric(ctx, "cp_buddies/cache/hit_rate", hitRate, now); err != nil {
		utils.Warn("Failed to send cache hit rate metric: %v", err)
	}
	if err := m.sendCustomMetric(ctx, "cp_buddies/cache/total_calls", float64(totalCalls), now); err != nil {
		utils.Warn("Failed to send total calls metric: %v", err)
	}
	if err := m.sendCustomMetric(ctx, "cp_buddies/cache/hits", float64(cacheHits), now); err != nil {
		utils.Warn("Failed to send cache hits metric: %v", err)
	}
	if err := m.sendCustomMetric(ctx, "cp_buddies/cache/misses", float64(cacheMisses), now); err != nil {
		utils.Warn("Failed to send cache misses metric: %v", err)
	}

	utils.Debug("Cache metrics sent to Google Cloud Monitoring")
}

// SendFetchOutcomeMetric 플랫폼 조회 결과 메트릭을 전송합니다
func (m *MetricsClient) SendFetchOutcomeMetric(platform, outcome string) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "cp_buddies/fetch/outcomes", 1.0, now, map[string]string{
		"platform": platform,
		"outcome":  outcome,
	}); err != nil {
		utils.Warn("Failed to send fetch outcome metric: %v", err)
		return
	}

	utils.Debug("Fetch outcome metric sent: %s/%s", platform, outcome)
}

// SendRosterMetric 명단 크기 메트릭을 전송합니다
func (m *MetricsClient) SendRosterMetric(action string, trackedUsers int) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "cp_buddies/roster/actions", 1.0, now, map[string]string{
		"action": action,
	}); err != nil {
		utils.Warn("Failed to send roster action metric: %v", err)
	}
	if err := m.sendCustomMetric(ctx, "cp_buddies/roster/tracked_users", float64(trackedUsers), now); err != nil {
		utils.Warn("Failed to send tracked users metric: %v", err)
	}

	utils.Debug("Roster metric sent: %s (tracked: %d)", action, trackedUsers)
}

// SendPerformanceMetric 성능 메트릭을 전송합니다
func (m *MetricsClient) SendPerformanceMetric(operation string, duration time.Duration, success bool) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "cp_buddies/performance/duration", duration.Seconds(), now, map[string]string{
		"operation": operation,
		"success":   fmt.Sprintf("%t", success),
	}); err != nil {
		utils.Warn("Failed to send performance duration metric: %v", err)
	}

	successValue := 0.0
	if success {
		successValue = 1.0
	}
	if err := m.sendLabeledMetric(ctx, "cp_buddies/performance/success_rate", successValue, now, map[string]string{
		"operation": operation,
	}); err != nil {
		utils.Warn("Failed to send success rate metric: %v", err)
	}

	utils.Debug("Performance metric sent: %s (duration: %v, success: %t)", operation, duration, success)
}

// sendCustomMetric 단순한 커스텀 메트릭을 전송합니다
func (m *MetricsClient) sendCustomMetric(ctx context.Context, metricType string, value float64, timestamp *timestamppb.Timestamp) error {
	return m.sendLabeledMetric(ctx, metricType, value, timestamp, nil)
}

// sendLabeledMetric 라벨이 포함된 커스텀 메트릭을 전송합니다
func (m *MetricsClient) sendLabeledMetric(ctx context.Context, metricType string, value float64, timestamp *timestamppb.Timestamp, labels map[string]string) error {
	if labels == nil {
		labels = make(map[string]string)
	}

	req := &monitoringpb.CreateTimeSeriesRequest{
		Name: fmt.Sprintf("projects/%s", m.projectID),
		TimeSeries: []*monitoringpb.TimeSeries{
			{
				Metric: &metric.Metric{
					Type:   fmt.Sprintf("custom.googleapis.com/%s", metricType),
					Labels: labels,
				},
				Resource: &monitoredres.MonitoredResource{
					Type: "generic_task",
					Labels: map[string]string{
						"project_id": m.projectID,
						"location":   "global",
						"namespace":  "cp-buddies",
						"job":        "friends-bot",
						"task_id":    "main",
					},
				},
				Points: []*monitoringpb.Point{
					{
						Interval: &monitoringpb.TimeInterval{
							EndTime: timestamp,
						},
						Value: &monitoringpb.TypedValue{
							Value: &monitoringpb.TypedValue_DoubleValue{
								DoubleValue: value,
							},
						},
					},
				},
			},
		},
	}

	return m.client.CreateTimeSeries(ctx, req)
}

// Close 클라이언트를 정리합니다
func (m *MetricsClient) Close() error {
	if !m.enabled || m.client == nil {
		return nil
	}
	return m.client.Close()
}

// setupGoogleCloudCredentials Firebase 인증 정보를 Google Cloud 인증으로 설정합니다
func setupGoogleCloudCredentials() error {
	// 이미 GOOGLE_APPLICATION_CREDENTIALS가 설정되어 있다면 스킵
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		return nil
	}

	firebaseCredentials := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if firebaseCredentials == "" {
		return fmt.Errorf("neither GOOGLE_APPLICATION_CREDENTIALS nor FIREBASE_CREDENTIALS_JSON is set")
	}

	// 임시 파일 생성
	tempDir := os.TempDir()
	credFile := filepath.Join(tempDir, "cp-buddies-gcloud-credentials.json")

	if err := os.WriteFile(credFile, []byte(firebaseCredentials), 0600); err != nil {
		return fmt.Errorf("failed to write temporary credentials file: %v", err)
	}

	os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", credFile)

	utils.Debug("Created temporary Google Cloud credentials file: %s", credFile)
	return nil
}
