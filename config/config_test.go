package config

import (
	"testing"

	"github.com/kevinchua6/cp-buddies/constants"
)

func validConfig() *Config {
	return &Config{
		Discord: DiscordConfig{Token: "test-token", ChannelID: "123"},
		API: APIConfig{
			LeetCodeBaseURL:   constants.LeetCodeStatsBaseURL,
			CodeforcesBaseURL: constants.CodeforcesBaseURL,
		},
		Storage:  StorageConfig{Backend: constants.StorageBackendFile, FilePath: "roster.json"},
		Schedule: ScheduleConfig{ScoreboardHour: 9, ScoreboardMinute: 0, Enabled: true},
		Logging:  LoggingConfig{Level: constants.LogLevelInfo},
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Expected valid config, got: %v", err)
	}
}

func TestConfig_Validate_MissingToken(t *testing.T) {
	cfg := validConfig()
	cfg.Discord.Token = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing token")
	}
}

func TestConfig_Validate_BadBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = "cassandra"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unsupported storage backend")
	}
}

func TestConfig_Validate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "VERBOSE"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid log level")
	}
}

func TestConfig_Validate_BadScheduleHour(t *testing.T) {
	cfg := validConfig()
	cfg.Schedule.ScoreboardHour = 24

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for out-of-range hour")
	}

	// 스케줄이 꺼져 있으면 시간 검증은 건너뜁니다
	cfg.Schedule.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected no error with schedule disabled, got: %v", err)
	}
}

func TestConfig_Validate_TelemetryNeedsProject(t *testing.T) {
	cfg := validConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.ProjectID = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for telemetry without project ID")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(constants.EnvDiscordToken, "token")
	t.Setenv(constants.EnvChannelID, "")

	cfg := Load()

	if cfg.Storage.Backend != constants.StorageBackendFile {
		t.Errorf("Expected file backend by default, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.FilePath != constants.DefaultRosterFilePath {
		t.Errorf("Expected default roster path, got %s", cfg.Storage.FilePath)
	}
	if cfg.Features.KeepOnUpstreamError {
		t.Error("Expected KeepOnUpstreamError off by default")
	}
	if cfg.Schedule.Enabled {
		t.Error("Expected schedule disabled without channel ID")
	}
	if cfg.Sheets.Enabled {
		t.Error("Expected sheets export disabled without spreadsheet ID")
	}
}

func TestLoad_FeatureFlags(t *testing.T) {
	t.Setenv("KEEP_ON_UPSTREAM_ERROR", "true")
	t.Setenv("ENABLE_AUTO_SCOREBOARD", "false")

	cfg := Load()

	if !cfg.Features.KeepOnUpstreamError {
		t.Error("Expected KeepOnUpstreamError enabled")
	}
	if cfg.Features.EnableAutoScoreboard {
		t.Error("Expected auto scoreboard disabled")
	}
}

func TestConfig_IsDebugMode(t *testing.T) {
	cfg := validConfig()
	if cfg.IsDebugMode() {
		t.Error("Expected debug mode off for INFO level")
	}

	cfg.Logging.Level = constants.LogLevelDebug
	if !cfg.IsDebugMode() {
		t.Error("Expected debug mode on for DEBUG level")
	}

	cfg.Logging.Level = constants.LogLevelInfo
	cfg.Logging.DebugMode = true
	if !cfg.IsDebugMode() {
		t.Error("Expected debug mode on with DEBUG_MODE flag")
	}
}
