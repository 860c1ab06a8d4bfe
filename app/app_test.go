package app

import (
	"testing"

	"github.com/kevinchua6/cp-buddies/config"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "test-token-12345")
	t.Setenv("STORAGE_BACKEND", "memory")
}

func TestApplication_New(t *testing.T) {
	setTestEnv(t)

	t.Run("Successful application creation", func(t *testing.T) {
		app, err := New()

		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if app == nil {
			t.Fatal("Expected non-nil application")
		}

		if app.config == nil {
			t.Error("Expected non-nil config")
		}

		if app.repository == nil {
			t.Error("Expected non-nil storage")
		}

		if app.statsClient == nil {
			t.Error("Expected non-nil stats client")
		}

		if app.rosterController == nil {
			t.Error("Expected non-nil roster controller")
		}

		if app.session == nil {
			t.Error("Expected non-nil Discord session")
		}

		// Clean up
		app.Stop()
	})

	t.Run("Missing token should fail", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "")

		app, err := New()

		if err == nil {
			t.Error("Expected error for missing token")
		}

		if app != nil {
			t.Error("Expected nil application on error")
			app.Stop()
		}
	})
}

func TestApplication_loadConfig(t *testing.T) {
	setTestEnv(t)

	app := &Application{}
	if err := app.loadConfig(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if app.config == nil {
		t.Fatal("Expected non-nil config")
	}

	if app.config.Discord.Token != "test-token-12345" {
		t.Errorf("Expected token 'test-token-12345', got '%s'", app.config.Discord.Token)
	}

	if app.config.Storage.Backend != "memory" {
		t.Errorf("Expected memory backend, got '%s'", app.config.Storage.Backend)
	}
}

func TestApplication_initializeDependencies(t *testing.T) {
	app := &Application{
		config: &config.Config{
			Discord: config.DiscordConfig{
				Token: "test-token",
			},
			Storage: config.StorageConfig{
				Backend: "memory",
			},
		},
	}

	err := app.initializeDependencies()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if app.statsClient == nil {
		t.Error("Expected non-nil stats client")
	}

	if app.repository == nil {
		t.Error("Expected non-nil storage")
	}

	if app.rosterController == nil {
		t.Error("Expected non-nil roster controller")
	}
}

func TestApplication_initializeDiscord(t *testing.T) {
	app := &Application{
		config: &config.Config{
			Discord: config.DiscordConfig{
				Token: "test-token-12345",
			},
		},
	}

	err := app.initializeDiscord()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if app.session == nil {
		t.Fatal("Expected non-nil Discord session")
	}

	// 세션이 올바른 토큰으로 설정되었는지 확인
	if app.session.Token != "Bot test-token-12345" {
		t.Errorf("Expected token 'Bot test-token-12345', got '%s'", app.session.Token)
	}
}

func TestApplication_Stop(t *testing.T) {
	setTestEnv(t)

	app, err := New()
	if err != nil {
		t.Fatalf("Failed to create application: %v", err)
	}

	if err := app.Stop(); err != nil {
		t.Errorf("Expected no error from Stop(), got: %v", err)
	}
}

// 통합 테스트: 전체 애플리케이션 생성 및 종료
func TestApplication_Integration(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DISCORD_CHANNEL_ID", "123456789")

	app, err := New()
	if err != nil {
		t.Fatalf("Failed to create application: %v", err)
	}

	// 모든 컴포넌트가 올바르게 초기화되었는지 확인
	if app.config == nil {
		t.Error("Config not initialized")
	}

	if app.repository == nil {
		t.Error("Storage not initialized")
	}

	if app.statsClient == nil {
		t.Error("Stats client not initialized")
	}

	if app.session == nil {
		t.Error("Discord session not initialized")
	}

	if app.commandHandler == nil {
		t.Error("Command handler not initialized")
	}

	if app.scoreboardManager == nil {
		t.Error("Scoreboard manager not initialized")
	}

	if app.scheduler == nil {
		t.Error("Scheduler not initialized")
	}

	if !app.config.Schedule.Enabled {
		t.Error("Expected schedule to be enabled with channel ID set")
	}

	if err := app.Stop(); err != nil {
		t.Errorf("Failed to stop application: %v", err)
	}
}
