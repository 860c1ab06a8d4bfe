package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"github.com/bwmarrin/discordgo"

	"github.com/kevinchua6/cp-buddies/api"
	"github.com/kevinchua6/cp-buddies/bot"
	"github.com/kevinchua6/cp-buddies/config"
	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/health"
	"github.com/kevinchua6/cp-buddies/interfaces"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/scheduler"
	"github.com/kevinchua6/cp-buddies/sheets"
	"github.com/kevinchua6/cp-buddies/storage"
	"github.com/kevinchua6/cp-buddies/telemetry"
	"github.com/kevinchua6/cp-buddies/tracker"
	"github.com/kevinchua6/cp-buddies/utils"
)

type Application struct {
	config            *config.Config
	session           *discordgo.Session
	repository        interfaces.RosterRepository
	statsClient       interfaces.StatsClient
	rosterController  *tracker.RosterController
	metricsClient     *telemetry.MetricsClient
	sheetsClient      *sheets.SheetsClient
	commandHandler    *bot.CommandHandler
	scoreboardManager *bot.ScoreboardManager
	scheduler         *scheduler.Scheduler
}

func New() (*Application, error) {
	app := &Application{}

	if err := app.loadConfig(); err != nil {
		return nil, err
	}

	if err := app.initializeDependencies(); err != nil {
		return nil, err
	}

	if err := app.initializeDiscord(); err != nil {
		return nil, err
	}

	app.setupHandlers()
	app.initializeScheduler()

	return app, nil
}

func (app *Application) loadConfig() error {
	app.config = config.Load()
	if err := app.config.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func (app *Application) initializeDependencies() error {
	// 캐시된 플랫폼 API 클라이언트 생성 (환경변수로 base URL 재정의 가능)
	app.statsClient = api.NewCachedStatsClient(
		app.config.API.LeetCodeBaseURL,
		app.config.API.CodeforcesBaseURL,
	)

	repository, err := app.newRepository()
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.repository = repository
	app.rosterController = tracker.NewRosterController(repository)

	if app.config.Telemetry.Enabled {
		app.metricsClient = telemetry.NewMetricsClient(app.config.Telemetry.ProjectID)
	}

	if app.config.Sheets.Enabled {
		sheetsClient, err := sheets.NewSheetsClient()
		if err != nil {
			utils.Warn("Sheets export disabled: %v", err)
		} else {
			app.sheetsClient = sheetsClient
		}
	}

	return nil
}

// newRepository 설정된 백엔드에 맞는 명단 저장소를 생성합니다
func (app *Application) newRepository() (interfaces.RosterRepository, error) {
	switch app.config.Storage.Backend {
	case "firestore":
		repository, err := storage.NewFirebaseStorage()
		if err != nil {
			return nil, err
		}
		app.registerFirestoreHealthCheck(repository)
		return repository, nil
	case "memory":
		return storage.NewInMemoryStorage(), nil
	default:
		return storage.NewFileStorage(app.config.Storage.FilePath), nil
	}
}

// registerFirestoreHealthCheck Firestore 클라이언트가 있다면 헬스체크에 등록합니다
func (app *Application) registerFirestoreHealthCheck(repository interfaces.RosterRepository) {
	type clientProvider interface {
		GetClient() interface{}
	}

	provider, ok := repository.(clientProvider)
	if !ok {
		return
	}

	if firestoreClient, ok := provider.GetClient().(*firestore.Client); ok && firestoreClient != nil {
		health.RegisterHealthChecker(health.NewFirestoreHealthChecker(firestoreClient))
		utils.Info("Firestore health checker registered")
	}
}

func (app *Application) initializeDiscord() error {
	session, err := discordgo.New("Bot " + app.config.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent | discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	app.session = session
	return nil
}

func (app *Application) setupHandlers() {
	platformManager := models.GetPlatformManager()

	// 의존성 주입을 통한 컴포넌트 생성
	app.scoreboardManager = bot.NewScoreboardManager(app.rosterController, app.statsClient, app.metricsClient, app.config)
	deps := bot.NewCommandDependencies(app.rosterController, app.statsClient, app.scoreboardManager,
		platformManager, app.metricsClient, app.sheetsClient, app.config)
	app.commandHandler = bot.NewCommandHandler(deps)

	app.session.AddHandler(app.commandHandler.HandleMessage)
	app.session.AddHandler(app.handleReady)

	if app.config.Features.EnableCacheWarmup {
		app.warmupCache()
	}
}

func (app *Application) initializeScheduler() {
	app.scheduler = scheduler.NewScheduler(app.session, app.config, app.scoreboardManager)
}

func (app *Application) Start() error {
	if err := app.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}

	if app.config.Schedule.Enabled && app.config.Features.EnableAutoScoreboard {
		app.scheduler.StartCustomSchedule(
			app.config.Schedule.ScoreboardHour,
			app.config.Schedule.ScoreboardMinute,
		)
	} else {
		utils.Warn("Automatic scoreboard is disabled. Set DISCORD_CHANNEL_ID to enable it.")
	}

	app.printStartupMessage()
	return nil
}

func (app *Application) printStartupMessage() {
	utils.Info("cp-buddies %s", constants.BotVersion)
	utils.Info("📋 Available commands: !help")
	if app.config.Schedule.Enabled && app.config.Features.EnableAutoScoreboard {
		utils.Info("⏰ Daily scoreboard scheduled at %02d:%02d",
			app.config.Schedule.ScoreboardHour, app.config.Schedule.ScoreboardMinute)
	}
}

func (app *Application) Run() error {
	if err := app.Start(); err != nil {
		return err
	}

	// 종료 신호 대기
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return app.Stop()
}

func (app *Application) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	utils.Info("Discord bot connected successfully as %s#%s", event.User.Username, event.User.Discriminator)
	utils.Info("Bot is serving %d guilds", len(event.Guilds))

	// 봇 상태 설정
	err := s.UpdateGameStatus(0, constants.BotStatusMessage)
	if err != nil {
		utils.Warn("Failed to set bot status: %v", err)
	}
}

// warmupCache 명단에 등록된 친구들의 데이터로 캐시를 미리 워밍업합니다
func (app *Application) warmupCache() {
	roster := app.rosterController.Roster()
	if roster.Total() == 0 {
		utils.Info("No friends tracked, skipping cache warmup")
		return
	}

	if cachedClient, ok := app.statsClient.(*api.CachedStatsClient); ok {
		if err := cachedClient.WarmupCache(roster); err != nil {
			utils.Warn("Cache warmup failed: %v", err)
		}
	}
}

// printCacheStats 캐시 통계를 출력합니다
func (app *Application) printCacheStats() {
	if cachedClient, ok := app.statsClient.(*api.CachedStatsClient); ok {
		stats := cachedClient.GetCacheStats()
		utils.Info("📊 %s", stats.String())
	}
}

func (app *Application) Stop() error {
	utils.Info("🔄 Shutting down the bot...")

	// 종료 전 캐시 통계 출력
	app.printCacheStats()

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.statsClient != nil {
		if cachedClient, ok := app.statsClient.(*api.CachedStatsClient); ok {
			cachedClient.Close()
		}
	}

	if app.metricsClient != nil {
		app.metricsClient.Close()
	}

	if app.repository != nil {
		if err := app.repository.Close(); err != nil {
			utils.Warn("Failed to close storage: %v", err)
		}
	}

	if app.session != nil {
		app.session.Close()
	}

	utils.Info("Bot shut down cleanly.")
	return nil
}
