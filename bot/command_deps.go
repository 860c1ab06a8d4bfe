package bot

import (
	"github.com/kevinchua6/cp-buddies/config"
	"github.com/kevinchua6/cp-buddies/interfaces"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/sheets"
	"github.com/kevinchua6/cp-buddies/telemetry"
	"github.com/kevinchua6/cp-buddies/tracker"
)

// CommandDependencies 명령어 핸들러가 필요로 하는 모든 의존성을 묶어서 관리합니다
type CommandDependencies struct {
	Tracker           *tracker.RosterController
	StatsClient       interfaces.StatsClient
	ScoreboardManager *ScoreboardManager
	PlatformManager   *models.PlatformManager
	MetricsClient     *telemetry.MetricsClient
	SheetsClient      *sheets.SheetsClient
	Config            *config.Config
}

// NewCommandDependencies 새로운 CommandDependencies 인스턴스를 생성합니다
func NewCommandDependencies(
	rosterController *tracker.RosterController,
	statsClient interfaces.StatsClient,
	scoreboardManager *ScoreboardManager,
	platformManager *models.PlatformManager,
	metricsClient *telemetry.MetricsClient,
	sheetsClient *sheets.SheetsClient,
	cfg *config.Config,
) *CommandDependencies {
	return &CommandDependencies{
		Tracker:           rosterController,
		StatsClient:       statsClient,
		ScoreboardManager: scoreboardManager,
		PlatformManager:   platformManager,
		MetricsClient:     metricsClient,
		SheetsClient:      sheetsClient,
		Config:            cfg,
	}
}
