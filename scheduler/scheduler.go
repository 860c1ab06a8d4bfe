package scheduler

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kevinchua6/cp-buddies/bot"
	"github.com/kevinchua6/cp-buddies/config"
	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/utils"
)

type Scheduler struct {
	session           *discordgo.Session
	config            *config.Config
	scoreboardManager *bot.ScoreboardManager
	ticker            *time.Ticker
	customTicker      *time.Ticker
	stopChan          chan bool
	customStopChan    chan bool
}

func NewScheduler(session *discordgo.Session, config *config.Config, scoreboardManager *bot.ScoreboardManager) *Scheduler {
	return &Scheduler{
		session:           session,
		config:            config,
		scoreboardManager: scoreboardManager,
		stopChan:          make(chan bool),
		customStopChan:    make(chan bool),
	}
}

func (s *Scheduler) StartDailyScoreboard() {
	s.ticker = time.NewTicker(constants.SchedulerInterval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.sendDailyScoreboard()
			case <-s.stopChan:
				return
			}
		}
	}()

	utils.Info("Daily scoreboard scheduler started")
}

// StartCustomSchedule 매일 지정된 시각에 스코어보드를 전송하도록 설정합니다
func (s *Scheduler) StartCustomSchedule(hour, minute int) {
	// 기존 커스텀 스케줄러가 있다면 정리
	s.stopCustomScheduler()

	now := time.Now()
	duration := nextRunTime(now, hour, minute).Sub(now)

	go func() {
		// 첫 실행까지 대기, 중단 신호 체크
		select {
		case <-time.After(duration):
			s.sendDailyScoreboard()
		case <-s.customStopChan:
			return
		}

		// 정기적 실행 시작
		s.customTicker = time.NewTicker(constants.SchedulerInterval)
		defer s.customTicker.Stop()

		for {
			select {
			case <-s.customTicker.C:
				s.sendDailyScoreboard()
			case <-s.customStopChan:
				return
			}
		}
	}()

	utils.Info("Daily scoreboard scheduler set to run daily at %02d:%02d", hour, minute)
}

// nextRunTime 오늘 또는 내일의 지정 시각 중 가장 가까운 실행 시각을 계산합니다
func nextRunTime(now time.Time, hour, minute int) time.Time {
	nextRun := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if nextRun.Before(now) {
		nextRun = nextRun.Add(constants.SchedulerInterval)
	}
	return nextRun
}

func (s *Scheduler) sendDailyScoreboard() {
	if s.config.Discord.ChannelID == "" {
		utils.Error("Cannot send scoreboard: channel ID not configured")
		return
	}

	// 추적 중인 친구가 없으면 채널에 빈 스코어보드를 보내지 않습니다
	if s.scoreboardManager.TrackedFriends() == 0 {
		utils.Debug("No friends tracked - skipping daily scoreboard")
		return
	}

	err := s.scoreboardManager.SendDailyScoreboard(s.session, s.config.Discord.ChannelID)
	if err != nil {
		utils.Error("Failed to send daily scoreboard: %v", err)
		return
	}

	utils.Info("Daily scoreboard sent successfully")
}

func (s *Scheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}

	s.stopCustomScheduler()

	select {
	case s.stopChan <- true:
	default:
		// channel is full or no receiver, skip
	}

	utils.Info("Scheduler stopped")
}

func (s *Scheduler) stopCustomScheduler() {
	if s.customTicker != nil {
		s.customTicker.Stop()
		s.customTicker = nil
	}

	select {
	case s.customStopChan <- true:
	default:
		// channel is full or no receiver, skip
	}
}
