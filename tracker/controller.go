package tracker

import (
	"fmt"
	"sync"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/errors"
	"github.com/kevinchua6/cp-buddies/interfaces"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/utils"
)

// RosterController 메모리상의 친구 명단과 영속 저장소를 함께 관리합니다.
// 모든 변경은 메모리에 먼저 반영된 뒤 저장소에 기록됩니다.
type RosterController struct {
	mu         sync.RWMutex
	roster     models.Roster
	repository interfaces.RosterRepository
}

// NewRosterController 저장소에서 명단을 읽어 컨트롤러를 초기화합니다.
func NewRosterController(repository interfaces.RosterRepository) *RosterController {
	roster := repository.Load()
	utils.Info("Roster loaded with %d tracked users", roster.Total())

	return &RosterController{
		roster:     roster,
		repository: repository,
	}
}

// Roster 현재 명단의 사본을 반환합니다.
func (controller *RosterController) Roster() models.Roster {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	return controller.roster.Clone()
}

// Users 지정된 플랫폼의 사용자 목록 사본을 반환합니다.
func (controller *RosterController) Users(platform models.Platform) []string {
	controller.mu.RLock()
	defer controller.mu.RUnlock()

	users := controller.roster.Users(platform)
	result := make([]string, len(users))
	copy(result, users)
	return result
}

// Contains 지정된 사용자가 명단에 있는지 확인합니다.
func (controller *RosterController) Contains(platform models.Platform, username string) bool {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	return controller.roster.Contains(platform, username)
}

// Total 전체 플랫폼에 등록된 사용자 수를 반환합니다.
func (controller *RosterController) Total() int {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	return controller.roster.Total()
}

// Add 사용자를 명단에 추가합니다. 이미 등록된 사용자는
// TypeDuplicate 오류를 반환합니다.
func (controller *RosterController) Add(platform models.Platform, username string) error {
	if !utils.IsValidHandle(username) {
		return errors.NewValidationError("INVALID_HANDLE",
			fmt.Sprintf("invalid handle format: %s", username),
			fmt.Sprintf(constants.MsgInvalidHandle, username))
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.roster.Total() >= constants.MaxFriends {
		return errors.NewValidationError("ROSTER_FULL",
			fmt.Sprintf("roster limit of %d users reached", constants.MaxFriends),
			fmt.Sprintf(constants.MsgRosterFull, constants.MaxFriends))
	}

	if !controller.roster.Add(platform, username) {
		return errors.NewDuplicateError("DUPLICATE_FRIEND",
			fmt.Sprintf("user %s already tracked on %s", username, platform),
			constants.MsgDuplicateUser)
	}

	if err := controller.repository.AddUser(platform, username); err != nil {
		utils.Error("Failed to persist roster add for %s on %s: %v", username, platform, err)
		return err
	}

	utils.Info("Added %s to %s roster", username, platform)
	return nil
}

// Remove 사용자를 명단에서 제거합니다. 등록되지 않은 사용자 제거는
// 변경 없이 성공으로 처리합니다.
func (controller *RosterController) Remove(platform models.Platform, username string) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if !controller.roster.Remove(platform, username) {
		utils.Debug("Remove requested for untracked user %s on %s", username, platform)
		return nil
	}

	if err := controller.repository.RemoveUser(platform, username); err != nil {
		utils.Error("Failed to persist roster removal for %s on %s: %v", username, platform, err)
		return err
	}

	utils.Info("Removed %s from %s roster", username, platform)
	return nil
}
