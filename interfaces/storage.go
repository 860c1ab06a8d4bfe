package interfaces

import "github.com/kevinchua6/cp-buddies/models"

// RosterRepository 친구 명단 저장소 작업을 위한 인터페이스입니다
type RosterRepository interface {
	// 명단 전체 작업
	Load() models.Roster
	Save(roster models.Roster) error

	// 사용자 단위 작업
	AddUser(platform models.Platform, username string) error
	RemoveUser(platform models.Platform, username string) error

	// 리소스 정리
	Close() error
}
