package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/errors"
	"github.com/kevinchua6/cp-buddies/interfaces"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/utils"
)

// FileStorage 로컬 JSON 파일에 친구 명단을 보관하는 저장소입니다.
// 파일 하나가 명단 전체를 담으며, 쓰기는 항상 전체 문서를 덮어씁니다.
type FileStorage struct {
	mu       sync.Mutex
	filePath string
}

// NewFileStorage 새로운 FileStorage 인스턴스를 생성합니다.
func NewFileStorage(filePath string) interfaces.RosterRepository {
	if filePath == "" {
		filePath = constants.DefaultRosterFilePath
	}
	utils.Info("Initializing file storage at %s", filePath)
	return &FileStorage{filePath: filePath}
}

// Load 파일에서 명단을 읽어옵니다. 파일이 없거나 손상되었으면
// 빈 명단을 반환하며, 읽기는 절대 실패하지 않습니다.
func (s *FileStorage) Load() models.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStorage) loadLocked() models.Roster {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Warn("Failed to read roster file %s, starting empty: %v", s.filePath, err)
		}
		return models.NewRoster()
	}

	var roster models.Roster
	if err := json.Unmarshal(data, &roster); err != nil {
		utils.Warn("Failed to parse roster file %s, starting empty: %v", s.filePath, err)
		return models.NewRoster()
	}

	roster.Normalize()
	return roster
}

// Save 명단 전체를 파일에 기록합니다.
func (s *FileStorage) Save(roster models.Roster) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(roster)
}

func (s *FileStorage) saveLocked(roster models.Roster) error {
	roster.Normalize()

	data, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return errors.NewStorageError("ROSTER_MARSHAL_FAILED",
			"failed to serialize roster", err)
	}

	if dir := filepath.Dir(s.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewStorageError("ROSTER_DIR_FAILED",
				fmt.Sprintf("failed to create roster directory %s", dir), err)
		}
	}

	if err := os.WriteFile(s.filePath, data, 0o644); err != nil {
		return errors.NewStorageError("ROSTER_WRITE_FAILED",
			fmt.Sprintf("failed to write roster file %s", s.filePath), err)
	}

	utils.Debug("Saved roster with %d users to %s", roster.Total(), s.filePath)
	return nil
}

// AddUser 지정된 플랫폼 명단에 사용자를 추가하고 즉시 저장합니다.
// 이미 존재하는 사용자는 변경 없이 성공으로 처리합니다.
func (s *FileStorage) AddUser(platform models.Platform, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.loadLocked()
	if !roster.Add(platform, username) {
		return nil // 이미 존재
	}
	return s.saveLocked(roster)
}

// RemoveUser 지정된 플랫폼 명단에서 사용자를 제거하고 즉시 저장합니다.
// 존재하지 않는 사용자 제거도 성공으로 처리합니다.
func (s *FileStorage) RemoveUser(platform models.Platform, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.loadLocked()
	if !roster.Remove(platform, username) {
		return nil // 존재하지 않음
	}
	return s.saveLocked(roster)
}

// Close 파일 저장소는 별도 리소스를 잡지 않으므로 no-op입니다.
func (s *FileStorage) Close() error {
	return nil
}
