package storage

import (
	"sync"

	"github.com/kevinchua6/cp-buddies/models"
)

// InMemoryStorage 테스트/개발용 비영구 저장소 구현
type InMemoryStorage struct {
	mu     sync.RWMutex
	roster models.Roster
}

// NewInMemoryStorage 새 인메모리 저장소 생성
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		roster: models.NewRoster(),
	}
}

// Load 현재 명단의 사본을 반환합니다
func (s *InMemoryStorage) Load() models.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.Clone()
}

// Save 명단 전체를 교체합니다
func (s *InMemoryStorage) Save(roster models.Roster) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	roster.Normalize()
	s.roster = roster.Clone()
	return nil
}

// AddUser 사용자 추가 (중복은 no-op)
func (s *InMemoryStorage) AddUser(platform models.Platform, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster.Add(platform, username)
	return nil
}

// RemoveUser 사용자 제거 (부재는 no-op)
func (s *InMemoryStorage) RemoveUser(platform models.Platform, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster.Remove(platform, username)
	return nil
}

// Close no-op
func (s *InMemoryStorage) Close() error { return nil }
