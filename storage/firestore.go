package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	firebase "firebase.google.com/go"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/interfaces"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/utils"
)

// FirebaseStorage Firestore에 친구 명단을 보관하는 저장소입니다.
// 명단 전체가 단일 문서로 저장됩니다.
type FirebaseStorage struct {
	client         *firestore.Client
	ctx            context.Context
	app            *firebase.App
	reconnectMutex sync.Mutex
}

// 에러 복구 관련 상수
const (
	maxReconnectAttempts = 3
	reconnectDelay       = 2 * time.Second
)

// NewFirebaseStorage 새로운 FirebaseStorage 인스턴스를 생성하고 Firestore에 연결합니다.
func NewFirebaseStorage() (interfaces.RosterRepository, error) {
	utils.Info("Initializing Firebase storage system")
	ctx := context.Background()

	firebaseCreds := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if firebaseCreds == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_JSON environment variable not set")
	}

	opt := option.WithCredentialsJSON([]byte(firebaseCreds))

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firestore client: %v", err)
	}

	s := &FirebaseStorage{
		client: client,
		ctx:    ctx,
		app:    app,
	}

	utils.Info("Firebase storage system initialized successfully")
	return s, nil
}

// GetClient Firestore 클라이언트를 반환합니다 (헬스체크용)
func (s *FirebaseStorage) GetClient() interface{} {
	return s.client
}

// reconnectFirestore Firestore 클라이언트를 재연결합니다
func (s *FirebaseStorage) reconnectFirestore() error {
	s.reconnectMutex.Lock()
	defer s.reconnectMutex.Unlock()

	utils.Warn("Attempting to reconnect to Firestore")

	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		// 기존 클라이언트 종료
		if s.client != nil {
			s.client.Close()
		}

		// 새 클라이언트 생성
		newClient, err := s.app.Firestore(s.ctx)
		if err != nil {
			utils.Warn("Firestore reconnection attempt %d/%d failed: %v", attempt, maxReconnectAttempts, err)
			if attempt < maxReconnectAttempts {
				time.Sleep(reconnectDelay * time.Duration(attempt)) // 점진적 지연
			}
			continue
		}

		s.client = newClient
		utils.Info("Successfully reconnected to Firestore on attempt %d", attempt)
		return nil
	}

	return fmt.Errorf("failed to reconnect to Firestore after %d attempts", maxReconnectAttempts)
}

// executeWithRetry Firestore 작업을 재시도 로직과 함께 실행합니다
func (s *FirebaseStorage) executeWithRetry(operation func() error) error {
	err := operation()
	if err != nil {
		// Firestore 연결 오류인 경우 재연결 시도
		if isFirestoreConnectionError(err) {
			utils.Warn("Detected Firestore connection error, attempting reconnection: %v", err)
			if reconnectErr := s.reconnectFirestore(); reconnectErr != nil {
				return fmt.Errorf("operation failed and reconnection failed: %v (original: %v)", reconnectErr, err)
			}
			// 재연결 성공 시 작업 재시도
			return operation()
		}
	}
	return err
}

// isFirestoreConnectionError Firestore 연결 관련 에러인지 확인합니다
func isFirestoreConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") ||
		strings.Contains(errStr, "deadline exceeded")
}

func (s *FirebaseStorage) rosterDoc() *firestore.DocumentRef {
	return s.client.Collection(constants.RosterCollectionName).Doc(constants.RosterDocumentID)
}

// Load Firestore에서 명단을 읽어옵니다. 문서가 없거나 읽기에 실패하면
// 빈 명단을 반환합니다.
func (s *FirebaseStorage) Load() models.Roster {
	doc, err := s.rosterDoc().Get(s.ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			utils.Error("Failed to load roster from Firestore: %v", err)
		}
		return models.NewRoster()
	}

	var roster models.Roster
	if err := doc.DataTo(&roster); err != nil {
		utils.Error("Failed to decode roster document: %v", err)
		return models.NewRoster()
	}

	roster.Normalize()
	return roster
}

// Save 명단 전체를 단일 문서로 기록합니다.
func (s *FirebaseStorage) Save(roster models.Roster) error {
	return s.executeWithRetry(func() error {
		roster.Normalize()
		_, err := s.rosterDoc().Set(s.ctx, roster)
		if err != nil {
			return fmt.Errorf("failed to save roster to Firestore: %w", err)
		}
		utils.Debug("Saved roster with %d users to Firestore", roster.Total())
		return nil
	})
}

// AddUser 지정된 플랫폼 명단에 사용자를 추가합니다.
// 이미 존재하는 사용자는 변경 없이 성공으로 처리합니다.
func (s *FirebaseStorage) AddUser(platform models.Platform, username string) error {
	return s.executeWithRetry(func() error {
		roster := s.Load()
		if !roster.Add(platform, username) {
			return nil // 이미 존재
		}
		_, err := s.rosterDoc().Set(s.ctx, roster)
		if err != nil {
			return fmt.Errorf("failed to add user to Firestore roster: %w", err)
		}
		utils.Info("Added %s to %s roster in Firestore", username, platform)
		return nil
	})
}

// RemoveUser 지정된 플랫폼 명단에서 사용자를 제거합니다.
// 존재하지 않는 사용자 제거도 성공으로 처리합니다.
func (s *FirebaseStorage) RemoveUser(platform models.Platform, username string) error {
	return s.executeWithRetry(func() error {
		roster := s.Load()
		if !roster.Remove(platform, username) {
			return nil // 존재하지 않음
		}
		_, err := s.rosterDoc().Set(s.ctx, roster)
		if err != nil {
			return fmt.Errorf("failed to remove user from Firestore roster: %w", err)
		}
		utils.Info("Removed %s from %s roster in Firestore", username, platform)
		return nil
	})
}

// Close Firestore 클라이언트를 종료합니다.
func (s *FirebaseStorage) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
