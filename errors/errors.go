package errors

import (
	"errors"
	"fmt"
	"time"

	"github.com/kevinchua6/cp-buddies/constants"

	"github.com/bwmarrin/discordgo"
)

// ErrorType 오류의 종류를 나타냅니다
type ErrorType int

const (
	TypeValidation ErrorType = iota
	TypeAPI
	TypeNotFound  // 원격 플랫폼에 사용자가 존재하지 않음
	TypeUpstream  // 원격 API 장애, 요청 한도 초과 등 일시적 실패
	TypeDuplicate // 이미 추적 중인 사용자명
	TypeStorage   // 저장소 오류
	TypeSystem
)

// AppError 애플리케이션에서 발생하는 구조화된 오류를 표현합니다
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	UserMsg  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// GetUserMessage 사용자에게 표시할 메시지를 반환합니다
func (e *AppError) GetUserMessage() string {
	if e.UserMsg != "" {
		return e.UserMsg
	}
	return e.Message
}

// 오류 생성 함수들

// NewValidationError 입력값 검증 오류를 생성합니다
func NewValidationError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeValidation,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewAPIError 외부 API 연동 오류를 생성합니다
func NewAPIError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeAPI,
		Code:     code,
		Message:  message,
		UserMsg:  constants.MsgUpstreamError,
		Internal: err,
	}
}

// NewNotFoundError 원격 플랫폼에서 사용자를 찾을 수 없는 오류를 생성합니다
func NewNotFoundError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeNotFound,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewUpstreamError 원격 API의 일시적 실패 오류를 생성합니다
func NewUpstreamError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeUpstream,
		Code:     code,
		Message:  message,
		UserMsg:  constants.MsgUpstreamError,
		Internal: err,
	}
}

// NewDuplicateError 중복 추가 시도 오류를 생성합니다
func NewDuplicateError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeDuplicate,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewStorageError 저장소 오류를 생성합니다
func NewStorageError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeStorage,
		Code:     code,
		Message:  message,
		UserMsg:  "Something went wrong while saving your friends. Please try again.",
		Internal: err,
	}
}

// NewSystemError 시스템 내부 오류를 생성합니다
func NewSystemError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeSystem,
		Code:     code,
		Message:  message,
		UserMsg:  "An unexpected error occurred. Please contact the bot admin.",
		Internal: err,
	}
}

// 오류 종류 판별 함수들

func typeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return 0, false
}

// IsNotFound 원격 플랫폼에 사용자가 없다는 오류인지 확인합니다
func IsNotFound(err error) bool {
	t, ok := typeOf(err)
	return ok && t == TypeNotFound
}

// IsUpstream 원격 API의 일시적 실패 오류인지 확인합니다
func IsUpstream(err error) bool {
	t, ok := typeOf(err)
	return ok && t == TypeUpstream
}

// IsDuplicate 중복 추가 오류인지 확인합니다
func IsDuplicate(err error) bool {
	t, ok := typeOf(err)
	return ok && t == TypeDuplicate
}

// Discord 메시지 관련 헬퍼 함수들

// HandleDiscordError 오류를 처리하고 Discord 채널에 메시지를 전송합니다
func HandleDiscordError(s *discordgo.Session, channelID string, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			fmt.Printf("ERROR: %s - %s: %v\n", appErr.Code, appErr.Message, appErr.Internal)
		} else {
			fmt.Printf("ERROR: %s - %s\n", appErr.Code, appErr.Message)
		}

		if discordErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" "+appErr.GetUserMessage()); discordErr != nil {
			fmt.Printf("DISCORD API ERROR: Failed to send error message after retries: %v\n", discordErr)
		}
		return
	}

	// 예상치 못한 오류 로깅
	fmt.Printf("UNEXPECTED ERROR: %v\n", err)
	if discordErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" An unexpected error occurred."); discordErr != nil {
		fmt.Printf("DISCORD API ERROR: Failed to send error message after retries: %v\n", discordErr)
	}
}

// SendDiscordSuccess 성공 메시지를 Discord 채널에 전송합니다
func SendDiscordSuccess(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiSuccess+" "+message)
}

// SendDiscordInfo 정보 메시지를 Discord 채널에 전송합니다
func SendDiscordInfo(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiInfo+" "+message)
}

// SendDiscordWarning 경고 메시지를 Discord 채널에 전송합니다
func SendDiscordWarning(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiWarning+" "+message)
}

// SendDiscordMessageWithRetry Discord 메시지 전송을 재시도 로직과 함께 수행합니다
func SendDiscordMessageWithRetry(s *discordgo.Session, channelID, message string) error {
	const maxRetries = constants.MaxDiscordRetries
	const baseDelay = constants.BaseRetryDelay

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := s.ChannelMessageSend(channelID, message)
		if err == nil {
			if attempt > 0 {
				fmt.Printf("Discord message sent successfully after %d retries\n", attempt)
			}
			return nil
		}

		lastErr = err
		if attempt < maxRetries-1 {
			delay := time.Duration(1<<attempt) * baseDelay // Exponential backoff: 1s, 2s, 4s
			fmt.Printf("Discord API call failed (attempt %d/%d): %v. Retrying in %v...\n",
				attempt+1, maxRetries, err, delay)
			time.Sleep(delay)
		}
	}

	fmt.Printf("DISCORD API ERROR: All retry attempts failed: %v\n", lastErr)
	return lastErr
}
