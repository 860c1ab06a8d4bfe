package utils

import (
	"fmt"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/errors"

	"github.com/bwmarrin/discordgo"
)

// ValidationErrorHelper 검증 에러 처리를 위한 헬퍼
type ValidationErrorHelper struct {
	session   *discordgo.Session
	channelID string
}

// HandleInvalidParams 잘못된 매개변수 에러 처리
func (v *ValidationErrorHelper) HandleInvalidParams(code, message, userMsg string) {
	err := errors.NewValidationError(code, message, userMsg)
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// HandleInvalidPlatform 지원하지 않는 플랫폼 에러 처리
func (v *ValidationErrorHelper) HandleInvalidPlatform(input string) {
	err := errors.NewValidationError("INVALID_PLATFORM",
		fmt.Sprintf("unsupported platform: %s", input),
		fmt.Sprintf(constants.MsgInvalidPlatform, input))
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// HandleInvalidHandle 잘못된 사용자명 형식 에러 처리
func (v *ValidationErrorHelper) HandleInvalidHandle(handle string) {
	err := errors.NewValidationError("INVALID_HANDLE",
		fmt.Sprintf("invalid handle format: %s", handle),
		fmt.Sprintf(constants.MsgInvalidHandle, handle))
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// DataErrorHelper 데이터 관련 에러 처리를 위한 헬퍼
type DataErrorHelper struct {
	session   *discordgo.Session
	channelID string
}

// HandleDuplicateFriend 중복 친구 추가 에러 처리
func (d *DataErrorHelper) HandleDuplicateFriend(platform, username string) {
	err := errors.NewDuplicateError("DUPLICATE_FRIEND",
		fmt.Sprintf("friend %s already tracked on %s", username, platform),
		constants.MsgDuplicateUser)
	errors.HandleDiscordError(d.session, d.channelID, err)
}

// APIErrorHelper 외부 API 에러 처리를 위한 헬퍼
type APIErrorHelper struct {
	session   *discordgo.Session
	channelID string
}

// HandleUserNotFound 원격 플랫폼에서 사용자를 찾지 못한 에러 처리
func (a *APIErrorHelper) HandleUserNotFound(platformName, username string) {
	err := errors.NewNotFoundError("USER_NOT_FOUND",
		fmt.Sprintf("user %s not found on %s", username, platformName),
		fmt.Sprintf(constants.MsgUserNotFound, username, platformName))
	errors.HandleDiscordError(a.session, a.channelID, err)
}

// HandleUpstreamFailure 원격 API 일시 장애 에러 처리
func (a *APIErrorHelper) HandleUpstreamFailure(platformName, username string, cause error) {
	err := errors.NewUpstreamError("UPSTREAM_FAILURE",
		fmt.Sprintf("upstream failure for %s on %s", username, platformName), cause)
	errors.HandleDiscordError(a.session, a.channelID, err)
}

// SystemErrorHelper 시스템 에러 처리를 위한 헬퍼
type SystemErrorHelper struct {
	session   *discordgo.Session
	channelID string
}

// HandleSystemError 시스템 에러 처리
func (s *SystemErrorHelper) HandleSystemError(code, message, userMsg string, err error) {
	botErr := errors.NewSystemError(code, message, err)
	botErr.UserMsg = userMsg
	errors.HandleDiscordError(s.session, s.channelID, botErr)
}

// ErrorHandlerFactory 채널별 에러 헬퍼 묶음을 생성합니다
type ErrorHandlerFactory struct {
	session   *discordgo.Session
	channelID string
}

// NewErrorHandlerFactory ErrorHandlerFactory 생성자
func NewErrorHandlerFactory(session *discordgo.Session, channelID string) *ErrorHandlerFactory {
	return &ErrorHandlerFactory{
		session:   session,
		channelID: channelID,
	}
}

// Validation 검증 에러 헬퍼를 반환합니다
func (f *ErrorHandlerFactory) Validation() *ValidationErrorHelper {
	return &ValidationErrorHelper{session: f.session, channelID: f.channelID}
}

// Data 데이터 에러 헬퍼를 반환합니다
func (f *ErrorHandlerFactory) Data() *DataErrorHelper {
	return &DataErrorHelper{session: f.session, channelID: f.channelID}
}

// API 외부 API 에러 헬퍼를 반환합니다
func (f *ErrorHandlerFactory) API() *APIErrorHelper {
	return &APIErrorHelper{session: f.session, channelID: f.channelID}
}

// System 시스템 에러 헬퍼를 반환합니다
func (f *ErrorHandlerFactory) System() *SystemErrorHelper {
	return &SystemErrorHelper{session: f.session, channelID: f.channelID}
}
