package sheets

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/models"
	"github.com/kevinchua6/cp-buddies/utils"
)

// SheetsClient Google Sheets API 클라이언트
type SheetsClient struct {
	service *sheets.Service
	ctx     context.Context
}

// NewSheetsClient 새로운 Google Sheets 클라이언트를 생성합니다
func NewSheetsClient() (*SheetsClient, error) {
	ctx := context.Background()

	// Firebase 인증 정보 사용 (Google Cloud 프로젝트와 동일)
	credentialsJSON := setupGoogleCredentials()
	if credentialsJSON == "" {
		return nil, fmt.Errorf("Google credentials not available")
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	utils.Info("Google Sheets client initialized successfully")
	return &SheetsClient{
		service: service,
		ctx:     ctx,
	}, nil
}

// ExportScoreboard 스코어보드 레코드를 스프레드시트에 행 단위로 추가합니다.
// 각 행은 내보낸 시각, 플랫폼, 사용자명, 통계 값으로 구성됩니다.
func (c *SheetsClient) ExportScoreboard(spreadsheetID, sheetName string, records []models.DisplayRecord, mode models.SortMode) error {
	if spreadsheetID == "" {
		return fmt.Errorf("spreadsheet ID is not configured")
	}

	rows := buildScoreboardRows(records, mode, time.Now())

	valueRange := &sheets.ValueRange{Values: rows}
	_, err := c.service.Spreadsheets.Values.Append(
		spreadsheetID,
		fmt.Sprintf("%s!A:G", sheetName),
		valueRange,
	).ValueInputOption("USER_ENTERED").Do()
	if err != nil {
		return fmt.Errorf("failed to append scoreboard rows: %w", err)
	}

	utils.Info("Exported %d scoreboard rows to spreadsheet %s", len(rows), spreadsheetID)
	return nil
}

// buildScoreboardRows 레코드를 스프레드시트 행으로 변환합니다
func buildScoreboardRows(records []models.DisplayRecord, mode models.SortMode, exportedAt time.Time) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	timestamp := exportedAt.Format(constants.DateTimeFormat)

	for _, record := range records {
		switch record.Platform {
		case models.PlatformLeetCode:
			rows = append(rows, []interface{}{
				timestamp, mode.String(), "LeetCode", record.Username,
				record.AllTimeSolved(), record.DailySolved,
				fmt.Sprintf("E:%d M:%d H:%d", record.Easy, record.Medium, record.Hard),
			})
		case models.PlatformCodeforces:
			rows = append(rows, []interface{}{
				timestamp, mode.String(), "CodeForces", record.Username,
				len(record.Submissions), record.SubmissionsToday, "",
			})
		}
	}
	return rows
}

// setupGoogleCredentials Google 인증 정보를 설정합니다
func setupGoogleCredentials() string {
	firebaseCredentials := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if firebaseCredentials == "" {
		utils.Warn("FIREBASE_CREDENTIALS_JSON environment variable is not set")
		return ""
	}

	return firebaseCredentials
}
