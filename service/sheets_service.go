package service

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsService reads catalog rows from Google Sheets
type SheetsService struct {
	client *sheets.Service
}

// NewSheetsService creates a new SheetsService instance
// credentialsPath should be the path to the Service Account JSON file
func NewSheetsService(ctx context.Context, credentialsPath string) (*SheetsService, error) {
	client, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsService{client: client}, nil
}

// Ensure SheetsService implements SheetsServiceInterface
var _ SheetsServiceInterface = (*SheetsService)(nil)

// ReadRows returns the formatted cell values of a range, header row included
func (s *SheetsService) ReadRows(ctx context.Context, spreadsheetID string, readRange string) ([][]interface{}, error) {
	resp, err := s.client.Spreadsheets.Values.Get(spreadsheetID, readRange).
		Context(ctx).
		ValueRenderOption("FORMATTED_VALUE").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}
	return resp.Values, nil
}
