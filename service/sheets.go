package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fintrack/config"

	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetWriter replaces the full contents of one spreadsheet tab.
type SheetWriter interface {
	ReplaceSheet(ctx context.Context, tab string, values [][]interface{}) error
}

// GoogleSheets pushes backup data to a Google spreadsheet with service
// account credentials.
type GoogleSheets struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ SheetWriter = (*GoogleSheets)(nil)

// NewGoogleSheets builds the Sheets client from configuration. Returns an
// error when the spreadsheet id or credentials are missing; callers treat
// that as "backup not configured".
func NewGoogleSheets(ctx context.Context, cfg *config.SheetsConfig) (*GoogleSheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("missing sheets spreadsheet_id")
	}

	var credentialsJSON []byte
	switch {
	case cfg.CredentialsJSON != "":
		credentialsJSON = []byte(cfg.CredentialsJSON)
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing sheets credentials (set credentials_json or credentials_file)")
	}

	svc, err := gsheet.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &GoogleSheets{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// ReplaceSheet clears columns A:Z of the tab, then writes the new values
// starting at A1. The two steps are separate API calls; a failure between
// them leaves the tab empty.
func (g *GoogleSheets) ReplaceSheet(ctx context.Context, tab string, values [][]interface{}) error {
	if g.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:Z", tab)
	if _, err := g.svc.Spreadsheets.Values.Clear(g.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", tab, err)
	}

	writeRange := fmt.Sprintf("%s!A1", tab)
	vr := &gsheet.ValueRange{Values: values}
	if _, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write sheet %s: %w", tab, err)
	}

	return nil
}
