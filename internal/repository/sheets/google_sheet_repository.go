package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/aquafarm/internal/config"
)

// Repository reads and appends rows on the tabs of the farm ledger
// spreadsheet. Mongo stays the source of truth except for the Stock tab,
// which the farm manager edits by hand.
type Repository interface {
	AppendRow(ctx context.Context, tab Tab, row []interface{}) error
	ReadTab(ctx context.Context, tab Tab) ([][]interface{}, error)
}

// GoogleSheetRepository talks to the ledger through the Sheets v4 API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository authenticates with the service account file named in cfg.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("init ledger sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger.With(zap.String("spreadsheet", cfg.SpreadsheetID)),
	}, nil
}

// AppendRow adds one event row below the last filled row of the tab.
// Cells are entered as a user would type them so dates stay sortable.
func (r *GoogleSheetRepository) AppendRow(ctx context.Context, tab Tab, row []interface{}) error {
	a1, err := tab.Range()
	if err != nil {
		return err
	}
	if err := tab.check(row); err != nil {
		return err
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err = r.service.Spreadsheets.Values.Append(r.spreadsheetID, a1, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s row: %w", tab.Name, err)
	}

	r.logger.Debug("ledger row appended", zap.String("tab", tab.Name))
	return nil
}

// ReadTab returns every row of the tab, header included. Numbers come back
// raw while dates keep their display form for parseDate.
func (r *GoogleSheetRepository) ReadTab(ctx context.Context, tab Tab) ([][]interface{}, error) {
	a1, err := tab.Range()
	if err != nil {
		return nil, err
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, a1).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s tab: %w", tab.Name, err)
	}

	r.logger.Debug("ledger tab read", zap.String("tab", tab.Name), zap.Int("rows", len(resp.Values)))
	return resp.Values, nil
}
