package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"ledgerlite/internal/core"
	ports "ledgerlite/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client mirrors ledger records into a Google spreadsheet. Transactions and
// goals each live on their own sheet, one row per record, with the record ID
// in column A so removals can find their row later.
type Client struct {
	svc               *gsheet.Service
	spreadsheetID     string
	transactionsSheet string
	goalsSheet        string
}

var _ ports.RecordMirror = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Transactions"),
// GOOGLE_GOALS_SHEET_NAME (default "Goals").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	transactionsSheet := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if transactionsSheet == "" {
		transactionsSheet = "Transactions"
	}
	goalsSheet := strings.TrimSpace(os.Getenv("GOOGLE_GOALS_SHEET_NAME"))
	if goalsSheet == "" {
		goalsSheet = "Goals"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:               svc,
		spreadsheetID:     spreadsheetID,
		transactionsSheet: transactionsSheet,
		goalsSheet:        goalsSheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) AppendTransaction(ctx context.Context, t core.Transaction) error {
	row := []any{
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Description,
		string(t.Category),
		string(t.Type),
		t.Amount.Plain(),
	}
	return c.appendRow(ctx, c.transactionsSheet, row)
}

func (c *Client) RemoveTransaction(ctx context.Context, id string) error {
	return c.removeRow(ctx, c.transactionsSheet, id)
}

func (c *Client) AppendGoal(ctx context.Context, g core.SavingGoal) error {
	row := []any{
		g.ID,
		g.Name,
		g.Target.Plain(),
		g.CreatedAt.Format("2006-01-02"),
	}
	return c.appendRow(ctx, c.goalsSheet, row)
}

func (c *Client) RemoveGoal(ctx context.Context, id string) error {
	return c.removeRow(ctx, c.goalsSheet, id)
}

func (c *Client) appendRow(ctx context.Context, sheetName string, row []any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:A", sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to sheet %s: %w", sheetName, err)
	}
	return nil
}

// removeRow clears the row whose first cell matches the record ID. A missing
// ID means the row was never mirrored or is already gone, which is fine.
func (c *Client) removeRow(ctx context.Context, sheetName, id string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:A", sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read ID column of sheet %s: %w", sheetName, err)
	}

	rowIndex := -1
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == id {
			rowIndex = i + 1
			break
		}
	}
	if rowIndex == -1 {
		return nil
	}

	clearRange := fmt.Sprintf("%s!A%d:Z%d", sheetName, rowIndex, rowIndex)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear row %d of sheet %s: %w", rowIndex, sheetName, err)
	}
	return nil
}
