package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Options configure the spreadsheet client. Exactly one of CredentialsJSON
// or CredentialsFile must be set.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

// Client writes report rows into one sheet of one spreadsheet. Each month
// occupies one row keyed by its label; re-exporting a month overwrites the
// existing row.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ Exporter = (*Client)(nil)

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(opts.SheetName)
	if sheetName == "" {
		sheetName = "Reports"
	}

	credentialsJSON := []byte(opts.CredentialsJSON)
	if len(credentialsJSON) == 0 {
		if opts.CredentialsFile == "" {
			return nil, errors.New("missing service account credentials")
		}
		data, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// ExportMonthlySummary upserts the row for the report's month.
func (c *Client) ExportMonthlySummary(ctx context.Context, row ReportRow) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rowIndex, err := c.findMonthRow(ctx, row.Summary.Label)
	if err != nil {
		return err
	}

	vr := &gsheet.ValueRange{Values: [][]any{row.Values()}}

	if rowIndex > 0 {
		rng := fmt.Sprintf("%s!A%d", c.sheetName, rowIndex)
		_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update month row: %w", err)
		}
		slog.InfoContext(ctx, "Updated exported report", "month", row.Summary.Label, "row", rowIndex)
		return nil
	}

	rng := fmt.Sprintf("%s!A:G", c.sheetName)
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append month row: %w", err)
	}
	slog.InfoContext(ctx, "Appended exported report", "month", row.Summary.Label)
	return nil
}

// findMonthRow returns the 1-based row whose first cell equals label, or 0
// when the month has not been exported yet.
func (c *Client) findMonthRow(ctx context.Context, label string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read month column: %w", err)
	}
	for i, cells := range resp.Values {
		if len(cells) == 0 {
			continue
		}
		if s, ok := cells[0].(string); ok && s == label {
			return i + 1, nil
		}
	}
	return 0, nil
}
