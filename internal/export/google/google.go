// Package google exports reports to a Google Sheets spreadsheet using
// a Service Account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"grafica/internal/export"
	"grafica/internal/ledger"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	reportSheet   string
}

var _ export.ReportWriter = (*Client)(nil)

// NewClient creates a Sheets client for the given spreadsheet and tab.
// Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS.
func NewClient(ctx context.Context, spreadsheetID, reportSheet string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(reportSheet) == "" {
		return nil, errors.New("missing report sheet name")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		reportSheet:   reportSheet,
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

// WriteReport replaces the report tab contents with the document:
// title and totals on top, then one row per entry. Returns the
// written range.
func (c *Client) WriteReport(ctx context.Context, doc ledger.Document) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:D", c.reportSheet)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("clear %s: %w", clearRange, err)
	}

	values := [][]any{
		{doc.Title},
		{"Gerado em", doc.GeneratedAt},
		{"Receita Total", doc.TotalIncome},
		{"Despesa Total", doc.TotalExpense},
		{"Lucro Líquido", doc.NetProfit},
		{},
		{"Data", "Descrição", "Status", "Valor"},
	}
	for _, row := range doc.Rows {
		values = append(values, []any{row.Date, row.Label, row.Settled, row.Amount})
	}

	writeRange := fmt.Sprintf("%s!A1:D%d", c.reportSheet, len(values))
	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update %s: %w", writeRange, err)
	}

	slog.InfoContext(ctx, "Report exported to Google Sheets",
		"spreadsheet_id", c.spreadsheetID, "range", writeRange, "rows", len(doc.Rows))
	return writeRange, nil
}
