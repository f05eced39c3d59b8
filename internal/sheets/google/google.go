// Package google implements the sheets.ReportWriter port against the
// Google Sheets API using service account credentials.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	ports "fintrack/internal/sheets"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.ReportWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS; alternatively an OAuth client
// plus the token file written by the oauth-init tool
// (GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE with
// GOOGLE_OAUTH_TOKEN_FILE).
// Optional: GOOGLE_SHEET_NAME (default "Transactions").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

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
		return newOAuthSheetsService(ctx)
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// newOAuthSheetsService authenticates with a user OAuth client and a
// previously stored token, the pair the oauth-init tool produces.
func newOAuthSheetsService(ctx context.Context) (*gsheet.Service, error) {
	clientJSON := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_JSON"))
	clientFile := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_FILE"))

	var b []byte
	var err error
	switch {
	case clientJSON != "":
		b = []byte(clientJSON)
	case clientFile != "":
		b, err = os.ReadFile(clientFile)
		if err != nil {
			return nil, fmt.Errorf("read oauth client file: %w", err)
		}
	default:
		return nil, errors.New("missing Google credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, GOOGLE_APPLICATION_CREDENTIALS, or an OAuth client)")
	}

	cfg, err := google.ConfigFromJSON(b, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}

	tokenFile := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_TOKEN_FILE"))
	if tokenFile == "" {
		tokenFile = "token.json"
	}
	tokenJSON, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth token file (run oauth-init first): %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokenJSON, &tok); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	service, err := gsheet.NewService(ctx, goption.WithHTTPClient(cfg.Client(ctx, &tok)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// AppendRows appends rows below the sheet's existing content. The
// header row (rows[0]) is skipped when the sheet already has data so
// repeated exports do not interleave headers.
func (c *Client) AppendRows(ctx context.Context, rows [][]any) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if len(rows) == 0 {
		return "", errors.New("no rows to append")
	}

	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	existing, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read sheet dimensions for %s: %w", c.sheetName, err)
	}
	if len(existing.Values) > 0 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return "", nil
	}

	vr := &gsheet.ValueRange{Values: rows}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, fmt.Sprintf("%s!A1", c.sheetName), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}

	if resp.Updates != nil {
		return resp.Updates.UpdatedRange, nil
	}
	return fmt.Sprintf("%s!A%d", c.sheetName, len(existing.Values)+1), nil
}
