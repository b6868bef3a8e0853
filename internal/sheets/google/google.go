package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
	ports "budgetbook/internal/sheets"
)

// Credentials selects the service account used for the Sheets API.
// JSON takes precedence over File.
type Credentials struct {
	JSON string
	File string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	prefix        string
	logger        *log.Logger
}

// Ensure interface conformance
var _ ports.StateMirror = (*Client)(nil)

// New creates a Sheets mirror writing "<prefix> <tab>" worksheets.
func New(ctx context.Context, spreadsheetID, prefix string, creds Credentials, logger *log.Logger) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if logger == nil {
		logger = log.Default(log.ComponentSheets)
	}
	logger = logger.WithComponent(log.ComponentSheets)

	svc, err := newSheetsService(ctx, creds, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		prefix:        prefix,
		logger:        logger,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, creds Credentials, logger *log.Logger) (*gsheet.Service, error) {
	credentialsJSON, err := readCredentials(creds)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func readCredentials(creds Credentials) ([]byte, error) {
	switch {
	case strings.TrimSpace(creds.JSON) != "":
		return []byte(creds.JSON), nil
	case strings.TrimSpace(creds.File) != "":
		data, err := os.ReadFile(creds.File)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}
}

// Mirror overwrites every ledger tab with the contents of s.
// Missing tabs are created first; tabs are then written concurrently.
func (c *Client) Mirror(ctx context.Context, s core.State) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	tabs := ports.BuildTabs(c.prefix, s)
	if err := c.ensureTabs(ctx, tabs); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, tab := range tabs {
		g.Go(func() error {
			return c.writeTab(gctx, tab)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "Mirrored ledger to spreadsheet",
		log.FieldSpreadsheet, c.spreadsheetID,
		"tabs", len(tabs),
		"transactions", len(s.Transactions))
	return nil
}

func (c *Client) ensureTabs(ctx context.Context, tabs []ports.Tab) error {
	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet %s: %w", c.spreadsheetID, err)
	}

	existing := make([]string, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			existing = append(existing, sh.Properties.Title)
		}
	}

	missing := missingTabs(existing, tabs)
	if len(missing) == 0 {
		return nil
	}

	reqs := make([]*gsheet.Request, 0, len(missing))
	for _, title := range missing {
		reqs = append(reqs, &gsheet.Request{
			AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: title}},
		})
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID,
		&gsheet.BatchUpdateSpreadsheetRequest{Requests: reqs}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("create tabs %v: %w", missing, err)
	}
	c.logger.InfoContext(ctx, "Created spreadsheet tabs", "tabs", missing)
	return nil
}

func (c *Client) writeTab(ctx context.Context, tab ports.Tab) error {
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, a1Range(tab.Title, "A:Z"),
		&gsheet.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", tab.Title, err)
	}

	vr := &gsheet.ValueRange{Values: tab.Rows}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, a1Range(tab.Title, "A1"), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", tab.Title, err)
	}
	return nil
}

// a1Range quotes the sheet title so titles with spaces are addressable.
func a1Range(title, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(title, "'", "''"), cells)
}

func missingTabs(existing []string, tabs []ports.Tab) []string {
	have := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		have[t] = struct{}{}
	}
	var out []string
	for _, tab := range tabs {
		if _, ok := have[tab.Title]; !ok {
			out = append(out, tab.Title)
		}
	}
	return out
}
