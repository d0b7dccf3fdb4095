package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Tab names double as the logical table names. Row 1 of each tab is a
// header; data starts at row 2.
const (
	sheetTransactions = "transactions"
	sheetRecurring    = "recurring_transactions"
	sheetUserData     = "user_data"
)

// Sheets implements Client over a Google spreadsheet with one tab per
// logical table. Rows for all users share a tab; replace operations rewrite
// the tab keeping other users' rows intact.
type Sheets struct {
	svc           *gsheet.Service
	spreadsheetID string
}

// NewSheetsFromEnv creates a Sheets client using service account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsFromEnv(ctx context.Context, spreadsheetID string) (*Sheets, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	credentialsJSON, err := credentialsFromEnv()
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Sheets{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func credentialsFromEnv() ([]byte, error) {
	if inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); inline != "" {
		return []byte(inline), nil
	}
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	credentialsJSON, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return credentialsJSON, nil
}

func (s *Sheets) ReplaceTransactions(ctx context.Context, userID string, rows []TransactionRow) error {
	values := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		values = append(values, []interface{}{r.ID, userID, r.Amount, r.Description, r.IsIncome, r.Date, r.Category})
	}
	return s.replaceUserRows(ctx, sheetTransactions, userID, values)
}

func (s *Sheets) ReplaceRecurring(ctx context.Context, userID string, rows []RecurringRow) error {
	values := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		values = append(values, []interface{}{r.ID, userID, r.Amount, r.Description, r.IsIncome, r.Date, r.StartDate, r.Category})
	}
	return s.replaceUserRows(ctx, sheetRecurring, userID, values)
}

// replaceUserRows rewrites a tab: all rows belonging to other users are
// kept, the given user's rows are replaced wholesale.
func (s *Sheets) replaceUserRows(ctx context.Context, tab, userID string, userRows [][]interface{}) error {
	existing, err := s.readTab(ctx, tab)
	if err != nil {
		return err
	}

	kept := make([][]interface{}, 0, len(existing)+len(userRows))
	for _, row := range existing {
		if len(row) > 1 && cell(row, 1) == userID {
			continue
		}
		kept = append(kept, row)
	}
	kept = append(kept, userRows...)

	clearRange := tab + "!A2:Z"
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", tab, err)
	}
	if len(kept) == 0 {
		return nil
	}
	vr := &gsheet.ValueRange{Values: kept}
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, tab+"!A2", vr).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write %s: %w", tab, err)
	}
	return nil
}

func (s *Sheets) UpsertUserData(ctx context.Context, data UserData) error {
	rows, err := s.readTab(ctx, sheetUserData)
	if err != nil {
		return err
	}

	values := [][]interface{}{{data.UserID, data.BankBalance, data.DebtBalance}}
	for i, row := range rows {
		if cell(row, 0) == data.UserID {
			// Data rows start at sheet row 2.
			rng := fmt.Sprintf("%s!A%d", sheetUserData, i+2)
			vr := &gsheet.ValueRange{Values: values}
			if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
				return fmt.Errorf("update user_data: %w", err)
			}
			return nil
		}
	}

	vr := &gsheet.ValueRange{Values: values}
	if _, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, sheetUserData+"!A2", vr).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("append user_data: %w", err)
	}
	return nil
}

func (s *Sheets) Transactions(ctx context.Context, userID string) ([]TransactionRow, error) {
	rows, err := s.readTab(ctx, sheetTransactions)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionRow, 0, len(rows))
	for _, row := range rows {
		if cell(row, 1) != userID {
			continue
		}
		out = append(out, TransactionRow{
			ID:          cell(row, 0),
			UserID:      userID,
			Amount:      parseNumber(cell(row, 2)),
			Description: cell(row, 3),
			IsIncome:    parseBool(cell(row, 4)),
			Date:        cell(row, 5),
			Category:    cell(row, 6),
		})
	}
	return out, nil
}

func (s *Sheets) Recurring(ctx context.Context, userID string) ([]RecurringRow, error) {
	rows, err := s.readTab(ctx, sheetRecurring)
	if err != nil {
		return nil, err
	}
	out := make([]RecurringRow, 0, len(rows))
	for _, row := range rows {
		if cell(row, 1) != userID {
			continue
		}
		out = append(out, RecurringRow{
			ID:          cell(row, 0),
			UserID:      userID,
			Amount:      parseNumber(cell(row, 2)),
			Description: cell(row, 3),
			IsIncome:    parseBool(cell(row, 4)),
			Date:        cell(row, 5),
			StartDate:   cell(row, 6),
			Category:    cell(row, 7),
		})
	}
	return out, nil
}

func (s *Sheets) GetUserData(ctx context.Context, userID string) (UserData, bool, error) {
	rows, err := s.readTab(ctx, sheetUserData)
	if err != nil {
		return UserData{}, false, err
	}
	for _, row := range rows {
		if cell(row, 0) == userID {
			return UserData{
				UserID:      userID,
				BankBalance: cell(row, 1),
				DebtBalance: cell(row, 2),
			}, true, nil
		}
	}
	return UserData{}, false, nil
}

func (s *Sheets) readTab(ctx context.Context, tab string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, tab+"!A2:Z").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tab, err)
	}
	return resp.Values, nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
