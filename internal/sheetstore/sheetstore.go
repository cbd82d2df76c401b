package sheetstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

// Client is a row-oriented adapter over one spreadsheet. The first row of
// each sheet is the header row; field names come from it at runtime. Row
// indexes are 1-based and include the header, so the first data row is 2.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewClient(svc *sheets.Service, spreadsheetID string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID}
}

// Row is one data row keyed by header name. Columns past the row's last
// populated cell read as "".
type Row map[string]string

// Match pairs a row with its sheet position.
type Match struct {
	RowIndex int // 1-based, counting the header row
	Row      Row
}

// ListRows returns every data row of the sheet keyed by header name.
// A sheet with no data rows (or no header) yields an empty slice.
func (c *Client) ListRows(ctx context.Context, sheetName string) ([]Row, error) {
	values, err := c.readRange(ctx, sheetName+"!A:Z")
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return []Row{}, nil
	}

	headers := stringCells(values[0])
	rows := make([]Row, 0, len(values)-1)
	for _, raw := range values[1:] {
		cells := stringCells(raw)
		row := Row{}
		for j, h := range headers {
			if j < len(cells) {
				row[h] = cells[j]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends one row, creating the sheet and its header row first if
// needed. Values are laid out in header order; fields without a matching
// header are dropped.
func (c *Client) AppendRow(ctx context.Context, sheetName string, headers []string, values Row) error {
	if err := c.EnsureHeaders(ctx, sheetName, headers); err != nil {
		return err
	}

	cols, err := c.headerRow(ctx, sheetName)
	if err != nil {
		return err
	}

	row := make([]interface{}, len(cols))
	for i, h := range cols {
		row[i] = values[h]
	}

	_, err = c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, sheetName+"!A:A", &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append %q: %w", sheetName, err)
	}
	return nil
}

// UpdateCell writes a single cell. rowIndex and colIndex are 1-based.
func (c *Client) UpdateCell(ctx context.Context, sheetName string, rowIndex, colIndex int, value string) error {
	letter, err := columnLetters(colIndex)
	if err != nil {
		return err
	}
	cell := fmt.Sprintf("%s!%s%d", sheetName, letter, rowIndex)
	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, cell, &sheets.ValueRange{Values: [][]interface{}{{value}}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets update %s: %w", cell, err)
	}
	return nil
}

// DeleteRow removes one row (1-based, counting the header).
func (c *Client) DeleteRow(ctx context.Context, sheetName string, rowIndex int) error {
	gid, err := c.sheetGID(ctx, sheetName)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    gid,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex - 1),
					EndIndex:   int64(rowIndex),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets delete row %d of %q: %w", rowIndex, sheetName, err)
	}
	return nil
}

// FindRowByColumn returns the first row whose column equals value, or nil.
// Duplicate values may exist; callers get the first match only and must
// re-resolve before every mutation.
func (c *Client) FindRowByColumn(ctx context.Context, sheetName, columnName, value string) (*Match, error) {
	rows, err := c.ListRows(ctx, sheetName)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if row[columnName] == value {
			return &Match{RowIndex: i + 2, Row: row}, nil
		}
	}
	return nil, nil
}

// ColumnIndex returns the 1-based column of a header name, or -1 when the
// sheet has no such column.
func (c *Client) ColumnIndex(ctx context.Context, sheetName, columnName string) (int, error) {
	cols, err := c.headerRow(ctx, sheetName)
	if err != nil {
		return -1, err
	}
	for i, h := range cols {
		if h == columnName {
			return i + 1, nil
		}
	}
	return -1, nil
}

// EnsureHeaders creates the sheet if missing and appends any absent headers
// after the existing ones. Existing columns are never renamed or reordered.
func (c *Client) EnsureHeaders(ctx context.Context, sheetName string, headers []string) error {
	existing, err := c.headerRow(ctx, sheetName)
	if err != nil {
		if !IsMissingSheet(err) {
			return err
		}
		if err := c.createSheet(ctx, sheetName); err != nil {
			return err
		}
		existing = nil
	}

	if len(existing) == 0 {
		return c.writeHeaderRow(ctx, sheetName, headers)
	}

	merged := existing
	have := make(map[string]bool, len(existing))
	for _, h := range existing {
		have[h] = true
	}
	missing := false
	for _, h := range headers {
		if !have[h] {
			merged = append(merged, h)
			missing = true
		}
	}
	if !missing {
		return nil
	}
	return c.writeHeaderRow(ctx, sheetName, merged)
}

func (c *Client) headerRow(ctx context.Context, sheetName string) ([]string, error) {
	values, err := c.readRange(ctx, sheetName+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return stringCells(values[0]), nil
}

func (c *Client) writeHeaderRow(ctx context.Context, sheetName string, headers []string) error {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	_, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, sheetName+"!1:1", &sheets.ValueRange{Values: [][]interface{}{cells}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets set headers on %q: %w", sheetName, err)
	}
	return nil
}

func (c *Client) readRange(ctx context.Context, a1Range string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets read %q: %w", a1Range, err)
	}
	return resp.Values, nil
}

func (c *Client) createSheet(ctx context.Context, sheetName string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheetName},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets create %q: %w", sheetName, err)
	}
	return nil
}

func (c *Client) sheetGID(ctx context.Context, sheetName string) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("sheets metadata: %w", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == sheetName {
			return s.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", sheetName)
}

// columnLetters converts a 1-based column index to A1 letters (1 -> A,
// 27 -> AA).
func columnLetters(col int) (string, error) {
	if col < 1 {
		return "", fmt.Errorf("invalid column index: %d", col)
	}
	letters := ""
	for n := col; n > 0; n = (n - 1) / 26 {
		letters = string(rune('A'+(n-1)%26)) + letters
	}
	return letters, nil
}

func stringCells(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

// IsMissingSheet reports whether an API error means the sheet tab does not
// exist yet. The Values API answers 400 "Unable to parse range" for ranges
// on unknown sheets.
func IsMissingSheet(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 400 && strings.Contains(gerr.Message, "Unable to parse range")
	}
	return false
}
