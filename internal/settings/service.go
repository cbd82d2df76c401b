package settings

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/outingclub/trips-backend/internal/apierr"
	"github.com/outingclub/trips-backend/internal/officer"
	"github.com/outingclub/trips-backend/internal/sheetstore"
)

const settingsSheet = "SiteSettings"

var settingsHeaders = []string{"key", "value", "updatedAt"}

// RowStore is the sheet access the settings service needs.
type RowStore interface {
	ListRows(ctx context.Context, sheetName string) ([]sheetstore.Row, error)
	AppendRow(ctx context.Context, sheetName string, headers []string, values sheetstore.Row) error
	UpdateCell(ctx context.Context, sheetName string, rowIndex, colIndex int, value string) error
	ColumnIndex(ctx context.Context, sheetName, columnName string) (int, error)
}

type Service struct {
	Store    RowStore
	Passcode string

	now func() time.Time
}

func NewService(store RowStore, passcode string) *Service {
	return &Service{Store: store, Passcode: passcode, now: time.Now}
}

// Parsed is the settings map plus any rows that were skipped while reading it.
type Parsed struct {
	Settings map[string]string `json:"settings"`
	Warnings []string          `json:"warnings"`
}

// Get returns the effective site settings: defaults overlaid with every valid
// row from the SiteSettings sheet. A missing sheet just means all defaults.
func (s *Service) Get(ctx context.Context) (*Parsed, error) {
	rows, err := s.Store.ListRows(ctx, settingsSheet)
	if err != nil {
		if !sheetstore.IsMissingSheet(err) {
			return nil, err
		}
		rows = nil
	}
	parsed := parseRows(rows)
	if len(parsed.Warnings) > 0 {
		log.Printf("⚠️ settings: %s", strings.Join(parsed.Warnings, " | "))
	}
	return parsed, nil
}

// Update validates and upserts the given keys, then returns the refreshed
// settings. Unknown keys reject the whole request so a typo never writes a
// row the reader would ignore forever.
func (s *Service) Update(ctx context.Context, secret string, updates map[string]string) (*Parsed, error) {
	if !officer.Verify(secret, s.Passcode) {
		return nil, apierr.ErrNotAuthorized
	}
	if len(updates) == 0 {
		return nil, apierr.Validation("settings must include at least one key")
	}

	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	validated := make(map[string]string, len(updates))
	for _, key := range keys {
		if !KnownKey(key) {
			return nil, apierr.Validation("unsupported setting key: " + key)
		}
		value, err := NormalizeValue(key, updates[key])
		if err != nil {
			return nil, err
		}
		validated[key] = value
	}

	rows, err := s.Store.ListRows(ctx, settingsSheet)
	if err != nil {
		if !sheetstore.IsMissingSheet(err) {
			return nil, err
		}
		rows = nil
	}
	rowIndexByKey := make(map[string]int, len(rows))
	for i, row := range rows {
		key := strings.TrimSpace(row["key"])
		if key != "" {
			rowIndexByKey[key] = i + 2
		}
	}

	valueCol, updatedAtCol := -1, -1
	for _, key := range keys {
		if _, ok := rowIndexByKey[key]; !ok {
			continue
		}
		valueCol, err = s.Store.ColumnIndex(ctx, settingsSheet, "value")
		if err != nil {
			return nil, err
		}
		updatedAtCol, err = s.Store.ColumnIndex(ctx, settingsSheet, "updatedAt")
		if err != nil {
			return nil, err
		}
		if valueCol < 1 || updatedAtCol < 1 {
			return nil, fmt.Errorf("SiteSettings sheet is missing required columns: value and updatedAt")
		}
		break
	}

	now := s.now().UTC().Format(time.RFC3339)
	for _, key := range keys {
		rowIndex, exists := rowIndexByKey[key]
		if !exists {
			err := s.Store.AppendRow(ctx, settingsSheet, settingsHeaders, sheetstore.Row{
				"key":       key,
				"value":     validated[key],
				"updatedAt": now,
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		if err := s.Store.UpdateCell(ctx, settingsSheet, rowIndex, valueCol, validated[key]); err != nil {
			return nil, err
		}
		if err := s.Store.UpdateCell(ctx, settingsSheet, rowIndex, updatedAtCol, now); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx)
}

// parseRows overlays sheet rows onto the defaults. Unsupported keys,
// duplicates, and invalid values are skipped with a warning rather than
// failing the read.
func parseRows(rows []sheetstore.Row) *Parsed {
	effective := make(map[string]string, len(defaults))
	for key, value := range defaults {
		effective[key] = value
	}
	seen := make(map[string]bool, len(rows))
	var warnings []string

	for i, row := range rows {
		rowNumber := i + 2
		key := strings.TrimSpace(row["key"])
		if key == "" {
			continue
		}
		if !KnownKey(key) {
			warnings = append(warnings, fmt.Sprintf("ignoring unsupported SiteSettings key %q at row %d", key, rowNumber))
			continue
		}
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("ignoring duplicate SiteSettings key %q at row %d", key, rowNumber))
			continue
		}
		value, err := NormalizeValue(key, row["value"])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring invalid SiteSettings value for %q at row %d: %v", key, rowNumber, err))
			continue
		}
		effective[key] = value
		seen[key] = true
	}

	return &Parsed{Settings: effective, Warnings: warnings}
}
