package trip

import (
	"context"
	"fmt"

	"github.com/outingclub/trips-backend/internal/apierr"
	"github.com/outingclub/trips-backend/internal/sheetstore"
)

const tripsSheet = "Trips"

// tripHeaders defines the Trips sheet schema. New columns are appended at
// the end on first use; existing ones are never renamed or reordered.
var tripHeaders = []string{
	"createdAt",
	"tripId",
	"eventId",
	"title",
	"activity",
	"start",
	"end",
	"location",
	"leaderName",
	"leaderContact",
	"difficulty",
	"meetTime",
	"meetPlace",
	"notes",
	"gearAvailable",
	"isAllDay",
	"signupStatus",
}

// RowStore is the slice of the spreadsheet adapter the trip module needs.
type RowStore interface {
	ListRows(ctx context.Context, sheetName string) ([]sheetstore.Row, error)
	AppendRow(ctx context.Context, sheetName string, headers []string, values sheetstore.Row) error
	UpdateCell(ctx context.Context, sheetName string, rowIndex, colIndex int, value string) error
	DeleteRow(ctx context.Context, sheetName string, rowIndex int) error
	FindRowByColumn(ctx context.Context, sheetName, columnName, value string) (*sheetstore.Match, error)
	ColumnIndex(ctx context.Context, sheetName, columnName string) (int, error)
}

// Repository maps trips onto the Trips sheet. Row indexes are positional
// and may shift whenever a row is deleted, so every mutation re-resolves
// the target row first instead of caching indexes.
type Repository struct {
	Store RowStore
}

func NewRepository(store RowStore) *Repository {
	return &Repository{Store: store}
}

func (r *Repository) List(ctx context.Context) ([]sheetstore.Row, error) {
	return r.Store.ListRows(ctx, tripsSheet)
}

// FindByTripID returns the first row carrying the id, or ErrNotFound.
// Duplicate ids are tolerated (the sync pass collapses their events); all
// row operations act on the first match.
func (r *Repository) FindByTripID(ctx context.Context, tripID string) (*sheetstore.Match, error) {
	match, err := r.Store.FindRowByColumn(ctx, tripsSheet, "tripId", tripID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, fmt.Errorf("trip %s: %w", tripID, apierr.ErrNotFound)
	}
	return match, nil
}

func (r *Repository) Append(ctx context.Context, values sheetstore.Row) error {
	return r.Store.AppendRow(ctx, tripsSheet, tripHeaders, values)
}

// UpdateColumns overwrites the named cells of one row. A required column
// missing from the sheet is a configuration error, not a soft skip.
func (r *Repository) UpdateColumns(ctx context.Context, rowIndex int, updates sheetstore.Row) error {
	for _, col := range tripHeaders {
		value, ok := updates[col]
		if !ok {
			continue
		}
		colIndex, err := r.Store.ColumnIndex(ctx, tripsSheet, col)
		if err != nil {
			return err
		}
		if colIndex < 1 {
			return fmt.Errorf("Trips sheet is missing %q column", col)
		}
		if err := r.Store.UpdateCell(ctx, tripsSheet, rowIndex, colIndex, value); err != nil {
			return err
		}
	}
	return nil
}

// SetEventID writes a fresh calendar event id back onto a trip's row. The
// row is re-resolved by trip id because earlier deletions in the same sync
// pass may have shifted positions.
func (r *Repository) SetEventID(ctx context.Context, tripID, eventID string) error {
	match, err := r.FindByTripID(ctx, tripID)
	if err != nil {
		return err
	}
	colIndex, err := r.Store.ColumnIndex(ctx, tripsSheet, "eventId")
	if err != nil {
		return err
	}
	if colIndex < 1 {
		return fmt.Errorf("Trips sheet is missing %q column", "eventId")
	}
	return r.Store.UpdateCell(ctx, tripsSheet, match.RowIndex, colIndex, eventID)
}

func (r *Repository) Delete(ctx context.Context, rowIndex int) error {
	return r.Store.DeleteRow(ctx, tripsSheet, rowIndex)
}
