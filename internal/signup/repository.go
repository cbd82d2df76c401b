package signup

import (
	"context"
	"fmt"

	"github.com/outingclub/trips-backend/internal/apierr"
	"github.com/outingclub/trips-backend/internal/sheetstore"
)

const requestsSheet = "Requests"

var requestHeaders = []string{
	"requestId",
	"submittedAt",
	"tripId",
	"name",
	"contact",
	"carpool",
	"gearNeeded",
	"notes",
	"status",
}

// RowStore is the slice of the spreadsheet adapter this module needs.
type RowStore interface {
	ListRows(ctx context.Context, sheetName string) ([]sheetstore.Row, error)
	AppendRow(ctx context.Context, sheetName string, headers []string, values sheetstore.Row) error
	UpdateCell(ctx context.Context, sheetName string, rowIndex, colIndex int, value string) error
	FindRowByColumn(ctx context.Context, sheetName, columnName, value string) (*sheetstore.Match, error)
	ColumnIndex(ctx context.Context, sheetName, columnName string) (int, error)
}

type Repository struct {
	Store RowStore
}

func NewRepository(store RowStore) *Repository {
	return &Repository{Store: store}
}

func (r *Repository) Append(ctx context.Context, values sheetstore.Row) error {
	return r.Store.AppendRow(ctx, requestsSheet, requestHeaders, values)
}

func (r *Repository) List(ctx context.Context) ([]sheetstore.Row, error) {
	return r.Store.ListRows(ctx, requestsSheet)
}

// SetStatus updates the status cell of the request row, re-resolving the
// row position by request id first.
func (r *Repository) SetStatus(ctx context.Context, requestID string, status Status) error {
	match, err := r.Store.FindRowByColumn(ctx, requestsSheet, "requestId", requestID)
	if err != nil {
		return err
	}
	if match == nil {
		return fmt.Errorf("request %s: %w", requestID, apierr.ErrNotFound)
	}
	colIndex, err := r.Store.ColumnIndex(ctx, requestsSheet, "status")
	if err != nil {
		return err
	}
	if colIndex < 1 {
		return fmt.Errorf("Requests sheet is missing %q column", "status")
	}
	return r.Store.UpdateCell(ctx, requestsSheet, match.RowIndex, colIndex, string(status))
}
