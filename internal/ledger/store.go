// Package ledger persists the ordered sequence of registrations. Nothing
// outside this package touches the backing file.
package ledger

import (
	"context"
	"io"

	"github.com/gdg-garage/iftar-registration/internal/models"
)

// Store is the durable, ordered registration ledger.
//
// Implementations assume a single writer; callers that mutate concurrently
// must serialize Append, DeleteLast and ClearAll themselves.
type Store interface {
	// Load returns every registration in insertion order, or an empty slice
	// when nothing has been stored yet.
	Load(ctx context.Context) ([]models.Registration, error)
	Append(ctx context.Context, reg models.Registration) error
	// DeleteLast removes the most recently appended registration and
	// returns it. It fails with ErrEmptyLedger when there is none.
	DeleteLast(ctx context.Context) (models.Registration, error)
	ClearAll(ctx context.Context) error
	Exists(ctx context.Context) (bool, error)
	// Export writes the ledger as an xlsx workbook.
	Export(ctx context.Context, w io.Writer) error
}

const (
	ExportFileName    = "iftar_data.xlsx"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
