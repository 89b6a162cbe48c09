package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStorageRead is returned when the backing file exists but cannot be
	// read or does not carry the expected columns.
	ErrStorageRead = errors.New("ledger: storage read failed")
	// ErrStorageWrite is returned when the ledger could not be persisted.
	// The previous file content is left in place.
	ErrStorageWrite = errors.New("ledger: storage write failed")
	ErrEmptyLedger  = errors.New("ledger: ledger is empty")
)

// MissingColumnsError lists the expected header columns absent from a
// workbook. Legacy is set when the only missing column is "Meals Details",
// which MigrateLegacy can repair.
type MissingColumnsError struct {
	Columns []string
	Legacy  bool
}

func (e *MissingColumnsError) Error() string {
	msg := fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
	if e.Legacy {
		msg += " (legacy layout, run migrate)"
	}
	return msg
}

func readError(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageRead, err)
}

func writeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageWrite, err)
}
