package ledger

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

// MigrateLegacy rewrites a workbook that predates the "Meals Details"
// column, filling it from the primary meal of each row. Companion meals
// were never recorded in that layout and cannot be recovered. It returns
// the number of migrated rows; a workbook already in the current layout is
// left untouched and reports zero.
func MigrateLegacy(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, readError(err)
	}

	_, err = decodeWorkbook(f, false)
	if err == nil {
		f.Close()
		return 0, nil
	}
	var missing *MissingColumnsError
	if !errors.As(err, &missing) || !missing.Legacy {
		f.Close()
		return 0, readError(err)
	}

	regs, err := decodeWorkbook(f, true)
	f.Close()
	if err != nil {
		return 0, readError(err)
	}

	if err := NewFileStore(path).write(regs); err != nil {
		return 0, err
	}
	return len(regs), nil
}
