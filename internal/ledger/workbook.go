package ledger

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gdg-garage/iftar-registration/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

const (
	colTicketNumber = "Ticket Number"
	colName         = "Name"
	colStudentID    = "Student ID"
	colDepartment   = "Department"
	colLevel        = "Level"
	colMeal         = "Meal"
	colMealsDetails = "Meals Details"
	colCompanions   = "Companions"
	colTotalPeople  = "Total People"
	colTotalPrice   = "Total Price"
	colTimestamp    = "Timestamp"
)

// Columns is the header row of the backing workbook, in order.
var Columns = []string{
	colTicketNumber,
	colName,
	colStudentID,
	colDepartment,
	colLevel,
	colMeal,
	colMealsDetails,
	colCompanions,
	colTotalPeople,
	colTotalPrice,
	colTimestamp,
}

// Timestamps are written as text so they survive a round trip untouched.
// The other layouts cover files written by spreadsheet tools.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"01-02-06 15:04",
	"2006-01-02",
}

func encodeWorkbook(rows []models.Registration) (*excelize.File, error) {
	f := excelize.NewFile()

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := []any{
			r.TicketNumber,
			r.Name,
			r.StudentID,
			string(r.Department),
			int(r.Level),
			string(r.PrimaryMeal),
			r.MealSummary.String(),
			r.CompanionCount,
			r.TotalPeople,
			r.TotalPrice,
			r.CreatedAt.Format(time.RFC3339Nano),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeWorkbook(w io.Writer, rows []models.Registration) error {
	f, err := encodeWorkbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// decodeWorkbook reads the first sheet. With legacy set, a missing
// "Meals Details" column is rebuilt from the "Meal" column.
func decodeWorkbook(f *excelize.File, legacy bool) ([]models.Registration, error) {
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: Columns}
	}

	index, err := headerIndex(rows[0], legacy)
	if err != nil {
		return nil, err
	}

	regs := make([]models.Registration, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		reg, err := decodeRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

func headerIndex(header []string, legacy bool) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, c := range Columns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return index, nil
	}

	isLegacy := len(missing) == 1 && missing[0] == colMealsDetails
	if isLegacy && legacy {
		index[colMealsDetails] = index[colMeal]
		return index, nil
	}
	return nil, &MissingColumnsError{Columns: missing, Legacy: isLegacy}
}

func decodeRow(row []string, index map[string]int) (models.Registration, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var reg models.Registration
	var err error

	if reg.TicketNumber, err = parseInt(cell(colTicketNumber)); err != nil {
		return reg, fmt.Errorf("%s: %w", colTicketNumber, err)
	}
	reg.Name = cell(colName)
	reg.StudentID = cell(colStudentID)
	reg.Department = models.Department(cell(colDepartment))

	level, err := parseInt(cell(colLevel))
	if err != nil {
		return reg, fmt.Errorf("%s: %w", colLevel, err)
	}
	reg.Level = models.Level(level)

	reg.PrimaryMeal = models.Meal(cell(colMeal))
	reg.MealSummary = models.ParseMealList(cell(colMealsDetails))

	if reg.CompanionCount, err = parseInt(cell(colCompanions)); err != nil {
		return reg, fmt.Errorf("%s: %w", colCompanions, err)
	}
	if reg.TotalPeople, err = parseInt(cell(colTotalPeople)); err != nil {
		return reg, fmt.Errorf("%s: %w", colTotalPeople, err)
	}
	if reg.TotalPrice, err = parseInt(cell(colTotalPrice)); err != nil {
		return reg, fmt.Errorf("%s: %w", colTotalPrice, err)
	}
	if reg.CreatedAt, err = parseTimestamp(cell(colTimestamp)); err != nil {
		return reg, fmt.Errorf("%s: %w", colTimestamp, err)
	}

	return reg, nil
}

// parseInt accepts integral values rendered either as "250" or "250.0".
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	// Unformatted cells hold the Excel serial date.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
