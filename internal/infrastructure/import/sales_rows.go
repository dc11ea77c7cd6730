package csvimport

import (
	"fmt"
	"io"
)

// Canonical column names of a sales import file.
const (
	ColumnStaff      = "staff"
	ColumnMonth      = "month"
	ColumnYear       = "year"
	ColumnSales      = "sales"
	ColumnCommission = "commission"
	ColumnBonus      = "bonus"
	ColumnExpenses   = "expenses"
)

// RequiredColumns must appear in the header of a sales import file.
var RequiredColumns = []string{ColumnStaff, ColumnMonth, ColumnSales}

// SalesRow holds the raw cell values of one sales line. Amounts are left as
// text so the caller applies the same lenient parsing as form input.
type SalesRow struct {
	Line       int
	Staff      string
	Month      string
	Year       string
	Sales      string
	Commission string
	Bonus      string
	Expenses   string
}

// SalesFile is the outcome of reading a sales CSV
type SalesFile struct {
	Rows []SalesRow
	// Rejected counts malformed lines and lines missing a required value
	Rejected int
	Errors   *ErrorCollection
}

// ReadSalesRows parses a sales CSV. Rows missing a required value are
// reported in Errors and left out of Rows.
func ReadSalesRows(r io.Reader, maxErrors int, opts ...ParserOption) (*SalesFile, error) {
	parser, err := NewCSVParser(r, opts...)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.ValidateHeaders(RequiredColumns); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingColumns, missing)
	}

	file := &SalesFile{Errors: NewErrorCollection(maxErrors)}
	rows, err := parser.ReadAllRows(file.Errors)
	if err != nil {
		return nil, err
	}
	file.Rejected = file.Errors.TotalCount()

	file.Rows = make([]SalesRow, 0, len(rows))
	for _, row := range rows {
		ok := true
		for _, col := range RequiredColumns {
			if row.Get(col) == "" {
				file.Errors.AddRequiredError(row.LineNumber, col)
				ok = false
			}
		}
		if !ok {
			file.Rejected++
			continue
		}
		file.Rows = append(file.Rows, SalesRow{
			Line:       row.LineNumber,
			Staff:      row.Get(ColumnStaff),
			Month:      row.Get(ColumnMonth),
			Year:       row.Get(ColumnYear),
			Sales:      row.Get(ColumnSales),
			Commission: row.Get(ColumnCommission),
			Bonus:      row.Get(ColumnBonus),
			Expenses:   row.Get(ColumnExpenses),
		})
	}
	return file, nil
}
