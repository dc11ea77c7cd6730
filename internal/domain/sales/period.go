package sales

import (
	"fmt"
	"strconv"
	"strings"
)

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Period identifies a calendar month. Month is a zero-padded code ("01".."12")
// and Year has four digits, so lexical order is chronological order.
type Period struct {
	Month string
	Year  string
}

// NewPeriod validates and normalizes a month/year pair.
// Single-digit months ("3") are padded to "03".
func NewPeriod(month, year string) (Period, error) {
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 || len(month) > 2 {
		return Period{}, ErrInvalidMonth
	}
	if len(year) != 4 {
		return Period{}, ErrInvalidYear
	}
	if _, err := strconv.Atoi(year); err != nil {
		return Period{}, ErrInvalidYear
	}

	return Period{Month: fmt.Sprintf("%02d", m), Year: year}, nil
}

// Key returns the sortable "YYYY-MM" form
func (p Period) Key() string {
	return p.Year + "-" + p.Month
}

// String returns the "MM/YYYY" display form
func (p Period) String() string {
	return p.Month + "/" + p.Year
}

// Before reports whether p is chronologically earlier than other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// MonthName returns the Portuguese month name, or the raw code when unknown
func (p Period) MonthName() string {
	return MonthName(p.Month)
}

// Label returns e.g. "Março/2024"
func (p Period) Label() string {
	return p.MonthName() + "/" + p.Year
}

// MonthName maps a month code ("01".."12") to its Portuguese name
func MonthName(code string) string {
	m, err := strconv.Atoi(code)
	if err != nil || m < 1 || m > 12 {
		return code
	}
	return monthNames[m-1]
}
