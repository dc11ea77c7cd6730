package printing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers for people: grouped digits, the locale's decimal
// separator and the currency symbol of the configured unit.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a Formatter for a BCP 47 locale and an ISO 4217 code
func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}
	p := message.NewPrinter(tag)
	return &Formatter{
		tag:     tag,
		unit:    unit,
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
	}, nil
}

// DefaultFormatter formats Brazilian reais
func DefaultFormatter() *Formatter {
	f, err := NewFormatter("pt-BR", "BRL")
	if err != nil {
		panic(err)
	}
	return f
}

// Symbol returns the currency symbol, e.g. "R$"
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Number formats d with two decimals, e.g. "1.234,50"
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Money formats d with the currency symbol, e.g. "R$ 1.234,50" or "-R$ 10,00"
func (f *Formatter) Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + f.symbol + " " + f.Number(d.Abs())
	}
	return f.symbol + " " + f.Number(d)
}

// Percent formats d with one decimal, e.g. "12,3%"
func (f *Formatter) Percent(d decimal.Decimal) string {
	return f.printer.Sprintf("%.1f", d.Round(1).InexactFloat64()) + "%"
}

// Signed prefixes positive values with "+", for deltas
func (f *Formatter) Signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + f.Money(d)
	}
	return f.Money(d)
}

// DateTime formats a timestamp the way Brazilian reports print it
func (f *Formatter) DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// Year returns the label used for a year filter; empty means every year
func (f *Formatter) Year(year string) string {
	if strings.TrimSpace(year) == "" {
		return "Todos os anos"
	}
	return year
}
