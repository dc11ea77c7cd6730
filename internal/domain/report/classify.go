package report

import "github.com/shopspring/decimal"

// Status grades a staff member's profit margin
type Status string

const (
	StatusIdeal       Status = "Ideal"
	StatusAverage     Status = "Na média"
	StatusNeedsImprov Status = "Precisa melhorar"
)

// Thresholds are the profit-percent cut-offs for Status
type Thresholds struct {
	Ideal   decimal.Decimal
	Average decimal.Decimal
}

// DefaultThresholds is 15% for Ideal and 10% for Na média
var DefaultThresholds = Thresholds{
	Ideal:   decimal.NewFromInt(15),
	Average: decimal.NewFromInt(10),
}

// Classify grades a profit percent of sales
func Classify(profitPercent decimal.Decimal, th Thresholds) Status {
	switch {
	case profitPercent.GreaterThanOrEqual(th.Ideal):
		return StatusIdeal
	case profitPercent.GreaterThanOrEqual(th.Average):
		return StatusAverage
	default:
		return StatusNeedsImprov
	}
}

// Rating grades a single record against the average of its set
type Rating string

const (
	RatingExcellent Rating = "Excelente"
	RatingGood      Rating = "Bom"
	RatingRegular   Rating = "Regular"
	RatingBelow     Rating = "Abaixo da Média"
	RatingNeutral   Rating = "Neutro"
)

var (
	ratingExcellent = decimal.NewFromInt(20)
	ratingGood      = decimal.NewFromInt(10)
	ratingRegular   = decimal.NewFromInt(-10)
)

// Rate compares value with average: +20% or more is Excelente, +10% Bom,
// down to -10% Regular, anything lower Abaixo da Média. A zero average is Neutro.
func Rate(value, average decimal.Decimal) Rating {
	if average.IsZero() {
		return RatingNeutral
	}
	pct := ChangePercent(value, average)
	switch {
	case pct.GreaterThanOrEqual(ratingExcellent):
		return RatingExcellent
	case pct.GreaterThanOrEqual(ratingGood):
		return RatingGood
	case pct.GreaterThanOrEqual(ratingRegular):
		return RatingRegular
	default:
		return RatingBelow
	}
}
