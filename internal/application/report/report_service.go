package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/report"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNoData is returned when a report has no records to work with
var ErrNoData = shared.NewDomainError("NO_DATA", "There is no data for the selected filters")

// Options holds the reporting rules taken from configuration
type Options struct {
	GroupBy       report.GroupBy
	Thresholds    report.Thresholds
	ExportPeriods int
}

// DefaultOptions groups by staff ID, grades at 15%/10% and exports six periods
func DefaultOptions() Options {
	return Options{
		GroupBy:       report.GroupByStaffID,
		Thresholds:    report.DefaultThresholds,
		ExportPeriods: 6,
	}
}

// OptionsFromPercents builds Options from plain configuration values
func OptionsFromPercents(groupBy string, ideal, average float64, exportPeriods int) (Options, error) {
	by, err := report.ParseGroupBy(groupBy)
	if err != nil {
		return Options{}, err
	}
	return Options{
		GroupBy: by,
		Thresholds: report.Thresholds{
			Ideal:   decimal.NewFromFloat(ideal),
			Average: decimal.NewFromFloat(average),
		},
		ExportPeriods: exportPeriods,
	}, nil
}

// ReportService answers the dashboard questions over stored records
type ReportService struct {
	staffRepo  sales.StaffRepository
	recordRepo sales.RecordRepository
	opts       Options
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	staffRepo sales.StaffRepository,
	recordRepo sales.RecordRepository,
	opts Options,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.GroupBy == "" {
		opts.GroupBy = report.GroupByStaffID
	}
	if opts.ExportPeriods <= 0 {
		opts.ExportPeriods = DefaultOptions().ExportPeriods
	}
	return &ReportService{
		staffRepo:  staffRepo,
		recordRepo: recordRepo,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ReportService) aggregateOptions() report.AggregateOptions {
	return report.AggregateOptions{GroupBy: s.opts.GroupBy}
}

func (s *ReportService) recordsFor(ctx context.Context, filter sales.RecordFilter) ([]sales.SalesRecord, error) {
	records, err := s.recordRepo.FindBy(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("records loaded",
		zap.String("year", filter.Year),
		zap.Int("count", len(records)))
	return records, nil
}

// StaffSummary returns the per-staff table of a year ordered by total
// profit, each row graded against the configured thresholds.
func (s *ReportService) StaffSummary(ctx context.Context, year string) (*report.StaffTable, error) {
	records, err := s.recordsFor(ctx, sales.RecordFilter{Year: year})
	if err != nil {
		return nil, err
	}
	return &report.StaffTable{
		Year:        year,
		GeneratedAt: s.now(),
		Thresholds:  s.opts.Thresholds,
		Rows:        report.BuildStaffSummary(records, s.aggregateOptions(), s.opts.Thresholds),
	}, nil
}

// Highlights returns the leaders of a year by profit, margin and expense share
func (s *ReportService) Highlights(ctx context.Context, year string) (report.Highlights, error) {
	records, err := s.recordsFor(ctx, sales.RecordFilter{Year: year})
	if err != nil {
		return report.Highlights{}, err
	}
	return report.PickHighlights(report.AggregateByStaff(records, s.aggregateOptions()).Totals()), nil
}

// Ranking orders the staff of a year by the named metric
func (s *ReportService) Ranking(ctx context.Context, year, metric string) ([]report.RankedEntry, error) {
	m, err := report.ParseRankMetric(metric)
	if err != nil {
		return nil, err
	}
	records, err := s.recordsFor(ctx, sales.RecordFilter{Year: year})
	if err != nil {
		return nil, err
	}
	return report.Rank(report.AggregateByStaff(records, s.aggregateOptions()).Totals(), m), nil
}

// MonthlyPerformance is one staff member's variance chain
type MonthlyPerformance struct {
	StaffID   uuid.UUID
	StaffName string
	Periods   []report.PeriodVariance
}

// MonthlyPerformance compares every period of a staff member with the one
// before it. Deleted staff are still reported from their records.
func (s *ReportService) MonthlyPerformance(ctx context.Context, staffID uuid.UUID) (*MonthlyPerformance, error) {
	name, err := s.staffName(ctx, staffID)
	if err != nil {
		return nil, err
	}
	records, err := s.recordsFor(ctx, sales.RecordFilter{StaffID: &staffID})
	if err != nil {
		return nil, err
	}
	if name == "" {
		if len(records) == 0 {
			return nil, sales.ErrStaffNotFound
		}
		name = records[0].StaffName
	}
	return &MonthlyPerformance{
		StaffID:   staffID,
		StaffName: name,
		Periods:   report.VarianceChain(records),
	}, nil
}

// staffName returns "" for an unknown staff member
func (s *ReportService) staffName(ctx context.Context, staffID uuid.UUID) (string, error) {
	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return staff.Name, nil
}

// RatedRecord is a record graded against the average sales of its set
type RatedRecord struct {
	Record sales.SalesRecord
	Rating report.Rating
}

// Analysis is the statistics view of a year, optionally for one staff name
type Analysis struct {
	Year       string
	StaffName  string
	Statistics report.Statistics
	Series     []report.MonthTotals
	Ratings    []RatedRecord
}

// Analysis summarizes the records of a year. When staffName is given only
// that name's records count and each one is rated against their average.
func (s *ReportService) Analysis(ctx context.Context, year, staffName string) (*Analysis, error) {
	records, err := s.recordsFor(ctx, sales.RecordFilter{Year: year})
	if err != nil {
		return nil, err
	}
	if staffName != "" {
		filtered := records[:0:0]
		for _, r := range records {
			if r.StaffName == staffName {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	a := &Analysis{
		Year:       year,
		StaffName:  staffName,
		Statistics: report.Summarize(records),
		Series:     report.AggregateByMonth(records),
	}
	if staffName != "" {
		for _, r := range records {
			a.Ratings = append(a.Ratings, RatedRecord{
				Record: r,
				Rating: report.Rate(r.Sales, a.Statistics.AverageSales),
			})
		}
	}
	return a, nil
}

// PerformanceExport builds the printable report of the most recent periods
// of one staff member, or of every record when staffID is nil.
func (s *ReportService) PerformanceExport(ctx context.Context, staffID *uuid.UUID) (*report.PerformanceReport, error) {
	records, err := s.recordsFor(ctx, sales.RecordFilter{StaffID: staffID})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	rep := report.BuildPerformanceReport(records, s.opts.ExportPeriods)
	rep.GeneratedAt = s.now()
	return &rep, nil
}
