package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	reportapp "github.com/salesdash/backend/internal/application/report"
	salesapp "github.com/salesdash/backend/internal/application/sales"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
	"github.com/salesdash/backend/internal/infrastructure/config"
	"github.com/salesdash/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// errUsage means the arguments did not name a command
var errUsage = errors.New("usage")

type appDeps struct {
	staffRepo  sales.StaffRepository
	recordRepo sales.RecordRepository
	report     config.ReportConfig
	formatter  *printing.Formatter
	renderers  map[reportapp.Format]reportapp.Renderer
	logger     *zap.Logger
	stdout     io.Writer
}

// app holds the wired services the commands run against
type app struct {
	staff   *salesapp.StaffService
	records *salesapp.RecordService
	imports *salesapp.ImportService
	reports *reportapp.ReportService
	exports *reportapp.ExportService
	format  *printing.Formatter
	out     io.Writer
}

func newApp(d appDeps) (*app, error) {
	opts, err := reportapp.OptionsFromPercents(d.report.GroupBy,
		d.report.IdealProfitPercent, d.report.AverageProfitPercent, d.report.ExportPeriods)
	if err != nil {
		return nil, err
	}

	records := salesapp.NewRecordService(d.staffRepo, d.recordRepo, d.logger)
	reports := reportapp.NewReportService(d.staffRepo, d.recordRepo, opts, d.logger)
	return &app{
		staff:   salesapp.NewStaffService(d.staffRepo, d.logger),
		records: records,
		imports: salesapp.NewImportService(d.staffRepo, d.recordRepo, records, d.logger),
		reports: reports,
		exports: reportapp.NewExportService(reports, d.renderers, d.logger),
		format:  d.formatter,
		out:     d.stdout,
	}, nil
}

type command func(ctx context.Context, args []string) error

func (a *app) commands() map[string]map[string]command {
	return map[string]map[string]command{
		"staff": {
			"add":    a.staffAdd,
			"list":   a.staffList,
			"update": a.staffUpdate,
			"delete": a.staffDelete,
		},
		"record": {
			"add":    a.recordAdd,
			"list":   a.recordList,
			"delete": a.recordDelete,
		},
		"import": {
			"csv":    a.importCSV,
			"legacy": a.importLegacy,
		},
		"report": {
			"summary":     a.reportSummary,
			"highlights":  a.reportHighlights,
			"ranking":     a.reportRanking,
			"performance": a.reportPerformance,
			"analysis":    a.reportAnalysis,
			"years":       a.reportYears,
		},
		"export": {
			"staff":       a.exportStaff,
			"performance": a.exportPerformance,
		},
	}
}

// dispatch runs "<group> <command> [flags]"
func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	group, ok := a.commands()[args[0]]
	if !ok {
		return errUsage
	}
	cmd, ok := group[args[1]]
	if !ok {
		return errUsage
	}
	return cmd(ctx, args[2:])
}

// describe renders an error for the terminal, with the code of domain errors
func describe(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return fmt.Sprintf("%s (%s)", de.Message, de.Code)
	}
	return err.Error()
}
