package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	reportapp "github.com/salesdash/backend/internal/application/report"
	"github.com/salesdash/backend/internal/domain/shared"
	"github.com/salesdash/backend/internal/infrastructure/config"
	"github.com/salesdash/backend/internal/infrastructure/persistence/memory"
	"github.com/salesdash/backend/internal/infrastructure/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	f := printing.DefaultFormatter()
	html, err := printing.NewHTMLRenderer(f)
	require.NoError(t, err)

	var out bytes.Buffer
	a, err := newApp(appDeps{
		staffRepo:  memory.NewStaffRepository(),
		recordRepo: memory.NewRecordRepository(),
		report: config.ReportConfig{
			GroupBy:              "staff_id",
			ExportPeriods:        6,
			IdealProfitPercent:   15,
			AverageProfitPercent: 10,
		},
		formatter: f,
		renderers: map[reportapp.Format]reportapp.Renderer{
			reportapp.FormatHTML: html,
			reportapp.FormatXLSX: printing.NewXLSXRenderer(f),
		},
		logger: zap.NewNop(),
		stdout: &out,
	})
	require.NoError(t, err)
	return a, &out
}

// seedAna registers Ana with one record and returns her ID
func seedAna(t *testing.T, a *app, out *bytes.Buffer) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, a.dispatch(ctx, []string{"staff", "add", "-name", "Ana", "-phone", "11 99999-0000"}))
	staff, err := a.staff.List(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	id := staff[0].ID.String()

	require.NoError(t, a.dispatch(ctx, []string{"record", "add",
		"-staff", id, "-month", "1", "-year", "2024", "-sales", "1.000,00", "-commission", "100"}))
	out.Reset()
	return id
}

func TestDispatch_StaffAndRecords(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.dispatch(ctx, []string{"staff", "add", "-name", "Ana"}))
	assert.Contains(t, out.String(), "Staff member registered: Ana")

	staff, err := a.staff.List(ctx)
	require.NoError(t, err)
	id := staff[0].ID.String()

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"record", "add",
		"-staff", id, "-month", "1", "-year", "2024", "-sales", "1000", "-commission", "100"}))
	assert.Contains(t, out.String(), "Sales record added for Ana, 01/2024: net profit R$ 900,00")

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"record", "list", "-year", "2024"}))
	assert.Contains(t, out.String(), "NET PROFIT")
	assert.Contains(t, out.String(), "R$ 1.000,00")

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"staff", "list"}))
	assert.Contains(t, out.String(), id)
}

func TestDispatch_Reports(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	id := seedAna(t, a, out)

	require.NoError(t, a.dispatch(ctx, []string{"report", "summary", "-year", "2024"}))
	assert.Contains(t, out.String(), "Staff summary - 2024 (1 staff)")
	assert.Contains(t, out.String(), "Ideal")
	assert.Contains(t, out.String(), "90,0%")

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"report", "ranking", "-by", "vendas"}))
	assert.Contains(t, out.String(), "total_sales")
	assert.Contains(t, out.String(), "R$ 1.000,00")

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"report", "highlights"}))
	assert.Contains(t, out.String(), "Highest profit")

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"report", "performance", "-staff", id}))
	assert.Contains(t, out.String(), "Monthly performance - Ana")
	assert.Contains(t, out.String(), "01/2024")

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"report", "analysis", "-name", "Ana"}))
	assert.Contains(t, out.String(), "Regular")

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"report", "years"}))
	assert.Equal(t, "2024\n", out.String())
}

func TestDispatch_Export(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	seedAna(t, a, out)
	dir := t.TempDir()

	path := filepath.Join(dir, "resumo.html")
	require.NoError(t, a.dispatch(ctx, []string{"export", "staff", "-year", "2024", "-out", path}))
	assert.Contains(t, out.String(), "Report written to "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Resumo Comparativo de Setoristas - 2024")

	xlsx := filepath.Join(dir, "desempenho.bin")
	require.NoError(t, a.dispatch(ctx, []string{"export", "performance", "-format", "xlsx", "-out", xlsx}))
	data, err = os.ReadFile(xlsx)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))

	pdf := filepath.Join(dir, "resumo.pdf")
	err = a.dispatch(ctx, []string{"export", "staff", "-out", pdf})
	assert.ErrorIs(t, err, reportapp.ErrUnsupportedFormat)
	assert.NoFileExists(t, pdf)
}

func TestDispatch_Import(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	seedAna(t, a, out)

	path := filepath.Join(t.TempDir(), "vendas.csv")
	csv := "setorista;mês;ano;vendas\nAna;02;2024;500\nZé;02;2024;100\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	require.NoError(t, a.dispatch(ctx, []string{"import", "csv", path}))
	assert.Contains(t, out.String(), "Rows: 2  imported: 1")
	assert.Contains(t, out.String(), "row 3")
}

func TestDispatch_Errors(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	assert.ErrorIs(t, a.dispatch(ctx, nil), errUsage)
	assert.ErrorIs(t, a.dispatch(ctx, []string{"staff"}), errUsage)
	assert.ErrorIs(t, a.dispatch(ctx, []string{"staff", "fire"}), errUsage)
	assert.ErrorIs(t, a.dispatch(ctx, []string{"import", "csv"}), errUsage)
	assert.ErrorIs(t, a.dispatch(ctx, []string{"staff", "list", "-h"}), errUsage)

	err := a.dispatch(ctx, []string{"staff", "delete", "-id", "nope"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_ID", de.Code)

	err = a.dispatch(ctx, []string{"staff", "add"})
	assert.Equal(t, "Staff name is required (NAME_REQUIRED)", describe(err))
}
