package sales

import (
	"context"
	"strings"
	"testing"

	"github.com/salesdash/backend/internal/domain/sales"
	csvimport "github.com/salesdash/backend/internal/infrastructure/import"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportService_ImportCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.register(t, "Ana")
	f.register(t, "Bruno")

	data := "setorista;mês;ano;vendas;comissão;bônus;despesas\n" +
		"Ana;01;2024;1.000,00;100;50;0\n" +
		"Ana;01;2024;500;0;0;0\n" +
		"Carla;01;2024;500;0;0;0\n" +
		"Bruno;13;2024;500;0;0;0\n" +
		"Bruno;02;;700;;;\n" +
		";02;2024;;;;\n"

	result, err := f.imports.ImportCSV(ctx, strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalRows)
	assert.Equal(t, 2, result.ImportedRows)
	assert.Equal(t, 4, result.ErrorRows)
	assert.Equal(t, 5, result.TotalErrors)

	codes := make(map[int]string)
	for _, e := range result.Errors {
		if _, seen := codes[e.Row]; !seen {
			codes[e.Row] = e.Code
		}
	}
	assert.Equal(t, csvimport.ErrCodeImportRequiredField, codes[7])
	assert.Equal(t, csvimport.ErrCodeImportDuplicateInFile, codes[3])
	assert.Equal(t, csvimport.ErrCodeImportReferenceNotFound, codes[4])
	assert.Equal(t, csvimport.ErrCodeImportInvalidFormat, codes[5])

	records, err := f.recordRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ana.ID, records[0].StaffID)
	assert.True(t, decimal.NewFromInt(850).Equal(records[0].NetProfit))
	assert.Equal(t, "2024", records[1].Year, "year defaults to the current year")

	assert.NotEmpty(t, f.logs.FilterMessage("import row skipped").All())
}

func TestImportService_ImportCSV_Duplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.register(t, "Ana")
	_, err := f.records.Add(ctx, AddRecordRequest{StaffID: ana.ID.String(), Month: "03", Year: "2024", Sales: "100"})
	require.NoError(t, err)

	data := "staff,month,year,sales\n" +
		"Ana,03,2024,200\n" +
		"Ana,04,,300\n" +
		"Ana,04,2024,400\n" +
		"Ana,05,2023,500\n"

	result, err := f.imports.ImportCSV(ctx, strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, result.ImportedRows)
	assert.Equal(t, 2, result.ErrorRows)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, csvimport.ErrCodeImportDuplicateInDB, result.Errors[0].Code)
	assert.Equal(t, 4, result.Errors[1].Row, "blank year defaults to the current year")
	assert.Equal(t, csvimport.ErrCodeImportDuplicateInFile, result.Errors[1].Code)

	records, err := f.recordRepo.FindBy(ctx, sales.RecordFilter{StaffID: &ana.ID})
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestImportService_ImportCSV_BadHeader(t *testing.T) {
	f := newFixture(t)
	_, err := f.imports.ImportCSV(context.Background(), strings.NewReader("foo,bar\n1,2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

const legacyDumpJSON = `{
  "setoristas": [
    {"id": "1700000000001", "nome": "Ana", "telefone": "11 9999", "dataContratacao": "2023-01-15"},
    {"id": "1700000000002", "nome": "Bruno", "telefone": "", "dataContratacao": ""}
  ],
  "dadosVendas": [
    {"id": "1", "setoristaId": "1700000000001", "setoristaName": "Ana", "mes": "01", "ano": "2024",
     "vendas": 1000, "comissao": 100, "bonus": 50, "despesas": 0, "lucroLiquido": 1150},
    {"id": "2", "vendedorId": "1700000000002", "vendedorNome": "Bruno", "mes": "02", "ano": "2024",
     "vendas": "500", "comissao": null, "bonus": 0, "despesas": 25, "lucroLiquido": 475},
    {"id": "3", "setoristaId": "1700000000001", "mes": "01", "ano": "2024",
     "vendas": 10, "comissao": 0, "bonus": 0, "despesas": 0, "lucroLiquido": 10},
    {"id": "4", "setoristaId": "1700000000002", "mes": "14", "ano": "2024",
     "vendas": 10, "comissao": 0, "bonus": 0, "despesas": 0, "lucroLiquido": 10}
  ]
}`

func TestImportService_ImportLegacy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.imports.ImportLegacy(ctx, strings.NewReader(legacyDumpJSON))
	require.NoError(t, err)

	assert.Equal(t, 2, result.StaffImported)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 2, result.ImportedRows)
	assert.Equal(t, 2, result.ErrorRows)

	ana, err := f.staffRepo.FindByID(ctx, LegacyStaffID("1700000000001"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", ana.Name)
	require.NotNil(t, ana.HiredOn)

	rec, err := f.recordRepo.FindByID(ctx, LegacyRecordID("1"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(850).Equal(rec.NetProfit), "stored legacy profit is recomputed")

	bruno, err := f.recordRepo.FindByID(ctx, LegacyRecordID("2"))
	require.NoError(t, err)
	assert.Equal(t, "Bruno", bruno.StaffName)
	assert.Equal(t, LegacyStaffID("1700000000002"), bruno.StaffID)
	assert.True(t, decimal.NewFromInt(475).Equal(bruno.NetProfit))

	t.Run("reimport is idempotent", func(t *testing.T) {
		_, err := f.staff.Update(ctx, ana.ID, UpdateStaffRequest{Name: "Ana Paula", Phone: "11 8888"})
		require.NoError(t, err)

		again, err := f.imports.ImportLegacy(ctx, strings.NewReader(legacyDumpJSON))
		require.NoError(t, err)
		assert.Equal(t, 0, again.StaffImported)
		assert.Equal(t, 0, again.ImportedRows)
		assert.Equal(t, 2, again.SkippedRows)

		edited, err := f.staffRepo.FindByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana Paula", edited.Name, "reimport keeps later edits")
		assert.Equal(t, "11 8888", edited.Phone)

		records, err := f.recordRepo.FindBy(ctx, sales.RecordFilter{})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := f.imports.ImportLegacy(ctx, strings.NewReader("{"))
		assert.Error(t, err)
	})
}
