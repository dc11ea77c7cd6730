package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("strips UTF-8 BOM", func(t *testing.T) {
		p, err := NewCSVParser(strings.NewReader("\xEF\xBB\xBFstaff,month,sales\nAna,01,1000"))
		require.NoError(t, err)
		require.NoError(t, p.ParseHeader())
		assert.Equal(t, ColumnStaff, p.Headers()[0])
	})

	t.Run("empty file", func(t *testing.T) {
		p, err := NewCSVParser(strings.NewReader("  \n"))
		assert.ErrorIs(t, err, ErrEmptyFile)
		assert.Nil(t, p)
	})

	t.Run("rejects non UTF-8", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader("staff\n\xff\xfe\xfd"))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("sniffs semicolon delimiter", func(t *testing.T) {
		p, err := NewCSVParser(strings.NewReader("setorista;mês;vendas\nAna;01;1.000,50"))
		require.NoError(t, err)
		assert.Equal(t, ';', p.Delimiter())
		require.NoError(t, p.ParseHeader())

		row, err := p.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "1.000,50", row.Get(ColumnSales))
	})

	t.Run("explicit delimiter wins", func(t *testing.T) {
		p, err := NewCSVParser(strings.NewReader("a;b,c"), WithDelimiter(','))
		require.NoError(t, err)
		assert.Equal(t, ',', p.Delimiter())
	})
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		" Staff ":   ColumnStaff,
		"Vendedor":  ColumnStaff,
		"MÊS":       ColumnMonth,
		"ano":       ColumnYear,
		"Comissão":  ColumnCommission,
		"despesas":  ColumnExpenses,
		"Bônus":     ColumnBonus,
		"something": "something",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeHeader(in), in)
	}
}

func TestParseHeader(t *testing.T) {
	p, err := ParseFromBytes([]byte("Staff, Month ,Sales\n"))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	assert.True(t, p.HasHeader(ColumnMonth))
	assert.Equal(t, []string{ColumnYear}, p.ValidateHeaders([]string{ColumnStaff, ColumnYear}))
}

func TestReadRow(t *testing.T) {
	p, err := ParseFromBytes([]byte("staff,month,year,sales\nAna,01\n"))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	row, err := p.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, 2, row.LineNumber)
	assert.Equal(t, "Ana", row.Get(ColumnStaff))
	assert.Equal(t, "", row.Get(ColumnSales))

	_, err = p.ReadRow()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 1, p.TotalRows())
}

func TestReadAllRows_SkipsBlankLines(t *testing.T) {
	p, err := ParseFromBytes([]byte("staff,sales\nAna,10\n,\nBruno,20\n"))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	rows, err := p.ReadAllRows(NewErrorCollection(10))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bruno", rows[1].Get(ColumnStaff))
	assert.Equal(t, 4, rows[1].LineNumber)
}

func TestReadSalesRows(t *testing.T) {
	t.Run("maps columns and reports missing values", func(t *testing.T) {
		data := "staff,month,year,sales,commission,bonus,expenses\n" +
			"Ana,01,2024,1000,100,50,0\n" +
			"Bruno,,2024,900,0,0,0\n" +
			"\"Carla, Jr\",02,,\"1.200,00\",,,\n"

		file, err := ReadSalesRows(strings.NewReader(data), 10)
		require.NoError(t, err)
		rows, errs := file.Rows, file.Errors
		require.Len(t, rows, 2)
		assert.Equal(t, 1, file.Rejected)

		assert.Equal(t, SalesRow{
			Line: 2, Staff: "Ana", Month: "01", Year: "2024",
			Sales: "1000", Commission: "100", Bonus: "50", Expenses: "0",
		}, rows[0])
		assert.Equal(t, "Carla, Jr", rows[1].Staff)
		assert.Equal(t, "1.200,00", rows[1].Sales)
		assert.Equal(t, 4, rows[1].Line)

		require.Equal(t, 1, errs.TotalCount())
		assert.Equal(t, 3, errs.Errors()[0].Row)
		assert.Equal(t, ColumnMonth, errs.Errors()[0].Column)
		assert.Equal(t, ErrCodeImportRequiredField, errs.Errors()[0].Code)
	})

	t.Run("missing required columns", func(t *testing.T) {
		_, err := ReadSalesRows(strings.NewReader("staff,year\nAna,2024\n"), 10)
		assert.ErrorIs(t, err, ErrMissingColumns)
		assert.Contains(t, err.Error(), "month")
	})
}

func TestReadSalesRows_RejectedCountsLines(t *testing.T) {
	file, err := ReadSalesRows(strings.NewReader("staff,month,sales\nAna,,\n"), 10)
	require.NoError(t, err)
	assert.Empty(t, file.Rows)
	assert.Equal(t, 1, file.Rejected)
	assert.Equal(t, 2, file.Errors.TotalCount())
}

func TestErrorCollection(t *testing.T) {
	ec := NewErrorCollection(1)
	assert.Equal(t, "no errors", ec.String())

	ec.AddRequiredError(2, ColumnStaff)
	ec.AddFormatError(3, ColumnMonth, "invalid month", "13")

	assert.True(t, ec.HasErrors())
	assert.True(t, ec.IsTruncated())
	assert.Equal(t, 1, ec.Count())
	assert.Equal(t, 2, ec.TotalCount())
	assert.Contains(t, ec.String(), "row 2, column 'staff'")
	assert.Contains(t, ec.String(), "and 1 more")
}
