package printing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLRenderer_StaffTable(t *testing.T) {
	r, err := NewHTMLRenderer(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderStaffTable(context.Background(), &buf, staffTable()))
	out := buf.String()

	assert.Contains(t, out, "Resumo Comparativo de Setoristas - 2024")
	assert.Contains(t, out, "Total de 2 setoristas analisados")
	assert.Contains(t, out, "1º")
	assert.Contains(t, out, "2º")
	assert.Contains(t, out, "R$ 1.000,00")
	assert.Contains(t, out, "-R$ 50,00")
	assert.Contains(t, out, `class="status-ideal"`)
	assert.Contains(t, out, `class="status-melhorar"`)
	assert.Contains(t, out, "lucro-negativo")
	assert.Contains(t, out, "15,0%")
	assert.Contains(t, out, "Relatório gerado em 10/05/2024 14:30")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Ana")), bytes.Index(buf.Bytes(), []byte("Bruno")))
}

func TestHTMLRenderer_StaffTable_AllYears(t *testing.T) {
	r, err := NewHTMLRenderer(nil)
	require.NoError(t, err)

	table := staffTable()
	table.Year = ""
	var buf bytes.Buffer
	require.NoError(t, r.RenderStaffTable(context.Background(), &buf, table))
	assert.Contains(t, buf.String(), "Todos os anos")
}

func TestHTMLRenderer_Performance(t *testing.T) {
	r, err := NewHTMLRenderer(nil)
	require.NoError(t, err)

	rep := performanceReport(
		record(anaID, "Ana", "02", "1200", "0"),
		record(anaID, "Ana", "01", "1000", "0"),
	)
	var buf bytes.Buffer
	require.NoError(t, r.RenderPerformance(context.Background(), &buf, rep))
	out := buf.String()

	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Janeiro/2024 (Primeiro período)")
	assert.Contains(t, out, "Fevereiro/2024 (vs Janeiro/2024)")
	assert.Contains(t, out, "20,0%")
	assert.Contains(t, out, "R$ 200,00")
	assert.Contains(t, out, "R$ 2.200,00")
	assert.Contains(t, out, "R$ 1.100,00")
	assert.Contains(t, out, `class="pct increase"`)
}

func TestHTMLRenderer_Performance_MixedStaff(t *testing.T) {
	r, err := NewHTMLRenderer(nil)
	require.NoError(t, err)

	rep := performanceReport(
		record(anaID, "Ana", "01", "1000", "0"),
		record(brunoID, "Bruno", "02", "500", "0"),
	)
	var buf bytes.Buffer
	require.NoError(t, r.RenderPerformance(context.Background(), &buf, rep))
	assert.Contains(t, buf.String(), "Todos os Setoristas")
	assert.Contains(t, buf.String(), `class="pct decrease"`)
}
