package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	t.Run("accepts padded month", func(t *testing.T) {
		p, err := NewPeriod("03", "2024")
		require.NoError(t, err)
		assert.Equal(t, Period{Month: "03", Year: "2024"}, p)
	})

	t.Run("pads single digit month", func(t *testing.T) {
		p, err := NewPeriod("7", "2024")
		require.NoError(t, err)
		assert.Equal(t, "07", p.Month)
	})

	t.Run("rejects bad months", func(t *testing.T) {
		for _, m := range []string{"", "0", "13", "abc", "001"} {
			_, err := NewPeriod(m, "2024")
			assert.ErrorIs(t, err, ErrInvalidMonth, "month %q", m)
		}
	})

	t.Run("rejects bad years", func(t *testing.T) {
		for _, y := range []string{"", "24", "20245", "20a4"} {
			_, err := NewPeriod("01", y)
			assert.ErrorIs(t, err, ErrInvalidYear, "year %q", y)
		}
	})
}

func TestPeriod_Ordering(t *testing.T) {
	jan24 := Period{Month: "01", Year: "2024"}
	dec23 := Period{Month: "12", Year: "2023"}
	feb24 := Period{Month: "02", Year: "2024"}

	assert.True(t, dec23.Before(jan24))
	assert.True(t, jan24.Before(feb24))
	assert.False(t, feb24.Before(jan24))
	assert.False(t, jan24.Before(jan24))
	assert.Equal(t, "2024-01", jan24.Key())
	assert.Equal(t, "01/2024", jan24.String())
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Janeiro", MonthName("01"))
	assert.Equal(t, "Março", MonthName("03"))
	assert.Equal(t, "Dezembro", MonthName("12"))
	assert.Equal(t, "13", MonthName("13"))
	assert.Equal(t, "Março/2024", Period{Month: "03", Year: "2024"}.Label())
}
