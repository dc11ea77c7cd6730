package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalesRecord(t *testing.T) {
	staff, err := NewStaffMember("Bruno", "", nil)
	require.NoError(t, err)
	period := Period{Month: "02", Year: "2024"}

	t.Run("copies staff name and computes profit", func(t *testing.T) {
		r, err := NewSalesRecord(staff, period, Amounts{
			Sales: dec("5000"), Commission: dec("500"), Bonus: dec("100"), Expenses: dec("400"),
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, r.ID)
		assert.Equal(t, staff.ID, r.StaffID)
		assert.Equal(t, "Bruno", r.StaffName)
		assert.Equal(t, period, r.Period())
		assert.True(t, r.NetProfit.Equal(dec("4000")))
		assert.True(t, r.Profit().Equal(r.NetProfit))
	})

	t.Run("requires staff", func(t *testing.T) {
		_, err := NewSalesRecord(nil, period, Amounts{})
		assert.ErrorIs(t, err, ErrStaffRequired)
	})

	t.Run("profit ignores a stale stored value", func(t *testing.T) {
		r := NewSalesRecordWithID(uuid.New(), staff.ID, staff.Name, period, Amounts{Sales: dec("100"), Expenses: dec("10")})
		r.NetProfit = dec("110")
		assert.True(t, r.Profit().Equal(dec("90")))
	})
}

func TestRecordFilter_Matches(t *testing.T) {
	id := uuid.New()
	r := SalesRecord{StaffID: id, Month: "01", Year: "2024"}
	other := uuid.New()

	assert.True(t, RecordFilter{}.Matches(r))
	assert.True(t, RecordFilter{Year: "2024"}.Matches(r))
	assert.False(t, RecordFilter{Year: "2023"}.Matches(r))
	assert.True(t, RecordFilter{StaffID: &id}.Matches(r))
	assert.False(t, RecordFilter{Year: "2024", StaffID: &other}.Matches(r))
}
