package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStaffRepository()

	ana, _ := sales.NewStaffMember("Ana", "", nil)
	bruno, _ := sales.NewStaffMember("Bruno", "", nil)
	ana2, _ := sales.NewStaffMember("Ana", "999", nil)
	for _, s := range []*sales.StaffMember{ana, bruno, ana2} {
		require.NoError(t, repo.Save(ctx, s))
	}

	t.Run("lists in insertion order", func(t *testing.T) {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []uuid.UUID{ana.ID, bruno.ID, ana2.ID}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("find by name returns the first match", func(t *testing.T) {
		got, err := repo.FindByName(ctx, "Ana")
		require.NoError(t, err)
		assert.Equal(t, ana.ID, got.ID)

		_, err = repo.FindByName(ctx, "Carla")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save replaces in place", func(t *testing.T) {
		require.NoError(t, bruno.Update("Bruno Lima", "", nil))
		require.NoError(t, repo.Save(ctx, bruno))

		got, err := repo.FindByID(ctx, bruno.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bruno Lima", got.Name)

		list, _ := repo.List(ctx)
		assert.Len(t, list, 3)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		got, err := repo.FindByID(ctx, ana.ID)
		require.NoError(t, err)
		got.Name = "changed"

		again, _ := repo.FindByID(ctx, ana.ID)
		assert.Equal(t, "Ana", again.Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, ana.ID))
		_, err := repo.FindByID(ctx, ana.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, ana.ID), shared.ErrNotFound)

		got, err := repo.FindByName(ctx, "Ana")
		require.NoError(t, err)
		assert.Equal(t, ana2.ID, got.ID)
	})
}

func newRecord(t *testing.T, staff *sales.StaffMember, month, year string, amount int64) *sales.SalesRecord {
	t.Helper()
	period, err := sales.NewPeriod(month, year)
	require.NoError(t, err)
	r, err := sales.NewSalesRecord(staff, period, sales.Amounts{Sales: decimal.NewFromInt(amount)})
	require.NoError(t, err)
	return r
}

func TestRecordRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository()
	ana, _ := sales.NewStaffMember("Ana", "", nil)
	bruno, _ := sales.NewStaffMember("Bruno", "", nil)

	mar := newRecord(t, ana, "03", "2024", 300)
	jan := newRecord(t, ana, "01", "2024", 100)
	dec := newRecord(t, bruno, "12", "2023", 50)
	for _, r := range []*sales.SalesRecord{mar, jan, dec} {
		require.NoError(t, repo.Save(ctx, r))
	}

	t.Run("lists chronologically", func(t *testing.T) {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, dec.ID, list[0].ID)
		assert.Equal(t, jan.ID, list[1].ID)
		assert.Equal(t, mar.ID, list[2].ID)
	})

	t.Run("filters by year and staff", func(t *testing.T) {
		byYear, err := repo.FindBy(ctx, sales.RecordFilter{Year: "2024"})
		require.NoError(t, err)
		assert.Len(t, byYear, 2)

		byStaff, err := repo.FindBy(ctx, sales.RecordFilter{StaffID: &bruno.ID})
		require.NoError(t, err)
		require.Len(t, byStaff, 1)
		assert.Equal(t, dec.ID, byStaff[0].ID)
	})

	t.Run("detects existing period", func(t *testing.T) {
		exists, err := repo.ExistsForPeriod(ctx, ana.ID, sales.Period{Month: "01", Year: "2024"})
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsForPeriod(ctx, bruno.ID, sales.Period{Month: "01", Year: "2024"})
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rejects a duplicate period", func(t *testing.T) {
		dup := newRecord(t, ana, "01", "2024", 999)
		assert.ErrorIs(t, repo.Save(ctx, dup), sales.ErrDuplicatePeriod)

		require.NoError(t, repo.Save(ctx, jan), "re-saving the same record is allowed")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, jan.ID))
		assert.ErrorIs(t, repo.Delete(ctx, jan.ID), shared.ErrNotFound)
		_, err := repo.FindByID(ctx, jan.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestRecordRepository_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository()
	ana, _ := sales.NewStaffMember("Ana", "", nil)

	var wg sync.WaitGroup
	errs := make([]error, 12)
	for i := range 12 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			period := sales.Period{Month: "01", Year: "2024"}
			r := sales.NewSalesRecordWithID(uuid.New(), ana.ID, ana.Name, period, sales.Amounts{})
			errs[i] = repo.Save(ctx, r)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, sales.ErrDuplicatePeriod)
		}
	}
	assert.Equal(t, 1, ok)
}
