package locker_test

import (
	"testing"
	"time"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) *locker.Locker {
	t.Helper()
	address, err := kernel.NewAddress("Warsaw", "Marszalkowska 12")
	require.NoError(t, err)
	l, err := locker.NewLocker(kernel.NewUUID(), "LOC1", address)
	require.NoError(t, err)
	return l
}

func TestNewLocker(t *testing.T) {
	t.Run("valid_locker", func(t *testing.T) {
		l := newTestLocker(t)

		require.NoError(t, l.Validate())
		assert.Equal(t, "LOC1", l.DeviceID())
		assert.Equal(t, "Warsaw", l.Address().City())
		assert.Empty(t, l.Cells())
	})

	t.Run("empty_device_id_rejected", func(t *testing.T) {
		address, _ := kernel.NewAddress("Warsaw", "Marszalkowska 12")
		_, err := locker.NewLocker(kernel.NewUUID(), "", address)
		require.Error(t, err)
	})

	t.Run("unconstructed_address_rejected", func(t *testing.T) {
		var address kernel.Address
		_, err := locker.NewLocker(kernel.NewUUID(), "LOC1", address)
		require.Error(t, err)
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var l locker.Locker
		require.Error(t, l.Validate())
	})
}

func TestLocker_AddCell(t *testing.T) {
	t.Run("adds_cells_in_code_order", func(t *testing.T) {
		l := newTestLocker(t)

		_, err := l.AddCell("B2", locker.Medium)
		require.NoError(t, err)
		_, err = l.AddCell("A1", locker.Small)
		require.NoError(t, err)

		cells := l.Cells()
		require.Len(t, cells, 2)
		assert.Equal(t, "A1", cells[0].Code())
		assert.Equal(t, "B2", cells[1].Code())
	})

	t.Run("duplicate_code_rejected", func(t *testing.T) {
		l := newTestLocker(t)
		_, err := l.AddCell("A1", locker.Small)
		require.NoError(t, err)

		_, err = l.AddCell("A1", locker.Large)
		require.ErrorIs(t, err, locker.ErrCellCodeAlreadyTaken)
		assert.Len(t, l.Cells(), 1)
	})
}

func TestLocker_FirstAllocatableCell(t *testing.T) {
	t.Run("returns_lowest_code_available_cell", func(t *testing.T) {
		l := newTestLocker(t)
		_, err := l.AddCell("B1", locker.Medium)
		require.NoError(t, err)
		_, err = l.AddCell("A1", locker.Small)
		require.NoError(t, err)

		cell := l.FirstAllocatableCell()
		require.NotNil(t, cell)
		assert.Equal(t, "A1", cell.Code())
	})

	t.Run("skips_inactive_and_non_available_cells", func(t *testing.T) {
		l := newTestLocker(t)
		a1, err := l.AddCell("A1", locker.Small)
		require.NoError(t, err)
		a2, err := l.AddCell("A2", locker.Small)
		require.NoError(t, err)
		_, err = l.AddCell("A3", locker.Small)
		require.NoError(t, err)

		a1.Deactivate()
		require.NoError(t, a2.Reserve(time.Now()))

		cell := l.FirstAllocatableCell()
		require.NotNil(t, cell)
		assert.Equal(t, "A3", cell.Code())
	})

	t.Run("returns_nil_when_nothing_qualifies", func(t *testing.T) {
		l := newTestLocker(t)
		cell, err := l.AddCell("A1", locker.Small)
		require.NoError(t, err)
		cell.Deactivate()

		assert.Nil(t, l.FirstAllocatableCell())
	})
}

func TestLocker_AvailableCellCount(t *testing.T) {
	l := newTestLocker(t)
	_, err := l.AddCell("A1", locker.Small)
	require.NoError(t, err)
	a2, err := l.AddCell("A2", locker.Medium)
	require.NoError(t, err)

	assert.Equal(t, 2, l.AvailableCellCount())

	require.NoError(t, a2.Reserve(time.Now()))
	assert.Equal(t, 1, l.AvailableCellCount())
}

func TestLocker_CellByID(t *testing.T) {
	l := newTestLocker(t)
	cell, err := l.AddCell("A1", locker.Small)
	require.NoError(t, err)

	found, err := l.CellByID(cell.ID())
	require.NoError(t, err)
	assert.True(t, found.IsEqual(cell))

	_, err = l.CellByID(kernel.NewUUID())
	require.ErrorIs(t, err, locker.ErrCellNotFound)
}

func TestRestoreLocker(t *testing.T) {
	address, err := kernel.NewAddress("Warsaw", "Marszalkowska 12")
	require.NoError(t, err)

	t.Run("restores_and_sorts_cells", func(t *testing.T) {
		b1, err := locker.NewCell(kernel.NewUUID(), "B1", locker.Medium)
		require.NoError(t, err)
		a1, err := locker.NewCell(kernel.NewUUID(), "A1", locker.Small)
		require.NoError(t, err)

		l, err := locker.RestoreLocker(kernel.NewUUID(), "LOC1", address, []*locker.Cell{b1, a1})

		require.NoError(t, err)
		cells := l.Cells()
		require.Len(t, cells, 2)
		assert.Equal(t, "A1", cells[0].Code())
	})

	t.Run("duplicate_codes_rejected", func(t *testing.T) {
		c1, err := locker.NewCell(kernel.NewUUID(), "A1", locker.Medium)
		require.NoError(t, err)
		c2, err := locker.NewCell(kernel.NewUUID(), "A1", locker.Small)
		require.NoError(t, err)

		_, err = locker.RestoreLocker(kernel.NewUUID(), "LOC1", address, []*locker.Cell{c1, c2})
		require.ErrorIs(t, err, locker.ErrCellCodeAlreadyTaken)
	})
}
