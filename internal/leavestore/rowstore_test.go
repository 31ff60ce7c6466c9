package leavestore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blopes/rota-scheduler/internal/leavestore"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRowStoreDeleteTombstonesRow(t *testing.T) {
	store := leavestore.NewRowStore()
	row := store.Append(&leavestore.LeaveRow{Name: "Alice", StartDate: date("2025-01-06"), EndDate: date("2025-01-07"), Approved: true})

	store.Delete(row)

	assert.Nil(t, store.Get(row))
	assert.Equal(t, row, store.NextEmptyRow(), "a tombstoned row is reused before growing the sheet")
}

func TestRowStoreAppendSkipsOccupiedRows(t *testing.T) {
	store := leavestore.NewRowStore()
	first := store.Append(&leavestore.LeaveRow{Name: "Alice", StartDate: date("2025-01-06"), EndDate: date("2025-01-06"), Approved: true})
	second := store.Append(&leavestore.LeaveRow{Name: "Bob", StartDate: date("2025-01-06"), EndDate: date("2025-01-06"), Approved: true})
	require.NotEqual(t, first, second)

	store.Delete(first)
	reused := store.Append(&leavestore.LeaveRow{Name: "Carol", StartDate: date("2025-01-06"), EndDate: date("2025-01-06"), Approved: true})
	assert.Equal(t, first, reused)
}

func TestRowStoreToLeaveSetSkipsUnapproved(t *testing.T) {
	store := leavestore.NewRowStore()
	store.Append(&leavestore.LeaveRow{Name: "Alice", StartDate: date("2025-01-06"), EndDate: date("2025-01-07"), Approved: true})
	store.Append(&leavestore.LeaveRow{Name: "Bob", StartDate: date("2025-01-06"), EndDate: date("2025-01-07"), Approved: false})

	set := store.ToLeaveSet()
	assert.True(t, set.On("Alice", date("2025-01-06")))
	assert.False(t, set.On("Bob", date("2025-01-06")))
}
