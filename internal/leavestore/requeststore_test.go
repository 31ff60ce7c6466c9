package leavestore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blopes/rota-scheduler/internal/leavestore"
	"github.com/blopes/rota-scheduler/internal/rota"
)

func newStore(t *testing.T) *leavestore.RequestStore {
	t.Helper()
	store, err := leavestore.NewRequestStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	store := newStore(t)
	_, err := store.Create("Alice", "2025-01-10", "2025-01-05", leavestore.Annual, true, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, rota.ErrLeaveValidation))
}

func TestCreateThenListRoundTrips(t *testing.T) {
	store := newStore(t)
	req, err := store.Create("Bob", "2025-02-01", "2025-02-05", leavestore.Annual, true, "ski trip")
	require.NoError(t, err)
	require.NotEmpty(t, req.RequestID)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].Name)
	assert.Equal(t, leavestore.Annual, list[0].LeaveType)
}

func TestDeleteRemovesRequest(t *testing.T) {
	store := newStore(t)
	req, err := store.Create("Carol", "2025-03-01", "2025-03-02", leavestore.Study, true, "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(req.RequestID))

	list, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListSortedByStartDateThenName(t *testing.T) {
	store := newStore(t)
	_, err := store.Create("Zara", "2025-01-01", "2025-01-02", leavestore.Annual, true, "")
	require.NoError(t, err)
	_, err = store.Create("Amy", "2025-01-01", "2025-01-02", leavestore.Annual, true, "")
	require.NoError(t, err)
	_, err = store.Create("Bob", "2024-12-01", "2024-12-02", leavestore.Annual, true, "")
	require.NoError(t, err)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Bob", list[0].Name)
	assert.Equal(t, "Amy", list[1].Name)
	assert.Equal(t, "Zara", list[2].Name)
}

func TestToLeaveSetSkipsUnapproved(t *testing.T) {
	store := newStore(t)
	_, err := store.Create("Dan", "2025-01-06", "2025-01-07", leavestore.Annual, true, "")
	require.NoError(t, err)
	_, err = store.Create("Eve", "2025-01-06", "2025-01-07", leavestore.Annual, false, "")
	require.NoError(t, err)

	requests, err := store.List()
	require.NoError(t, err)

	set, err := leavestore.ToLeaveSet(requests)
	require.NoError(t, err)

	assert.True(t, set.On("Dan", date("2025-01-06")))
	assert.True(t, set.On("Dan", date("2025-01-07")))
	assert.False(t, set.On("Eve", date("2025-01-06")))
}
