package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blopes/rota-scheduler/internal/database"
)

func TestInitializeCreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rota.db")
	db, err := database.Initialize(dbPath)
	require.NoError(t, err)
	defer db.Close()

	tables := []string{"settings", "consultants", "leave_requests", "bank_holidays", "solve_runs"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "expected table %q to exist", table)
		require.Equal(t, table, name)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rota.db")
	db1, err := database.Initialize(dbPath)
	require.NoError(t, err)
	db1.Close()

	db2, err := database.Initialize(dbPath)
	require.NoError(t, err)
	defer db2.Close()
}
