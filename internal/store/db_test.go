package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Config{Hostname: "local", Port: 0, Username: "test", Password: "test", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateUp_CreatesTilesTable(t *testing.T) {
	db := openTestDB(t)
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'tiles'").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "tiles", name)
}

func TestInsertTile_UpsertReplacesRow(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC()

	row := TileRow{X: 1, Y: 2, Z: 10, StartTime: now, EndTime: now.Add(time.Minute), DistinctVesselCount: 1}
	require.NoError(t, db.InsertTile(row))

	row.DistinctVesselCount = 2
	row.EndTime = now.Add(2 * time.Minute)
	require.NoError(t, db.InsertTile(row))

	var count int
	var vessels int
	err := db.QueryRow("SELECT COUNT(*), distinct_vessel_count FROM tiles WHERE x=1 AND y=2 AND z=10 GROUP BY distinct_vessel_count").Scan(&count, &vessels)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, 2, vessels)
}

func TestLoadConfig_MissingVar(t *testing.T) {
	t.Setenv("DB_HOSTNAME", "")
	_, err := LoadConfig()
	require.Error(t, err)
}
