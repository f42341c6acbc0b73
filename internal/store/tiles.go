package store

import (
	"time"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
	"github.com/halcyon-marine/aistrack/internal/raster"
)

// TileRow is the egress shape for one aggregated tile: all of raster.Tile's
// statistics plus the absolute (start, end) time range they cover.
type TileRow struct {
	X, Y, Z             int64
	StartTime, EndTime   time.Time
	MaxDraught          *float64
	DistinctVesselCount int
	MinSOG, MaxSOG      *float32
	MinLength, MaxLength *float64
	MinWidth, MaxWidth   *float64
	OccupationDuration  time.Duration
}

// InsertTile upserts one aggregated tile row, replacing any prior row
// for the same (x, y, z): the aggregator is the sole authority on a
// tile's resulting values, and the pipeline always recomputes the
// complete aggregate rather than incrementally patching a stored row.
func (db *DB) InsertTile(row TileRow) error {
	_, err := db.Exec(`
		INSERT INTO tiles (
			x, y, z, start_time, end_time, max_draught, distinct_vessel_count,
			min_sog, max_sog, min_length, max_length, min_width, max_width,
			occupation_duration_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (x, y, z) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			max_draught = excluded.max_draught,
			distinct_vessel_count = excluded.distinct_vessel_count,
			min_sog = excluded.min_sog,
			max_sog = excluded.max_sog,
			min_length = excluded.min_length,
			max_length = excluded.max_length,
			min_width = excluded.min_width,
			max_width = excluded.max_width,
			occupation_duration_ns = excluded.occupation_duration_ns
	`,
		row.X, row.Y, row.Z, row.StartTime, row.EndTime, row.MaxDraught, row.DistinctVesselCount,
		row.MinSOG, row.MaxSOG, row.MinLength, row.MaxLength, row.MinWidth, row.MaxWidth,
		int64(row.OccupationDuration),
	)
	if err != nil {
		return aiserr.Wrap(aiserr.KindDatabaseError, "InsertTile", "failed to upsert tile row", err)
	}
	return nil
}

// TileRowFromTile converts an aggregated raster.Tile plus its absolute
// time range into the egress row shape.
func TileRowFromTile(t raster.Tile, start, end time.Time) TileRow {
	return TileRow{
		X: t.X, Y: t.Y, Z: t.Z,
		StartTime: start, EndTime: end,
		MaxDraught:          t.MaxDraught,
		DistinctVesselCount: t.DistinctVesselCount,
		MinSOG:              t.MinSOG,
		MaxSOG:              t.MaxSOG,
		MinLength:           t.MinLength,
		MaxLength:           t.MaxLength,
		MinWidth:            t.MinWidth,
		MaxWidth:            t.MaxWidth,
		OccupationDuration:  t.OccupationDuration,
	}
}
