package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/halcyon-marine/aistrack/internal/extrude"
	"github.com/halcyon-marine/aistrack/internal/geom"
	"github.com/halcyon-marine/aistrack/internal/raster"
	"github.com/halcyon-marine/aistrack/internal/segment"
	"github.com/halcyon-marine/aistrack/internal/stopcluster"
)

func mustCoord(t *testing.T, lon, lat, m float64) geom.CoordM {
	t.Helper()
	c, err := geom.NewCoordM(lon, lat, m, geom.WGS84)
	require.NoError(t, err)
	return c
}

func straightLineTrajectory(t *testing.T) VesselTrajectory {
	t.Helper()
	coords := []geom.CoordM{
		mustCoord(t, 10.000, 56.000, 0),
		mustCoord(t, 10.010, 56.000, 60),
		mustCoord(t, 10.020, 56.000, 120),
		mustCoord(t, 10.030, 56.000, 180),
	}
	ls, err := geom.From(coords)
	require.NoError(t, err)

	return VesselTrajectory{
		MMSI:       123456789,
		LineString: ls,
		SOG:        []float32{10, 10, 10, 10},
		Extents:    extrude.Extents{Fore: 50, Aft: 20, Port: 10, Starboard: 10},
	}
}

func defaultConfig() Config {
	return Config{
		Segment: func(a, b geom.PointM) bool {
			return b.M()-a.M() < 600 // no gap larger than 10 minutes
		},
		Cluster: stopcluster.Config{
			MinClusterSize: 3,
			Dist:           geom.Distance,
			DistThres:      50, // metres: geom.Distance is geodesic on WGS84
			SpeedThres:     1,
			MaxTimeThres:   10 * time.Minute,
		},
		SamplingZoom:   18,
		TargetZoom:     14,
		MaxConcurrency: 4,
	}
}

func TestRun_SingleMovingTrajectoryProducesCells(t *testing.T) {
	cfg := defaultConfig()
	traj := straightLineTrajectory(t)

	results, err := Run(context.Background(), cfg, []VesselTrajectory{traj})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, uint64(123456789), results[0].MMSI)
	require.NotEmpty(t, results[0].Cells)
}

func TestRun_StoppedVesselProducesBoundingBoxCells(t *testing.T) {
	cfg := defaultConfig()

	coords := []geom.CoordM{
		mustCoord(t, 10.0000, 56.0000, 0),
		mustCoord(t, 10.0001, 56.0000, 60),
		mustCoord(t, 10.0000, 56.0001, 120),
		mustCoord(t, 10.0001, 56.0001, 180),
	}
	ls, err := geom.From(coords)
	require.NoError(t, err)

	traj := VesselTrajectory{
		MMSI:       987654321,
		LineString: ls,
		SOG:        []float32{0, 0, 0, 0},
		Extents:    extrude.Extents{Fore: 50, Aft: 20, Port: 10, Starboard: 10},
	}

	results, err := Run(context.Background(), cfg, []VesselTrajectory{traj})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotEmpty(t, results[0].Cells)
}

func TestRun_MultipleTrajectoriesAreIndependent(t *testing.T) {
	cfg := defaultConfig()
	a := straightLineTrajectory(t)
	b := straightLineTrajectory(t)
	b.MMSI = 111222333

	results, err := Run(context.Background(), cfg, []VesselTrajectory{a, b})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, uint64(123456789), results[0].MMSI)
	require.Equal(t, uint64(111222333), results[1].MMSI)
}

func TestRun_PropagatesStageErrors(t *testing.T) {
	cfg := defaultConfig()
	traj := straightLineTrajectory(t)
	traj.SOG = traj.SOG[:1] // length mismatch forces a downstream failure

	_, err := Run(context.Background(), cfg, []VesselTrajectory{traj})
	require.Error(t, err)
}

func TestCollapseAll_FiltersOutsideFilterTile(t *testing.T) {
	cells := []raster.TimedCell{
		{Cell: raster.Cell{X: 0, Y: 0}, Start: time.Unix(0, 0), End: time.Unix(1, 0)},
		{Cell: raster.Cell{X: 1 << 10, Y: 1 << 10}, Start: time.Unix(0, 0), End: time.Unix(1, 0)},
	}
	filter := &raster.FilterTile{X: 0, Y: 0, Zoom: 4}

	out := collapseAll(cells, 14, 10, filter)
	require.Len(t, out, 1)
}

func TestAggregate_SumsOccupationAndDistinctVessels(t *testing.T) {
	cell := raster.Cell{X: 10, Y: 20}
	t0 := time.Unix(0, 0)
	results := []Result{
		{
			MMSI:  1,
			Cells: []raster.TimedCell{{Cell: cell, Start: t0, End: t0.Add(time.Minute)}},
			MinSOG: func() *float32 { v := float32(2); return &v }(),
			MaxSOG: func() *float32 { v := float32(5); return &v }(),
		},
		{
			MMSI:  2,
			Cells: []raster.TimedCell{{Cell: cell, Start: t0.Add(time.Minute), End: t0.Add(3 * time.Minute)}},
			MinSOG: func() *float32 { v := float32(1); return &v }(),
			MaxSOG: func() *float32 { v := float32(4); return &v }(),
		},
	}

	agg := Aggregate(results, 12)
	require.Len(t, agg, 1)
	require.Equal(t, 2, agg[0].Tile.DistinctVesselCount)
	require.Equal(t, 3*time.Minute, agg[0].Tile.OccupationDuration)
	require.InDelta(t, 1, float64(*agg[0].Tile.MinSOG), 1e-9)
	require.InDelta(t, 5, float64(*agg[0].Tile.MaxSOG), 1e-9)
	require.Equal(t, t0, agg[0].Start)
	require.Equal(t, t0.Add(3*time.Minute), agg[0].End)
}

func TestAggregate_SameVesselSameCellAccumulatesDuration(t *testing.T) {
	cell := raster.Cell{X: 1, Y: 1}
	t0 := time.Unix(0, 0)
	results := []Result{
		{MMSI: 1, Cells: []raster.TimedCell{
			{Cell: cell, Start: t0, End: t0.Add(time.Minute)},
			{Cell: cell, Start: t0.Add(time.Hour), End: t0.Add(time.Hour + time.Minute)},
		}},
	}

	agg := Aggregate(results, 12)
	require.Len(t, agg, 1)
	require.Equal(t, 1, agg[0].Tile.DistinctVesselCount)
	require.Equal(t, 2*time.Minute, agg[0].Tile.OccupationDuration)
}

func TestSegment_KeepsIsolatedPointAsKindPoint(t *testing.T) {
	// Sanity check that the segmenter predicate used by the pipeline treats
	// a single far-apart point as an isolated KindPoint split, which the
	// pipeline's pointIdx bookkeeping steps past (advancing the SOG index by
	// one) without clustering it.
	coords := []geom.CoordM{
		mustCoord(t, 10.000, 56.000, 0),
		mustCoord(t, 10.000, 56.000, 60),
		mustCoord(t, 20.000, 60.000, 10000),
	}
	ls, err := geom.From(coords)
	require.NoError(t, err)

	splits, err := segment.Segment(ls, defaultConfig().Segment)
	require.NoError(t, err)
	require.Len(t, splits, 2)
	require.Equal(t, segment.KindSubTrajectory, splits[0].Kind)
	require.Equal(t, segment.KindPoint, splits[1].Kind)
}
