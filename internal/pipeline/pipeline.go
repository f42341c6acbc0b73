// Package pipeline wires the leaf components — segmenter, stop-clusterer,
// triangle extrusion, and rasteriser — into the per-trajectory worker
// pool: segment -> cluster -> rasterise, run independently and
// concurrently across vessels, with tile results folded by a commutative
// reducer.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/halcyon-marine/aistrack/internal/extrude"
	"github.com/halcyon-marine/aistrack/internal/geom"
	"github.com/halcyon-marine/aistrack/internal/raster"
	"github.com/halcyon-marine/aistrack/internal/segment"
	"github.com/halcyon-marine/aistrack/internal/stopcluster"
)

// VesselTrajectory is one vessel's chronologically ordered positions
// together with the per-point SOG readings and static extents needed
// downstream by the clusterer and the hull-sweep extruder.
type VesselTrajectory struct {
	MMSI         uint64
	LineString   geom.LineStringM
	SOG          []float32
	Extents      extrude.Extents
	Draught      *float64
	LengthMetres *float64
	WidthMetres  *float64
}

// Config bundles the tunables each pipeline stage needs.
type Config struct {
	Segment        segment.Predicate
	Cluster        stopcluster.Config
	SamplingZoom   int
	TargetZoom     int
	Filter         *raster.FilterTile
	MaxConcurrency int
}

// Result is one vessel's rasterised, not-yet-aggregated output, plus the
// static per-vessel statistics that feed raster.Tile's min/max fields.
type Result struct {
	MMSI         uint64
	Cells        []raster.TimedCell
	Draught      *float64
	LengthMetres *float64
	WidthMetres  *float64
	MinSOG       *float32
	MaxSOG       *float32
}

// Run processes every trajectory concurrently (bounded by
// Config.MaxConcurrency) and returns the per-vessel rasterised cells,
// ready for folding by Aggregate. A single trajectory's failure is
// returned as the first error encountered; per-trajectory error
// tolerance (logging and skipping) is the caller's responsibility, not
// the pipeline's — the core surfaces errors, it does not recover them.
func Run(ctx context.Context, cfg Config, trajectories []VesselTrajectory) ([]Result, error) {
	results := make([]Result, len(trajectories))

	g, _ := errgroup.WithContext(ctx)
	if cfg.MaxConcurrency > 0 {
		g.SetLimit(cfg.MaxConcurrency)
	}

	for i, traj := range trajectories {
		i, traj := i, traj
		g.Go(func() error {
			cells, err := processTrajectory(cfg, traj)
			if err != nil {
				return err
			}
			minSOG, maxSOG := sogRange(traj.SOG)
			results[i] = Result{
				MMSI:         traj.MMSI,
				Cells:        cells,
				Draught:      traj.Draught,
				LengthMetres: traj.LengthMetres,
				WidthMetres:  traj.WidthMetres,
				MinSOG:       minSOG,
				MaxSOG:       maxSOG,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// processTrajectory runs the full segment -> cluster -> extrude ->
// rasterise chain for one vessel. It allocates a fresh Clusterer so that
// concurrent calls never share clusterer state.
func processTrajectory(cfg Config, traj VesselTrajectory) ([]raster.TimedCell, error) {
	if len(traj.SOG) != traj.LineString.Len() {
		return nil, fmt.Errorf("pipeline: trajectory %d has %d SOG readings for %d points",
			traj.MMSI, len(traj.SOG), traj.LineString.Len())
	}

	splits, err := segment.Segment(traj.LineString, cfg.Segment)
	if err != nil {
		return nil, err
	}

	clusterer := stopcluster.New(cfg.Cluster)

	var cells []raster.TimedCell
	pointIdx := 0
	for _, split := range splits {
		switch split.Kind {
		case segment.KindPoint:
			pointIdx++
		case segment.KindSubTrajectory:
			n := split.SubTrajectory.Len()
			points := split.SubTrajectory.Points()
			sog := traj.SOG[pointIdx : pointIdx+n]
			pointIdx += n

			labelled, err := clusterer.Run(points, sog)
			if err != nil {
				return nil, err
			}
			stopObjs, err := stopcluster.StopObjects(labelled)
			if err != nil {
				return nil, err
			}
			for _, so := range stopObjs {
				c, err := rasteriseStopOrLs(cfg, traj, so)
				if err != nil {
					return nil, err
				}
				cells = append(cells, c...)
			}
		}
	}
	return raster.MergeIntervals(cells), nil
}

func rasteriseStopOrLs(cfg Config, traj VesselTrajectory, so stopcluster.StopOrLs) ([]raster.TimedCell, error) {
	switch so.Kind {
	case stopcluster.KindLineString:
		return rasteriseMove(cfg, traj, so.LineString)
	case stopcluster.KindStop:
		return rasteriseStop(cfg, so)
	default:
		return nil, nil
	}
}

// rasteriseMove extrudes a hull-sweep triangle pair around each segment
// of a moving sub-trajectory and rasterises both triangles.
func rasteriseMove(cfg Config, traj VesselTrajectory, ls geom.LineStringM) ([]raster.TimedCell, error) {
	toCell := raster.WGS84ToCell(cfg.SamplingZoom)
	toWorld := raster.WGS84CellCentre(cfg.SamplingZoom)

	var cells []raster.TimedCell
	for _, line := range ls.Lines() {
		pair, err := extrude.Extrude(line, traj.Extents)
		if err != nil {
			return nil, err
		}
		for _, tri := range []extrude.Triangle{pair.A, pair.B} {
			tc, err := raster.RasteriseTriangle(tri, toCell, toWorld)
			if err != nil {
				return nil, err
			}
			collapsed := collapseAll(tc, cfg.SamplingZoom, cfg.TargetZoom, cfg.Filter)
			cells = append(cells, collapsed...)
		}
	}
	return cells, nil
}

// rasteriseStop covers a stop object's convex hull with its bounding box
// of sampling-zoom cells, each carrying the stop's full (begin, end)
// occupation window. A stop hull isn't a line or a triangle, so it has
// no natural rasterisation rule; bounding-box coverage is the simplest
// one consistent with "every cell the hull occupies carries the stop's
// time range", at the cost of over-covering near the hull's corners.
func rasteriseStop(cfg Config, so stopcluster.StopOrLs) ([]raster.TimedCell, error) {
	if len(so.Polygon.Vertices) == 0 {
		return nil, nil
	}
	start, err := geom.FloorTimestamp(so.TimeBegin)
	if err != nil {
		return nil, err
	}
	end, err := geom.CeilTimestamp(so.TimeEnd)
	if err != nil {
		return nil, err
	}

	toCell := raster.WGS84ToCell(cfg.SamplingZoom)
	minCell := toCell(so.Polygon.Vertices[0].X, so.Polygon.Vertices[0].Y)
	maxCell := minCell
	for _, v := range so.Polygon.Vertices[1:] {
		c := toCell(v.X, v.Y)
		if c.X < minCell.X {
			minCell.X = c.X
		}
		if c.Y < minCell.Y {
			minCell.Y = c.Y
		}
		if c.X > maxCell.X {
			maxCell.X = c.X
		}
		if c.Y > maxCell.Y {
			maxCell.Y = c.Y
		}
	}

	var cells []raster.TimedCell
	for y := minCell.Y; y <= maxCell.Y; y++ {
		for x := minCell.X; x <= maxCell.X; x++ {
			cells = append(cells, raster.TimedCell{Cell: raster.Cell{X: x, Y: y}, Start: start, End: end})
		}
	}
	return collapseAll(cells, cfg.SamplingZoom, cfg.TargetZoom, cfg.Filter), nil
}

func collapseAll(cells []raster.TimedCell, samplingZoom, targetZoom int, filter *raster.FilterTile) []raster.TimedCell {
	out := make([]raster.TimedCell, 0, len(cells))
	for _, tc := range cells {
		if filter != nil {
			collapsedToFilter := raster.Collapse(tc.Cell, samplingZoom, filter.Zoom)
			if collapsedToFilter.X != filter.X || collapsedToFilter.Y != filter.Y {
				continue
			}
		}
		out = append(out, raster.TimedCell{
			Cell:  raster.Collapse(tc.Cell, samplingZoom, targetZoom),
			Start: tc.Start,
			End:   tc.End,
		})
	}
	return out
}

// CellResult is one aggregated tile plus the absolute time range its
// contributing observations span, ready for store.TileRowFromTile.
type CellResult struct {
	Tile       raster.Tile
	Start, End time.Time
}

// Aggregate folds every vessel's rasterised cells into one Tile per
// (x, y, z) at targetZoom. Per-vessel cells are summed first (a single
// vessel can occupy the same cell across more than one pass, and its
// occupation time accumulates) before folding across vessels with
// raster.Reduce, which preserves the one-distinct-vessel-per-input
// precondition that makes distinct_vessel_count a plain sum.
func Aggregate(results []Result, targetZoom int) []CellResult {
	type perVessel struct {
		tile       raster.Tile
		start, end time.Time
	}
	byCellVessel := make(map[raster.Cell]map[uint64]perVessel)

	for _, r := range results {
		for _, tc := range r.Cells {
			cell := tc.Cell
			if byCellVessel[cell] == nil {
				byCellVessel[cell] = make(map[uint64]perVessel)
			}
			existing, ok := byCellVessel[cell][r.MMSI]
			if !ok {
				existing = perVessel{
					tile: raster.Tile{
						X: cell.X, Y: cell.Y, Z: int64(targetZoom),
						MaxDraught:          r.Draught,
						DistinctVesselCount: 1,
						MinSOG:              r.MinSOG,
						MaxSOG:              r.MaxSOG,
						MinLength:           r.LengthMetres,
						MaxLength:           r.LengthMetres,
						MinWidth:            r.WidthMetres,
						MaxWidth:            r.WidthMetres,
					},
					start: tc.Start,
					end:   tc.End,
				}
			}
			existing.tile.OccupationDuration += tc.End.Sub(tc.Start)
			if tc.Start.Before(existing.start) {
				existing.start = tc.Start
			}
			if tc.End.After(existing.end) {
				existing.end = tc.End
			}
			byCellVessel[cell][r.MMSI] = existing
		}
	}

	out := make([]CellResult, 0, len(byCellVessel))
	for _, byVessel := range byCellVessel {
		var tiles []raster.Tile
		var start, end time.Time
		for _, pv := range byVessel {
			tiles = append(tiles, pv.tile)
			if start.IsZero() || pv.start.Before(start) {
				start = pv.start
			}
			if pv.end.After(end) {
				end = pv.end
			}
		}
		reduced, err := raster.ReduceAll(tiles)
		if err != nil {
			// Every tile folded here was constructed with Z == targetZoom
			// above, so a mismatch here indicates a bug in this function,
			// not bad input; surface it rather than silently dropping cells.
			panic(err)
		}
		out = append(out, CellResult{Tile: reduced, Start: start, End: end})
	}
	return out
}

func sogRange(sog []float32) (min, max *float32) {
	if len(sog) == 0 {
		return nil, nil
	}
	lo, hi := sog[0], sog[0]
	for _, v := range sog[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return &lo, &hi
}
