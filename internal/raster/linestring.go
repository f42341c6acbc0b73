package raster

import (
	"github.com/halcyon-marine/aistrack/internal/geom"
)

// FilterTile identifies a coarse region of interest: only sampling-zoom
// points whose collapsed cell at Zoom equals (X, Y) are kept.
type FilterTile struct {
	X, Y int64
	Zoom int
}

// matches reports whether c, rasterised at samplingZoom, falls inside f.
func (f FilterTile) matches(c Cell, samplingZoom int) bool {
	collapsed := Collapse(c, samplingZoom, f.Zoom)
	return collapsed.X == f.X && collapsed.Y == f.Y
}

// RasteriseLineString rasterises every segment of ls independently at
// samplingZoom (projecting WGS84 coordinates with Project), collapses the
// result to targetZoom, optionally prunes to a filter tile, and merges
// touching same-cell intervals.
func RasteriseLineString(ls geom.LineStringM, samplingZoom, targetZoom int, filter *FilterTile) ([]TimedCell, error) {
	lines := ls.Lines()
	var raw []TimedCell
	for _, line := range lines {
		from := Project(line.From.X(), line.From.Y(), samplingZoom)
		to := Project(line.To.X(), line.To.Y(), samplingZoom)

		t0, err := geom.FloorTimestamp(line.From.M())
		if err != nil {
			return nil, err
		}
		t1, err := geom.CeilTimestamp(line.To.M())
		if err != nil {
			return nil, err
		}

		for _, tc := range BresenhamLine(from, to, t0, t1) {
			if filter != nil && !filter.matches(tc.Cell, samplingZoom) {
				continue
			}
			collapsed := Collapse(tc.Cell, samplingZoom, targetZoom)
			raw = append(raw, TimedCell{Cell: collapsed, Start: tc.Start, End: tc.End})
		}
	}
	return MergeIntervals(raw), nil
}
