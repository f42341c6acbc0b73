// Package raster converts segmenter/clusterer output into integer tile
// cells at a given zoom, attaches per-cell time intervals, and folds
// cells sharing (x, y, z) into aggregated Tile statistics.
package raster

import "math"

// Cell is an integer (x, y) grid coordinate at an implicit zoom.
type Cell struct {
	X, Y int64
}

// Project maps a WGS84 (lon, lat) point to its grid cell at zoom z.
// Rounding is toward negative infinity, matching the web-mercator tiling
// convention.
func Project(lon, lat float64, zoom int) Cell {
	n := math.Exp2(float64(zoom))
	const tau = 2 * math.Pi
	x := (1 / tau) * n * (math.Pi + lon*math.Pi/180)
	latRad := lat * math.Pi / 180
	y := (1 / tau) * n * (math.Pi - math.Log(math.Tan(math.Pi/4+latRad/2)))
	return Cell{X: int64(math.Floor(x)), Y: int64(math.Floor(y))}
}

// Collapse reprojects a cell from zoom z to zoom z2. Coarsening (z2 < z)
// uses integer division; refining (z2 > z) scales up. Collapsing loses
// precision and multiple sampling-zoom cells may collapse onto the same
// target cell — the caller's merge step is expected to absorb that.
func Collapse(c Cell, z, z2 int) Cell {
	delta := z - z2
	switch {
	case delta > 0:
		shift := uint(delta)
		return Cell{X: floorDivShift(c.X, shift), Y: floorDivShift(c.Y, shift)}
	case delta < 0:
		shift := uint(-delta)
		return Cell{X: c.X << shift, Y: c.Y << shift}
	default:
		return c
	}
}

// floorDivShift divides x by 2^shift, rounding toward negative infinity
// (plain arithmetic right shift on two's-complement integers already does
// this for any sign of x).
func floorDivShift(x int64, shift uint) int64 {
	return x >> shift
}
