package raster

import "time"

// TimedCell pairs a grid cell with the time interval during which a
// rasterised geometry occupied it.
type TimedCell struct {
	Cell  Cell
	Start time.Time
	End   time.Time
}

// BresenhamLine rasterises the segment from `from` to `to` (both at the
// sampling zoom) and interpolates (start, end) timestamps across the
// resulting cells. A single-cell result (from == to) emits the whole
// (t0, t1) interval unmodified; otherwise cell i gets a window centred on
// its linear-interpolated instant, widened by half the inter-cell step on
// each side and extended 1ns past the window's natural end so that
// adjacent cells' intervals touch rather than merely abut — this is
// required for the later interval-merge pass to coalesce them.
func BresenhamLine(from, to Cell, t0, t1 time.Time) []TimedCell {
	cells := bresenhamCells(from, to)
	if len(cells) == 1 {
		return []TimedCell{{Cell: cells[0], Start: t0, End: t1}}
	}

	n := float64(len(cells) - 1)
	total := t1.Sub(t0)
	step := time.Duration(float64(total) / n)
	half := step / 2

	out := make([]TimedCell, len(cells))
	for i, c := range cells {
		center := t0.Add(time.Duration(float64(total) * float64(i) / n))
		start := center.Add(-half)
		end := center.Add(half).Add(time.Nanosecond)
		if start.Before(t0) {
			start = t0
		}
		if end.After(t1) {
			end = t1
		}
		out[i] = TimedCell{Cell: c, Start: start, End: end}
	}
	return out
}

// bresenhamCells returns every grid cell on the line from..to, inclusive
// of both endpoints, using the standard integer Bresenham algorithm.
func bresenhamCells(from, to Cell) []Cell {
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := abs64(x1 - x0)
	dy := -abs64(y1 - y0)
	sx := int64(1)
	if x0 >= x1 {
		sx = -1
	}
	sy := int64(1)
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	var out []Cell
	for {
		out = append(out, Cell{X: x0, Y: y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return out
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
