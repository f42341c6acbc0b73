package raster

import "sort"

// MergeIntervals sorts cells by (cell, start, end) and collapses every
// maximal run sharing a cell where the next interval's start is no later
// than the previous interval's end, producing one (cell, min start, max
// end) entry per run. BresenhamLine's +1ns tail on each interval's end is
// what makes adjacent cells' windows touch here instead of merely
// abutting.
func MergeIntervals(cells []TimedCell) []TimedCell {
	if len(cells) == 0 {
		return nil
	}

	sorted := make([]TimedCell, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Cell != sorted[j].Cell {
			if sorted[i].Cell.X != sorted[j].Cell.X {
				return sorted[i].Cell.X < sorted[j].Cell.X
			}
			return sorted[i].Cell.Y < sorted[j].Cell.Y
		}
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.Before(sorted[j].End)
	})

	var out []TimedCell
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if next.Cell == cur.Cell && !next.Start.After(cur.End) {
			if next.End.After(cur.End) {
				cur.End = next.End
			}
			continue
		}
		out = append(out, cur)
		cur = next
	}
	out = append(out, cur)
	return out
}
