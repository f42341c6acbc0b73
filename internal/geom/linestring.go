package geom

// LineStringM is an ordered sequence of CoordM. Its length is either 0 or
// at least 2 (a single-point "linestring" is not a valid geometry), and its
// m-values are non-decreasing — this is what lets the segmenter and
// rasteriser treat a LineStringM as chronologically ordered without
// re-sorting.
//
// A LineStringM is never mutated in place after From succeeds; every
// operation that would change its coordinates returns a new value.
type LineStringM struct {
	Coords []CoordM
}

// From builds a LineStringM from a coordinate sequence, validating the
// length and monotonic-time invariants. An empty sequence is valid (the
// zero-length case); everything else must have at least two points.
func From(coords []CoordM) (LineStringM, error) {
	if len(coords) == 0 {
		return LineStringM{}, nil
	}
	if len(coords) == 1 {
		return LineStringM{}, invalidLengthErr("LineStringM.From", 1)
	}
	crs := coords[0].CRS
	prevM := coords[0].M
	for i, c := range coords {
		if c.CRS != crs {
			return LineStringM{}, incompatibleCRSErr("LineStringM.From")
		}
		if i > 0 && c.M < prevM {
			return LineStringM{}, nonMonotonicErr("LineStringM.From")
		}
		prevM = c.M
	}
	out := make([]CoordM, len(coords))
	copy(out, coords)
	return LineStringM{Coords: out}, nil
}

// FromPoints is a convenience wrapper around From for a sequence of PointM.
func FromPoints(points []PointM) (LineStringM, error) {
	coords := make([]CoordM, len(points))
	for i, p := range points {
		coords[i] = p.Coord
	}
	return From(coords)
}

// Len returns the number of coordinates.
func (ls LineStringM) Len() int { return len(ls.Coords) }

// IsEmpty reports whether the linestring has zero points.
func (ls LineStringM) IsEmpty() bool { return len(ls.Coords) == 0 }

// CRS returns the linestring's coordinate reference system, or the zero
// value if empty.
func (ls LineStringM) CRS() CRS {
	if ls.IsEmpty() {
		return 0
	}
	return ls.Coords[0].CRS
}

// First and Last return the boundary points. Callers must not invoke these
// on an empty linestring.
func (ls LineStringM) First() PointM { return PointM{Coord: ls.Coords[0]} }
func (ls LineStringM) Last() PointM  { return PointM{Coord: ls.Coords[len(ls.Coords)-1]} }

// Points materialises the linestring as a slice of PointM.
func (ls LineStringM) Points() []PointM {
	out := make([]PointM, len(ls.Coords))
	for i, c := range ls.Coords {
		out[i] = PointM{Coord: c}
	}
	return out
}

// Lines returns the consecutive-pair LineM segments making up the
// linestring. A linestring of length n has n-1 segments.
func (ls LineStringM) Lines() []LineM {
	if ls.Len() < 2 {
		return nil
	}
	out := make([]LineM, 0, ls.Len()-1)
	pts := ls.Points()
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, LineM{From: pts[i], To: pts[i+1]})
	}
	return out
}
