package geom

// PointM wraps a single CoordM. It is the unit geometry the segmenter and
// clusterer operate on.
type PointM struct {
	Coord CoordM
}

// NewPointM constructs a PointM from raw components.
func NewPointM(x, y, m float64, crs CRS) (PointM, error) {
	c, err := NewCoordM(x, y, m, crs)
	if err != nil {
		return PointM{}, err
	}
	return PointM{Coord: c}, nil
}

// CRS returns the point's coordinate reference system.
func (p PointM) CRS() CRS { return p.Coord.CRS }

// X, Y, M are convenience accessors mirroring the source's field access.
func (p PointM) X() float64 { return p.Coord.X }
func (p PointM) Y() float64 { return p.Coord.Y }
func (p PointM) M() float64 { return p.Coord.M }

// MultiPointM is an ordered sequence of PointM sharing no particular
// invariant beyond CRS consistency at construction time (unlike
// LineStringM, a MultiPointM's points need not be temporally ordered).
type MultiPointM struct {
	Points []PointM
}

// NewMultiPointM constructs a MultiPointM, requiring every point to share
// the first point's CRS.
func NewMultiPointM(points []PointM) (MultiPointM, error) {
	if len(points) == 0 {
		return MultiPointM{}, nil
	}
	crs := points[0].CRS()
	for _, p := range points {
		if p.CRS() != crs {
			return MultiPointM{}, incompatibleCRSErr("NewMultiPointM")
		}
	}
	return MultiPointM{Points: points}, nil
}
