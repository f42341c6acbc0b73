package geom

// LineM is an ordered pair (From, To) of PointM. It is the unit of work for
// triangle extrusion (internal/extrude) and Bresenham rasterisation
// (internal/raster).
type LineM struct {
	From, To PointM
}

// NewLineM constructs a LineM, requiring both endpoints to share a CRS.
func NewLineM(from, to PointM) (LineM, error) {
	if from.CRS() != to.CRS() {
		return LineM{}, incompatibleCRSErr("NewLineM")
	}
	return LineM{From: from, To: to}, nil
}

// CRS returns the line's coordinate reference system.
func (l LineM) CRS() CRS { return l.From.CRS() }

// DX, DY return the planar direction of the line in the CRS's native units.
func (l LineM) DX() float64 { return l.To.X() - l.From.X() }
func (l LineM) DY() float64 { return l.To.Y() - l.From.Y() }

// DM returns the signed difference in measure between the two endpoints.
func (l LineM) DM() float64 { return l.To.M() - l.From.M() }
