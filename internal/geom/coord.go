package geom

// CoordM is an (x, y, m) coordinate tagged with a CRS. x and y carry the
// planar position (degrees for WGS84, metres for WebMercator); m carries
// the measure dimension, here always Unix seconds since the epoch.
//
// CRS is carried as a field rather than a type parameter: Go lacks const
// generics, so cross-CRS mixing is caught by runtime checks in distance
// dispatch (see distance.go) instead of at compile time. Every function
// that combines two CoordMs checks CRS equality first.
type CoordM struct {
	X, Y, M float64
	CRS     CRS
}

// NewCoordM constructs a CoordM, validating the CRS tag.
func NewCoordM(x, y, m float64, crs CRS) (CoordM, error) {
	if err := crs.Validate(); err != nil {
		return CoordM{}, err
	}
	return CoordM{X: x, Y: y, M: m, CRS: crs}, nil
}

// sameCRS reports whether a and b share a CRS tag.
func sameCRS(a, b CoordM) bool { return a.CRS == b.CRS }
