// Package geom implements the M-valued geometry model: coordinates, points,
// lines, linestrings, and multipoints carrying a measure dimension (seconds
// since the Unix epoch) alongside (x, y), tagged by a coordinate reference
// system so distance dispatch and WKB decoding can never silently mix units.
//
// Go has no const generics usable the way the source's compile-time CRS tag
// is, so CRS is a runtime-checked integer type instead of a type parameter.
// Every constructor and distance function validates its CRS argument; the
// validation happens once per call, not once per coordinate.
package geom

import "fmt"

// CRS identifies a coordinate reference system by its EPSG code.
type CRS int

const (
	// WGS84 is the degree-based geographic CRS (EPSG:4326). Distances in
	// this CRS must be computed geodesically.
	WGS84 CRS = 4326
	// WebMercator is the metre-based projected CRS (EPSG:3857). Distances
	// in this CRS must be computed with plane Euclidean geometry.
	WebMercator CRS = 3857
)

// degreeCRS and metricCRS enumerate the two families of CRS this system
// understands. Any CRS outside both sets is rejected by Validate.
var degreeCRS = map[CRS]bool{WGS84: true}
var metricCRS = map[CRS]bool{WebMercator: true}

// IsDegree reports whether c uses degree units (geodesic distance applies).
func (c CRS) IsDegree() bool { return degreeCRS[c] }

// IsMetric reports whether c uses metre units (Euclidean distance applies).
func (c CRS) IsMetric() bool { return metricCRS[c] }

// Validate returns an error if c is not one of the enumerated CRSs.
func (c CRS) Validate() error {
	if c.IsDegree() || c.IsMetric() {
		return nil
	}
	return fmt.Errorf("geom: unsupported CRS %d", int(c))
}

func (c CRS) String() string {
	switch c {
	case WGS84:
		return "EPSG:4326"
	case WebMercator:
		return "EPSG:3857"
	default:
		return fmt.Sprintf("EPSG:%d", int(c))
	}
}
