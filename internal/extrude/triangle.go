// Package extrude approximates the area a vessel's hull sweeps along a
// trajectory segment as two triangles, and answers, for any probe point
// inside those triangles, the time interval during which the hull
// occupied that point.
package extrude

import (
	"math"
	"time"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
	"github.com/halcyon-marine/aistrack/internal/geom"
)

// Extents holds a vessel's four half-extents in metres, measured from the
// AIS antenna position: a = fore, b = aft, c = port, d = starboard.
type Extents struct {
	Fore, Aft, Port, Starboard float64
}

// Vertex is a bare (x, y) pair in the segment's native CRS units — no
// measure dimension, since a triangle vertex's occupation time is derived
// from barycentric position, not carried directly.
type Vertex struct {
	X, Y float64
}

// Triangle is one half of the hull-sweep quadrilateral around a segment.
// Occupation computes, from a probe point's barycentric coordinates
// relative to (V1, V2, V3), the time interval during which the hull
// occupies that point.
type Triangle struct {
	V1, V2, V3 Vertex

	segStart, segEnd geom.PointM
	segLenM          float64
	before, after    float64 // seconds corresponding to the fore/aft extents
}

// Pair is the two triangles produced by Extrude; their union is the
// axis-aligned-along-segment quadrilateral of width Port+Starboard around
// the segment.
type Pair struct {
	A, B Triangle
}

// Extrude computes the hull-sweep quadrilateral around seg, split into two
// triangles along one diagonal. Zero-length segments are rejected with
// DegenerateSegment.
func Extrude(seg geom.LineM, ext Extents) (Pair, error) {
	start, end := seg.From, seg.To
	dx, dy := seg.DX(), seg.DY()

	segLen, err := geom.Distance(start, end)
	if err != nil {
		return Pair{}, err
	}
	if segLen == 0 {
		return Pair{}, aiserr.New(aiserr.KindDegenerateSegment, "Extrude", "zero-length segment")
	}

	// Unit vector along the segment and its perpendicular (port/starboard).
	ux, uy := dx/segLen, dy/segLen
	perpX, perpY := -uy, ux

	portStart, err := geom.Displace(start, perpX, perpY, ext.Port)
	if err != nil {
		return Pair{}, err
	}
	stbdStart, err := geom.Displace(start, -perpX, -perpY, ext.Starboard)
	if err != nil {
		return Pair{}, err
	}
	portEnd, err := geom.Displace(end, perpX, perpY, ext.Port)
	if err != nil {
		return Pair{}, err
	}
	stbdEnd, err := geom.Displace(end, -perpX, -perpY, ext.Starboard)
	if err != nil {
		return Pair{}, err
	}

	corner := func(p geom.PointM) Vertex { return Vertex{X: p.X(), Y: p.Y()} }

	durationSeconds := end.M() - start.M()
	secondsPerMetre := durationSeconds / segLen

	base := Triangle{
		segStart: start,
		segEnd:   end,
		segLenM:  segLen,
		before:   ext.Fore * secondsPerMetre,
		after:    ext.Aft * secondsPerMetre,
	}

	a := base
	a.V1, a.V2, a.V3 = corner(portStart), corner(stbdStart), corner(portEnd)

	b := base
	b.V1, b.V2, b.V3 = corner(stbdStart), corner(stbdEnd), corner(portEnd)

	return Pair{A: a, B: b}, nil
}

// Occupation returns the time interval during which the vessel's hull
// occupies the probe point described by barycentric coordinates (alpha,
// beta, gamma) relative to t.V1, t.V2, t.V3.
func (t Triangle) Occupation(alpha, beta, gamma float64) (start, end time.Time, err error) {
	px := alpha*t.V1.X + beta*t.V2.X + gamma*t.V3.X
	py := alpha*t.V1.Y + beta*t.V2.Y + gamma*t.V3.Y

	sx, sy := t.segStart.X(), t.segStart.Y()
	ex, ey := t.segEnd.X(), t.segEnd.Y()
	segDX, segDY := ex-sx, ey-sy

	lenSq := segDX*segDX + segDY*segDY
	var r float64
	if lenSq > 0 {
		r = ((px-sx)*segDX + (py-sy)*segDY) / lenSq
	}
	r = math.Max(0, math.Min(1, r))

	probeM := math.Floor(t.segStart.M() + (t.segEnd.M()-t.segStart.M())*r)

	probeStart, err := geom.FloorTimestamp(probeM - t.before)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	probeEnd, err := geom.FloorTimestamp(probeM + t.after)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return probeStart, probeEnd, nil
}

// BarycentricArea computes twice the signed area of triangle (p, q, r) —
// used both to normalise barycentric coordinates and to classify a probe
// point as inside/outside.
func BarycentricArea(p, q, r Vertex) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (r.X-p.X)*(q.Y-p.Y)
}

// Barycentric computes the barycentric coordinates of probe relative to
// t's three vertices.
func (t Triangle) Barycentric(probe Vertex) (alpha, beta, gamma float64) {
	whole := BarycentricArea(t.V1, t.V2, t.V3)
	if whole == 0 {
		return 0, 0, 0
	}
	alpha = BarycentricArea(probe, t.V2, t.V3) / whole
	beta = BarycentricArea(probe, t.V3, t.V1) / whole
	gamma = BarycentricArea(probe, t.V1, t.V2) / whole
	return alpha, beta, gamma
}

// Contains reports whether probe lies within t (inclusive of edges).
func (t Triangle) Contains(probe Vertex) bool {
	alpha, beta, gamma := t.Barycentric(probe)
	return alpha >= 0 && beta >= 0 && gamma >= 0
}

// BoundingBox returns the axis-aligned extent of t's three vertices.
func (t Triangle) BoundingBox() (minX, minY, maxX, maxY float64) {
	minX = math.Min(t.V1.X, math.Min(t.V2.X, t.V3.X))
	minY = math.Min(t.V1.Y, math.Min(t.V2.Y, t.V3.Y))
	maxX = math.Max(t.V1.X, math.Max(t.V2.X, t.V3.X))
	maxY = math.Max(t.V1.Y, math.Max(t.V2.Y, t.V3.Y))
	return
}
