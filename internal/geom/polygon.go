package geom

import "sort"

// Polygon is a convex hull: a closed sequence of (x, y) vertices in a
// single CRS, with no associated measure dimension (a stop object's hull
// is a spatial shape; its temporal extent is carried alongside it by
// StopOrLs, not by the polygon itself). It is intentionally minimal —
// general polygon/multi-polygon support is out of scope.
type Polygon struct {
	Vertices []struct{ X, Y float64 }
	CRS      CRS
}

// ConvexHull computes the convex hull of a set of points via Andrew's
// monotone chain, returning vertices in counter-clockwise order with no
// duplicate closing point. Collinear points on an edge are dropped. All
// points must share a CRS.
func ConvexHull(points []PointM) (Polygon, error) {
	if len(points) == 0 {
		return Polygon{}, nil
	}
	crs := points[0].CRS()
	type pt struct{ X, Y float64 }
	pts := make([]pt, 0, len(points))
	seen := make(map[pt]bool, len(points))
	for _, p := range points {
		if p.CRS() != crs {
			return Polygon{}, incompatibleCRSErr("ConvexHull")
		}
		q := pt{p.X(), p.Y()}
		if !seen[q] {
			seen[q] = true
			pts = append(pts, q)
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	if len(pts) < 3 {
		out := Polygon{CRS: crs}
		for _, p := range pts {
			out.Vertices = append(out.Vertices, struct{ X, Y float64 }{p.X, p.Y})
		}
		return out, nil
	}

	cross := func(o, a, b pt) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	lower := make([]pt, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]pt, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)

	out := Polygon{CRS: crs}
	for _, p := range hull {
		out.Vertices = append(out.Vertices, struct{ X, Y float64 }{p.X, p.Y})
	}
	return out, nil
}
