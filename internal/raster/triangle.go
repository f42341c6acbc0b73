package raster

import (
	"math"

	"github.com/halcyon-marine/aistrack/internal/extrude"
)

// WorldToCell projects a point in the triangle's native CRS units to a
// grid cell at the sampling zoom; CellCentre is its inverse, returning
// the CRS-space coordinate of a cell's centre.
type WorldToCell func(x, y float64) Cell
type CellCentre func(c Cell) (x, y float64)

// RasteriseTriangle computes tri's bounding box in grid cells at the
// sampling zoom, then tests every cell in that box with tri's signed
// barycentric-area membership test, deriving each included cell's
// occupation interval via tri's probe-occupation function.
func RasteriseTriangle(tri extrude.Triangle, toCell WorldToCell, toWorld CellCentre) ([]TimedCell, error) {
	minX, minY, maxX, maxY := tri.BoundingBox()
	minCell := toCell(minX, minY)
	maxCell := toCell(maxX, maxY)

	x0, x1 := minCell.X, maxCell.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := minCell.Y, maxCell.Y
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	var out []TimedCell
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := Cell{X: x, Y: y}
			wx, wy := toWorld(c)
			alpha, beta, gamma := tri.Barycentric(extrude.Vertex{X: wx, Y: wy})
			if alpha < 0 || beta < 0 || gamma < 0 {
				continue
			}
			start, end, err := tri.Occupation(alpha, beta, gamma)
			if err != nil {
				return nil, err
			}
			out = append(out, TimedCell{Cell: c, Start: start, End: end})
		}
	}
	return out, nil
}

// WGS84ToCell and WGS84CellCentre implement WorldToCell/CellCentre for
// lon/lat points at the given zoom, matching Project's coordinate
// transform and its inverse.
func WGS84ToCell(zoom int) WorldToCell {
	return func(lon, lat float64) Cell { return Project(lon, lat, zoom) }
}

func WGS84CellCentre(zoom int) CellCentre {
	n := math.Exp2(float64(zoom))
	const tau = 2 * math.Pi
	return func(c Cell) (float64, float64) {
		x := float64(c.X) + 0.5
		y := float64(c.Y) + 0.5
		lon := (x*tau/n - math.Pi) * 180 / math.Pi
		lat := (2*math.Atan(math.Exp(math.Pi-y*tau/n)) - math.Pi/2) * 180 / math.Pi
		return lon, lat
	}
}
