package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHullPoint(t *testing.T, x, y float64) PointM {
	t.Helper()
	p, err := NewPointM(x, y, 0, WebMercator)
	require.NoError(t, err)
	return p
}

func TestConvexHull_Empty(t *testing.T) {
	hull, err := ConvexHull(nil)
	require.NoError(t, err)
	require.Empty(t, hull.Vertices)
}

func TestConvexHull_DropsInteriorPoint(t *testing.T) {
	points := []PointM{
		mustHullPoint(t, 0, 0),
		mustHullPoint(t, 4, 0),
		mustHullPoint(t, 4, 4),
		mustHullPoint(t, 0, 4),
		mustHullPoint(t, 2, 2), // interior, must not survive
	}
	hull, err := ConvexHull(points)
	require.NoError(t, err)
	require.Len(t, hull.Vertices, 4)
	for _, v := range hull.Vertices {
		require.False(t, v.X == 2 && v.Y == 2)
	}
}

func TestConvexHull_CollinearPointsCollapseToEndpoints(t *testing.T) {
	points := []PointM{
		mustHullPoint(t, 0, 0),
		mustHullPoint(t, 1, 0),
		mustHullPoint(t, 2, 0),
	}
	hull, err := ConvexHull(points)
	require.NoError(t, err)
	require.Len(t, hull.Vertices, 2)
}

func TestConvexHull_RejectsMixedCRS(t *testing.T) {
	a := mustHullPoint(t, 0, 0)
	b, err := NewPointM(1, 1, 0, WGS84)
	require.NoError(t, err)
	_, err = ConvexHull([]PointM{a, b})
	require.Error(t, err)
}
