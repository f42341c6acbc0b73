package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustTestCoord(t *testing.T, x, y, m float64) CoordM {
	t.Helper()
	c, err := NewCoordM(x, y, m, WebMercator)
	require.NoError(t, err)
	return c
}

func TestFrom_EmptyIsValid(t *testing.T) {
	ls, err := From(nil)
	require.NoError(t, err)
	require.True(t, ls.IsEmpty())
}

func TestFrom_RejectsSinglePoint(t *testing.T) {
	_, err := From([]CoordM{mustTestCoord(t, 0, 0, 0)})
	require.Error(t, err)
}

func TestFrom_RejectsNonMonotonicMeasure(t *testing.T) {
	_, err := From([]CoordM{
		mustTestCoord(t, 0, 0, 5),
		mustTestCoord(t, 1, 1, 4),
	})
	require.Error(t, err)
}

func TestFrom_RejectsMixedCRS(t *testing.T) {
	a := mustTestCoord(t, 0, 0, 0)
	b, err := NewCoordM(1, 1, 1, WGS84)
	require.NoError(t, err)
	_, err = From([]CoordM{a, b})
	require.Error(t, err)
}

func TestLineStringM_FirstLastAndLines(t *testing.T) {
	ls, err := From([]CoordM{
		mustTestCoord(t, 0, 0, 0),
		mustTestCoord(t, 1, 0, 1),
		mustTestCoord(t, 2, 0, 2),
	})
	require.NoError(t, err)

	require.Equal(t, 3, ls.Len())
	require.Equal(t, 0.0, ls.First().X())
	require.Equal(t, 2.0, ls.Last().X())

	lines := ls.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, 1.0, lines[0].DX())
	require.Equal(t, 1.0, lines[1].DX())
}

func TestFromPoints_RoundTripsThroughFrom(t *testing.T) {
	p1, err := NewPointM(0, 0, 0, WebMercator)
	require.NoError(t, err)
	p2, err := NewPointM(1, 1, 1, WebMercator)
	require.NoError(t, err)

	ls, err := FromPoints([]PointM{p1, p2})
	require.NoError(t, err)
	require.Equal(t, 2, ls.Len())
}
