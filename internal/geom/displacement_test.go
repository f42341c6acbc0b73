package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplace_MetricCRSIsPlaneVectorAddition(t *testing.T) {
	p, err := NewPointM(100, 100, 5, WebMercator)
	require.NoError(t, err)

	out, err := Displace(p, 1, 0, 50)
	require.NoError(t, err)
	require.InDelta(t, 150, out.X(), 1e-9)
	require.InDelta(t, 100, out.Y(), 1e-9)
	require.Equal(t, 5.0, out.M())
}

func TestDisplace_ZeroDirectionIsNoOp(t *testing.T) {
	p, err := NewPointM(10, 20, 0, WebMercator)
	require.NoError(t, err)

	out, err := Displace(p, 0, 0, 1000)
	require.NoError(t, err)
	require.Equal(t, p, out)
}

func TestDisplace_DegreeCRSPreservesDistance(t *testing.T) {
	p, err := NewPointM(0, 0, 0, WGS84)
	require.NoError(t, err)

	out, err := Displace(p, 0, 1, 1000)
	require.NoError(t, err)

	d, err := GeodesicDistance(p, out)
	require.NoError(t, err)
	require.InDelta(t, 1000, d, 1.0)
}

func TestDisplace_RejectsUnsupportedCRS(t *testing.T) {
	p := PointM{Coord: CoordM{X: 0, Y: 0, M: 0, CRS: CRS(9999)}}
	_, err := Displace(p, 1, 0, 10)
	require.Error(t, err)
}

func TestGeodesicDestination_NorthBearingIncreasesLatitude(t *testing.T) {
	p, err := NewPointM(0, 0, 0, WGS84)
	require.NoError(t, err)
	out, err := Displace(p, 0, 1, 1000)
	require.NoError(t, err)
	require.Greater(t, out.Y(), p.Y())
	require.InDelta(t, 0, out.X(), 1e-6)
	require.False(t, math.IsNaN(out.Y()))
}
