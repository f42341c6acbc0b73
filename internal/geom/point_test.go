package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCoordM_RejectsUnsupportedCRS(t *testing.T) {
	_, err := NewCoordM(1, 2, 3, CRS(9999))
	require.Error(t, err)
}

func TestNewPointM_AccessorsMatchConstruction(t *testing.T) {
	p, err := NewPointM(12.5, -3.25, 100, WGS84)
	require.NoError(t, err)
	require.Equal(t, 12.5, p.X())
	require.Equal(t, -3.25, p.Y())
	require.Equal(t, 100.0, p.M())
	require.Equal(t, WGS84, p.CRS())
}

func TestNewMultiPointM_RejectsMixedCRS(t *testing.T) {
	a, err := NewPointM(0, 0, 0, WGS84)
	require.NoError(t, err)
	b, err := NewPointM(1, 1, 1, WebMercator)
	require.NoError(t, err)

	_, err = NewMultiPointM([]PointM{a, b})
	require.Error(t, err)
}

func TestNewMultiPointM_Empty(t *testing.T) {
	mp, err := NewMultiPointM(nil)
	require.NoError(t, err)
	require.Empty(t, mp.Points)
}

func TestNewLineM_RejectsMixedCRS(t *testing.T) {
	a, err := NewPointM(0, 0, 0, WGS84)
	require.NoError(t, err)
	b, err := NewPointM(1, 1, 1, WebMercator)
	require.NoError(t, err)

	_, err = NewLineM(a, b)
	require.Error(t, err)
}

func TestLineM_DXDYDM(t *testing.T) {
	a, err := NewPointM(1, 2, 10, WebMercator)
	require.NoError(t, err)
	b, err := NewPointM(4, 6, 25, WebMercator)
	require.NoError(t, err)

	l, err := NewLineM(a, b)
	require.NoError(t, err)
	require.Equal(t, 3.0, l.DX())
	require.Equal(t, 4.0, l.DY())
	require.Equal(t, 15.0, l.DM())
	require.Equal(t, WebMercator, l.CRS())
}
