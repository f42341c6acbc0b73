package segment

import (
	"testing"

	"github.com/halcyon-marine/aistrack/internal/geom"
	"github.com/stretchr/testify/require"
)

func mustCoord(t *testing.T, x, y, m float64) geom.CoordM {
	t.Helper()
	c, err := geom.NewCoordM(x, y, m, geom.WebMercator)
	require.NoError(t, err)
	return c
}

func timeGapPredicate(maxGap float64) Predicate {
	return func(a, b geom.PointM) bool {
		return b.M()-a.M() <= maxGap
	}
}

// A time gap splits the trajectory in two.
func TestSegment_TimeGapSplitsTrajectory(t *testing.T) {
	ls, err := geom.From([]geom.CoordM{
		mustCoord(t, 1, 2, 0),
		mustCoord(t, 2, 3, 1),
		mustCoord(t, 3, 4, 3),
		mustCoord(t, 4, 5, 4),
	})
	require.NoError(t, err)

	splits, err := Segment(ls, timeGapPredicate(1.1))
	require.NoError(t, err)
	require.Len(t, splits, 2)

	require.Equal(t, KindSubTrajectory, splits[0].Kind)
	require.Equal(t, 2, splits[0].SubTrajectory.Len())
	require.Equal(t, 1.0, splits[0].SubTrajectory.Coords[0].X)

	require.Equal(t, KindSubTrajectory, splits[1].Kind)
	require.Equal(t, 2, splits[1].SubTrajectory.Len())
	require.Equal(t, 3.0, splits[1].SubTrajectory.Coords[0].X)
}

// No gap exceeds the threshold, so the whole input is one trajectory.
func TestSegment_NoSplitWhenPredicateHolds(t *testing.T) {
	ls, err := geom.From([]geom.CoordM{
		mustCoord(t, 1, 2, 0),
		mustCoord(t, 2, 3, 1),
		mustCoord(t, 3, 4, 2),
	})
	require.NoError(t, err)

	splits, err := Segment(ls, timeGapPredicate(1.1))
	require.NoError(t, err)
	require.Len(t, splits, 1)
	require.Equal(t, KindSubTrajectory, splits[0].Kind)
	require.Equal(t, 3, splits[0].SubTrajectory.Len())
}

// Invariant 1: concatenating all output points reproduces the input.
func TestSegment_ConcatenationReproducesInput(t *testing.T) {
	coords := []geom.CoordM{
		mustCoord(t, 1, 2, 0),
		mustCoord(t, 2, 3, 1),
		mustCoord(t, 3, 4, 3),
		mustCoord(t, 4, 5, 4),
		mustCoord(t, 5, 6, 10),
	}
	ls, err := geom.From(coords)
	require.NoError(t, err)

	splits, err := Segment(ls, timeGapPredicate(1.1))
	require.NoError(t, err)

	var got []geom.CoordM
	for _, s := range splits {
		switch s.Kind {
		case KindPoint:
			got = append(got, s.Point.Coord)
		case KindSubTrajectory:
			got = append(got, s.SubTrajectory.Coords...)
		}
	}
	require.Equal(t, coords, got)
}

// Invariant 2 & predicate-holds-internally: every SubTrajectory has len >= 2
// and satisfies the predicate on every internal adjacent pair.
func TestSegment_SubTrajectoryInvariants(t *testing.T) {
	coords := []geom.CoordM{
		mustCoord(t, 0, 0, 0),   // isolated: big gap after
		mustCoord(t, 0, 0, 100), // big gap before; starts a sub-trajectory with the next two
		mustCoord(t, 0, 0, 101),
		mustCoord(t, 0, 0, 102),
	}
	ls, err := geom.From(coords)
	require.NoError(t, err)

	predicate := timeGapPredicate(1.1)
	splits, err := Segment(ls, predicate)
	require.NoError(t, err)

	for _, s := range splits {
		if s.Kind != KindSubTrajectory {
			continue
		}
		require.GreaterOrEqual(t, s.SubTrajectory.Len(), 2)
		pts := s.SubTrajectory.Points()
		for i := 0; i+1 < len(pts); i++ {
			require.True(t, predicate(pts[i], pts[i+1]))
		}
	}
}

func TestSegmentTimestamp_PointAndSubTrajectory(t *testing.T) {
	coords := []geom.CoordM{
		mustCoord(t, 1, 2, 0),
		mustCoord(t, 2, 3, 1),
		mustCoord(t, 3, 4, 3),
		mustCoord(t, 4, 5, 4),
	}
	ls, err := geom.From(coords)
	require.NoError(t, err)

	intervals, err := SegmentTimestamp(ls, timeGapPredicate(1.1))
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	require.Equal(t, int64(0), intervals[0].Start.Unix())
	require.Equal(t, int64(1), int64(intervals[0].Duration.Seconds()))
	require.Equal(t, int64(3), intervals[1].Start.Unix())
	require.Equal(t, int64(1), int64(intervals[1].Duration.Seconds()))
}

func TestSegment_EmptyLineString(t *testing.T) {
	splits, err := Segment(geom.LineStringM{}, timeGapPredicate(1))
	require.NoError(t, err)
	require.Nil(t, splits)
}
