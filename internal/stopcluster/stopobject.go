package stopcluster

import (
	"github.com/halcyon-marine/aistrack/internal/geom"
)

// StopOrLsKind tags a StopOrLs's variant.
type StopOrLsKind int

const (
	KindStop StopOrLsKind = iota
	KindLineString
)

// StopOrLs is either a Stop (convex hull polygon plus a time range) or a
// travel LineStringM.
type StopOrLs struct {
	Kind       StopOrLsKind
	Polygon    geom.Polygon
	TimeBegin  float64
	TimeEnd    float64
	LineString geom.LineStringM
}

// sameRun reports whether consecutive labels belong to the same maximal
// stop-or-move run: either both share a cluster ID, or both are
// Noise/Unclassified (move).
func sameRun(a, b Classification) bool {
	aStop := a.Kind == Core || a.Kind == Edge
	bStop := b.Kind == Core || b.Kind == Edge
	if aStop && bStop {
		return a.ClusterID == b.ClusterID
	}
	return !aStop && !bStop
}

// StopObjects partitions labelled output into maximal runs and emits one
// StopOrLs per run: a Stop{convex_hull, (min m, max m)} for stop runs, an
// LS(LineStringM) for move runs. A move run of a single point cannot form
// a LineStringM and is dropped.
func StopObjects(labelled []Labelled) ([]StopOrLs, error) {
	if len(labelled) == 0 {
		return nil, nil
	}

	var out []StopOrLs
	start := 0
	for i := 1; i <= len(labelled); i++ {
		if i < len(labelled) && sameRun(labelled[i-1].Class, labelled[i].Class) {
			continue
		}
		run := labelled[start:i]
		so, keep, err := buildRun(run)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, so)
		}
		start = i
	}
	return out, nil
}

func buildRun(run []Labelled) (StopOrLs, bool, error) {
	isStop := run[0].Class.Kind == Core || run[0].Class.Kind == Edge

	if isStop {
		points := make([]geom.PointM, len(run))
		minM, maxM := run[0].Point.M(), run[0].Point.M()
		for i, l := range run {
			points[i] = l.Point
			if l.Point.M() < minM {
				minM = l.Point.M()
			}
			if l.Point.M() > maxM {
				maxM = l.Point.M()
			}
		}
		hull, err := geom.ConvexHull(points)
		if err != nil {
			return StopOrLs{}, false, err
		}
		return StopOrLs{Kind: KindStop, Polygon: hull, TimeBegin: minM, TimeEnd: maxM}, true, nil
	}

	points := make([]geom.PointM, len(run))
	for i, l := range run {
		points[i] = l.Point
	}
	if len(points) < 2 {
		// A single moving point with no neighbour to pair with cannot form
		// a LineStringM (length invariant); drop it.
		return StopOrLs{}, false, nil
	}
	ls, err := geom.FromPoints(points)
	if err != nil {
		return StopOrLs{}, false, err
	}
	return StopOrLs{Kind: KindLineString, LineString: ls}, true, nil
}
