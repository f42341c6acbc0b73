// Package segment implements a trajectory segmenter: it splits a
// LineStringM wherever a pairwise predicate over consecutive points fails,
// producing a tagged sequence of sub-trajectories and isolated points, and
// can emit (start, duration) intervals per split.
package segment

import (
	"time"

	"github.com/halcyon-marine/aistrack/internal/geom"
)

// Predicate reports whether two chronologically adjacent points should
// remain in the same sub-trajectory. Implemented as a plain function value
// — Go has no need for a trait-object equivalent here.
type Predicate func(a, b geom.PointM) bool

// SplitKind tags a TrajectorySplit's variant.
type SplitKind int

const (
	KindPoint SplitKind = iota
	KindSubTrajectory
)

// Split is a tagged union: either an isolated Point or a SubTrajectory of
// length >= 2.
type Split struct {
	Kind        SplitKind
	Point       geom.PointM
	SubTrajectory geom.LineStringM
}

// Segment splits ls at every consecutive pair for which predicate is
// false. The output, concatenated back together in order, reproduces ls
// exactly.
func Segment(ls geom.LineStringM, predicate Predicate) ([]Split, error) {
	points := ls.Points()
	if len(points) == 0 {
		return nil, nil
	}

	groups := [][]geom.PointM{{points[0]}}
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		if predicate(a, b) {
			last := len(groups) - 1
			groups[last] = append(groups[last], b)
		} else {
			groups = append(groups, []geom.PointM{b})
		}
	}

	out := make([]Split, 0, len(groups))
	for _, g := range groups {
		if len(g) == 1 {
			out = append(out, Split{Kind: KindPoint, Point: g[0]})
			continue
		}
		sub, err := geom.FromPoints(g)
		if err != nil {
			return nil, err
		}
		out = append(out, Split{Kind: KindSubTrajectory, SubTrajectory: sub})
	}
	return out, nil
}

// Interval is a (start time, duration) pair emitted per split.
type Interval struct {
	Start    time.Time
	Duration time.Duration
}

// SegmentTimestamp runs Segment and converts each split into a (start,
// duration) interval: a Point becomes a zero-duration instant at
// floor(m); a SubTrajectory becomes [floor(first.m), ceil(last.m)).
func SegmentTimestamp(ls geom.LineStringM, predicate Predicate) ([]Interval, error) {
	splits, err := Segment(ls, predicate)
	if err != nil {
		return nil, err
	}
	out := make([]Interval, 0, len(splits))
	for _, s := range splits {
		switch s.Kind {
		case KindPoint:
			t, err := geom.FloorTimestamp(s.Point.M())
			if err != nil {
				return nil, err
			}
			out = append(out, Interval{Start: t, Duration: 0})
		case KindSubTrajectory:
			start, err := geom.FloorTimestamp(s.SubTrajectory.First().M())
			if err != nil {
				return nil, err
			}
			end, err := geom.CeilTimestamp(s.SubTrajectory.Last().M())
			if err != nil {
				return nil, err
			}
			out = append(out, Interval{Start: start, Duration: end.Sub(start)})
		}
	}
	return out, nil
}
