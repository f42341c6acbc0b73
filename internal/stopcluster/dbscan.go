// Package stopcluster implements a spatio-temporal DBSCAN stop-clusterer:
// it labels a chronologically ordered sequence of points-with-speed as
// Core/Edge/Noise/Unclassified, then derives a stop-or-move decomposition
// from the resulting clusters.
package stopcluster

import (
	"github.com/halcyon-marine/aistrack/internal/geom"
)

// ClassKind tags a Classification's variant.
type ClassKind int

const (
	Unclassified ClassKind = iota
	Noise
	Edge
	Core
)

// Classification is the per-point label produced by the clusterer: a
// tagged variant carrying a cluster ID for Core/Edge.
type Classification struct {
	Kind      ClassKind
	ClusterID int
}

// Labelled pairs a point with its classification, preserving input order.
type Labelled struct {
	Point geom.PointM
	SOG   float32
	Class Classification
}

// Clusterer runs the DBSCAN state machine over a chronologically ordered
// point sequence. Use one Clusterer per concurrently-running trajectory;
// Run holds no state across calls so sequential reuse is safe, but
// concurrent Run calls on the same instance are not.
type Clusterer struct {
	cfg Config
}

// New constructs a Clusterer from a validated Config.
func New(cfg Config) *Clusterer {
	return &Clusterer{cfg: cfg}
}

// neighbours returns the indices of all points satisfying the three
// predicates relative to points[i], excluding i itself: spatial distance
// < DistThres, temporal gap < MaxTimeThres, and SOG < SpeedThres. Because
// the input is chronologically ordered, this scans outward from i in both
// directions and stops as soon as the temporal-gap predicate fails — an
// O(k) contiguous-window search rather than an all-pairs scan.
func (c *Clusterer) neighbours(points []geom.PointM, sog []float32, i int) ([]int, error) {
	maxTimeSeconds := c.cfg.MaxTimeThres.Seconds()
	var out []int

	for j := i - 1; j >= 0; j-- {
		if points[i].M()-points[j].M() >= maxTimeSeconds {
			break
		}
		ok, err := c.isNeighbour(points, sog, i, j)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, j)
		}
	}
	for j := i + 1; j < len(points); j++ {
		if points[j].M()-points[i].M() >= maxTimeSeconds {
			break
		}
		ok, err := c.isNeighbour(points, sog, i, j)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, j)
		}
	}
	return out, nil
}

func (c *Clusterer) isNeighbour(points []geom.PointM, sog []float32, i, j int) (bool, error) {
	if j == i {
		return false, nil
	}
	if sog[j] >= c.cfg.SpeedThres {
		return false, nil
	}
	d, err := c.cfg.Dist(points[i], points[j])
	if err != nil {
		return false, err
	}
	return d < c.cfg.DistThres, nil
}

// isDense reports whether the neighbourhood of i is large enough to seed or
// grow a cluster. Following the classic DBSCAN convention (see the
// TestDBSCAN_S3 comment in dbscan_test.go for the worked example),
// min_cluster_size counts the query point itself alongside its
// neighbours — a point with min_cluster_size-1 neighbours plus itself
// meets the threshold.
func isDense(neigh []int, minClusterSize int) bool {
	return len(neigh)+1 >= minClusterSize
}

// Run executes the DBSCAN state machine over points/sog (chronologically
// ordered, same length), returning one Labelled entry per input point in
// input order.
func (c *Clusterer) Run(points []geom.PointM, sog []float32) ([]Labelled, error) {
	n := len(points)
	labels := make([]int, n) // 0 = unvisited, -1 = noise, >=1 = 1-based cluster id
	nextID := 0

	for i := 0; i < n; i++ {
		if labels[i] != 0 {
			continue
		}
		neigh, err := c.neighbours(points, sog, i)
		if err != nil {
			return nil, err
		}
		if !isDense(neigh, c.cfg.MinClusterSize) {
			labels[i] = -1
			continue
		}

		nextID++
		clusterID := nextID
		labels[i] = clusterID

		queue := append([]int{}, neigh...)
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if labels[j] == -1 {
				labels[j] = clusterID // Noise -> Edge(c)
			}
			if labels[j] != 0 {
				continue // already assigned (to this or, transiently, another cluster)
			}
			labels[j] = clusterID

			jNeigh, err := c.neighbours(points, sog, j)
			if err != nil {
				return nil, err
			}
			if isDense(jNeigh, c.cfg.MinClusterSize) {
				queue = append(queue, jNeigh...)
			}
		}
	}

	out := make([]Labelled, n)
	for i := range points {
		var class Classification
		if labels[i] == -1 {
			class = Classification{Kind: Noise}
		} else {
			neigh, err := c.neighbours(points, sog, i)
			if err != nil {
				return nil, err
			}
			kind := Edge
			if isDense(neigh, c.cfg.MinClusterSize) {
				kind = Core
			}
			class = Classification{Kind: kind, ClusterID: labels[i] - 1}
		}
		out[i] = Labelled{Point: points[i], SOG: sog[i], Class: class}
	}
	return out, nil
}
