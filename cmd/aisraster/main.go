package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/halcyon-marine/aistrack/internal/config"
	"github.com/halcyon-marine/aistrack/internal/extrude"
	"github.com/halcyon-marine/aistrack/internal/geom"
	"github.com/halcyon-marine/aistrack/internal/ingest"
	"github.com/halcyon-marine/aistrack/internal/pipeline"
	"github.com/halcyon-marine/aistrack/internal/stopcluster"
	"github.com/halcyon-marine/aistrack/internal/store"
)

func main() {
	var csvPath string
	var tuningPath string
	var concurrency int

	flag.StringVar(&csvPath, "csv", "", "path to a bulk AIS CSV export")
	flag.StringVar(&tuningPath, "tuning-config", "", "path to a tuning JSON file (defaults to "+config.DefaultConfigPath+" if present)")
	flag.IntVar(&concurrency, "concurrency", 8, "maximum number of trajectories processed concurrently")
	flag.Parse()

	if csvPath == "" {
		log.Fatalf("-csv is required")
	}

	tuning := loadTuning(tuningPath)
	samplingZoom := tuning.GetSamplingZoom()
	targetZoom := tuning.GetTargetZoom()
	minClusterSize := tuning.GetMinClusterSize()
	distThresDeg := tuning.GetDistThresDeg()
	speedThresKnots := tuning.GetSpeedThresKts()
	maxTimeGap := tuning.GetMaxTimeThres()
	segmentGap := tuning.GetSegmentGap()

	runID := uuid.New().String()
	log.Printf("starting raster run %s for %s", runID, csvPath)

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := ingest.ReadCSV(f)
	if err != nil {
		log.Fatalf("read csv: %v", err)
	}
	trajectories, sog, meta, err := toTrajectories(rows)
	if err != nil {
		log.Fatalf("build trajectories: %v", err)
	}
	fmt.Printf("parsed %d rows into %d vessel trajectories\n", len(rows), len(trajectories))
	logSpeedPercentiles(sog)

	// geom.Distance is geodesic, in metres, on WGS84 trajectories, so the
	// degree threshold is converted to metres of arc on the mean Earth radius.
	const metresPerDegree = 111195.08
	clusterCfg, err := stopcluster.NewConfigBuilder().
		MinClusterSize(minClusterSize).
		Dist(geom.Distance).
		DistThres(distThresDeg * metresPerDegree).
		SpeedThres(float32(speedThresKnots)).
		MaxTimeThres(maxTimeGap).
		Build()
	if err != nil {
		log.Fatalf("build cluster config: %v", err)
	}

	cfg := pipeline.Config{
		Segment: func(a, b geom.PointM) bool {
			return b.M()-a.M() < segmentGap.Seconds()
		},
		Cluster:        clusterCfg,
		SamplingZoom:   samplingZoom,
		TargetZoom:     targetZoom,
		MaxConcurrency: concurrency,
	}

	var vesselTrajectories []pipeline.VesselTrajectory
	for mmsi, ls := range trajectories {
		vesselTrajectories = append(vesselTrajectories, pipeline.VesselTrajectory{
			MMSI:         mmsi,
			LineString:   ls,
			SOG:          sog[mmsi],
			Extents:      meta[mmsi].extents,
			Draught:      meta[mmsi].draught,
			LengthMetres: meta[mmsi].length,
			WidthMetres:  meta[mmsi].width,
		})
	}

	results, err := pipeline.Run(context.Background(), cfg, vesselTrajectories)
	if err != nil {
		log.Fatalf("pipeline run: %v", err)
	}

	cellResults := pipeline.Aggregate(results, targetZoom)
	fmt.Printf("aggregated %d tiles at zoom %d\n", len(cellResults), targetZoom)

	dbCfg, err := store.LoadConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	db, err := store.Open(dbCfg)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := db.MigrateUp(); err != nil {
		log.Fatalf("migrate db: %v", err)
	}

	for _, cr := range cellResults {
		row := store.TileRowFromTile(cr.Tile, cr.Start, cr.End)
		if err := db.InsertTile(row); err != nil {
			log.Fatalf("insert tile (%d, %d, %d): %v", row.X, row.Y, row.Z, err)
		}
	}
	log.Printf("raster run %s complete", runID)
}

// loadTuning loads a tuning config from an explicit path, falling back to
// the canonical defaults file if present, or built-in defaults otherwise.
func loadTuning(explicitPath string) *config.TuningConfig {
	path := explicitPath
	if path == "" {
		path = config.DefaultConfigPath
	}
	cfg, err := config.LoadTuningConfig(path)
	if err != nil {
		if explicitPath != "" {
			log.Fatalf("load tuning config: %v", err)
		}
		return config.EmptyTuningConfig()
	}
	return cfg
}

// logSpeedPercentiles reports the P50/P85/P98 SOG across every observation
// of the vessels that formed a trajectory, the same percentile set the fleet dashboards use for
// speed distributions.
func logSpeedPercentiles(sogByMMSI map[uint64][]float32) {
	var all []float64
	for _, sogs := range sogByMMSI {
		for _, v := range sogs {
			all = append(all, float64(v))
		}
	}
	if len(all) == 0 {
		return
	}
	sort.Float64s(all)
	p50 := stat.Quantile(0.5, stat.Empirical, all, nil)
	p85 := stat.Quantile(0.85, stat.Empirical, all, nil)
	p98 := stat.Quantile(0.98, stat.Empirical, all, nil)
	fmt.Printf("speed percentiles (knots): p50=%.2f p85=%.2f p98=%.2f\n", p50, p85, p98)
}

type vesselMeta struct {
	extents extrude.Extents
	draught *float64
	length  *float64
	width   *float64
}

func toTrajectories(rows []ingest.Row) (map[uint64]geom.LineStringM, map[uint64][]float32, map[uint64]vesselMeta, error) {
	byMMSI, err := ingest.GroupByMMSI(rows)
	if err != nil {
		return nil, nil, nil, err
	}

	sogByMMSI := make(map[uint64][]float32, len(byMMSI))
	metaByMMSI := make(map[uint64]vesselMeta, len(byMMSI))

	rowsByMMSI := make(map[uint64][]ingest.Row)
	for _, r := range rows {
		rowsByMMSI[r.MMSI] = append(rowsByMMSI[r.MMSI], r)
	}

	for mmsi, ls := range byMMSI {
		group := rowsByMMSI[mmsi]
		sortRowsChronologically(group)

		sogs := make([]float32, 0, ls.Len())
		var draught, length, width *float64
		for _, r := range group {
			sogs = append(sogs, float32(optionalOr(r.SOG, 0)))
			if r.Draught != nil {
				draught = r.Draught
			}
			if r.Length != nil {
				v := float64(*r.Length)
				length = &v
			}
			if r.Width != nil {
				v := float64(*r.Width)
				width = &v
			}
		}
		// GroupByMMSI keeps duplicate timestamps and only drops a row whose
		// timestamp is out of order after sorting; trim the SOG slice so it
		// is never longer than the linestring it kept.
		if len(sogs) > ls.Len() {
			sogs = sogs[len(sogs)-ls.Len():]
		}

		sogByMMSI[mmsi] = sogs
		metaByMMSI[mmsi] = vesselMeta{
			extents: defaultExtents(length, width),
			draught: draught,
			length:  length,
			width:   width,
		}
	}
	return byMMSI, sogByMMSI, metaByMMSI, nil
}

func sortRowsChronologically(rows []ingest.Row) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Timestamp.Before(rows[j].Timestamp) })
}

func optionalOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// defaultExtents derives a rough hull-sweep half-extent footprint from a
// vessel's reported length and width, falling back to a small-craft
// default when either is unreported.
func defaultExtents(length, width *float64) extrude.Extents {
	l := optionalOr(length, 30)
	w := optionalOr(width, 8)
	return extrude.Extents{
		Fore:      l * 0.6,
		Aft:       l * 0.4,
		Port:      w * 0.5,
		Starboard: w * 0.5,
	}
}
