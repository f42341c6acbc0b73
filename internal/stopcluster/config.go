package stopcluster

import (
	"time"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
	"github.com/halcyon-marine/aistrack/internal/geom"
)

// DistanceFunc is a user-supplied distance function over two points.
type DistanceFunc func(a, b geom.PointM) (float64, error)

// Config holds the tunable options of the spatio-temporal DBSCAN clusterer.
type Config struct {
	MinClusterSize int
	Dist           DistanceFunc
	DistThres      float64
	SpeedThres     float32
	MaxTimeThres   time.Duration
}

// ConfigBuilder is an explicit builder enforcing that every required field
// is set before Build succeeds.
type ConfigBuilder struct {
	minClusterSize *int
	dist           DistanceFunc
	distThres      *float64
	speedThres     *float32
	maxTimeThres   *time.Duration
}

// NewConfigBuilder returns an empty builder.
func NewConfigBuilder() *ConfigBuilder { return &ConfigBuilder{} }

func (b *ConfigBuilder) MinClusterSize(n int) *ConfigBuilder {
	b.minClusterSize = &n
	return b
}

func (b *ConfigBuilder) Dist(f DistanceFunc) *ConfigBuilder {
	b.dist = f
	return b
}

func (b *ConfigBuilder) DistThres(d float64) *ConfigBuilder {
	b.distThres = &d
	return b
}

func (b *ConfigBuilder) SpeedThres(s float32) *ConfigBuilder {
	b.speedThres = &s
	return b
}

func (b *ConfigBuilder) MaxTimeThres(d time.Duration) *ConfigBuilder {
	b.maxTimeThres = &d
	return b
}

// Build validates that every required field has been set and returns the
// immutable Config, or a ConfigurationError naming the first missing field.
func (b *ConfigBuilder) Build() (Config, error) {
	switch {
	case b.minClusterSize == nil:
		return Config{}, missingField("min_cluster_size")
	case b.dist == nil:
		return Config{}, missingField("dist")
	case b.distThres == nil:
		return Config{}, missingField("dist_thres")
	case b.speedThres == nil:
		return Config{}, missingField("speed_thres")
	case b.maxTimeThres == nil:
		return Config{}, missingField("max_time_thres")
	}
	return Config{
		MinClusterSize: *b.minClusterSize,
		Dist:           b.dist,
		DistThres:      *b.distThres,
		SpeedThres:     *b.speedThres,
		MaxTimeThres:   *b.maxTimeThres,
	}, nil
}

func missingField(name string) error {
	return aiserr.New(aiserr.KindConfigurationError, "ConfigBuilder.Build", "missing required field: "+name)
}
