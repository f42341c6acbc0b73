// Package config loads the JSON-backed tuning defaults for the
// segmenter, stop-clusterer, and rasteriser stages.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the canonical tuning defaults file, the single
// source of truth for every stage's default parameters.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds the pipeline's tunable parameters. Every field is an
// optional pointer: a JSON file may set any subset, and the Get* methods
// supply a baked-in default for anything left unset.
type TuningConfig struct {
	// Segmenter
	SegmentGap *string `json:"segment_gap,omitempty"` // duration string like "30m"

	// Stop-clusterer
	MinClusterSize *int     `json:"min_cluster_size,omitempty"`
	DistThresDeg   *float64 `json:"dist_thres_deg,omitempty"`
	SpeedThresKts  *float64 `json:"speed_thres_kts,omitempty"`
	MaxTimeThres   *string  `json:"max_time_thres,omitempty"` // duration string like "10m"

	// Rasteriser
	SamplingZoom *int `json:"sampling_zoom,omitempty"`
	TargetZoom   *int `json:"target_zoom,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with every field nil; its Get*
// methods then report the baked-in defaults.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig reads and validates a TuningConfig from a JSON file.
// Fields omitted from the file keep their default values.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath, searching from the current directory up through a
// few parent directories so it resolves correctly from any package's test
// working directory. Panics if the file cannot be found, intended for
// test setup only.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that any set fields hold parseable/sane values.
func (c *TuningConfig) Validate() error {
	if c.SegmentGap != nil {
		if _, err := time.ParseDuration(*c.SegmentGap); err != nil {
			return fmt.Errorf("invalid segment_gap %q: %w", *c.SegmentGap, err)
		}
	}
	if c.MaxTimeThres != nil {
		if _, err := time.ParseDuration(*c.MaxTimeThres); err != nil {
			return fmt.Errorf("invalid max_time_thres %q: %w", *c.MaxTimeThres, err)
		}
	}
	if c.MinClusterSize != nil && *c.MinClusterSize < 1 {
		return fmt.Errorf("min_cluster_size must be >= 1, got %d", *c.MinClusterSize)
	}
	if c.DistThresDeg != nil && *c.DistThresDeg <= 0 {
		return fmt.Errorf("dist_thres_deg must be positive, got %f", *c.DistThresDeg)
	}
	if c.SamplingZoom != nil && c.TargetZoom != nil && *c.TargetZoom > *c.SamplingZoom {
		return fmt.Errorf("target_zoom (%d) cannot exceed sampling_zoom (%d)", *c.TargetZoom, *c.SamplingZoom)
	}
	return nil
}

// GetSegmentGap returns SegmentGap as a time.Duration, or 30 minutes.
func (c *TuningConfig) GetSegmentGap() time.Duration {
	if c.SegmentGap == nil {
		return 30 * time.Minute
	}
	d, err := time.ParseDuration(*c.SegmentGap)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// GetMinClusterSize returns MinClusterSize or 3.
func (c *TuningConfig) GetMinClusterSize() int {
	if c.MinClusterSize == nil {
		return 3
	}
	return *c.MinClusterSize
}

// GetDistThresDeg returns DistThresDeg or 0.001 degrees (roughly 100m at
// mid-latitudes).
func (c *TuningConfig) GetDistThresDeg() float64 {
	if c.DistThresDeg == nil {
		return 0.001
	}
	return *c.DistThresDeg
}

// GetSpeedThresKts returns SpeedThresKts or 1.0 knot.
func (c *TuningConfig) GetSpeedThresKts() float64 {
	if c.SpeedThresKts == nil {
		return 1.0
	}
	return *c.SpeedThresKts
}

// GetMaxTimeThres returns MaxTimeThres as a time.Duration, or 10 minutes.
func (c *TuningConfig) GetMaxTimeThres() time.Duration {
	if c.MaxTimeThres == nil {
		return 10 * time.Minute
	}
	d, err := time.ParseDuration(*c.MaxTimeThres)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}

// GetSamplingZoom returns SamplingZoom or 18.
func (c *TuningConfig) GetSamplingZoom() int {
	if c.SamplingZoom == nil {
		return 18
	}
	return *c.SamplingZoom
}

// GetTargetZoom returns TargetZoom or 12.
func (c *TuningConfig) GetTargetZoom() int {
	if c.TargetZoom == nil {
		return 12
	}
	return *c.TargetZoom
}
