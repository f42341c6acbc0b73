package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTuningConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"min_cluster_size": 5}`)
	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.GetMinClusterSize())
	require.Equal(t, 0.001, cfg.GetDistThresDeg())
	require.Equal(t, 12, cfg.GetTargetZoom())
}

func TestLoadTuningConfig_RejectsNonJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.txt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err := LoadTuningConfig(path)
	require.Error(t, err)
}

func TestLoadTuningConfig_RejectsInvalidDuration(t *testing.T) {
	path := writeConfigFile(t, `{"segment_gap": "not-a-duration"}`)
	_, err := LoadTuningConfig(path)
	require.Error(t, err)
}

func TestLoadTuningConfig_RejectsTargetZoomAboveSamplingZoom(t *testing.T) {
	path := writeConfigFile(t, `{"sampling_zoom": 10, "target_zoom": 14}`)
	_, err := LoadTuningConfig(path)
	require.Error(t, err)
}

func TestEmptyTuningConfig_ReportsBakedInDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()
	require.Equal(t, 30*time.Minute, cfg.GetSegmentGap())
	require.Equal(t, 3, cfg.GetMinClusterSize())
	require.Equal(t, 1.0, cfg.GetSpeedThresKts())
	require.Equal(t, 10*time.Minute, cfg.GetMaxTimeThres())
	require.Equal(t, 18, cfg.GetSamplingZoom())
}

func TestMustLoadDefaultConfig_FindsCanonicalFile(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	require.Equal(t, 3, cfg.GetMinClusterSize())
	require.Equal(t, 18, cfg.GetSamplingZoom())
}
