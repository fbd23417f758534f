package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diabprep/pkg/dataprep"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diabprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	v, err := New(writeConfig(t, "input: diabetes.csv\n"))
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "diabetes.csv", cfg.Input)
	assert.Equal(t, DefaultTargets, cfg.Targets)
	assert.Empty(t, cfg.Label)
	assert.Equal(t, dataprep.DefaultThresholds(), cfg.Thresholds)
	assert.Equal(t, 0.5, cfg.Outliers.SkewThreshold)
	assert.Equal(t, 3.0, cfg.Outliers.ZScoreThreshold)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
input: data/diabetes.xlsx
targets: [Glucose, BMI]
thresholds:
  upper_simple_pct: 25
  lower_advanced_pct: 25
  neighbor_count: 3
  knn_mode: multivariate
outliers:
  zscore_threshold: 2.5
  exclude: [Pregnancies]
logging:
  format: json
`)
	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"Glucose", "BMI"}, cfg.Targets)
	assert.Equal(t, 25.0, cfg.Thresholds.UpperSimplePct)
	assert.Equal(t, 25.0, cfg.Thresholds.LowerAdvancedPct)
	assert.Equal(t, 40.0, cfg.Thresholds.UpperAdvancedPct)
	assert.Equal(t, 3, cfg.Thresholds.NeighborCount)
	assert.Equal(t, dataprep.KNNMultivariate, cfg.Thresholds.KNNMode)
	assert.Equal(t, 2.5, cfg.Outliers.ZScoreThreshold)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("DIABPREP_THRESHOLDS_NEIGHBOR_COUNT", "7")
	t.Setenv("DIABPREP_LABEL", "Diagnosis")

	v, err := New(writeConfig(t, "input: diabetes.csv\nthresholds:\n  neighbor_count: 3\n"))
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Thresholds.NeighborCount)
	assert.Equal(t, "Diagnosis", cfg.Label)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		threshold bool
	}{
		{"missing input", "targets: [Glucose]\n", false},
		{"inverted simple band", "input: a.csv\nthresholds:\n  lower_simple_pct: 30\n  upper_simple_pct: 20\n", false},
		{"zero neighbours", "input: a.csv\nthresholds:\n  neighbor_count: 0\n", false},
		{"unknown knn mode", "input: a.csv\nthresholds:\n  knn_mode: bivariate\n", false},
		{"non-positive z", "input: a.csv\noutliers:\n  zscore_threshold: 0\n", true},
		{"unknown log format", "input: a.csv\nlogging:\n  format: xml\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New(writeConfig(t, tt.body))
			require.NoError(t, err)
			_, err = Load(v)
			assert.ErrorIs(t, err, dataprep.ErrInvalidConfiguration)
			if tt.threshold {
				assert.ErrorIs(t, err, dataprep.ErrInvalidThreshold)
			}
		})
	}
}

func TestNewFailsOnBrokenFile(t *testing.T) {
	_, err := New(writeConfig(t, "input: [unterminated\n"))
	assert.Error(t, err)
}

func TestOutlierConfigExcludesLabel(t *testing.T) {
	cfg := Config{
		Label:    "Outcome",
		Outliers: dataprep.OutlierConfig{SkewThreshold: 0.5, ZScoreThreshold: 3, Exclude: []string{"Pregnancies"}},
	}
	oc := cfg.OutlierConfig()
	assert.Equal(t, []string{"Pregnancies", "Outcome"}, oc.Exclude)
	assert.Equal(t, []string{"Pregnancies"}, cfg.Outliers.Exclude)

	cfg.Outliers.Exclude = []string{"Outcome"}
	assert.Equal(t, []string{"Outcome"}, cfg.OutlierConfig().Exclude)

	cfg = Config{Outliers: dataprep.DefaultOutlierConfig()}
	assert.Empty(t, cfg.OutlierConfig().Exclude)
}
