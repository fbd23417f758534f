// Package config loads pipeline settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"diabprep/pkg/dataprep"
)

// EnvPrefix prefixes environment overrides, e.g. DIABPREP_THRESHOLDS_NEIGHBOR_COUNT.
const EnvPrefix = "DIABPREP"

// DefaultTargets are the Pima dataset columns where zero is physiologically impossible.
var DefaultTargets = []string{"Glucose", "BloodPressure", "SkinThickness", "Insulin", "BMI", "Age"}

// Config is the full pipeline configuration.
type Config struct {
	Input      string                 `mapstructure:"input" validate:"required"`
	Output     string                 `mapstructure:"output"`
	Targets    []string               `mapstructure:"targets" validate:"min=1,dive,required"`
	Label      string                 `mapstructure:"label"`
	Thresholds dataprep.Thresholds    `mapstructure:"thresholds"`
	Outliers   dataprep.OutlierConfig `mapstructure:"outliers"`
	Logging    Logging                `mapstructure:"logging"`
	Report     Report                 `mapstructure:"report"`
}

// Logging selects slog level and handler.
type Logging struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// Report holds optional report outputs.
type Report struct {
	Chart   string `mapstructure:"chart"`
	Metrics string `mapstructure:"metrics"`
}

// SetDefaults registers every key with its default so environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	th := dataprep.DefaultThresholds()
	oc := dataprep.DefaultOutlierConfig()

	v.SetDefault("input", "")
	v.SetDefault("output", "")
	v.SetDefault("targets", DefaultTargets)
	v.SetDefault("label", "")

	v.SetDefault("thresholds.lower_simple_pct", th.LowerSimplePct)
	v.SetDefault("thresholds.upper_simple_pct", th.UpperSimplePct)
	v.SetDefault("thresholds.skew_threshold", th.SkewThreshold)
	v.SetDefault("thresholds.lower_advanced_pct", th.LowerAdvancedPct)
	v.SetDefault("thresholds.upper_advanced_pct", th.UpperAdvancedPct)
	v.SetDefault("thresholds.neighbor_count", th.NeighborCount)
	v.SetDefault("thresholds.knn_mode", string(th.KNNMode))

	v.SetDefault("outliers.skew_threshold", oc.SkewThreshold)
	v.SetDefault("outliers.zscore_threshold", oc.ZScoreThreshold)
	v.SetDefault("outliers.exclude", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("report.chart", "")
	v.SetDefault("report.metrics", "")
}

// New returns a viper instance with defaults and environment binding.
// When cfgFile is empty, diabprep.yaml is searched in the working
// directory and in $HOME/.config/diabprep.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("diabprep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "diabprep"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// no config file is fine, defaults apply
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field ranges and the threshold bands.
func (c Config) Validate() error {
	if err := validate.StructExcept(c, "Thresholds", "Outliers"); err != nil {
		return fmt.Errorf("%w: %v", dataprep.ErrInvalidConfiguration, err)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	return c.Outliers.Validate()
}

// OutlierConfig returns the outlier settings, excluding the label column
// when one is set.
func (c Config) OutlierConfig() dataprep.OutlierConfig {
	oc := c.Outliers
	oc.Exclude = slices.Clone(oc.Exclude)
	if c.Label != "" && !slices.Contains(oc.Exclude, c.Label) {
		oc.Exclude = append(oc.Exclude, c.Label)
	}
	return oc
}
