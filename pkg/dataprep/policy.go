package dataprep

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// KNNMode selects the feature set used by advanced imputation.
type KNNMode string

const (
	// KNNUnivariate fits neighbours on the target column alone.
	KNNUnivariate KNNMode = "univariate"
	// KNNMultivariate fits neighbours on every numeric column.
	KNNMultivariate KNNMode = "multivariate"
)

// Thresholds parameterizes the missingness resolver. Percentages are 0-100.
type Thresholds struct {
	LowerSimplePct   float64 `mapstructure:"lower_simple_pct" validate:"gte=0,lte=100,ltefield=UpperSimplePct"`
	UpperSimplePct   float64 `mapstructure:"upper_simple_pct" validate:"gte=0,lte=100"`
	SkewThreshold    float64 `mapstructure:"skew_threshold" validate:"gte=0"`
	LowerAdvancedPct float64 `mapstructure:"lower_advanced_pct" validate:"gte=0,lte=100,ltefield=UpperAdvancedPct"`
	UpperAdvancedPct float64 `mapstructure:"upper_advanced_pct" validate:"gte=0,lte=100"`
	NeighborCount    int     `mapstructure:"neighbor_count" validate:"gte=1"`
	KNNMode          KNNMode `mapstructure:"knn_mode" validate:"oneof=univariate multivariate"`
}

// DefaultThresholds returns the stock policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowerSimplePct:   0,
		UpperSimplePct:   20,
		SkewThreshold:    0.5,
		LowerAdvancedPct: 20,
		UpperAdvancedPct: 40,
		NeighborCount:    5,
		KNNMode:          KNNUnivariate,
	}
}

// Validate fails with ErrInvalidConfiguration when a band is inverted or out of range.
func (t Thresholds) Validate() error {
	return validateStruct(t, ErrInvalidConfiguration)
}

var validate = validator.New()

func validateStruct(s any, sentinel error) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s=%v fails %s=%s", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s=%v fails %s", fe.Field(), fe.Value(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(msgs, "; "))
}

// Treatment is the band a column falls into by its missingness.
type Treatment int

const (
	TreatmentNone Treatment = iota
	TreatmentSimple
	TreatmentAdvanced
	TreatmentDrop
)

func (t Treatment) String() string {
	switch t {
	case TreatmentSimple:
		return "Simple imputation"
	case TreatmentAdvanced:
		return "Advanced imputation"
	case TreatmentDrop:
		return "Drop column"
	default:
		return "Not treated"
	}
}

// Strategy is the concrete action applied to a column.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategySimpleMean
	StrategySimpleMedian
	StrategySimpleMode
	StrategyKNN
	StrategyDrop
)

// Method names the imputation method for reports.
func (s Strategy) Method() string {
	switch s {
	case StrategySimpleMean:
		return "Mean"
	case StrategySimpleMedian:
		return "Median"
	case StrategySimpleMode:
		return "Mode"
	case StrategyKNN:
		return "KNN"
	case StrategyDrop:
		return "Exclusion"
	default:
		return "None"
	}
}

func (s Strategy) String() string { return s.Method() }

type treatmentRule struct {
	treatment Treatment
	match     func(pct float64, t Thresholds) bool
}

// Evaluated in order; the first match wins. Lower bounds are exclusive,
// upper bounds inclusive.
var treatmentRules = []treatmentRule{
	{TreatmentSimple, func(p float64, t Thresholds) bool { return p > t.LowerSimplePct && p <= t.UpperSimplePct }},
	{TreatmentAdvanced, func(p float64, t Thresholds) bool { return p > t.LowerAdvancedPct && p <= t.UpperAdvancedPct }},
	{TreatmentDrop, func(p float64, t Thresholds) bool { return p > t.UpperAdvancedPct }},
}

// SelectTreatment maps an unrounded missingness percentage to a treatment band.
func SelectTreatment(pct float64, t Thresholds) Treatment {
	for _, r := range treatmentRules {
		if r.match(pct, t) {
			return r.treatment
		}
	}
	return TreatmentNone
}

// SimpleStrategy picks mean or median by skewness for numeric columns.
func SimpleStrategy(skew float64, t Thresholds) Strategy {
	if skew > t.SkewThreshold || -skew > t.SkewThreshold {
		return StrategySimpleMedian
	}
	return StrategySimpleMean
}
