package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diabprep/pkg/dataprep"
)

func TestRecorderObserves(t *testing.T) {
	r := NewRecorder()
	r.ObserveSummary(dataprep.Summary{Records: []dataprep.Record{
		{Column: "Glucose", MissingPct: 0.65, Treatment: dataprep.TreatmentSimple, Strategy: dataprep.StrategySimpleMean},
		{Column: "BMI", MissingPct: 1.43, Treatment: dataprep.TreatmentSimple, Strategy: dataprep.StrategySimpleMean},
		{Column: "Insulin", MissingPct: 48.7, Treatment: dataprep.TreatmentDrop, Strategy: dataprep.StrategyDrop},
	}})
	r.ObserveOutliers(dataprep.OutlierReport{Columns: []dataprep.OutlierColumn{
		{Column: "Age", Method: dataprep.MethodIQR, Flagged: 9},
	}})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ColumnsTreated.WithLabelValues("Simple imputation", "Mean")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ColumnsTreated.WithLabelValues("Drop column", "Exclusion")))
	assert.Equal(t, 48.7, testutil.ToFloat64(r.MissingPercent.WithLabelValues("Insulin")))
	assert.Equal(t, 9.0, testutil.ToFloat64(r.OutliersFlagged.WithLabelValues("Age", "IQR")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Rows.Set(768)
	r.ObserveOutliers(dataprep.OutlierReport{Columns: []dataprep.OutlierColumn{
		{Column: "BMI", Method: dataprep.MethodZScore, Flagged: 4},
	}})

	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, r.WriteTextfile(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "diabprep_rows 768")
	assert.Contains(t, string(body), `diabprep_outliers_flagged_total{column="BMI",method="Z-score"} 4`)
}
