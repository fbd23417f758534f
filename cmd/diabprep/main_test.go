package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diabprep/pkg/data"
	"diabprep/pkg/dataprep"
)

const sampleCSV = `Glucose,BMI,Outcome
0,30,0
100,31,1
110,32,0
120,33,1
130,34,0
140,35,1
150,36,0
160,37,1
170,38,0
180,39,1
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diabetes.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))
	return path
}

func TestCleanCommand(t *testing.T) {
	in := writeSample(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "clean.csv")
	promPath := filepath.Join(dir, "run.prom")

	stdout, err := execute(t, "clean", "-i", in, "-o", outPath,
		"--targets", "Glucose,BMI", "--metrics", promPath, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cleaning summary")
	assert.Contains(t, stdout, "Simple imputation")

	cleaned, err := data.LoadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Glucose", "BMI", "Outcome", "Glucose_outlier", "BMI_outlier", "Outcome_outlier"}, cleaned.Names())
	assert.Equal(t, 10, cleaned.Rows())

	glucose, _ := cleaned.Column("Glucose")
	assert.Equal(t, 0, glucose.MissingCount())
	assert.NotContains(t, glucose.Nums, 0.0)

	prom, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "diabprep_rows 10")
}

func TestCleanCommandUnknownTarget(t *testing.T) {
	_, err := execute(t, "clean", "-i", writeSample(t), "--targets", "Insulin", "--log-level", "error")
	require.Error(t, err)
	assert.ErrorIs(t, err, dataprep.ErrColumnNotFound)
}

func TestCleanCommandRejectsBadThreshold(t *testing.T) {
	_, err := execute(t, "clean", "-i", writeSample(t), "--zscore-threshold", "-1", "--log-level", "error")
	assert.ErrorIs(t, err, dataprep.ErrInvalidConfiguration)
	assert.ErrorIs(t, err, dataprep.ErrInvalidThreshold)
}

func TestCleanCommandExcludesLabel(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "clean.csv")
	_, err := execute(t, "clean", "-i", writeSample(t), "-o", outPath,
		"--targets", "Glucose,BMI", "--label", "Outcome", "--log-level", "error")
	require.NoError(t, err)

	cleaned, err := data.LoadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Glucose", "BMI", "Outcome", "Glucose_outlier", "BMI_outlier"}, cleaned.Names())
}

func TestInspectCommand(t *testing.T) {
	stdout, err := execute(t, "inspect", "-i", writeSample(t), "--targets", "Glucose,BMI", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "10 rows, 3 columns")
	assert.Contains(t, stdout, "Missing or zero")
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "diabprep "))
}
