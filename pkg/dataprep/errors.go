package dataprep

import (
	"errors"
	"fmt"
)

var (
	ErrColumnNotFound       = errors.New("column not found")
	ErrEmptyColumn          = errors.New("column has no non-missing values")
	ErrInsufficientData     = errors.New("insufficient data")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidThreshold     = fmt.Errorf("%w: invalid threshold", ErrInvalidConfiguration)
	ErrIndicatorConflict    = errors.New("indicator name taken by a data column")
)

// Stage names used in ColumnError.
const (
	StageMissingness = "missingness"
	StageOutliers    = "outliers"
)

// ColumnError reports which column and which stage failed.
type ColumnError struct {
	Column string
	Stage  string
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: column %q: %v", e.Stage, e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

func columnErr(stage, column string, err error) error {
	return &ColumnError{Column: column, Stage: stage, Err: err}
}
