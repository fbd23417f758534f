package dataset

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrLengthMismatch  = errors.New("column length does not match row count")
)

// Kind is the value type of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column holds one named series. Numeric columns use Nums with NaN as the
// missing marker, categorical columns use Cats with "" as the missing marker.
type Column struct {
	Name string
	Kind Kind
	Nums []float64
	Cats []string
}

// NewNumeric creates a numeric column (the slice is owned by the column).
func NewNumeric(name string, vals []float64) *Column {
	return &Column{Name: name, Kind: Numeric, Nums: vals}
}

// NewCategorical creates a categorical column (the slice is owned by the column).
func NewCategorical(name string, vals []string) *Column {
	return &Column{Name: name, Kind: Categorical, Cats: vals}
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Nums)
	}
	return len(c.Cats)
}

// IsMissing reports whether row i holds the missing marker.
func (c *Column) IsMissing(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Nums[i])
	}
	return c.Cats[i] == ""
}

// MissingCount counts missing markers.
func (c *Column) MissingCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Present returns a copy of the non-missing numeric values in row order.
func (c *Column) Present() []float64 {
	if c.Kind != Numeric {
		return nil
	}
	out := make([]float64, 0, len(c.Nums))
	for _, v := range c.Nums {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// PresentCats returns the non-missing categorical values in row order.
func (c *Column) PresentCats() []string {
	if c.Kind != Categorical {
		return nil
	}
	out := make([]string, 0, len(c.Cats))
	for _, v := range c.Cats {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Clone deep copies the column.
func (c *Column) Clone() *Column {
	n := &Column{Name: c.Name, Kind: c.Kind}
	if c.Nums != nil {
		n.Nums = make([]float64, len(c.Nums))
		copy(n.Nums, c.Nums)
	}
	if c.Cats != nil {
		n.Cats = make([]string, len(c.Cats))
		copy(n.Cats, c.Cats)
	}
	return n
}

// Dataset is an ordered collection of equal-length named columns.
type Dataset struct {
	rows  int
	cols  []*Column
	index map[string]int
}

// New allocates an empty dataset with a fixed row count.
func New(rows int) *Dataset {
	return &Dataset{rows: rows, index: make(map[string]int)}
}

// FromColumns builds a dataset from columns, inferring the row count from the first one.
func FromColumns(cols ...*Column) (*Dataset, error) {
	rows := 0
	if len(cols) > 0 {
		rows = cols[0].Len()
	}
	ds := New(rows)
	for _, c := range cols {
		if err := ds.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Rows returns the row count.
func (d *Dataset) Rows() int { return d.rows }

// Width returns the column count.
func (d *Dataset) Width() int { return len(d.cols) }

// AddColumn appends a column at the end.
func (d *Dataset) AddColumn(c *Column) error {
	if _, ok := d.index[c.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateColumn, c.Name)
	}
	if c.Len() != d.rows {
		return fmt.Errorf("%w: %s has %d values, dataset has %d rows", ErrLengthMismatch, c.Name, c.Len(), d.rows)
	}
	d.index[c.Name] = len(d.cols)
	d.cols = append(d.cols, c)
	return nil
}

// SetColumn replaces a column with the same name in place, or appends it.
func (d *Dataset) SetColumn(c *Column) error {
	i, ok := d.index[c.Name]
	if !ok {
		return d.AddColumn(c)
	}
	if c.Len() != d.rows {
		return fmt.Errorf("%w: %s has %d values, dataset has %d rows", ErrLengthMismatch, c.Name, c.Len(), d.rows)
	}
	d.cols[i] = c
	return nil
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

// Has reports whether a column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Columns returns the columns in order. The slice is a copy, the columns are not.
func (d *Dataset) Columns() []*Column {
	out := make([]*Column, len(d.cols))
	copy(out, d.cols)
	return out
}

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name
	}
	return out
}

// NumericColumns returns the numeric columns in order.
func (d *Dataset) NumericColumns() []*Column {
	var out []*Column
	for _, c := range d.cols {
		if c.Kind == Numeric {
			out = append(out, c)
		}
	}
	return out
}

// Drop removes a column. Dropping an absent column is a no-op that returns false.
func (d *Dataset) Drop(name string) bool {
	i, ok := d.index[name]
	if !ok {
		return false
	}
	d.cols = append(d.cols[:i], d.cols[i+1:]...)
	delete(d.index, name)
	for j := i; j < len(d.cols); j++ {
		d.index[d.cols[j].Name] = j
	}
	return true
}

// Clone deep copies the dataset so the copy shares no backing storage.
func (d *Dataset) Clone() *Dataset {
	n := New(d.rows)
	for _, c := range d.cols {
		// names are unique and lengths already match
		_ = n.AddColumn(c.Clone())
	}
	return n
}

// MissingCounts returns the missing-marker count per column in column order.
func (d *Dataset) MissingCounts() []NamedCount {
	out := make([]NamedCount, len(d.cols))
	for i, c := range d.cols {
		out[i] = NamedCount{Name: c.Name, Count: c.MissingCount()}
	}
	return out
}

// NamedCount pairs a column name with a count.
type NamedCount struct {
	Name  string
	Count int
}
