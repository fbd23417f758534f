package dataset

// Schema describes the structure of a dataset.
type Schema struct {
	FeatureNames []string
	Types        []Kind
}

// Schema returns the names and kinds of the dataset's columns.
func (d *Dataset) Schema() Schema {
	s := Schema{
		FeatureNames: make([]string, len(d.cols)),
		Types:        make([]Kind, len(d.cols)),
	}
	for i, c := range d.cols {
		s.FeatureNames[i] = c.Name
		s.Types[i] = c.Kind
	}
	return s
}
