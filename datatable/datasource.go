package datatable

// RecordSource provides records loaded from a file, table or service.
// Adapters return a RecordSource so the caller can build a Model without
// knowing where the records came from.
type RecordSource interface {
	// Fields returns the top-level field names in source order.
	Fields() []string

	// Records returns the loaded records, one per row.
	Records() []any

	// Metadata returns optional metadata about the source.
	// Returns an empty Metadata map if no metadata is available.
	Metadata() Metadata
}

// Metadata holds optional metadata about a record source.
type Metadata map[string]any

// SliceSource is a RecordSource over records already in memory.
type SliceSource struct {
	FieldNames []string
	Rows       []any
	Meta       Metadata
}

// Fields implements RecordSource.
func (s *SliceSource) Fields() []string {
	return s.FieldNames
}

// Records implements RecordSource.
func (s *SliceSource) Records() []any {
	return s.Rows
}

// Metadata implements RecordSource.
func (s *SliceSource) Metadata() Metadata {
	if s.Meta == nil {
		return Metadata{}
	}
	return s.Meta
}
