package datatable

import "errors"

// Common errors returned by the datatable package.
var (
	// ErrColumnNotFound is returned when a column name is not in the column set.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("column name duplicated")

	// ErrEmptyColumnName is returned when a column has no name.
	ErrEmptyColumnName = errors.New("column name is empty")

	// ErrMissingFormat is returned when a date column has no format function.
	ErrMissingFormat = errors.New("date column requires a format function")

	// ErrAmbiguousValue is returned when a column sets both a path and a value function.
	ErrAmbiguousValue = errors.New("column sets both a value path and a value function")

	// ErrUnknownColumnType is returned when a column type name is not recognized.
	ErrUnknownColumnType = errors.New("unknown column type")

	// ErrNoColumns is returned when a required column set is nil.
	ErrNoColumns = errors.New("column set is nil")

	// ErrNoDataSource is returned when a required record source is nil.
	ErrNoDataSource = errors.New("record source is nil")

	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrUncomparableKey is returned when an identity function yields a key
	// that cannot be used for set membership.
	ErrUncomparableKey = errors.New("row key is not comparable")
)
