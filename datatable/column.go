// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datatable

import (
	"fmt"
	"reflect"
)

// ValueFunc computes a column's raw value from a record.
type ValueFunc func(record any) (any, error)

// FormatFunc turns a present raw value into its display value.
type FormatFunc func(raw any) (any, error)

// Column describes one table column.
type Column struct {
	// Type selects the formatting policy.
	Type ColumnType

	// Name identifies the column and must be unique within a ColumnSet.
	// Without Path or Value, it is also the path used to find the value.
	Name string

	// Label is the header text. Name is used when empty.
	Label string

	// Path is a property path into the record, never a literal value.
	Path string

	// Value computes the raw value. It may not be combined with Path.
	Value ValueFunc

	// Formatter converts present values for display.
	// Required for date columns, optional for text and number columns.
	Formatter FormatFunc
}

// Header returns the text shown in the column header.
func (c Column) Header() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// Extract returns the raw value of the column for record.
// The second result is false when the value is absent. Errors from the
// column's value function are returned unchanged.
func (c Column) Extract(record any) (any, bool, error) {
	switch {
	case c.Value != nil:
		raw, err := c.Value(record)
		if err != nil {
			return nil, false, err
		}
		return raw, !IsAbsent(raw), nil
	case c.Path != "":
		raw, ok := Resolve(record, c.Path)
		return raw, ok, nil
	default:
		raw, ok := Resolve(record, c.Name)
		return raw, ok, nil
	}
}

// Format applies the column's type policy to an extracted value.
func (c Column) Format(raw any, present bool) (Value, error) {
	if !present || IsAbsent(raw) {
		return AbsentValue(c.Type), nil
	}

	v := Value{Raw: raw, Display: raw, Type: c.Type}
	switch c.Type {
	case ColumnText, ColumnNumber:
		if c.Formatter == nil {
			return v, nil
		}
	case ColumnDate:
		if c.Formatter == nil {
			return Value{}, fmt.Errorf("%w: %s", ErrMissingFormat, c.Name)
		}
	default:
		// Template and unrecognized types are projected by the renderer
		return v, nil
	}

	display, err := c.Formatter(raw)
	if err != nil {
		return Value{}, fmt.Errorf("format column %s: %w", c.Name, err)
	}
	v.Display = display
	return v, nil
}

// Cell extracts and formats the column's value for record.
func (c Column) Cell(record any) (Value, error) {
	raw, present, err := c.Extract(record)
	if err != nil {
		return Value{}, err
	}
	return c.Format(raw, present)
}

// validate checks the rules NewColumnSet enforces on each column.
func (c Column) validate() error {
	if c.Name == "" {
		return ErrEmptyColumnName
	}
	if c.Path != "" && c.Value != nil {
		return fmt.Errorf("%w: %s", ErrAmbiguousValue, c.Name)
	}
	if c.Type == ColumnDate && c.Formatter == nil {
		return fmt.Errorf("%w: %s", ErrMissingFormat, c.Name)
	}
	return nil
}

// ColumnSet is an ordered collection of uniquely named columns.
type ColumnSet struct {
	columns []Column
	indexes map[string]int
}

// NewColumnSet validates cols and builds a ColumnSet.
func NewColumnSet(cols ...Column) (*ColumnSet, error) {
	indexes := make(map[string]int, len(cols))
	for i, c := range cols {
		if err := c.validate(); err != nil {
			return nil, err
		}
		if _, ok := indexes[c.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c.Name)
		}
		indexes[c.Name] = i
	}
	return &ColumnSet{
		columns: append([]Column(nil), cols...),
		indexes: indexes,
	}, nil
}

// MustColumnSet is like NewColumnSet but panics on invalid columns.
func MustColumnSet(cols ...Column) *ColumnSet {
	cs, err := NewColumnSet(cols...)
	if err != nil {
		panic(err)
	}
	return cs
}

// AutoColumns creates text columns reading top-level fields by exact name.
// Field names containing dots are not treated as paths.
func AutoColumns(fields []string) (*ColumnSet, error) {
	cols := make([]Column, len(fields))
	for i, f := range fields {
		name := f
		cols[i] = Column{
			Type: ColumnText,
			Name: name,
			Value: func(record any) (any, error) {
				v, _ := step(reflect.ValueOf(record), name)
				if !v.IsValid() || !v.CanInterface() {
					return nil, nil
				}
				return v.Interface(), nil
			},
		}
	}
	return NewColumnSet(cols...)
}

// Len returns the number of columns.
func (cs *ColumnSet) Len() int {
	return len(cs.columns)
}

// Columns returns a copy of the columns in order.
func (cs *ColumnSet) Columns() []Column {
	return append([]Column(nil), cs.columns...)
}

// Names returns the column names in order.
func (cs *ColumnSet) Names() []string {
	names := make([]string, len(cs.columns))
	for i, c := range cs.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the set contains the named column.
func (cs *ColumnSet) Has(name string) bool {
	_, ok := cs.indexes[name]
	return ok
}

// Lookup returns the named column.
func (cs *ColumnSet) Lookup(name string) (Column, error) {
	if i, ok := cs.indexes[name]; ok {
		return cs.columns[i], nil
	}
	return Column{}, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

// Select returns the named columns in the given order.
func (cs *ColumnSet) Select(names ...string) ([]Column, error) {
	res := make([]Column, len(names))
	for i, n := range names {
		c, err := cs.Lookup(n)
		if err != nil {
			return nil, err
		}
		res[i] = c
	}
	return res, nil
}
