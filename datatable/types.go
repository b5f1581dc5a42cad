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

// Package datatable maps raw records into display-ready rows for a data
// table. Columns describe how a cell value is found in a record and how it
// is formatted; the mapper turns a record collection into ViewRecords.
package datatable

import (
	"fmt"
	"reflect"
	"strings"
)

// ColumnType represents how a column formats its values.
type ColumnType int

const (
	// ColumnText passes values through unformatted.
	ColumnText ColumnType = iota
	// ColumnNumber applies an optional format function to present values.
	ColumnNumber
	// ColumnDate applies a mandatory format function to present values.
	ColumnDate
	// ColumnTemplate passes values through for a rendering layer to project.
	ColumnTemplate
)

// String returns the string representation of a ColumnType.
func (ct ColumnType) String() string {
	switch ct {
	case ColumnText:
		return "Text"
	case ColumnNumber:
		return "Number"
	case ColumnDate:
		return "Date"
	case ColumnTemplate:
		return "Template"
	default:
		return fmt.Sprintf("Unknown(%d)", ct)
	}
}

// ParseColumnType converts a case-insensitive type name into a ColumnType.
// An empty name is a text column.
func ParseColumnType(name string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "string":
		return ColumnText, nil
	case "number", "numeric":
		return ColumnNumber, nil
	case "date", "datetime", "timestamp":
		return ColumnDate, nil
	case "template":
		return ColumnTemplate, nil
	default:
		return ColumnText, fmt.Errorf("%w: %q", ErrUnknownColumnType, name)
	}
}

// Value is a mapped cell.
// It holds the raw value found in the record and the value produced by the
// column's formatting policy.
type Value struct {
	// Raw holds the value extracted from the record.
	Raw any

	// Display holds the formatted value. For unformatted columns it is Raw.
	Display any

	// Absent is set when the record had no usable value for the column.
	Absent bool

	// Type is the type of the column that produced this value.
	Type ColumnType
}

// AbsentValue creates an absent value for the given column type.
func AbsentValue(ct ColumnType) Value {
	return Value{Type: ct, Absent: true}
}

// String returns the display text of the value, or "" when absent.
func (v Value) String() string {
	if v.Absent || IsAbsent(v.Display) {
		return ""
	}
	switch d := v.Display.(type) {
	case string:
		return d
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprintf("%v", d)
	}
}

// IsAbsent reports whether v counts as a missing value: a nil interface or a
// nil pointer, map, slice, func, chan or interface. Zero values such as 0,
// false and "" are present.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// RowKey identifies a row across recomputations.
// Keys must be comparable; two rows with equal keys are the same row.
type RowKey any

// IdentityFunc computes the key of the record at the given input position.
type IdentityFunc func(index int, record any) RowKey

// ViewRecord is the display projection of one input record.
// ViewRecords are replaced wholesale whenever records or columns change.
type ViewRecord struct {
	// Record is the original input record. It is never copied or modified.
	Record any

	// Values maps column names to their mapped cells.
	Values map[string]Value

	// Key is the row identity computed by the table's IdentityFunc.
	Key RowKey
}

// Cell returns the mapped value of the named column.
// Unknown names yield an absent text value.
func (r ViewRecord) Cell(name string) Value {
	if v, ok := r.Values[name]; ok {
		return v
	}
	return AbsentValue(ColumnText)
}

// String returns the display text of the named column.
func (r ViewRecord) String(name string) string {
	return r.Cell(name).String()
}

// SameRow reports whether r and other identify the same row.
func (r ViewRecord) SameRow(other ViewRecord) bool {
	return r.Key == other.Key
}

// TemplateFunc projects a template cell to markdown for display.
type TemplateFunc func(v Value, row ViewRecord) string

// Records converts a typed slice into the []any form the mapper consumes.
func Records[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
