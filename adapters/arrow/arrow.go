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

// Package arrowadapter turns Apache Arrow data, including Parquet and CSV
// files read through Arrow, into datatable records. Each row becomes a
// map[string]any; struct columns become nested maps and list columns
// become []any, so nested values are reachable with datatable paths.
package arrowadapter

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/magpierre/fyne-viewtable/datatable"
)

// Source holds records converted from Arrow data.
type Source struct {
	fields  []string
	records []any
	meta    datatable.Metadata
}

var _ datatable.RecordSource = (*Source)(nil)

// Fields implements datatable.RecordSource.
func (s *Source) Fields() []string {
	return s.fields
}

// Records implements datatable.RecordSource.
func (s *Source) Records() []any {
	return s.records
}

// Metadata implements datatable.RecordSource.
func (s *Source) Metadata() datatable.Metadata {
	return s.meta
}

// Append adds the rows of another source with the same fields.
func (s *Source) Append(other *Source) {
	s.records = append(s.records, other.records...)
}

// Limit keeps at most n records. n <= 0 keeps all of them.
func (s *Source) Limit(n int) {
	if n > 0 && n < len(s.records) {
		s.records = s.records[:n]
	}
}

// NewFromArrowTable converts every row of table. The table is not released.
func NewFromArrowTable(table arrow.Table) (*Source, error) {
	if table == nil {
		return nil, datatable.ErrNoDataSource
	}

	schema := table.Schema()
	src := newSource(schema)
	src.records = make([]any, 0, table.NumRows())

	tr := array.NewTableReader(table, max(table.NumRows(), 1))
	defer tr.Release()
	for tr.Next() {
		src.records = appendRecord(src.records, tr.Record())
	}
	if err := tr.Err(); err != nil {
		return nil, fmt.Errorf("error reading table: %w", err)
	}
	return src, nil
}

// NewFromRecords converts a sequence of record batches sharing schema.
func NewFromRecords(schema *arrow.Schema, recs ...arrow.Record) *Source {
	src := newSource(schema)
	for _, rec := range recs {
		src.records = appendRecord(src.records, rec)
	}
	return src
}

func newSource(schema *arrow.Schema) *Source {
	fields := make([]string, schema.NumFields())
	types := make(map[string]any, schema.NumFields())
	for i, f := range schema.Fields() {
		fields[i] = f.Name
		types[f.Name] = f.Type.String()
	}
	return &Source{
		fields: fields,
		meta:   datatable.Metadata{"types": types},
	}
}

func appendRecord(out []any, rec arrow.Record) []any {
	schema := rec.Schema()
	cols := rec.Columns()
	for row := 0; row < int(rec.NumRows()); row++ {
		m := make(map[string]any, len(cols))
		for i, col := range cols {
			m[schema.Field(i).Name] = Value(col, row)
		}
		out = append(out, m)
	}
	return out
}

// Value returns the Go value at pos in col, or nil for nulls.
// Integers and floats keep their width, dates and timestamps become
// time.Time in UTC, decimals become their decimal string, structs become
// map[string]any and lists become []any.
func Value(col arrow.Array, pos int) any {
	if col.IsNull(pos) {
		return nil
	}

	switch c := col.(type) {
	case *array.String:
		return c.Value(pos)
	case *array.LargeString:
		return c.Value(pos)
	case *array.Binary:
		return string(c.Value(pos))
	case *array.Boolean:
		return c.Value(pos)
	case *array.Int8:
		return c.Value(pos)
	case *array.Int16:
		return c.Value(pos)
	case *array.Int32:
		return c.Value(pos)
	case *array.Int64:
		return c.Value(pos)
	case *array.Uint8:
		return c.Value(pos)
	case *array.Uint16:
		return c.Value(pos)
	case *array.Uint32:
		return c.Value(pos)
	case *array.Uint64:
		return c.Value(pos)
	case *array.Float16:
		return c.Value(pos).Float32()
	case *array.Float32:
		return c.Value(pos)
	case *array.Float64:
		return c.Value(pos)
	case *array.Date32:
		return c.Value(pos).ToTime().UTC()
	case *array.Date64:
		return c.Value(pos).ToTime().UTC()
	case *array.Timestamp:
		unit := c.DataType().(*arrow.TimestampType).Unit
		return c.Value(pos).ToTime(unit).UTC()
	case *array.Decimal128:
		scale := c.DataType().(*arrow.Decimal128Type).Scale
		return c.Value(pos).ToString(scale)
	case *array.Struct:
		st := c.DataType().(*arrow.StructType)
		m := make(map[string]any, c.NumField())
		for i := 0; i < c.NumField(); i++ {
			m[st.Field(i).Name] = Value(c.Field(i), pos)
		}
		return m
	case *array.List:
		start, end := c.ValueOffsets(pos)
		values := c.ListValues()
		items := make([]any, 0, end-start)
		for i := start; i < end; i++ {
			items = append(items, Value(values, int(i)))
		}
		return items
	default:
		return col.ValueStr(pos)
	}
}
