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
	"log/slog"
	"reflect"
)

// Map projects records through cols into ViewRecords, preserving input order.
// A nil id uses IndexIdentity. The first error returned by a value or format
// function stops the mapping and is returned.
// A key already used by an earlier row is replaced by a DuplicateKey, so
// every row can be selected on its own.
func Map(records []any, cols *ColumnSet, id IdentityFunc) ([]ViewRecord, error) {
	if cols == nil {
		return nil, ErrNoColumns
	}
	if id == nil {
		id = IndexIdentity
	}

	views := make([]ViewRecord, len(records))
	seen := make(map[RowKey]struct{}, len(records))
	for i, rec := range records {
		key := id(i, rec)
		if err := checkKey(key); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if _, dup := seen[key]; dup {
			slog.Warn("duplicate row key", "row", i, "key", key)
			key = DuplicateKey{Key: key, Index: i}
		}
		seen[key] = struct{}{}

		values := make(map[string]Value, cols.Len())
		for _, c := range cols.columns {
			v, err := c.Cell(rec)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			values[c.Name] = v
		}

		views[i] = ViewRecord{
			Record: rec,
			Values: values,
			Key:    key,
		}
	}
	return views, nil
}

func checkKey(key RowKey) error {
	if key == nil {
		return fmt.Errorf("%w: nil", ErrUncomparableKey)
	}
	// The dynamic check also catches interface fields holding slices or maps.
	if !reflect.ValueOf(key).Comparable() {
		return fmt.Errorf("%w: %T", ErrUncomparableKey, key)
	}
	return nil
}

// DuplicateKey is the key of a row whose identity repeats an earlier row's.
type DuplicateKey struct {
	Key   RowKey
	Index int
}

// Model holds the records and columns of a table and the ViewRecords derived
// from them. Every change recomputes the views in full.
// A Model is not safe for concurrent use.
type Model struct {
	records   []any
	columns   *ColumnSet
	identity  IdentityFunc
	views     []ViewRecord
	listeners []func()
}

// NewModel creates a model and maps records for the first time.
func NewModel(records []any, cols *ColumnSet, id IdentityFunc) (*Model, error) {
	views, err := Map(records, cols, id)
	if err != nil {
		return nil, err
	}
	return &Model{
		records:  records,
		columns:  cols,
		identity: id,
		views:    views,
	}, nil
}

// NewModelFromSource creates a model over a RecordSource. A nil cols builds
// text columns from the source's field names.
func NewModelFromSource(src RecordSource, cols *ColumnSet, id IdentityFunc) (*Model, error) {
	if src == nil {
		return nil, ErrNoDataSource
	}
	if cols == nil {
		auto, err := AutoColumns(src.Fields())
		if err != nil {
			return nil, err
		}
		cols = auto
	}
	return NewModel(src.Records(), cols, id)
}

// SetRecords replaces the input records. On error the model is unchanged.
func (m *Model) SetRecords(records []any) error {
	return m.recompute(records, m.columns, m.identity)
}

// SetColumns replaces the active column set. On error the model is unchanged.
func (m *Model) SetColumns(cols *ColumnSet) error {
	return m.recompute(m.records, cols, m.identity)
}

// SetIdentity replaces the row identity function.
func (m *Model) SetIdentity(id IdentityFunc) error {
	return m.recompute(m.records, m.columns, id)
}

func (m *Model) recompute(records []any, cols *ColumnSet, id IdentityFunc) error {
	views, err := Map(records, cols, id)
	if err != nil {
		return err
	}
	m.records = records
	m.columns = cols
	m.identity = id
	m.views = views
	m.notify()
	return nil
}

// Move reorders the displayed rows, moving the row at from to position to.
// The input records keep their order; the next recompute restores it.
func (m *Model) Move(from, to int) {
	if len(m.views) == 0 {
		return
	}
	m.views = Move(m.views, from, to)
	m.notify()
}

// AddListener registers fn to be called after every change of the views.
func (m *Model) AddListener(fn func()) {
	m.listeners = append(m.listeners, fn)
}

func (m *Model) notify() {
	for _, fn := range m.listeners {
		fn()
	}
}

// Len returns the number of displayed rows.
func (m *Model) Len() int {
	return len(m.views)
}

// Views returns the displayed rows in display order.
func (m *Model) Views() []ViewRecord {
	return append([]ViewRecord(nil), m.views...)
}

// View returns the displayed row at index i.
func (m *Model) View(i int) (ViewRecord, error) {
	if i < 0 || i >= len(m.views) {
		return ViewRecord{}, fmt.Errorf("%w: %d", ErrInvalidRow, i)
	}
	return m.views[i], nil
}

// Records returns the input records.
func (m *Model) Records() []any {
	return m.records
}

// Columns returns the active column set.
func (m *Model) Columns() *ColumnSet {
	return m.columns
}
