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

// Package jsonfile reads JSON documents into datatable records.
package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-json"

	"github.com/magpierre/fyne-viewtable/datatable"
)

// ErrNoRecords is returned for documents without any objects.
var ErrNoRecords = errors.New("JSON document has no records")

// Read loads the JSON file at path. See Parse.
func Read(path string) (*datatable.SliceSource, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	src, err := Parse(content)
	if err != nil {
		return nil, err
	}
	src.Meta["path"] = path
	return src, nil
}

// Parse decodes an array of objects, or a single object, into records of
// type map[string]any. Fields are listed in the order they first appear
// across records; keys new to a record are added alphabetically.
func Parse(data []byte) (*datatable.SliceSource, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		var single map[string]any
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		rows = []map[string]any{single}
	}
	if len(rows) == 0 {
		return nil, ErrNoRecords
	}

	seen := make(map[string]struct{})
	var fields []string
	records := make([]any, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		var fresh []string
		for k := range row {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				fresh = append(fresh, k)
			}
		}
		slices.Sort(fresh)
		fields = append(fields, fresh...)
		records = append(records, row)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	return &datatable.SliceSource{
		FieldNames: fields,
		Rows:       records,
		Meta:       datatable.Metadata{"format": "json"},
	}, nil
}
