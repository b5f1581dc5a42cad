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

// Package share loads Delta Sharing tables as datatable records.
package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	delta_sharing "github.com/magpierre/go_delta_sharing_client"

	arrowadapter "github.com/magpierre/fyne-viewtable/adapters/arrow"
)

var (
	// ErrInvalidTableName is returned for names not of the form share.schema.table.
	ErrInvalidTableName = errors.New("table name must be share.schema.table")
	// ErrTableNotFound is returned when the profile does not expose the table.
	ErrTableNotFound = errors.New("table not found in share")
)

// TableName identifies a shared table.
type TableName struct {
	Share  string
	Schema string
	Table  string
}

func (n TableName) String() string {
	return n.Share + "." + n.Schema + "." + n.Table
}

// ParseTableName splits "share.schema.table".
func ParseTableName(name string) (TableName, error) {
	parts := strings.Split(strings.TrimSpace(name), ".")
	if len(parts) != 3 {
		return TableName{}, fmt.Errorf("%w: %q", ErrInvalidTableName, name)
	}
	for _, p := range parts {
		if p == "" {
			return TableName{}, fmt.Errorf("%w: %q", ErrInvalidTableName, name)
		}
	}
	return TableName{Share: parts[0], Schema: parts[1], Table: parts[2]}, nil
}

// ListTables returns the names of every table the profile can read.
func ListTables(ctx context.Context, profile string) ([]TableName, error) {
	client, err := delta_sharing.NewSharingClientV2FromString(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create Delta Sharing client: %w", err)
	}
	tables, _, err := client.ListAllTables_V2(ctx, 0, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list all tables: %w", err)
	}
	names := make([]TableName, 0, len(tables))
	for _, t := range tables {
		names = append(names, TableName{Share: t.Share, Schema: t.Schema, Table: t.Name})
	}
	return names, nil
}

// Load reads the data files of the named table until limit rows have been
// collected. limit <= 0 reads every file.
func Load(ctx context.Context, profile, name string, limit int) (*arrowadapter.Source, error) {
	want, err := ParseTableName(name)
	if err != nil {
		return nil, err
	}

	client, err := delta_sharing.NewSharingClientV2FromString(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create Delta Sharing client: %w", err)
	}
	tables, _, err := client.ListAllTables_V2(ctx, 0, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list all tables: %w", err)
	}

	var table delta_sharing.Table
	found := false
	for _, t := range tables {
		if t.Share == want.Share && t.Schema == want.Schema && t.Name == want.Table {
			table, found = t, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, want)
	}

	resp, err := client.ListFilesInTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list files in table: %w", err)
	}

	var src *arrowadapter.Source
	for _, f := range resp.AddFiles {
		slog.Debug("loading shared file", "table", want.String(), "file", f.Id)
		t, err := delta_sharing.LoadArrowTable(ctx, client, table, f.Id)
		if err != nil {
			return nil, fmt.Errorf("failed to load file %s: %w", f.Id, err)
		}
		part, err := arrowadapter.NewFromArrowTable(t)
		t.Release()
		if err != nil {
			return nil, err
		}
		if src == nil {
			src = part
		} else {
			src.Append(part)
		}
		if limit > 0 && len(src.Records()) >= limit {
			break
		}
	}
	if src == nil {
		return nil, fmt.Errorf("%w: %s has no data files", ErrTableNotFound, want)
	}
	src.Limit(limit)
	src.Metadata()["format"] = "delta-sharing"
	src.Metadata()["table"] = want.String()
	return src, nil
}
