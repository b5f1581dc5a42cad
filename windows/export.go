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

package windows

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/goccy/go-json"

	arrowadapter "github.com/magpierre/fyne-viewtable/adapters/arrow"
	"github.com/magpierre/fyne-viewtable/datatable"
)

// ExportFormat represents the supported export formats
type ExportFormat int

const (
	FormatParquet ExportFormat = iota
	FormatCSV
	FormatJSON
)

func (f ExportFormat) String() string {
	switch f {
	case FormatParquet:
		return "Parquet"
	case FormatCSV:
		return "CSV"
	case FormatJSON:
		return "JSON"
	}
	return fmt.Sprintf("ExportFormat(%d)", int(f))
}

// Extension returns the file extension used for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatParquet:
		return ".parquet"
	case FormatCSV:
		return ".csv"
	default:
		return ".json"
	}
}

// ExportToFile writes views to filePath. Only cols are written, in order.
func ExportToFile(filePath string, format ExportFormat, views []datatable.ViewRecord, cols []datatable.Column) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", format, err)
	}
	if err := Export(file, format, views, cols); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Export writes views to w.
func Export(w io.Writer, format ExportFormat, views []datatable.ViewRecord, cols []datatable.Column) error {
	switch format {
	case FormatParquet:
		tbl := arrowadapter.TableFromViews(views, cols)
		defer tbl.Release()
		return arrowadapter.WriteParquet(tbl, w)
	case FormatCSV:
		return ExportToCSV(w, views, cols)
	case FormatJSON:
		return ExportToJSON(w, views, cols)
	}
	return fmt.Errorf("unknown export format %d", int(format))
}

// ExportToCSV writes the display text of cols with a header line of column
// labels. Absent cells are written as empty fields.
func ExportToCSV(w io.Writer, views []datatable.ViewRecord, cols []datatable.Column) error {
	tbl := arrowadapter.TableFromViews(views, cols)
	defer tbl.Release()

	writer := csv.NewWriter(w, tbl.Schema(), csv.WithHeader(true), csv.WithNullWriter(""))

	if len(views) == 0 {
		// The header is written with the first record, even an empty one.
		b := array.NewRecordBuilder(memory.DefaultAllocator, tbl.Schema())
		rec := b.NewRecord()
		b.Release()
		err := writer.Write(rec)
		rec.Release()
		if err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		return writer.Flush()
	}

	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()
	for tr.Next() {
		if err := writer.Write(tr.Record()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	if tr.Err() != nil {
		return fmt.Errorf("error reading table: %w", tr.Err())
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return writer.Error()
}

// ExportToJSON writes an indented JSON array with one object per view,
// keyed by column label. Present cells keep their raw value; times are
// written in RFC 3339 and absent cells are null.
func ExportToJSON(w io.Writer, views []datatable.ViewRecord, cols []datatable.Column) error {
	records := make([]map[string]any, 0, len(views))
	for _, v := range views {
		record := make(map[string]any, len(cols))
		for _, c := range cols {
			record[c.Header()] = jsonValue(v.Cell(c.Name))
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func jsonValue(v datatable.Value) any {
	if v.Absent {
		return nil
	}
	switch raw := v.Raw.(type) {
	case time.Time:
		return raw.Format(time.RFC3339Nano)
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return raw
	case map[string]any, []any:
		return raw
	}
	return v.String()
}
