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

package arrowadapter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// CSVConfig configures CSV reading.
type CSVConfig struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune
	// HasHeaders treats the first line as field names.
	HasHeaders bool
	// ChunkSize is the number of rows per Arrow record batch.
	ChunkSize int
}

// DefaultCSVConfig returns the configuration for comma separated files
// with a header line.
func DefaultCSVConfig() CSVConfig {
	return CSVConfig{Delimiter: ',', HasHeaders: true, ChunkSize: 1024}
}

// ReadParquetFile reads a whole Parquet file.
func ReadParquetFile(ctx context.Context, path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	src, err := NewFromArrowTable(table)
	if err != nil {
		return nil, err
	}
	src.meta["format"] = "parquet"
	return src, nil
}

// ReadCSVFile reads a CSV file, inferring column types from the data.
func ReadCSVFile(path string, cfg CSVConfig) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, cfg)
}

// ReadCSV reads CSV data from r, inferring column types from the data.
func ReadCSV(r io.Reader, cfg CSVConfig) (*Source, error) {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1024
	}

	rdr := csv.NewInferringReader(r,
		csv.WithHeader(cfg.HasHeaders),
		csv.WithComma(cfg.Delimiter),
		csv.WithChunk(cfg.ChunkSize),
		csv.WithNullReader(true, ""),
	)
	defer rdr.Release()

	var src *Source
	for rdr.Next() {
		rec := rdr.Record()
		if src == nil {
			src = newSource(rec.Schema())
		}
		src.records = appendRecord(src.records, rec)
	}
	if err := rdr.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	if src == nil {
		return nil, fmt.Errorf("CSV data has no records")
	}
	src.meta["format"] = "csv"
	return src, nil
}
