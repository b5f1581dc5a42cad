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
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	arrowadapter "github.com/magpierre/fyne-viewtable/adapters/arrow"
	"github.com/magpierre/fyne-viewtable/adapters/jsonfile"
	"github.com/magpierre/fyne-viewtable/datatable"
)

// ErrUnsupportedFile is returned for files no loader understands.
var ErrUnsupportedFile = errors.New("unsupported file type")

// FileType represents the type of data file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
	FileTypeDeltaSharingProfile
)

func (f FileType) String() string {
	switch f {
	case FileTypeCSV:
		return "CSV"
	case FileTypeParquet:
		return "Parquet"
	case FileTypeJSON:
		return "JSON"
	case FileTypeDeltaSharingProfile:
		return "Delta Sharing profile"
	}
	return "unknown"
}

// DetectFileType determines the type of file based on extension and content
func DetectFileType(filePath string, content string) FileType {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv", ".tsv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json", ".share", ".txt":
		if isDeltaSharingProfile(content) {
			return FileTypeDeltaSharingProfile
		}
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// isDeltaSharingProfile checks if the content looks like a Delta Sharing profile
func isDeltaSharingProfile(content string) bool {
	var profile map[string]any
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		return false
	}

	_, hasVersion := profile["shareCredentialsVersion"]
	_, hasEndpoint := profile["endpoint"]
	_, hasBearerToken := profile["bearerToken"]

	return hasVersion && hasEndpoint && hasBearerToken
}

// detectCSVSeparator picks the most frequent of the common separators on the
// first line, defaulting to comma.
func detectCSVSeparator(filePath string) (rune, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return ',', nil
	}
	firstLine := scanner.Text()

	// Fixed order so ties resolve the same way every time.
	candidates := []rune{',', ';', '\t', '|'}
	maxCount := 0
	detectedSep := ','
	for _, sep := range candidates {
		if count := strings.Count(firstLine, string(sep)); count > maxCount {
			maxCount = count
			detectedSep = sep
		}
	}
	return detectedSep, nil
}

// getSeparatorName returns a human-readable name for the separator
func getSeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}

// LoadedData is a record source read from a file, with a status line
// describing it.
type LoadedData struct {
	Source datatable.RecordSource
	Name   string
	Type   FileType
	Status string

	// Profile holds the profile JSON for FileTypeDeltaSharingProfile.
	Profile string
}

// LoadDataFile reads a CSV, Parquet or JSON file. Delta Sharing profiles are
// reported as FileTypeDeltaSharingProfile with no Source; the caller picks
// the table to load.
func LoadDataFile(ctx context.Context, filePath string) (*LoadedData, error) {
	name := filepath.Base(filePath)

	var head string
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json", ".share", ".txt":
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		head = string(content)
	}

	res := &LoadedData{Name: name, Type: DetectFileType(filePath, head)}
	switch res.Type {
	case FileTypeCSV:
		separator, err := detectCSVSeparator(filePath)
		if err != nil {
			return nil, err
		}
		cfg := arrowadapter.DefaultCSVConfig()
		cfg.Delimiter = separator
		src, err := arrowadapter.ReadCSVFile(filePath, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load CSV file: %w", err)
		}
		res.Source = src
		res.Status = fmt.Sprintf("Loaded CSV file: %s (%d rows, %d columns, separator: %s)",
			name, len(src.Records()), len(src.Fields()), getSeparatorName(separator))

	case FileTypeParquet:
		info, err := os.Stat(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to get file info: %w", err)
		}
		src, err := arrowadapter.ReadParquetFile(ctx, filePath)
		if err != nil {
			return nil, err
		}
		res.Source = src
		res.Status = fmt.Sprintf("Loaded Parquet file: %s (%d rows, %d columns, %.2f MB)",
			name, len(src.Records()), len(src.Fields()), float64(info.Size())/(1024*1024))

	case FileTypeJSON:
		src, err := jsonfile.Parse([]byte(head))
		if err != nil {
			return nil, err
		}
		src.Meta["path"] = filePath
		res.Source = src
		res.Status = fmt.Sprintf("Loaded JSON file: %s (%d rows, %d columns)",
			name, len(src.Records()), len(src.Fields()))

	case FileTypeDeltaSharingProfile:
		res.Profile = head
		res.Status = "Loaded Delta Sharing profile: " + name

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}
	return res, nil
}
