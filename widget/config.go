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

package widget

import (
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-viewtable/datatable"
)

// CellStyle changes how a single data cell is drawn.
type CellStyle struct {
	Bold       bool
	Italic     bool
	Monospace  bool
	Importance widget.Importance
}

// Config configures a DataTable.
type Config struct {
	// Columns lists the displayed column names in display order.
	// Empty displays every column of the model.
	Columns []string

	// Widths sets the width of individual columns by name.
	Widths map[string]float32

	// MinColumnWidth is used for columns without an entry in Widths.
	MinColumnWidth float32

	// StickyHeader keeps the header visible while scrolling. When false the
	// header scrolls away as the first row.
	StickyHeader bool

	// Selectable adds a leading checkbox column.
	Selectable bool

	// Reorderable adds a drag handle column for moving rows.
	Reorderable bool

	// CellStyle, when set, styles each text cell.
	CellStyle func(row datatable.ViewRecord, column string) CellStyle

	// OnCellTapped is called when a data cell is tapped.
	OnCellTapped func(row datatable.ViewRecord, column string)

	// NoClick lists columns that never report taps.
	NoClick []string

	// Templates renders template columns as markdown.
	Templates map[string]datatable.TemplateFunc
}

// DefaultConfig returns a configuration with a sticky header and selectable rows.
func DefaultConfig() Config {
	return Config{
		MinColumnWidth: 120,
		StickyHeader:   true,
		Selectable:     true,
	}
}
