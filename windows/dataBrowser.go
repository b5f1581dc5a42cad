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
	"log/slog"

	"github.com/magpierre/fyne-viewtable/config"
	"github.com/magpierre/fyne-viewtable/datatable"
	vtwidget "github.com/magpierre/fyne-viewtable/widget"
)

// DataBrowser pairs a loaded record source with the table showing it.
type DataBrowser struct {
	model          *datatable.Model
	dataTable      *vtwidget.DataTable
	tableName      string
	meta           datatable.Metadata
	statusCallback func(string)
}

// NewDataBrowser maps src through the table description and builds the
// table widget. A nil description shows every field of src as text.
func NewDataBrowser(src datatable.RecordSource, name string, desc *config.Table, statusCallback func(string)) (*DataBrowser, error) {
	cfg := vtwidget.DefaultConfig()
	var (
		cols *datatable.ColumnSet
		id   datatable.IdentityFunc
		err  error
	)
	if desc != nil {
		cols, err = desc.ColumnSet()
		if err != nil {
			return nil, err
		}
		id = desc.IdentityFunc()
		templates, err := desc.Templates()
		if err != nil {
			return nil, err
		}
		cfg.Columns = desc.Names()
		cfg.Widths = desc.Widths()
		cfg.StickyHeader = desc.Sticky()
		cfg.Selectable = desc.Selectable
		cfg.Reorderable = desc.Reorderable
		cfg.NoClick = desc.NoClick
		cfg.Templates = templates
		if desc.Title != "" {
			name = desc.Title
		}
	}

	model, err := datatable.NewModelFromSource(src, cols, id)
	if err != nil {
		return nil, fmt.Errorf("failed to create table model: %w", err)
	}

	db := &DataBrowser{
		model:          model,
		tableName:      name,
		meta:           src.Metadata(),
		statusCallback: statusCallback,
	}
	cfg.OnCellTapped = func(row datatable.ViewRecord, column string) {
		slog.Debug("cell tapped", "table", name, "row", row.Key, "column", column, "value", row.String(column))
	}

	db.dataTable = vtwidget.NewDataTable(model, cfg)
	db.dataTable.OnSelectionChanged(func(rows []datatable.ViewRecord) {
		slog.Debug("selection changed", "table", name, "selected", len(rows))
		db.updateStatus()
	})
	db.dataTable.OnOrderChanged(func([]datatable.ViewRecord) {
		db.updateStatus()
	})
	return db, nil
}

// StatusText describes the table, its size and the current selection.
func (t *DataBrowser) StatusText() string {
	text := fmt.Sprintf("Table %s (%d columns x %d rows)",
		t.tableName, len(t.dataTable.Columns()), t.model.Len())
	if format, ok := t.meta["format"].(string); ok {
		text += " | " + format
	}
	if n := t.dataTable.Selection().Len(); n > 0 {
		text += fmt.Sprintf(" | %d selected", n)
	}
	return text
}

func (t *DataBrowser) updateStatus() {
	if t.statusCallback != nil {
		t.statusCallback(t.StatusText())
	}
}

// ExportViews returns what an export writes: the selected rows when there
// is a selection, otherwise every row, in display order.
func (t *DataBrowser) ExportViews() []datatable.ViewRecord {
	if selected := t.dataTable.Selected(); len(selected) > 0 {
		return selected
	}
	return t.model.Views()
}

// ExportTo writes the current view to filePath.
func (t *DataBrowser) ExportTo(filePath string, format ExportFormat) error {
	return ExportToFile(filePath, format, t.ExportViews(), t.dataTable.VisibleColumns())
}

// AddColumn appends col to the model and displays it last.
func (t *DataBrowser) AddColumn(col datatable.Column) error {
	cols, err := datatable.NewColumnSet(append(t.model.Columns().Columns(), col)...)
	if err != nil {
		return err
	}
	shown := t.dataTable.Columns()
	if err := t.model.SetColumns(cols); err != nil {
		return err
	}
	t.dataTable.SetColumns(append(shown, col.Name)...)
	t.updateStatus()
	return nil
}
