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

// Package widget provides DataTable, a Fyne widget that displays the views of
// a datatable.Model with optional row selection and drag reordering.
package widget

import (
	"log/slog"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-viewtable/datatable"
)

const (
	checkColumnWidth  = 40
	handleColumnWidth = 36
)

// DataTable displays a datatable.Model.
type DataTable struct {
	widget.BaseWidget

	model     *datatable.Model
	config    Config
	columns   []datatable.Column
	selection *datatable.Selection
	table     *widget.Table

	onSelectionChanged []func([]datatable.ViewRecord)
	onOrderChanged     []func([]datatable.ViewRecord)
}

// NewDataTable creates a table over model. Displayed columns missing from the
// model's column set cause a panic wrapping datatable.ErrColumnNotFound.
func NewDataTable(model *datatable.Model, cfg Config) *DataTable {
	if cfg.MinColumnWidth <= 0 {
		cfg.MinColumnWidth = DefaultConfig().MinColumnWidth
	}
	dt := &DataTable{
		model:     model,
		config:    cfg,
		selection: datatable.NewSelection(),
	}
	dt.columns = dt.resolveColumns(cfg.Columns)

	dt.table = widget.NewTableWithHeaders(dt.length, newCellObject, dt.updateCell)
	dt.table.ShowHeaderColumn = false
	dt.table.ShowHeaderRow = cfg.StickyHeader
	dt.table.CreateHeader = newCellObject
	dt.table.UpdateHeader = dt.updateHeader
	dt.table.OnSelected = dt.cellSelected
	dt.applyWidths()

	dt.selection.OnChanged(dt.selectionChanged)
	model.AddListener(dt.modelChanged)

	dt.ExtendBaseWidget(dt)
	return dt
}

func newCellObject() fyne.CanvasObject {
	return newTableCell()
}

// CreateRenderer implements fyne.Widget.
func (dt *DataTable) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dt.table)
}

// Model returns the underlying model.
func (dt *DataTable) Model() *datatable.Model {
	return dt.model
}

// Selection returns the row selection.
func (dt *DataTable) Selection() *datatable.Selection {
	return dt.selection
}

// Columns returns the names of the displayed columns in display order.
func (dt *DataTable) Columns() []string {
	names := make([]string, len(dt.columns))
	for i, c := range dt.columns {
		names[i] = c.Name
	}
	return names
}

// VisibleColumns returns the displayed column definitions in display order.
func (dt *DataTable) VisibleColumns() []datatable.Column {
	return slices.Clone(dt.columns)
}

// SetColumns changes the displayed columns. No names displays every column.
func (dt *DataTable) SetColumns(names ...string) {
	dt.columns = dt.resolveColumns(names)
	dt.config.Columns = names
	dt.applyWidths()
	dt.table.Refresh()
}

// OnSelectionChanged registers fn to receive the selected rows, in display
// order, after every selection change.
func (dt *DataTable) OnSelectionChanged(fn func([]datatable.ViewRecord)) {
	dt.onSelectionChanged = append(dt.onSelectionChanged, fn)
}

// OnOrderChanged registers fn to receive the rows in their new order after a
// row is moved.
func (dt *DataTable) OnOrderChanged(fn func([]datatable.ViewRecord)) {
	dt.onOrderChanged = append(dt.onOrderChanged, fn)
}

// Selected returns the selected rows in display order.
func (dt *DataTable) Selected() []datatable.ViewRecord {
	return dt.selection.Selected(dt.model.Views())
}

// ToggleRow flips the selection of the displayed row at index i.
func (dt *DataTable) ToggleRow(i int) {
	v, err := dt.model.View(i)
	if err != nil {
		slog.Debug("toggle ignored", "row", i, "error", err)
		return
	}
	dt.selection.Toggle(v)
}

// SelectAll selects every displayed row.
func (dt *DataTable) SelectAll() {
	dt.selection.SelectAll(dt.model.Views())
}

// ClearSelection deselects every row.
func (dt *DataTable) ClearSelection() {
	dt.selection.Clear()
}

// Move moves the displayed row at from to position to.
func (dt *DataTable) Move(from, to int) {
	if from == to || dt.model.Len() < 2 {
		return
	}
	dt.model.Move(from, to)
	views := dt.model.Views()
	for _, fn := range dt.onOrderChanged {
		fn(views)
	}
}

func (dt *DataTable) resolveColumns(names []string) []datatable.Column {
	set := dt.model.Columns()
	if len(names) == 0 {
		return set.Columns()
	}
	cols, err := set.Select(names...)
	if err != nil {
		panic(err)
	}
	return cols
}

// leading is the number of control columns before the data columns.
func (dt *DataTable) leading() int {
	n := 0
	if dt.config.Selectable {
		n++
	}
	if dt.config.Reorderable {
		n++
	}
	return n
}

// headerRows is 1 when the header scrolls with the data.
func (dt *DataTable) headerRows() int {
	if dt.config.StickyHeader {
		return 0
	}
	return 1
}

func (dt *DataTable) length() (int, int) {
	return dt.model.Len() + dt.headerRows(), dt.leading() + len(dt.columns)
}

func (dt *DataTable) applyWidths() {
	col := 0
	if dt.config.Selectable {
		dt.table.SetColumnWidth(col, checkColumnWidth)
		col++
	}
	if dt.config.Reorderable {
		dt.table.SetColumnWidth(col, handleColumnWidth)
		col++
	}
	for i, c := range dt.columns {
		w, ok := dt.config.Widths[c.Name]
		if !ok || w <= 0 {
			w = dt.config.MinColumnWidth
		}
		dt.table.SetColumnWidth(col+i, w)
	}
}

// columnAt maps a table column to a control column kind or a data column.
func (dt *DataTable) columnAt(col int) (cellKind, *datatable.Column) {
	if dt.config.Selectable {
		if col == 0 {
			return cellCheck, nil
		}
		col--
	}
	if dt.config.Reorderable {
		if col == 0 {
			return cellHandle, nil
		}
		col--
	}
	if col < 0 || col >= len(dt.columns) {
		return cellText, nil
	}
	return cellText, &dt.columns[col]
}

func (dt *DataTable) updateHeader(id widget.TableCellID, o fyne.CanvasObject) {
	dt.renderHeader(id.Col, o.(*tableCell))
}

func (dt *DataTable) renderHeader(col int, cell *tableCell) {
	kind, c := dt.columnAt(col)
	switch {
	case kind == cellCheck:
		views := dt.model.Views()
		cell.setCheck(dt.selection.AllSelected(views), func(on bool) {
			if on {
				dt.selection.SelectAll(dt.model.Views())
			} else {
				dt.selection.Clear()
			}
		})
	case c != nil:
		cell.setText(c.Header(), CellStyle{Bold: true})
	default:
		cell.setEmpty()
	}
}

func (dt *DataTable) updateCell(id widget.TableCellID, o fyne.CanvasObject) {
	cell := o.(*tableCell)
	row := id.Row - dt.headerRows()
	if row < 0 {
		dt.renderHeader(id.Col, cell)
		return
	}
	view, err := dt.model.View(row)
	if err != nil {
		cell.setEmpty()
		return
	}

	kind, c := dt.columnAt(id.Col)
	switch {
	case kind == cellCheck:
		cell.setCheck(dt.selection.IsSelected(view), func(bool) {
			dt.selection.Toggle(view)
		})
	case kind == cellHandle:
		cell.setHandle(row, dt.handleDrop)
	case c == nil:
		cell.setEmpty()
	default:
		value := view.Cell(c.Name)
		if tpl, ok := dt.config.Templates[c.Name]; ok && c.Type == datatable.ColumnTemplate {
			cell.setMarkdown(tpl(value, view))
			return
		}
		var style CellStyle
		if dt.config.CellStyle != nil {
			style = dt.config.CellStyle(view, c.Name)
		}
		cell.setText(value.String(), style)
	}
}

func (dt *DataTable) handleDrop(from int, dy, rowHeight float32) {
	to := dropTarget(from, dy, rowHeight, dt.model.Len())
	slog.Debug("row dropped", "from", from, "to", to)
	dt.Move(from, to)
}

func (dt *DataTable) cellSelected(id widget.TableCellID) {
	defer dt.table.Unselect(id)

	row := id.Row - dt.headerRows()
	if row < 0 {
		return
	}
	view, err := dt.model.View(row)
	if err != nil {
		return
	}

	kind, c := dt.columnAt(id.Col)
	switch {
	case kind == cellCheck:
		dt.selection.Toggle(view)
	case c != nil:
		dt.tapCell(view, c.Name)
	}
}

func (dt *DataTable) tapCell(view datatable.ViewRecord, column string) {
	if dt.config.OnCellTapped == nil || slices.Contains(dt.config.NoClick, column) {
		return
	}
	dt.config.OnCellTapped(view, column)
}

func (dt *DataTable) selectionChanged() {
	selected := dt.Selected()
	for _, fn := range dt.onSelectionChanged {
		fn(selected)
	}
	dt.table.Refresh()
}

func (dt *DataTable) modelChanged() {
	dt.columns = dt.resolveColumns(dt.config.Columns)
	dt.selection.Retain(dt.model.Views())
	dt.applyWidths()
	dt.table.Refresh()
}
