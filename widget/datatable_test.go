package widget

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-viewtable/datatable"
)

func testModel(t *testing.T) *datatable.Model {
	t.Helper()
	cols := datatable.MustColumnSet(
		datatable.Column{Name: "id", Label: "ID"},
		datatable.Column{Name: "city", Path: "address.city"},
		datatable.Column{Name: "note", Type: datatable.ColumnTemplate},
	)
	m, err := datatable.NewModel([]any{
		map[string]any{"id": 1, "address": map[string]any{"city": "Lund"}, "note": "rush"},
		map[string]any{"id": 2, "note": "slow"},
		map[string]any{"id": 3, "address": map[string]any{"city": "Malmö"}},
	}, cols, datatable.PathIdentity("id"))
	require.NoError(t, err)
	return m
}

func textAt(dt *DataTable, row, col int) string {
	cell := newTableCell()
	dt.updateCell(widget.TableCellID{Row: row, Col: col}, cell)
	if cell.kind == cellMarkdown {
		return cell.rich.String()
	}
	return cell.label.Text
}

func TestNewDataTablePanicsOnUnknownColumn(t *testing.T) {
	test.NewTempApp(t)
	m := testModel(t)

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok, "expected a panic with an error")
		assert.True(t, errors.Is(err, datatable.ErrColumnNotFound))
	}()
	cfg := DefaultConfig()
	cfg.Columns = []string{"id", "missing"}
	NewDataTable(m, cfg)
}

func TestLayoutAndCells(t *testing.T) {
	test.NewTempApp(t)
	as := assert.New(t)

	cfg := DefaultConfig()
	cfg.Columns = []string{"city", "id"}
	cfg.Reorderable = true
	dt := NewDataTable(testModel(t), cfg)

	rows, cols := dt.length()
	as.Equal(3, rows)
	as.Equal(4, cols)
	as.Equal([]string{"city", "id"}, dt.Columns())

	as.Equal("Lund", textAt(dt, 0, 2))
	as.Equal("1", textAt(dt, 0, 3))
	as.Equal("", textAt(dt, 1, 2))

	header := newTableCell()
	dt.updateHeader(widget.TableCellID{Row: -1, Col: 3}, header)
	as.Equal("ID", header.label.Text)
	as.True(header.label.TextStyle.Bold)

	dt.SetColumns()
	_, cols = dt.length()
	as.Equal(5, cols)
}

func TestScrollingHeader(t *testing.T) {
	test.NewTempApp(t)
	as := assert.New(t)

	cfg := Config{StickyHeader: false}
	dt := NewDataTable(testModel(t), cfg)

	rows, cols := dt.length()
	as.Equal(4, rows)
	as.Equal(3, cols)
	as.Equal("ID", textAt(dt, 0, 0))
	as.Equal("1", textAt(dt, 1, 0))
	as.Equal("Malmö", textAt(dt, 3, 1))
}

func TestTemplatesAndStyles(t *testing.T) {
	test.NewTempApp(t)
	as := assert.New(t)

	cfg := Config{
		StickyHeader: true,
		Templates: map[string]datatable.TemplateFunc{
			"note": func(v datatable.Value, _ datatable.ViewRecord) string { return "**" + v.String() + "**" },
		},
		CellStyle: func(row datatable.ViewRecord, column string) CellStyle {
			return CellStyle{Monospace: column == "id", Importance: widget.HighImportance}
		},
	}
	dt := NewDataTable(testModel(t), cfg)

	as.Equal("rush", textAt(dt, 0, 2))

	cell := newTableCell()
	dt.updateCell(widget.TableCellID{Row: 0, Col: 0}, cell)
	as.Equal(cellText, cell.kind)
	as.True(cell.label.TextStyle.Monospace)
	as.Equal(widget.HighImportance, cell.label.Importance)
}

func TestSelection(t *testing.T) {
	test.NewTempApp(t)
	as := assert.New(t)

	m := testModel(t)
	dt := NewDataTable(m, DefaultConfig())
	w := test.NewWindow(dt)
	defer w.Close()

	var got [][]datatable.ViewRecord
	dt.OnSelectionChanged(func(rows []datatable.ViewRecord) {
		got = append(got, rows)
	})

	cell := newTableCell()
	dt.updateCell(widget.TableCellID{Row: 2, Col: 0}, cell)
	require.Equal(t, cellCheck, cell.kind)
	cell.check.SetChecked(true)

	dt.ToggleRow(0)
	selected := dt.Selected()
	require.Len(t, selected, 2)
	as.Equal(1, selected[0].Key)
	as.Equal(3, selected[1].Key)
	as.Len(got, 2)

	dt.updateCell(widget.TableCellID{Row: 0, Col: 0}, cell)
	as.True(cell.check.Checked)

	header := newTableCell()
	dt.updateHeader(widget.TableCellID{Row: -1, Col: 0}, header)
	as.False(header.check.Checked)
	header.check.SetChecked(true)
	as.Len(dt.Selected(), 3)

	dt.updateHeader(widget.TableCellID{Row: -1, Col: 0}, header)
	as.True(header.check.Checked)

	dt.ClearSelection()
	as.Empty(dt.Selected())
	as.Empty(got[len(got)-1])

	dt.SelectAll()
	require.NoError(t, m.SetRecords(m.Records()[:1]))
	as.Len(dt.Selected(), 1)
	as.Equal(1, dt.Selection().Len())
}

func TestCellTapped(t *testing.T) {
	test.NewTempApp(t)
	as := assert.New(t)

	var tapped []string
	cfg := DefaultConfig()
	cfg.NoClick = []string{"note"}
	cfg.OnCellTapped = func(row datatable.ViewRecord, column string) {
		tapped = append(tapped, row.String("id")+":"+column)
	}
	dt := NewDataTable(testModel(t), cfg)

	dt.cellSelected(widget.TableCellID{Row: 1, Col: 2})
	dt.cellSelected(widget.TableCellID{Row: 1, Col: 3})
	dt.cellSelected(widget.TableCellID{Row: 0, Col: 0})

	as.Equal([]string{"2:city"}, tapped)
	as.Len(dt.Selected(), 1)
}

func TestMoveAndDrag(t *testing.T) {
	test.NewTempApp(t)
	as := assert.New(t)

	cfg := DefaultConfig()
	cfg.Selectable = false
	cfg.Reorderable = true
	m := testModel(t)
	dt := NewDataTable(m, cfg)

	var orders [][]datatable.ViewRecord
	dt.OnOrderChanged(func(rows []datatable.ViewRecord) {
		orders = append(orders, rows)
	})

	dt.Move(0, 2)
	require.Len(t, orders, 1)
	as.Equal(2, orders[0][0].Key)
	as.Equal(1, orders[0][2].Key)
	as.Equal("1", textAt(dt, 2, 1))

	cell := newTableCell()
	dt.updateCell(widget.TableCellID{Row: 2, Col: 0}, cell)
	require.Equal(t, cellHandle, cell.kind)

	h := cell.handle
	h.Resize(fyne.NewSize(30, 29))
	rowHeight := h.Size().Height + 1
	h.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DY: -2 * rowHeight}})
	h.DragEnd()

	require.Len(t, orders, 2)
	as.Equal(1, m.Views()[0].Key)

	dt.Move(1, 1)
	as.Len(orders, 2)
}

func TestDropTarget(t *testing.T) {
	as := assert.New(t)

	as.Equal(0, dropTarget(0, 10, 30, 5))
	as.Equal(1, dropTarget(0, 20, 30, 5))
	as.Equal(4, dropTarget(1, 300, 30, 5))
	as.Equal(0, dropTarget(3, -300, 30, 5))
	as.Equal(2, dropTarget(2, 40, 0, 5))
	as.Equal(0, dropTarget(2, 40, 30, 0))
}
