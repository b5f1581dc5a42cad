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
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-viewtable/datatable"
	"github.com/magpierre/fyne-viewtable/script"
)

const columnPlaceholder = `// Body of func(record interface{}) (interface{}, error)
// Example:
// return viewtable.Float(record, "price") * 1.25, nil`

// ComputedColumn compiles body into a column whose value is computed by the
// script for every record.
func ComputedColumn(name, label, typeName, body string) (datatable.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return datatable.Column{}, datatable.ErrEmptyColumnName
	}
	ct, err := datatable.ParseColumnType(typeName)
	if err != nil {
		return datatable.Column{}, err
	}
	if ct == datatable.ColumnDate {
		return datatable.Column{}, fmt.Errorf("%w: computed date columns need a format, return a string instead", datatable.ErrMissingFormat)
	}
	fn, err := script.CompileValue(body)
	if err != nil {
		return datatable.Column{}, err
	}
	return datatable.Column{Type: ct, Name: name, Label: strings.TrimSpace(label), Value: fn}, nil
}

// PreviewColumn evaluates col against the first n displayed rows and
// describes each result, one line per row.
func PreviewColumn(col datatable.Column, views []datatable.ViewRecord, n int) string {
	var b strings.Builder
	for i, v := range views {
		if i == n {
			break
		}
		cell, err := col.Cell(v.Record)
		switch {
		case err != nil:
			fmt.Fprintf(&b, "row %d: error: %v\n", i, err)
		case cell.Absent:
			fmt.Fprintf(&b, "row %d: (absent)\n", i)
		default:
			fmt.Fprintf(&b, "row %d: %s\n", i, cell.String())
		}
	}
	if b.Len() == 0 {
		return "No rows to preview.\n"
	}
	return b.String()
}

// showColumnEditor lets the user write a computed column for db, try it on
// the first rows and add it to the table.
func (t *MainWindow) showColumnEditor(db *DataBrowser) {
	name := widget.NewEntry()
	name.SetPlaceHolder("name")
	label := widget.NewEntry()
	label.SetPlaceHolder("header label (optional)")
	kind := widget.NewSelect([]string{"text", "number", "template"}, nil)
	kind.SetSelected("text")

	code := widget.NewMultiLineEntry()
	code.SetPlaceHolder(columnPlaceholder)
	code.TextStyle = fyne.TextStyle{Monospace: true}
	code.Wrapping = fyne.TextWrapOff
	code.SetMinRowsVisible(6)

	output := widget.NewRichText()
	setOutput := func(text string, bold bool) {
		output.Segments = []widget.RichTextSegment{&widget.TextSegment{
			Text:  text,
			Style: widget.RichTextStyle{TextStyle: fyne.TextStyle{Bold: bold, Monospace: true}},
		}}
		output.Refresh()
	}

	build := func() (datatable.Column, bool) {
		col, err := ComputedColumn(name.Text, label.Text, kind.Selected, code.Text)
		if err != nil {
			setOutput(err.Error(), false)
			return col, false
		}
		return col, true
	}

	preview := widget.NewButton("Preview", func() {
		if col, ok := build(); ok {
			setOutput(PreviewColumn(col, db.model.Views(), 5), true)
		}
	})

	form := container.NewBorder(
		container.NewVBox(
			widget.NewForm(
				widget.NewFormItem("Name", name),
				widget.NewFormItem("Label", label),
				widget.NewFormItem("Type", kind),
			),
			code,
			preview,
		),
		nil, nil, nil,
		container.NewVScroll(output),
	)

	d := dialog.NewCustomConfirm("Add Computed Column", "Add", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		col, valid := build()
		if !valid {
			dialog.ShowError(fmt.Errorf("column not added: %s", output.String()), t.w)
			return
		}
		if err := db.AddColumn(col); err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		t.SetStatus(db.StatusText())
	}, t.w)
	d.Resize(fyne.NewSize(560, 480))
	d.Show()
}

func (t *MainWindow) addColumn() {
	db := t.current()
	if db == nil {
		dialog.ShowInformation("No Table", "Open a table first.", t.w)
		return
	}
	t.showColumnEditor(db)
}
