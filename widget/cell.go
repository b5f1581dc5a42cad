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
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

type cellKind int

const (
	cellText cellKind = iota
	cellCheck
	cellMarkdown
	cellHandle
)

// tableCell is the single template object used for every table cell.
// Only the part matching the cell's kind is visible. Text cells carry their
// full text as a tooltip since long values are truncated.
type tableCell struct {
	widget.BaseWidget
	label  *ttwidget.Label
	check  *widget.Check
	rich   *widget.RichText
	handle *dragHandle

	kind cellKind
}

func newTableCell() *tableCell {
	c := &tableCell{
		label:  ttwidget.NewLabel(""),
		check:  widget.NewCheck("", nil),
		rich:   widget.NewRichText(),
		handle: newDragHandle(),
	}
	c.label.Truncation = fyne.TextTruncateEllipsis
	c.rich.Truncation = fyne.TextTruncateEllipsis
	c.ExtendBaseWidget(c)
	c.show(cellText)
	return c
}

func (c *tableCell) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(c.label, c.check, c.rich, c.handle))
}

func (c *tableCell) show(kind cellKind) {
	c.kind = kind
	parts := []fyne.CanvasObject{c.label, c.check, c.rich, c.handle}
	for i, o := range parts {
		if cellKind(i) == kind {
			o.Show()
		} else {
			o.Hide()
		}
	}
}

func (c *tableCell) setText(text string, style CellStyle) {
	c.show(cellText)
	c.label.TextStyle = fyne.TextStyle{Bold: style.Bold, Italic: style.Italic, Monospace: style.Monospace}
	c.label.Importance = style.Importance
	c.label.SetText(text)
	c.label.SetToolTip(text)
}

func (c *tableCell) setMarkdown(md string) {
	c.show(cellMarkdown)
	c.rich.ParseMarkdown(md)
}

// setCheck shows the checkbox without reporting the state change.
func (c *tableCell) setCheck(checked bool, onChanged func(bool)) {
	c.show(cellCheck)
	c.check.OnChanged = nil
	c.check.SetChecked(checked)
	c.check.OnChanged = onChanged
}

func (c *tableCell) setHandle(row int, onDrop func(from int, dy, rowHeight float32)) {
	c.show(cellHandle)
	c.handle.row = row
	c.handle.onDrop = onDrop
}

func (c *tableCell) setEmpty() {
	c.setText("", CellStyle{})
}
