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
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// dragHandle is the grip drawn in the reorder column. Dragging it
// vertically moves its row.
type dragHandle struct {
	widget.BaseWidget
	icon *widget.Icon

	row    int
	dy     float32
	onDrop func(from int, dy, rowHeight float32)
}

var _ fyne.Draggable = (*dragHandle)(nil)

func newDragHandle() *dragHandle {
	h := &dragHandle{icon: widget.NewIcon(theme.MenuIcon()), row: -1}
	h.ExtendBaseWidget(h)
	return h
}

func (h *dragHandle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.icon)
}

// Dragged implements fyne.Draggable.
func (h *dragHandle) Dragged(e *fyne.DragEvent) {
	h.dy += e.Dragged.DY
}

// DragEnd implements fyne.Draggable.
func (h *dragHandle) DragEnd() {
	dy := h.dy
	h.dy = 0
	if h.onDrop == nil || h.row < 0 {
		return
	}
	h.onDrop(h.row, dy, h.Size().Height+theme.SeparatorThicknessSize())
}

// dropTarget returns the row a drag of dy starting at from lands on, for
// rows of rowHeight in a table of n rows.
func dropTarget(from int, dy, rowHeight float32, n int) int {
	if n <= 0 {
		return 0
	}
	if rowHeight <= 0 {
		return from
	}
	steps := int(math.Round(float64(dy / rowHeight)))
	to := from + steps
	if to < 0 {
		return 0
	}
	if to > n-1 {
		return n - 1
	}
	return to
}
