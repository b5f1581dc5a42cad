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

// Package text renders view records as a terminal table.
package text

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/magpierre/fyne-viewtable/datatable"
)

// Options controls rendering.
type Options struct {
	// ASCII draws the border with plain ASCII characters.
	ASCII bool
	// Selection, when set, adds a leading marker column for selected rows.
	Selection *datatable.Selection
	// Limit caps the number of rows rendered. Zero renders every row.
	Limit int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	absentStyle = cellStyle.Faint(true)
)

const selectedMarker = "*"

// Render returns the display text of cols for views, in display order.
func Render(views []datatable.ViewRecord, cols []datatable.Column, opts Options) string {
	marker := opts.Selection != nil

	headers := make([]string, 0, len(cols)+1)
	if marker {
		headers = append(headers, "")
	}
	for _, c := range cols {
		headers = append(headers, c.Header())
	}

	if opts.Limit > 0 && opts.Limit < len(views) {
		views = views[:opts.Limit]
	}

	rows := make([][]string, len(views))
	for i, v := range views {
		row := make([]string, 0, len(headers))
		if marker {
			if opts.Selection.IsSelected(v) {
				row = append(row, selectedMarker)
			} else {
				row = append(row, "")
			}
		}
		for _, c := range cols {
			row = append(row, v.String(c.Name))
		}
		rows[i] = row
	}

	border := lipgloss.RoundedBorder()
	if opts.ASCII {
		border = lipgloss.ASCIIBorder()
	}

	offset := 0
	if marker {
		offset = 1
	}
	t := table.New().
		Border(border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col >= offset && row < len(views) && views[row].Cell(cols[col-offset].Name).Absent {
				return absentStyle
			}
			return cellStyle
		})

	return t.Render()
}
