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

// Package windows holds the viewtable browser window: it opens data files
// and Delta Sharing tables, shows each in a tab and exports the current view.
package windows

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/magpierre/fyne-viewtable/adapters/share"
	"github.com/magpierre/fyne-viewtable/config"
	"github.com/magpierre/fyne-viewtable/datatable"
)

// Options configures a MainWindow.
type Options struct {
	// Table describes the columns of every opened table. Nil shows all fields.
	Table *config.Table
	// APITimeout is the Delta Sharing request timeout in seconds.
	APITimeout int
	// Limit caps the rows loaded from a share. Zero loads every row.
	Limit int
}

type MainWindow struct {
	a          fyne.App
	w          fyne.Window
	toolbar    *widget.Toolbar
	docTabs    *container.DocTabs
	statusBar  *widget.Label
	browsers   map[*container.TabItem]*DataBrowser
	desc       *config.Table
	apiTimeout int
	limit      int
}

// NewMainWindow builds the window. Call Window().ShowAndRun to start it.
func NewMainWindow(a fyne.App, opts Options) *MainWindow {
	t := &MainWindow{
		a:          a,
		browsers:   map[*container.TabItem]*DataBrowser{},
		desc:       opts.Table,
		apiTimeout: opts.APITimeout,
		limit:      opts.Limit,
	}
	t.a.Settings().SetTheme(&ViewTheme{})

	t.w = t.a.NewWindow("View Table")
	t.w.Resize(fyne.NewSize(900, 600))

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}
	t.statusBar.Truncation = fyne.TextTruncateEllipsis

	t.docTabs = container.NewDocTabs()
	t.docTabs.OnSelected = func(ti *container.TabItem) {
		if db, ok := t.browsers[ti]; ok {
			t.SetStatus(db.StatusText())
		}
	}
	t.docTabs.OnClosed = func(ti *container.TabItem) {
		delete(t.browsers, ti)
		if len(t.docTabs.Items) == 0 {
			t.SetStatus("Ready")
		}
	}

	t.toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), t.OpenFile),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.showExportMenu),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), t.addColumn),
		widget.NewToolbarAction(theme.CheckButtonCheckedIcon(), func() {
			if db := t.current(); db != nil {
				db.dataTable.SelectAll()
			}
		}),
		widget.NewToolbarAction(theme.CheckButtonIcon(), func() {
			if db := t.current(); db != nil {
				db.dataTable.ClearSelection()
			}
		}),
		widget.NewToolbarSpacer(),
	)

	t.w.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", t.OpenFile),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export as CSV...", func() { t.exportCurrent(FormatCSV) }),
		fyne.NewMenuItem("Export as JSON...", func() { t.exportCurrent(FormatJSON) }),
		fyne.NewMenuItem("Export as Parquet...", func() { t.exportCurrent(FormatParquet) }),
	), fyne.NewMenu("Table",
		fyne.NewMenuItem("Add Computed Column...", t.addColumn),
	)))

	content := container.NewBorder(t.toolbar, t.statusBar, nil, nil, t.docTabs)
	t.w.SetContent(fynetooltip.AddWindowToolTipLayer(content, t.w.Canvas()))
	return t
}

// Window returns the application window.
func (t *MainWindow) Window() fyne.Window {
	return t.w
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

func (t *MainWindow) current() *DataBrowser {
	if t.docTabs.Selected() == nil {
		return nil
	}
	return t.browsers[t.docTabs.Selected()]
}

// ShowSource opens src in a new tab, or replaces the tab of the same name.
func (t *MainWindow) ShowSource(src datatable.RecordSource, name string) error {
	db, err := NewDataBrowser(src, name, t.desc, t.SetStatus)
	if err != nil {
		return err
	}

	for ti, old := range t.browsers {
		if old.tableName == db.tableName {
			ti.Content = db.dataTable
			t.browsers[ti] = db
			t.docTabs.Select(ti)
			t.docTabs.Refresh()
			t.SetStatus(db.StatusText())
			return nil
		}
	}

	ti := container.NewTabItem(db.tableName, db.dataTable)
	t.browsers[ti] = db
	t.docTabs.Append(ti)
	t.docTabs.Select(ti)
	t.SetStatus(db.StatusText())
	return nil
}

// OpenFile asks for a data file or Delta Sharing profile and loads it.
func (t *MainWindow) OpenFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		t.LoadFile(path)
	}, t.w)
}

// LoadFile loads path in the background and shows it when done.
func (t *MainWindow) LoadFile(path string) {
	t.SetStatus("Loading " + path)
	done := t.showProgress("Loading...")
	go func() {
		ctx, cancel := createTimeoutContext(t.apiTimeout)
		defer cancel()
		res, err := LoadDataFile(ctx, path)
		fyne.Do(func() {
			done()
			if err != nil {
				t.showLoadError(err)
				return
			}
			if res.Type == FileTypeDeltaSharingProfile {
				t.SetStatus(res.Status)
				t.OpenShare(res.Profile)
				return
			}
			if err := t.ShowSource(res.Source, res.Name); err != nil {
				t.showLoadError(err)
				return
			}
			slog.Info("file loaded", "path", path, "type", res.Type.String())
			t.SetStatus(res.Status)
		})
	}()
}

// OpenShare lists the tables of a Delta Sharing profile and loads the one
// the user picks.
func (t *MainWindow) OpenShare(profile string) {
	done := t.showProgress("Listing tables...")
	go func() {
		ctx, cancel := createTimeoutContext(t.apiTimeout)
		defer cancel()
		tables, err := share.ListTables(ctx, profile)
		fyne.Do(func() {
			done()
			if err != nil {
				t.showLoadError(err)
				return
			}
			t.pickShareTable(profile, tables)
		})
	}()
}

func (t *MainWindow) pickShareTable(profile string, tables []share.TableName) {
	if len(tables) == 0 {
		dialog.ShowInformation("No Tables", "The profile does not share any tables.", t.w)
		return
	}
	names := make([]string, len(tables))
	for i, n := range tables {
		names[i] = n.String()
	}
	pick := widget.NewSelect(names, nil)
	pick.SetSelectedIndex(0)
	dialog.ShowForm("Open Shared Table", "Open", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Table", pick)},
		func(ok bool) {
			if ok && pick.Selected != "" {
				t.LoadShareTable(profile, pick.Selected)
			}
		}, t.w)
}

// LoadShareTable loads a shared table in the background and shows it.
func (t *MainWindow) LoadShareTable(profile, table string) {
	t.SetStatus("Loading table data: " + table)
	done := t.showProgress(fmt.Sprintf("Loading %s...", table))
	go func() {
		ctx, cancel := createTimeoutContext(t.apiTimeout)
		defer cancel()
		src, err := share.Load(ctx, profile, table, t.limit)
		fyne.Do(func() {
			done()
			if err != nil {
				t.showLoadError(err)
				return
			}
			if err := t.ShowSource(src, table); err != nil {
				t.showLoadError(err)
			}
		})
	}()
}

func (t *MainWindow) showLoadError(err error) {
	slog.Error("load failed", "error", err)
	t.SetStatus("Error loading data: " + err.Error())
	dialog.ShowError(err, t.w)
}

// showProgress shows an infinite progress dialog and returns the function
// that hides it. Both must run on the UI goroutine.
func (t *MainWindow) showProgress(title string) func() {
	pbi := widget.NewProgressBarInfinite()
	di := dialog.NewCustomWithoutButtons(title, pbi, t.w)
	di.Resize(fyne.NewSize(300, 100))
	di.Show()
	pbi.Start()
	return func() {
		pbi.Stop()
		di.Hide()
	}
}

func (t *MainWindow) showExportMenu() {
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("CSV", func() { t.exportCurrent(FormatCSV) }),
		fyne.NewMenuItem("JSON", func() { t.exportCurrent(FormatJSON) }),
		fyne.NewMenuItem("Parquet", func() { t.exportCurrent(FormatParquet) }),
	)
	pos := fyne.NewPos(theme.Padding(), t.toolbar.MinSize().Height)
	widget.ShowPopUpMenuAtPosition(menu, t.w.Canvas(), pos)
}

// exportCurrent saves the current view of the selected tab.
func (t *MainWindow) exportCurrent(format ExportFormat) {
	db := t.current()
	if db == nil {
		dialog.ShowInformation("Nothing to Export", "Open a table first.", t.w)
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if writer == nil {
			return
		}
		filePath := writer.URI().Path()
		writer.Close()

		if err := db.ExportTo(filePath, format); err != nil {
			dialog.ShowError(fmt.Errorf("export failed: %w", err), t.w)
			return
		}
		t.SetStatus(fmt.Sprintf("Exported %d rows to %s", len(db.ExportViews()), filePath))
	}, t.w)
	save.SetFileName(cleanFilename(db.tableName) + format.Extension())
	save.Show()
}
