package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-viewtable/adapters/jsonfile"
	"github.com/magpierre/fyne-viewtable/config"
	"github.com/magpierre/fyne-viewtable/datatable"
)

const ordersYAML = `
title: Orders
selectable: true
reorderable: true
identity: id
no_click: [notes]
columns:
  - {name: id, label: ID, type: number, format: "%03d", width: 60}
  - {name: total, type: number, locale: en, decimals: 2}
  - {name: placed, type: date, layout: "02/01/2006"}
  - {name: city, path: "customer.address.city"}
  - name: vat
    type: number
    script: 'return viewtable.Float(record, "total") * 0.25, nil'
    format: "%.1f"
  - {name: notes, type: template, template: "**{{.Text}}**"}
`

func TestParseOrders(t *testing.T) {
	as := assert.New(t)

	tbl, err := config.Parse([]byte(ordersYAML))
	require.NoError(t, err)

	as.Equal("Orders", tbl.Title)
	as.True(tbl.Sticky())
	as.True(tbl.Selectable)
	as.True(tbl.Reorderable)
	as.Equal([]string{"notes"}, tbl.NoClick)
	as.Equal([]string{"id", "total", "placed", "city", "vat", "notes"}, tbl.Names())
	as.Equal(map[string]float32{"id": 60}, tbl.Widths())

	cols, err := tbl.ColumnSet()
	require.NoError(t, err)

	rec := map[string]any{
		"id":       7,
		"total":    1234.5,
		"placed":   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		"customer": map[string]any{"address": map[string]any{"city": "Lund"}},
		"notes":    "rush",
	}
	views, err := datatable.Map([]any{rec}, cols, tbl.IdentityFunc())
	require.NoError(t, err)
	v := views[0]

	as.Equal(7, v.Key)
	as.Equal("007", v.String("id"))
	as.Equal("1,234.50", v.String("total"))
	as.Equal("29/02/2024", v.String("placed"))
	as.Equal("Lund", v.String("city"))
	as.Equal("308.6", v.String("vat"))
	as.Equal("rush", v.String("notes"))

	templates, err := tbl.Templates()
	require.NoError(t, err)
	require.Contains(t, templates, "notes")
	as.Equal("**rush**", templates["notes"](v.Cell("notes"), v))

	tbl, err = config.Parse([]byte(`columns: [{name: notes, type: template, template: "**{{.}}**"}]`))
	require.NoError(t, err)
	templates, err = tbl.Templates()
	require.NoError(t, err)
	as.Equal("**rush**", templates["notes"](v.Cell("notes"), v))
}

func TestIntegerFormatOnJSON(t *testing.T) {
	as := assert.New(t)

	tbl, err := config.Parse([]byte(`columns: [{name: id, type: number, format: "%d"}, {name: code, format: "%04d"}]`))
	require.NoError(t, err)
	cols, err := tbl.ColumnSet()
	require.NoError(t, err)

	src, err := jsonfile.Parse([]byte(`[{"id": 1, "code": 42}, {"id": 2.5}]`))
	require.NoError(t, err)
	views, err := datatable.Map(src.Records(), cols, tbl.IdentityFunc())
	require.NoError(t, err)

	as.Equal("1", views[0].String("id"))
	as.Equal("0042", views[0].String("code"))
	as.Equal("%!d(float64=2.5)", views[1].String("id"))
	as.True(views[1].Cell("code").Absent)
}

func TestParseRejectsBadInput(t *testing.T) {
	as := assert.New(t)

	_, err := config.Parse([]byte("columns: [{name: a, colour: red}]"))
	as.ErrorIs(err, config.ErrInvalidConfig)

	tbl, err := config.Parse([]byte("title: empty"))
	require.NoError(t, err)
	_, err = tbl.ColumnSet()
	as.ErrorIs(err, config.ErrInvalidConfig)

	tbl, err = config.Parse([]byte("columns: [{name: a, type: chart}]"))
	require.NoError(t, err)
	_, err = tbl.ColumnSet()
	as.ErrorIs(err, config.ErrInvalidConfig)

	tbl, err = config.Parse([]byte(`columns: [{name: a, path: x, script: "return 1, nil"}]`))
	require.NoError(t, err)
	_, err = tbl.ColumnSet()
	as.ErrorIs(err, config.ErrInvalidConfig)

	tbl, err = config.Parse([]byte("columns: [{name: a}, {name: a}]"))
	require.NoError(t, err)
	_, err = tbl.ColumnSet()
	as.ErrorIs(err, datatable.ErrDuplicateColumn)

	tbl, err = config.Parse([]byte(`columns: [{name: a, type: template, template: "{{.Text"}]`))
	require.NoError(t, err)
	_, err = tbl.Templates()
	as.ErrorIs(err, config.ErrInvalidConfig)

	tbl, err = config.Parse([]byte(`columns: [{name: a, type: text, template: "**{{.Text}}**"}]`))
	require.NoError(t, err)
	_, err = tbl.Templates()
	as.ErrorIs(err, config.ErrInvalidConfig)
}

func TestDefaults(t *testing.T) {
	as := assert.New(t)

	tbl, err := config.Parse([]byte("sticky_header: false\ncolumns: [{name: when, type: date}]"))
	require.NoError(t, err)
	as.False(tbl.Sticky())

	cols, err := tbl.ColumnSet()
	require.NoError(t, err)
	views, err := datatable.Map([]any{
		map[string]any{"when": "2023-12-24T08:00:00Z"},
	}, cols, tbl.IdentityFunc())
	require.NoError(t, err)
	as.Equal("2023-12-24", views[0].String("when"))
	as.Equal(0, views[0].Key)

	tbl.Identity = "uuid"
	as.IsType(uuid.UUID{}, tbl.IdentityFunc()(0, map[string]any{"a": 1}))
}

func TestLoad(t *testing.T) {
	as := assert.New(t)

	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(ordersYAML), 0o600))

	tbl, err := config.Load(path)
	as.Nil(err)
	as.Equal("Orders", tbl.Title)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	as.Error(err)
}
