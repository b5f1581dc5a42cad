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

// Package config reads YAML table descriptions: the column set, the row
// identity and the display options of a table.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/magpierre/fyne-viewtable/datatable"
	"github.com/magpierre/fyne-viewtable/format"
	"github.com/magpierre/fyne-viewtable/script"
)

// ErrInvalidConfig is returned when a table description cannot be used.
var ErrInvalidConfig = errors.New("invalid table config")

// Table is a table description.
type Table struct {
	Title        string   `yaml:"title"`
	StickyHeader *bool    `yaml:"sticky_header"`
	Selectable   bool     `yaml:"selectable"`
	Reorderable  bool     `yaml:"reorderable"`
	Identity     string   `yaml:"identity"`
	NoClick      []string `yaml:"no_click"`
	Columns      []Column `yaml:"columns"`
}

// Column describes one column of a table description.
type Column struct {
	Name  string  `yaml:"name"`
	Label string  `yaml:"label"`
	Type  string  `yaml:"type"`
	Path  string  `yaml:"path"`
	Width float32 `yaml:"width"`

	// Script is a Go function body computing the value from `record`.
	Script string `yaml:"script"`

	// Format is a fmt verb for text and number columns.
	Format string `yaml:"format"`
	// Locale selects locale-aware number formatting, e.g. "en" or "sv".
	Locale string `yaml:"locale"`
	// Decimals is the fraction digits used with Locale. Nil keeps precision.
	Decimals *int `yaml:"decimals"`
	// Layout is the Go time layout of date columns.
	Layout string `yaml:"layout"`
	// FormatScript is a Go function body formatting `raw`.
	FormatScript string `yaml:"format_script"`

	// Template is a text/template producing markdown for template columns.
	// The template receives the cell as {{.Value}}, its text as {{.Text}}
	// or {{.}}, and the record as {{.Record}}.
	Template string `yaml:"template"`
}

// Load reads a table description from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a table description. Unknown keys are rejected.
func Parse(data []byte) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &t, nil
}

// Sticky reports whether the header row stays visible while scrolling.
// It defaults to true.
func (t *Table) Sticky() bool {
	return t.StickyHeader == nil || *t.StickyHeader
}

// ColumnSet builds the described columns.
func (t *Table) ColumnSet() (*datatable.ColumnSet, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidConfig)
	}
	cols := make([]datatable.Column, len(t.Columns))
	for i, c := range t.Columns {
		col, err := c.build()
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidConfig, c.Name, err)
		}
		cols[i] = col
	}
	return datatable.NewColumnSet(cols...)
}

// Names returns the described column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Widths returns the configured column widths keyed by column name.
func (t *Table) Widths() map[string]float32 {
	widths := map[string]float32{}
	for _, c := range t.Columns {
		if c.Width > 0 {
			widths[c.Name] = c.Width
		}
	}
	return widths
}

// IdentityFunc returns the row identity. "index" or empty keys rows by
// position, "uuid" by content; anything else is a path into the record.
func (t *Table) IdentityFunc() datatable.IdentityFunc {
	switch strings.ToLower(t.Identity) {
	case "", "index":
		return datatable.IndexIdentity
	case "uuid":
		return datatable.UUIDIdentity
	default:
		return datatable.PathIdentity(t.Identity)
	}
}

// Templates compiles the markdown templates of template columns. A template
// on a column of another type is an error.
func (t *Table) Templates() (map[string]datatable.TemplateFunc, error) {
	res := map[string]datatable.TemplateFunc{}
	for _, c := range t.Columns {
		if c.Template == "" {
			continue
		}
		ct, err := datatable.ParseColumnType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidConfig, c.Name, err)
		}
		if ct != datatable.ColumnTemplate {
			return nil, fmt.Errorf("%w: column %q: template set on a %s column", ErrInvalidConfig, c.Name, ct)
		}
		tpl, err := template.New(c.Name).Parse(c.Template)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidConfig, c.Name, err)
		}
		res[c.Name] = renderTemplate(tpl)
	}
	return res, nil
}

type templateData struct {
	Value  any
	Text   string
	Record any
}

func (d templateData) String() string {
	return d.Text
}

func renderTemplate(tpl *template.Template) datatable.TemplateFunc {
	return func(v datatable.Value, row datatable.ViewRecord) string {
		var buf bytes.Buffer
		err := tpl.Execute(&buf, templateData{
			Value:  v.Display,
			Text:   v.String(),
			Record: row.Record,
		})
		if err != nil {
			return v.String()
		}
		return buf.String()
	}
}

func (c Column) build() (datatable.Column, error) {
	ct, err := datatable.ParseColumnType(c.Type)
	if err != nil {
		return datatable.Column{}, err
	}
	col := datatable.Column{
		Type:  ct,
		Name:  c.Name,
		Label: c.Label,
		Path:  c.Path,
	}

	if c.Script != "" {
		if c.Path != "" {
			return datatable.Column{}, datatable.ErrAmbiguousValue
		}
		fn, err := script.CompileValue(c.Script)
		if err != nil {
			return datatable.Column{}, err
		}
		col.Value = fn
	}

	formatter, err := c.formatter(ct)
	if err != nil {
		return datatable.Column{}, err
	}
	col.Formatter = formatter
	return col, nil
}

func (c Column) formatter(ct datatable.ColumnType) (datatable.FormatFunc, error) {
	switch {
	case c.FormatScript != "":
		return script.CompileFormat(c.FormatScript)
	case ct == datatable.ColumnDate:
		layout := c.Layout
		if layout == "" {
			layout = "2006-01-02"
		}
		return format.Date(layout), nil
	case c.Locale != "":
		tag, err := language.Parse(c.Locale)
		if err != nil {
			return nil, err
		}
		decimals := -1
		if c.Decimals != nil {
			decimals = *c.Decimals
		}
		return format.Number(tag, decimals), nil
	case c.Format != "":
		return format.Sprintf(c.Format), nil
	default:
		return nil, nil
	}
}
