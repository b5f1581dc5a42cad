package datatable_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-viewtable/datatable"
)

func numberFormat(raw any) (any, error) {
	return fmt.Sprintf("#%v", raw), nil
}

func dateFormat(raw any) (any, error) {
	t, ok := raw.(time.Time)
	if !ok {
		return nil, fmt.Errorf("not a time: %T", raw)
	}
	return t.Format("2006-01-02"), nil
}

func TestExtractPolicy(t *testing.T) {
	as := assert.New(t)
	rec := map[string]any{"name": "bill", "nested": map[string]any{"name": "inner"}}

	byName := datatable.Column{Name: "name"}
	v, ok, err := byName.Extract(rec)
	as.Nil(err)
	as.True(ok)
	as.Equal("bill", v)

	byPath := datatable.Column{Name: "name", Path: "nested.name"}
	v, ok, err = byPath.Extract(rec)
	as.Nil(err)
	as.True(ok)
	as.Equal("inner", v)

	calls := 0
	byFunc := datatable.Column{Name: "name", Value: func(r any) (any, error) {
		calls++
		return "computed", nil
	}}
	v, ok, err = byFunc.Extract(rec)
	as.Nil(err)
	as.True(ok)
	as.Equal("computed", v)
	as.Equal(1, calls)

	nilFunc := datatable.Column{Name: "name", Value: func(any) (any, error) {
		return nil, nil
	}}
	_, ok, err = nilFunc.Extract(rec)
	as.Nil(err)
	as.False(ok)
}

func TestExtractErrorPropagates(t *testing.T) {
	as := assert.New(t)
	boom := errors.New("boom")

	col := datatable.Column{Name: "x", Value: func(any) (any, error) {
		return nil, boom
	}}
	_, _, err := col.Extract(map[string]any{})
	as.ErrorIs(err, boom)

	_, err = col.Cell(map[string]any{})
	as.ErrorIs(err, boom)
}

func TestNumberFormatting(t *testing.T) {
	as := assert.New(t)

	col := datatable.Column{Type: datatable.ColumnNumber, Name: "n", Formatter: numberFormat}

	v, err := col.Cell(map[string]any{"n": 0})
	as.Nil(err)
	as.False(v.Absent)
	as.Equal(0, v.Raw)
	as.Equal("#0", v.Display)
	as.Equal("#0", v.String())

	v, err = col.Cell(map[string]any{"n": nil})
	as.Nil(err)
	as.True(v.Absent)
	as.Equal("", v.String())

	v, err = col.Cell(map[string]any{})
	as.Nil(err)
	as.True(v.Absent)

	plain := datatable.Column{Type: datatable.ColumnNumber, Name: "n"}
	v, err = plain.Cell(map[string]any{"n": 12.5})
	as.Nil(err)
	as.Equal(12.5, v.Display)
	as.Equal("12.5", v.String())
}

func TestDateFormatting(t *testing.T) {
	as := assert.New(t)

	col := datatable.Column{Type: datatable.ColumnDate, Name: "d", Formatter: dateFormat}
	when := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	v, err := col.Cell(map[string]any{"d": when})
	as.Nil(err)
	as.Equal("2024-03-09", v.Display)
	as.Equal(when, v.Raw)

	v, err = col.Cell(map[string]any{"d": nil})
	as.Nil(err)
	as.True(v.Absent)

	_, err = col.Cell(map[string]any{"d": "not a time"})
	as.Error(err)
	as.Contains(err.Error(), "format column d")

	bare := datatable.Column{Type: datatable.ColumnDate, Name: "d"}
	_, err = bare.Cell(map[string]any{"d": when})
	as.ErrorIs(err, datatable.ErrMissingFormat)
}

func TestTextAndTemplatePassThrough(t *testing.T) {
	as := assert.New(t)
	rec := map[string]any{"t": false, "tpl": []int{1, 2}}

	text := datatable.Column{Type: datatable.ColumnText, Name: "t"}
	v, err := text.Cell(rec)
	as.Nil(err)
	as.False(v.Absent)
	as.Equal(false, v.Display)
	as.Equal("false", v.String())

	tpl := datatable.Column{Type: datatable.ColumnTemplate, Name: "tpl", Formatter: numberFormat}
	v, err = tpl.Cell(rec)
	as.Nil(err)
	as.Equal([]int{1, 2}, v.Display)

	unknown := datatable.Column{Type: datatable.ColumnType(42), Name: "t"}
	v, err = unknown.Cell(rec)
	as.Nil(err)
	as.Equal(false, v.Display)
}

func TestColumnSet(t *testing.T) {
	as := assert.New(t)

	cs, err := datatable.NewColumnSet(
		datatable.Column{Name: "a", Label: "Alpha"},
		datatable.Column{Name: "b"},
	)
	require.NoError(t, err)
	as.Equal(2, cs.Len())
	as.Equal([]string{"a", "b"}, cs.Names())
	as.True(cs.Has("a"))
	as.False(cs.Has("c"))

	c, err := cs.Lookup("a")
	as.Nil(err)
	as.Equal("Alpha", c.Header())

	_, err = cs.Lookup("c")
	as.ErrorIs(err, datatable.ErrColumnNotFound)

	sel, err := cs.Select("b", "a")
	as.Nil(err)
	as.Equal("b", sel[0].Name)
	as.Equal("a", sel[1].Name)

	_, err = datatable.NewColumnSet(datatable.Column{Name: "a"}, datatable.Column{Name: "a"})
	as.ErrorIs(err, datatable.ErrDuplicateColumn)

	_, err = datatable.NewColumnSet(datatable.Column{})
	as.ErrorIs(err, datatable.ErrEmptyColumnName)

	_, err = datatable.NewColumnSet(datatable.Column{Name: "d", Type: datatable.ColumnDate})
	as.ErrorIs(err, datatable.ErrMissingFormat)

	_, err = datatable.NewColumnSet(datatable.Column{
		Name:  "x",
		Path:  "a.b",
		Value: func(any) (any, error) { return 1, nil },
	})
	as.ErrorIs(err, datatable.ErrAmbiguousValue)

	as.Panics(func() {
		datatable.MustColumnSet(datatable.Column{Name: "a"}, datatable.Column{Name: "a"})
	})
}

func TestAutoColumns(t *testing.T) {
	as := assert.New(t)

	cs, err := datatable.AutoColumns([]string{"plain", "dotted.name"})
	require.NoError(t, err)

	views, err := datatable.Map([]any{
		map[string]any{"plain": 1, "dotted.name": "kept"},
	}, cs, nil)
	require.NoError(t, err)
	as.Equal(1, views[0].Cell("plain").Display)
	as.Equal("kept", views[0].String("dotted.name"))
}

func TestParseColumnType(t *testing.T) {
	as := assert.New(t)

	for name, want := range map[string]datatable.ColumnType{
		"":         datatable.ColumnText,
		"Text":     datatable.ColumnText,
		"number":   datatable.ColumnNumber,
		"DATE":     datatable.ColumnDate,
		"template": datatable.ColumnTemplate,
	} {
		ct, err := datatable.ParseColumnType(name)
		as.Nil(err)
		as.Equal(want, ct, name)
	}

	_, err := datatable.ParseColumnType("chart")
	as.ErrorIs(err, datatable.ErrUnknownColumnType)
	as.Equal("Unknown(9)", datatable.ColumnType(9).String())
	as.Equal("Date", datatable.ColumnDate.String())
}
