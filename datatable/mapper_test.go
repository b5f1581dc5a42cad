package datatable_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-viewtable/datatable"
)

func TestMapEndToEnd(t *testing.T) {
	as := assert.New(t)

	records := []any{
		map[string]any{"a": map[string]any{"b": 1}},
		map[string]any{"a": map[string]any{"b": nil}},
	}
	cols := datatable.MustColumnSet(datatable.Column{Name: "x", Path: "a.b"})

	views, err := datatable.Map(records, cols, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)

	as.Equal(1, views[0].Values["x"].Display)
	as.False(views[0].Values["x"].Absent)
	as.True(views[1].Values["x"].Absent)

	as.Equal(0, views[0].Key)
	as.Equal(1, views[1].Key)
	as.Equal(records[0], views[0].Record)
}

func TestMapPreservesOrderAndIdentity(t *testing.T) {
	as := assert.New(t)

	records := datatable.Records([]map[string]any{
		{"id": "c"}, {"id": "a"}, {"id": "b"},
	})
	cols := datatable.MustColumnSet(datatable.Column{Name: "id"})

	var seen []int
	views, err := datatable.Map(records, cols, func(i int, rec any) datatable.RowKey {
		seen = append(seen, i)
		v, _ := datatable.Resolve(rec, "id")
		return v
	})
	require.NoError(t, err)
	as.Equal([]int{0, 1, 2}, seen)
	as.Equal("c", views[0].Key)
	as.Equal("a", views[1].Key)
	as.Equal("b", views[2].String("id"))
}

func TestMapErrors(t *testing.T) {
	as := assert.New(t)
	boom := errors.New("boom")

	_, err := datatable.Map(nil, nil, nil)
	as.ErrorIs(err, datatable.ErrNoColumns)

	cols := datatable.MustColumnSet(datatable.Column{Name: "n", Value: func(any) (any, error) {
		return nil, boom
	}})
	_, err = datatable.Map([]any{map[string]any{}}, cols, nil)
	as.ErrorIs(err, boom)

	ok := datatable.MustColumnSet(datatable.Column{Name: "n"})
	_, err = datatable.Map([]any{map[string]any{}}, ok, func(int, any) datatable.RowKey {
		return []int{1}
	})
	as.ErrorIs(err, datatable.ErrUncomparableKey)

	_, err = datatable.Map([]any{map[string]any{}}, ok, func(int, any) datatable.RowKey {
		return nil
	})
	as.ErrorIs(err, datatable.ErrUncomparableKey)

	views, err := datatable.Map(nil, ok, nil)
	as.Nil(err)
	as.Empty(views)
}

type boxedKey struct {
	V any
}

func TestMapRejectsKeysHoldingSlices(t *testing.T) {
	as := assert.New(t)

	ok := datatable.MustColumnSet(datatable.Column{Name: "id"})
	records := []any{map[string]any{"id": boxedKey{V: []int{1}}}}

	_, err := datatable.Map(records, ok, func(_ int, rec any) datatable.RowKey {
		v, _ := datatable.Resolve(rec, "id")
		return v
	})
	as.ErrorIs(err, datatable.ErrUncomparableKey)

	views, err := datatable.Map(records, ok, datatable.PathIdentity("id"))
	require.NoError(t, err)
	as.Equal(0, views[0].Key)

	sel := datatable.NewSelection()
	as.NotPanics(func() { sel.Toggle(views[0]) })
	as.True(sel.IsSelected(views[0]))
}

func TestMapDuplicateKeys(t *testing.T) {
	as := assert.New(t)

	cols := datatable.MustColumnSet(datatable.Column{Name: "name"})
	records := []any{
		map[string]any{"name": "x"},
		map[string]any{"name": "y"},
		map[string]any{"name": "x"},
	}
	views, err := datatable.Map(records, cols, datatable.UUIDIdentity)
	require.NoError(t, err)

	first := datatable.UUIDIdentity(0, records[0])
	as.Equal(first, views[0].Key)
	as.Equal(datatable.DuplicateKey{Key: first, Index: 2}, views[2].Key)

	sel := datatable.NewSelection()
	sel.Toggle(views[0])
	as.True(sel.IsSelected(views[0]))
	as.False(sel.IsSelected(views[2]))
	as.Equal(1, sel.Len())

	// A path identity falling back to the index must not collide with a real id.
	views, err = datatable.Map([]any{
		map[string]any{"id": 1},
		map[string]any{},
	}, cols, datatable.PathIdentity("id"))
	require.NoError(t, err)
	as.Equal(1, views[0].Key)
	as.Equal(datatable.DuplicateKey{Key: 1, Index: 1}, views[1].Key)
}

func TestIdentities(t *testing.T) {
	as := assert.New(t)

	a := map[string]any{"id": 7, "name": "x"}
	b := map[string]any{"name": "x", "id": 7}
	c := map[string]any{"id": 8}

	ka := datatable.UUIDIdentity(0, a)
	as.IsType(uuid.UUID{}, ka)
	as.Equal(ka, datatable.UUIDIdentity(5, b))
	as.NotEqual(ka, datatable.UUIDIdentity(0, c))

	byID := datatable.PathIdentity("id")
	as.Equal(7, byID(0, a))
	as.Equal(3, byID(3, map[string]any{}))
	as.Equal(4, byID(4, map[string]any{"id": []int{1}}))

	as.Equal(9, datatable.IndexIdentity(9, a))
}

func TestModelRecompute(t *testing.T) {
	as := assert.New(t)

	cols := datatable.MustColumnSet(datatable.Column{Name: "v"})
	m, err := datatable.NewModel([]any{
		map[string]any{"v": 1},
		map[string]any{"v": 2},
	}, cols, nil)
	require.NoError(t, err)

	changes := 0
	m.AddListener(func() { changes++ })
	as.Equal(2, m.Len())

	first := m.Views()
	err = m.SetRecords([]any{map[string]any{"v": 3}})
	as.Nil(err)
	as.Equal(1, m.Len())
	as.Equal(1, changes)
	as.Len(first, 2, "previous views are not mutated")
	as.Equal(1, first[0].Cell("v").Display)

	v, err := m.View(0)
	as.Nil(err)
	as.Equal(3, v.Cell("v").Display)

	_, err = m.View(1)
	as.ErrorIs(err, datatable.ErrInvalidRow)

	renamed := datatable.MustColumnSet(datatable.Column{Name: "w", Path: "v"})
	as.Nil(m.SetColumns(renamed))
	as.Equal(2, changes)
	v, _ = m.View(0)
	as.Equal(3, v.Cell("w").Display)
	as.True(v.Cell("v").Absent)
	as.Same(renamed, m.Columns())

	as.Nil(m.SetIdentity(func(int, any) datatable.RowKey { return "only" }))
	v, _ = m.View(0)
	as.Equal("only", v.Key)
	as.Equal(3, changes)
}

func TestModelKeepsStateOnError(t *testing.T) {
	as := assert.New(t)
	boom := errors.New("boom")

	cols := datatable.MustColumnSet(datatable.Column{Name: "v"})
	m, err := datatable.NewModel([]any{map[string]any{"v": 1}}, cols, nil)
	require.NoError(t, err)

	failing := datatable.MustColumnSet(datatable.Column{Name: "v", Value: func(any) (any, error) {
		return nil, boom
	}})
	as.ErrorIs(m.SetColumns(failing), boom)
	as.Same(cols, m.Columns())
	as.Equal(1, m.Len())
}

func TestModelMove(t *testing.T) {
	as := assert.New(t)

	cols := datatable.MustColumnSet(datatable.Column{Name: "v"})
	m, err := datatable.NewModel([]any{
		map[string]any{"v": "a"},
		map[string]any{"v": "b"},
		map[string]any{"v": "c"},
	}, cols, nil)
	require.NoError(t, err)

	m.Move(0, 2)
	views := m.Views()
	as.Equal("b", views[0].String("v"))
	as.Equal("c", views[1].String("v"))
	as.Equal("a", views[2].String("v"))
	as.Equal(0, views[2].Key)
}

func TestModelFromSource(t *testing.T) {
	as := assert.New(t)

	src := &datatable.SliceSource{
		FieldNames: []string{"name", "age"},
		Rows: []any{
			map[string]any{"name": "bill", "age": 42},
		},
	}
	m, err := datatable.NewModelFromSource(src, nil, nil)
	require.NoError(t, err)
	as.Equal([]string{"name", "age"}, m.Columns().Names())
	v, _ := m.View(0)
	as.Equal("42", v.String("age"))
	as.Empty(src.Metadata())

	_, err = datatable.NewModelFromSource(nil, nil, nil)
	as.ErrorIs(err, datatable.ErrNoDataSource)
}
