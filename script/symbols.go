package script

import (
	"fmt"
	"reflect"
	"time"

	"github.com/traefik/yaegi/interp"

	"github.com/magpierre/fyne-viewtable/datatable"
	"github.com/magpierre/fyne-viewtable/format"
)

// Symbols exposes the helper package imported as "viewtable" by scripts.
var Symbols = interp.Exports{
	"viewtable/viewtable": {
		"Get":     reflect.ValueOf(Get),
		"Has":     reflect.ValueOf(Has),
		"String":  reflect.ValueOf(String),
		"Float":   reflect.ValueOf(Float),
		"Time":    reflect.ValueOf(Time),
		"Resolve": reflect.ValueOf(datatable.Resolve),
	},
}

// Get returns the value at path, or nil when absent.
func Get(record interface{}, path string) interface{} {
	v, _ := datatable.Resolve(record, path)
	return v
}

// Has reports whether path resolves to a present value.
func Has(record interface{}, path string) bool {
	_, ok := datatable.Resolve(record, path)
	return ok
}

// String returns the value at path as text, or "" when absent.
func String(record interface{}, path string) string {
	v, ok := datatable.Resolve(record, path)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Float returns the value at path as a number, or 0 when absent or not numeric.
func Float(record interface{}, path string) float64 {
	v, ok := datatable.Resolve(record, path)
	if !ok {
		return 0
	}
	f, err := format.Float(v)
	if err != nil {
		return 0
	}
	return f
}

// Time returns the value at path as a time, or the zero time when absent.
func Time(record interface{}, path string) time.Time {
	v, ok := datatable.Resolve(record, path)
	if !ok {
		return time.Time{}
	}
	t, err := format.Time(v)
	if err != nil {
		return time.Time{}
	}
	return t
}
