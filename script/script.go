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

// Package script compiles column value and format functions written as Go
// function bodies. The bodies run in the yaegi interpreter with the standard
// library and the helper package "viewtable" available.
//
// A value body receives `record interface{}`, a format body receives
// `raw interface{}`; both return (interface{}, error):
//
//	return viewtable.Float(record, "price") * 1.25, nil
package script

import (
	"errors"
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/magpierre/fyne-viewtable/datatable"
)

// ErrScript is returned when a script fails to compile or panics at run time.
var ErrScript = errors.New("script error")

// prelude imports the packages a body may use. Each import is referenced
// once so bodies that ignore it still compile.
const prelude = `package column

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"viewtable"
)

var (
	_ = fmt.Sprint
	_ = math.Abs
	_ = strconv.Itoa
	_ = strings.TrimSpace
	_ = time.Now
	_ = viewtable.Get
)
`

type scriptFunc = func(interface{}) (interface{}, error)

// CompileValue compiles a value body into a datatable.ValueFunc.
func CompileValue(body string) (datatable.ValueFunc, error) {
	fn, err := compile("record", body)
	if err != nil {
		return nil, err
	}
	return datatable.ValueFunc(guard(fn)), nil
}

// CompileFormat compiles a format body into a datatable.FormatFunc.
func CompileFormat(body string) (datatable.FormatFunc, error) {
	fn, err := compile("raw", body)
	if err != nil {
		return nil, err
	}
	return datatable.FormatFunc(guard(fn)), nil
}

func compile(param, body string) (scriptFunc, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("%w: loading stdlib: %v", ErrScript, err)
	}
	if err := i.Use(Symbols); err != nil {
		return nil, fmt.Errorf("%w: loading helpers: %v", ErrScript, err)
	}

	src := fmt.Sprintf("%s\nfunc Eval(%s interface{}) (interface{}, error) {\n%s\n}\n", prelude, param, body)
	if _, err := i.Eval(src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}

	v, err := i.Eval("column.Eval")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	fn, ok := v.Interface().(scriptFunc)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected function type %s", ErrScript, v.Type())
	}
	return fn, nil
}

// guard turns panics inside interpreted code into errors.
func guard(fn scriptFunc) scriptFunc {
	return func(in interface{}) (out interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				out = nil
				err = fmt.Errorf("%w: panic: %v", ErrScript, r)
			}
		}()
		return fn(in)
	}
}
