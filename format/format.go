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

// Package format provides ready-made format functions for datatable columns.
package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/magpierre/fyne-viewtable/datatable"
)

var (
	// ErrNotNumber is returned when a raw value cannot be read as a number.
	ErrNotNumber = errors.New("value is not a number")

	// ErrNotDate is returned when a raw value cannot be read as a date.
	ErrNotDate = errors.New("value is not a date")
)

// dateLayouts are tried in order when a date arrives as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Sprintf formats values with a fmt verb such as "%.2f" or "%05d".
// Whole floats are passed to integer verbs as int64, so JSON numbers
// work with "%d".
func Sprintf(verb string) datatable.FormatFunc {
	integer := hasIntegerVerb(verb)
	return func(raw any) (any, error) {
		if integer {
			raw = wholeToInt(raw)
		}
		return fmt.Sprintf(verb, raw), nil
	}
}

// hasIntegerVerb reports whether format uses d, x, X, o, O, b or c.
func hasIntegerVerb(format string) bool {
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		for i < len(format) && strings.IndexByte("+-# 0123456789.*", format[i]) >= 0 {
			i++
		}
		if i < len(format) && strings.IndexByte("dxXoObc", format[i]) >= 0 {
			return true
		}
	}
	return false
}

func wholeToInt(raw any) any {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	default:
		return raw
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return raw
	}
	return int64(f)
}

// Number formats numeric values for the given language with a fixed number
// of decimals, using the language's digit grouping.
// A negative decimals keeps the value's own precision.
func Number(tag language.Tag, decimals int) datatable.FormatFunc {
	p := message.NewPrinter(tag)
	return func(raw any) (any, error) {
		f, err := Float(raw)
		if err != nil {
			return nil, err
		}
		if decimals < 0 {
			return p.Sprint(number.Decimal(f)), nil
		}
		return p.Sprint(number.Decimal(f,
			number.MinFractionDigits(decimals),
			number.MaxFractionDigits(decimals),
		)), nil
	}
}

// Percent formats fractions as percentages for the given language.
func Percent(tag language.Tag) datatable.FormatFunc {
	p := message.NewPrinter(tag)
	return func(raw any) (any, error) {
		f, err := Float(raw)
		if err != nil {
			return nil, err
		}
		return p.Sprint(number.Percent(f)), nil
	}
}

// Date formats time values with a Go layout.
func Date(layout string) datatable.FormatFunc {
	return func(raw any) (any, error) {
		t, err := Time(raw)
		if err != nil {
			return nil, err
		}
		return t.Format(layout), nil
	}
}

// Bool renders booleans with fixed words.
func Bool(yes, no string) datatable.FormatFunc {
	return func(raw any) (any, error) {
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("value is not a bool: %T", raw)
		}
		if b {
			return yes, nil
		}
		return no, nil
	}
}

// Float reads a raw value as float64. Integers, floats, numeric strings and
// values with a String method returning a number are accepted.
func Float(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		return parseFloat(v)
	case fmt.Stringer:
		return parseFloat(v.String())
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumber, raw)
	}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return f, nil
}

// Time reads a raw value as a time. time.Time, *time.Time, strings in common
// ISO layouts and integer Unix seconds are accepted.
func Time(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("%w: nil", ErrNotDate)
		}
		return *v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrNotDate, v)
	case int:
		return time.Unix(int64(v), 0).UTC(), nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case float64:
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %T", ErrNotDate, raw)
	}
}
