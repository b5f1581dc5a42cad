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

package datatable

import (
	"reflect"
	"strconv"
	"strings"
)

// Resolve returns the value found at selector inside record.
//
// The selector is a dotted path; bracketed indices are accepted and treated
// as path segments, so "items[0].name", `items["0"].name` and "items.0.name"
// are equivalent. Maps, structs (by field name or json tag), slices, arrays
// and pointers to them are walked. The second result is false when any
// segment is missing, an index is out of range, an intermediate value is
// nil, or the final value is nil. Resolve never panics.
func Resolve(record any, selector string) (any, bool) {
	path := NormalizePath(selector)
	if path == "" {
		return record, !IsAbsent(record)
	}

	cur := reflect.ValueOf(record)
	for _, segment := range strings.Split(path, ".") {
		next, ok := step(cur, segment)
		if !ok {
			return nil, false
		}
		cur = next
	}

	if !cur.IsValid() || !cur.CanInterface() {
		return nil, false
	}
	out := cur.Interface()
	if IsAbsent(out) {
		return nil, false
	}
	return out, true
}

// NormalizePath rewrites bracketed segments into dotted form and strips a
// leading dot: `a[0]["b"]` becomes "a.0.b".
func NormalizePath(selector string) string {
	if !strings.ContainsRune(selector, '[') {
		return strings.TrimPrefix(selector, ".")
	}

	var b strings.Builder
	b.Grow(len(selector))
	for i := 0; i < len(selector); i++ {
		c := selector[i]
		if c != '[' {
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(selector[i:], ']')
		if end < 0 {
			// Unterminated bracket, keep the rest as written
			b.WriteString(selector[i:])
			break
		}
		key := strings.TrimSpace(selector[i+1 : i+end])
		key = strings.Trim(key, `"'`)
		b.WriteByte('.')
		b.WriteString(key)
		i += end
	}
	return strings.TrimPrefix(b.String(), ".")
}

// step descends one path segment from cur.
func step(cur reflect.Value, key string) (reflect.Value, bool) {
	cur = indirect(cur)
	if !cur.IsValid() {
		return reflect.Value{}, false
	}

	switch cur.Kind() {
	case reflect.Map:
		k, ok := mapKey(cur.Type().Key(), key)
		if !ok {
			return reflect.Value{}, false
		}
		v := cur.MapIndex(k)
		if !v.IsValid() {
			return reflect.Value{}, false
		}
		return v, true

	case reflect.Struct:
		return structField(cur, key)

	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= cur.Len() {
			return reflect.Value{}, false
		}
		return cur.Index(idx), true

	default:
		return reflect.Value{}, false
	}
}

// indirect follows pointers and interfaces; nil yields an invalid value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// mapKey converts a path segment into a key of the map's key type.
func mapKey(t reflect.Type, key string) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(t), true
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(key), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(key, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	default:
		return reflect.Value{}, false
	}
}

// structField finds an exported field by Go name first, then by json tag.
func structField(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	if f, ok := t.FieldByName(key); ok && f.IsExported() {
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			// Nil embedded pointer along the way
			return reflect.Value{}, false
		}
		return fv, true
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag != "" && tag == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
