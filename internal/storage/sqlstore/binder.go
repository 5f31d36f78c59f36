package sqlstore

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// Params is an ad-hoc parameter set for bindNamed.
type Params map[string]any

// bindNamed rewrites @name parameters to positional placeholders and resolves
// each value from the sources, which are structs with db tags or Params maps.
// Later sources win when a name is defined more than once. A name may appear
// several times in the query; it is bound once per occurrence.
func bindNamed(query string, sources ...any) (string, []any, error) {
	values := make(map[string]any)
	for _, src := range sources {
		if err := collectParams(values, src); err != nil {
			return "", nil, err
		}
	}

	var (
		out    strings.Builder
		args   []any
		quoted bool
	)
	out.Grow(len(query))
	for i := 0; i < len(query); i++ {
		ch := query[i]
		if ch == '\'' {
			quoted = !quoted
			out.WriteByte(ch)
			continue
		}
		if ch != '@' || quoted {
			out.WriteByte(ch)
			continue
		}
		j := i + 1
		for j < len(query) && isIdentByte(query[j]) {
			j++
		}
		if j == i+1 {
			out.WriteByte(ch)
			continue
		}
		name := query[i+1 : j]
		value, ok := values[name]
		if !ok {
			return "", nil, fmt.Errorf("no value bound for parameter @%s", name)
		}
		out.WriteByte('?')
		args = append(args, value)
		i = j - 1
	}
	return out.String(), args, nil
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func collectParams(dst map[string]any, src any) error {
	if src == nil {
		return nil
	}
	if p, ok := src.(Params); ok {
		for k, v := range p {
			dst[k] = toDBValue(reflect.ValueOf(v))
		}
		return nil
	}

	v := reflect.ValueOf(src)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("unsupported parameter source %T", src)
	}
	for column, index := range fieldsOf(v.Type()) {
		dst[column] = toDBValue(v.FieldByIndex(index))
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// toDBValue converts a field value into what the driver should receive:
// nil pointers and zero times become NULL, string slices become comma-joined
// text (NULL when empty).
func toDBValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return toDBValue(v.Elem())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.String {
			if v.Len() == 0 {
				return nil
			}
			items := make([]string, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if s := strings.TrimSpace(v.Index(i).String()); s != "" {
					items = append(items, s)
				}
			}
			if len(items) == 0 {
				return nil
			}
			return strings.Join(items, ",")
		}
	case reflect.Struct:
		if v.Type() == timeType {
			t := v.Interface().(time.Time)
			if t.IsZero() {
				return nil
			}
			return t.UTC()
		}
	}
	return v.Interface()
}

var fieldCache sync.Map // reflect.Type -> map[string][]int

// fieldsOf maps db tag names to field indexes, skipping untagged and "-" fields.
func fieldsOf(t reflect.Type) map[string][]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string][]int)
	}
	fields := make(map[string][]int)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		fields[tag] = f.Index
	}
	fieldCache.Store(t, fields)
	return fields
}
