package enumprops

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// coerce attempts to convert v to type t. It reports false when there is
// no sensible conversion; it never panics.
func coerce(v any, t reflect.Type) (out any, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()

	if v == nil || t == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Type() == t {
		return v, true
	}

	switch t.Kind() {
	case reflect.String:
		s, ok := toString(rv)
		if !ok {
			return nil, false
		}
		return reflect.ValueOf(s).Convert(t).Interface(), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := toInt(rv)
		if !ok {
			return nil, false
		}
		out := reflect.New(t).Elem()
		if out.OverflowInt(i) {
			return nil, false
		}
		out.SetInt(i)
		return out.Interface(), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, ok := toInt(rv)
		if !ok || i < 0 {
			u, uok := toUint(rv)
			if !uok {
				return nil, false
			}
			return setUint(t, u)
		}
		return setUint(t, uint64(i))

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(rv)
		if !ok {
			return nil, false
		}
		out := reflect.New(t).Elem()
		if out.OverflowFloat(f) {
			return nil, false
		}
		out.SetFloat(f)
		return out.Interface(), true

	case reflect.Bool:
		b, ok := toBool(rv)
		if !ok {
			return nil, false
		}
		return reflect.ValueOf(b).Convert(t).Interface(), true

	case reflect.Array:
		return toArray(rv, t)
	}

	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t).Interface(), true
	}
	return nil, false
}

func setUint(t reflect.Type, u uint64) (any, bool) {
	out := reflect.New(t).Elem()
	if out.OverflowUint(u) {
		return nil, false
	}
	out.SetUint(u)
	return out.Interface(), true
}

func toString(rv reflect.Value) (string, bool) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float()), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}
	return "", false
}

// formatFloat renders integral floats with a trailing ".0" so that they
// stay distinguishable from integers.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

func toInt(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		// Fractional values are rejected, not truncated: 5.5 never coerces
		// to 5, so Resolve(5.5) on an int enumeration is not found.
		if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	case reflect.String:
		i, err := strconv.ParseInt(strings.TrimSpace(rv.String()), 10, 64)
		return i, err == nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toUint(rv reflect.Value) (uint64, bool) {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.String:
		u, err := strconv.ParseUint(strings.TrimSpace(rv.String()), 10, 64)
		return u, err == nil
	}
	return 0, false
}

func toFloat(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		return f, err == nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toBool(rv reflect.Value) (bool, bool) {
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.String:
		b, err := strconv.ParseBool(strings.TrimSpace(rv.String()))
		return b, err == nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0, true
	}
	return false, false
}

// toArray converts a slice or array of matching length to the array type
// t, coercing each element. This lets []int{1, 0, 0} resolve a member keyed
// by [3]int{1, 0, 0} or by Tuple(1, 0, 0).
func toArray(rv reflect.Value, t reflect.Type) (any, bool) {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		if rv.Type().ConvertibleTo(t) {
			return rv.Convert(t).Interface(), true
		}
		return nil, false
	}
	if rv.Len() != t.Len() {
		return nil, false
	}
	out := reflect.New(t).Elem()
	elem := t.Elem()
	for i := range rv.Len() {
		x := rv.Index(i)
		if x.Kind() == reflect.Interface {
			x = x.Elem()
		}
		if !x.IsValid() {
			if elem == anyType {
				continue
			}
			return nil, false
		}
		if elem == anyType {
			out.Index(i).Set(x)
			continue
		}
		c, ok := coerce(x.Interface(), elem)
		if !ok {
			return nil, false
		}
		out.Index(i).Set(reflect.ValueOf(c))
	}
	return out.Interface(), true
}
