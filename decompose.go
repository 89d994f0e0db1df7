package enumprops

import (
	"errors"
	"math/bits"
	"reflect"
	"slices"
	"strings"
)

// declaration is a raw member declaration: a name and its full value tuple.
type declaration struct {
	name   string
	values []any
}

// decomposed is a declaration split into its retained value and its
// property values, aligned with the declared properties.
type decomposed struct {
	name  string
	value any
	props []any
}

// decompose splits a value tuple given nprops declared properties. The
// trailing nprops values are property values; the leading values are the
// retained value, unwrapped when there is exactly one.
func decompose(d declaration, nprops int) (decomposed, error) {
	n := len(d.values) - nprops
	if n < 1 {
		return decomposed{}, Errorf(CodeArity, "%s must have %d property values", d.name, nprops).
			WithDetail("member", d.name).
			WithDetail("properties", nprops)
	}

	out := decomposed{name: d.name, props: slices.Clone(d.values[n:])}
	if n == 1 {
		out.value = d.values[0]
		return out, nil
	}
	for _, v := range d.values[:n] {
		if _, ok := v.(AutoValue); ok {
			return decomposed{}, Errorf(CodeInvalidDeclaration, "%s: auto cannot be part of a tuple value", d.name).
				WithDetail("member", d.name)
		}
	}
	out.value = Tuple(d.values[:n]...)
	return out, nil
}

// decomposeAll decomposes every declaration and reports every arity
// failure, not just the first.
func decomposeAll(decls []declaration, nprops int) ([]decomposed, error) {
	out := make([]decomposed, 0, len(decls))
	var errs []error
	for _, d := range decls {
		dc, err := decompose(d, nprops)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, dc)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// finalizeValues replaces Auto sentinels with generated values, checks
// values against the enumeration kind and normalizes integer and string
// values to a single type. It returns that type, or nil for KindEnum.
func finalizeValues(enumName string, kind Kind, ds []decomposed) (reflect.Type, error) {
	var errs []error
	var last []any
	for i := range ds {
		d := &ds[i]
		if _, ok := d.value.(AutoValue); ok {
			v, err := nextValue(kind, d.name, last)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			d.value = v
		}
		last = append(last, d.value)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var valueType reflect.Type
	for i := range ds {
		d := &ds[i]
		if !hashable(d.value) {
			errs = append(errs, Errorf(CodeUnhashable, "%s.%s: value %#v is not hashable", enumName, d.name, d.value).
				WithDetail("member", d.name))
			continue
		}
		if kind == KindEnum {
			continue
		}

		rv := reflect.ValueOf(d.value)
		if !rv.IsValid() || !kindAccepts(kind, rv.Kind()) {
			errs = append(errs, Errorf(CodeInvalidDeclaration, "%s.%s: %s enumerations cannot hold %#v", enumName, d.name, kind, d.value).
				WithDetail("member", d.name))
			continue
		}
		if kind == KindFlag {
			if n, ok := toInt(rv); ok && n < 0 {
				errs = append(errs, Errorf(CodeInvalidDeclaration, "%s.%s: flag values cannot be negative", enumName, d.name).
					WithDetail("member", d.name))
				continue
			}
		}
		if valueType == nil {
			valueType = rv.Type()
			continue
		}
		v, ok := coerce(d.value, valueType)
		if !ok {
			errs = append(errs, Errorf(CodeInvalidDeclaration, "%s.%s: %#v does not fit %s", enumName, d.name, d.value, valueType).
				WithDetail("member", d.name))
			continue
		}
		d.value = v
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return valueType, nil
}

func kindAccepts(kind Kind, k reflect.Kind) bool {
	switch kind {
	case KindInt, KindFlag:
		return isIntKind(k)
	case KindString:
		return k == reflect.String
	default:
		return true
	}
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// nextValue generates the value for an Auto member from the values
// declared before it. Property values never take part.
func nextValue(kind Kind, name string, last []any) (any, error) {
	switch kind {
	case KindString:
		return strings.ToLower(name), nil

	case KindFlag:
		var high uint64
		for _, v := range last {
			rv := reflect.ValueOf(v)
			if !rv.IsValid() || !isIntKind(rv.Kind()) {
				continue
			}
			if u, ok := toUint64(rv); ok && u > high {
				high = u
			}
		}
		n := bits.Len64(high)
		if n >= 63 {
			return nil, Errorf(CodeInvalidDeclaration, "%s: no flag bits left for auto", name).
				WithDetail("member", name)
		}
		return int(1) << n, nil

	default:
		for i := len(last) - 1; i >= 0; i-- {
			rv := reflect.ValueOf(last[i])
			if !rv.IsValid() || !isIntKind(rv.Kind()) {
				continue
			}
			i64, ok := toInt(rv)
			if !ok {
				break
			}
			next := reflect.New(rv.Type()).Elem()
			if isUintKind(rv.Kind()) {
				if next.OverflowUint(uint64(i64) + 1) {
					break
				}
				next.SetUint(uint64(i64) + 1)
			} else {
				if next.OverflowInt(i64 + 1) {
					break
				}
				next.SetInt(i64 + 1)
			}
			return next.Interface(), nil
		}
		if len(last) == 0 {
			return 1, nil
		}
		return nil, Errorf(CodeInvalidDeclaration, "%s: cannot generate a value after %#v", name, last[len(last)-1]).
			WithDetail("member", name)
	}
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// toUint64 returns the bit pattern of a non-negative integer value.
func toUint64(rv reflect.Value) (uint64, bool) {
	switch {
	case isUintKind(rv.Kind()):
		return rv.Uint(), true
	case isIntKind(rv.Kind()):
		i := rv.Int()
		if i < 0 {
			return 0, false
		}
		return uint64(i), true
	}
	return 0, false
}
