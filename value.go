package enumprops

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// AutoValue is the type of the Auto sentinel.
type AutoValue struct{}

// Auto may be given as a member's value to have one generated:
// the previous integer value plus one (starting at 1) for plain and
// integer enums, the next power of two for flags, and the lower-cased
// member name for string enums.
var Auto AutoValue

func (AutoValue) String() string { return "auto" }

var anyType = reflect.TypeFor[any]()

// Tuple builds a comparable tuple value from values. Members declared with
// more than one retained value store them as a Tuple, and a Tuple may also be
// used as a property value or as input to Resolve.
func Tuple(values ...any) any {
	t := reflect.ArrayOf(len(values), anyType)
	v := reflect.New(t).Elem()
	for i, x := range values {
		if x != nil {
			v.Index(i).Set(reflect.ValueOf(x))
		}
	}
	return v.Interface()
}

// isTupleType reports whether t is a type produced by Tuple.
func isTupleType(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Array && t.Elem() == anyType
}

// hashable reports whether v can be used as a map key.
func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}

// expandKeys returns the alternate keys a property value stands for.
// Slices and sets (maps) stand for one key per element; any other value is
// a single key.
func expandKeys(v any) []any {
	if v == nil {
		return []any{nil}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is a single opaque value.
			return []any{v}
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		// A map[K]bool is a set of the keys mapped to true.
		set := rv.Type().Elem().Kind() == reflect.Bool
		out := make([]any, 0, rv.Len())
		for it := rv.MapRange(); it.Next(); {
			if set && !it.Value().Bool() {
				continue
			}
			out = append(out, it.Key().Interface())
		}
		sortKeys(out)
		return out
	default:
		return []any{v}
	}
}

// sortKeys orders set elements deterministically so that precedence between
// keys of one set does not depend on map iteration order.
func sortKeys(keys []any) {
	slices.SortStableFunc(keys, func(a, b any) int {
		return strings.Compare(fmt.Sprintf("%T:%v", a, a), fmt.Sprintf("%T:%v", b, b))
	})
}

// asString returns v as a string if its kind is string.
func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// validIdentifier reports whether name can be used as a member name.
func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, ".()| \t\n")
}
