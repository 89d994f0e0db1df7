package enumprops

import (
	"iter"
	"reflect"
)

// lookup is the resolution algorithm behind Resolve. Stages are tried in
// order and the first match wins:
//
//  0. a member of e, or a canonical value
//  1. for flags, a collection of tokens, each resolved and OR-ed together
//  2. the exact symmetric table
//  3. the case-folded symmetric table, for strings
//  4. the coercion chain: v converted to each recorded type in turn and
//     tried as a canonical value, then exactly, then case-folded
//
// Failures along the way are not reported individually; a miss produces one
// not-found error.
func (e *Enum) lookup(v any) (*Member, error) {
	if m, ok := v.(*Member); ok && m != nil && m.enum == e {
		return m, nil
	}
	if m, ok := e.canonical(v); ok {
		return m, nil
	}
	if m, ok := e.missing(v); ok {
		return m, nil
	}
	return nil, notFound(e, v)
}

func (e *Enum) missing(v any) (*Member, bool) {
	if e.kind == KindFlag {
		if tokens, ok := flagTokens(v); ok {
			return e.combine(tokens)
		}
	}

	if hashable(v) {
		if m, ok := e.exact[v]; ok {
			return m, true
		}
	}

	if s, ok := asString(v); ok {
		if m, ok := e.folded[Fold(s)]; ok {
			return m, true
		}
	}

	if v == nil {
		return nil, false
	}
	for _, t := range e.coerceTypes {
		cv, ok := coerce(v, t)
		if !ok {
			continue
		}
		if m, ok := e.canonical(cv); ok {
			return m, true
		}
		if hashable(cv) {
			if m, ok := e.exact[cv]; ok {
				return m, true
			}
		}
		if s, ok := asString(cv); ok {
			if m, ok := e.folded[Fold(s)]; ok {
				return m, true
			}
		}
	}
	return nil, false
}

// canonical returns the member with canonical value v. For flags, any
// integer of the value type made up of declared bits is canonical: it
// yields the declared member with that value or the composite.
func (e *Enum) canonical(v any) (*Member, bool) {
	if m, ok := e.byCanonicalValue(v); ok {
		return m, true
	}
	if e.kind == KindFlag && v != nil && reflect.TypeOf(v) == e.valueType {
		if bits, ok := toUint64(reflect.ValueOf(v)); ok {
			return e.flag(bits)
		}
	}
	return nil, false
}

func (e *Enum) byCanonicalValue(v any) (*Member, bool) {
	if !hashable(v) {
		return nil, false
	}
	m, ok := e.byValue[v]
	return m, ok
}

// flagTokens reports whether v is a collection of flag tokens and returns
// them. Slices, sets (maps, by key) and iterators qualify; arrays do not,
// since they are hashable values in their own right.
func flagTokens(v any) ([]any, bool) {
	switch x := v.(type) {
	case nil, []byte:
		return nil, false
	case iter.Seq[any]:
		return collect(x), true
	case func(func(any) bool):
		return collect(iter.Seq[any](x)), true
	case iter.Seq[*Member]:
		return collect(x), true
	case func(func(*Member) bool):
		return collect(iter.Seq[*Member](x)), true
	case iter.Seq[string]:
		return collect(x), true
	case func(func(string) bool):
		return collect(iter.Seq[string](x)), true
	case iter.Seq[int]:
		return collect(x), true
	case func(func(int) bool):
		return collect(iter.Seq[int](x)), true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Map:
		return expandKeys(v), true
	}
	return nil, false
}

func collect[T any](seq iter.Seq[T]) []any {
	var out []any
	for t := range seq {
		out = append(out, t)
	}
	return out
}

// combine resolves each token and ORs the results. No tokens yield the
// empty flag.
func (e *Enum) combine(tokens []any) (*Member, bool) {
	var bits uint64
	for _, t := range tokens {
		m, err := e.lookup(t)
		if err != nil {
			return nil, false
		}
		bits |= m.bits
	}
	return e.flag(bits)
}
