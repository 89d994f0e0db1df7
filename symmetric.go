package enumprops

import (
	"reflect"
	"slices"
)

var memberType = reflect.TypeFor[*Member]()

// symmetricTables are the lookup tables consulted by Resolve.
type symmetricTables struct {
	exact  map[any]*Member
	folded map[string]*Member
}

// add records key for m unless a higher precedence entry already holds it.
// Callers insert in precedence order, so the first write wins.
func (t *symmetricTables) add(e *Enum, p Prop, key any, m *Member) error {
	if key == nil && !p.MatchNone {
		return nil
	}
	if !hashable(key) {
		return Errorf(CodeUnhashable,
			"%s.%s: %#v is not hashable; symmetric property values must be hashable or a list of hashable values",
			e.name, p.Name, key).
			WithDetail("property", p.Name).
			WithDetail("member", m.name)
	}
	if _, ok := t.exact[key]; !ok {
		t.exact[key] = m
	}
	if p.CaseFold {
		if s, ok := asString(key); ok {
			f := Fold(s)
			if _, ok := t.folded[f]; !ok {
				t.folded[f] = m
			}
		}
	}
	return nil
}

// buildSymmetric builds the lookup tables. Precedence, highest first:
//
//  1. declared symmetric properties, in declaration order, and within a
//     property the members in declaration order (aliases included, after
//     the member they alias)
//  2. symmetric builtins, in the order given
//  3. member and alias names, case-sensitive
//
// ds and owners are aligned: owners[i] is the member ds[i] declared or
// aliased.
func buildSymmetric(e *Enum, ds []decomposed, owners []*Member) (*symmetricTables, error) {
	t := &symmetricTables{
		exact:  make(map[any]*Member),
		folded: make(map[string]*Member),
	}

	for i, p := range e.props {
		if !p.Symmetric {
			continue
		}
		for j, d := range ds {
			for _, key := range expandKeys(d.props[i]) {
				if err := t.add(e, p, key, owners[j]); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, p := range e.builtins {
		for _, m := range e.members {
			v, _ := m.attr(p.Name)
			for _, key := range expandKeys(v) {
				if err := t.add(e, p, key, m); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, name := range e.names {
		if _, ok := t.exact[name]; !ok {
			t.exact[name] = e.byName[name]
		}
	}

	return t, nil
}

// buildCoerceTypes lists the types Resolve converts unmatched input to, in
// the order they are tried: first the types of the canonical values, then
// the types of symmetric property values in precedence order, then those of
// symmetric builtins. Types that
// cannot be map keys, and the member type itself, are left out.
func buildCoerceTypes(e *Enum, ds []decomposed) []reflect.Type {
	var out []reflect.Type
	add := func(v any) {
		if v == nil {
			return
		}
		t := reflect.TypeOf(v)
		if t == memberType || !t.Comparable() || slices.Contains(out, t) {
			return
		}
		out = append(out, t)
	}

	for _, m := range e.members {
		add(m.value)
	}
	for i, p := range e.props {
		if !p.Symmetric {
			continue
		}
		for _, d := range ds {
			for _, key := range expandKeys(d.props[i]) {
				add(key)
			}
		}
	}
	// Builtin keys count too: member names put string in every chain.
	for _, p := range e.builtins {
		for _, m := range e.members {
			v, _ := m.attr(p.Name)
			for _, key := range expandKeys(v) {
				add(key)
			}
		}
	}
	return out
}
