package enumprops

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
)

// Member is a single enumeration value. Members are singletons: for a given
// enumeration every lookup of the same member returns the same pointer, so
// members can be compared with ==.
type Member struct {
	enum  *Enum
	name  string
	value any
	index int   // declaration position, -1 for undeclared composites
	props []any // aligned with enum.props, nil for undeclared composites

	specialized map[string]MethodFunc

	bits        uint64
	flaggedOnce sync.Once
	flagged     []*Member
}

// Enum returns the enumeration the member belongs to.
func (m *Member) Enum() *Enum { return m.enum }

// Name returns the member's declared name. Undeclared flag composites are
// named after their atomic flags joined with "|"; the empty composite has
// no name.
func (m *Member) Name() string { return m.name }

// Value returns the member's canonical value.
func (m *Member) Value() any { return m.value }

// Index returns the member's declaration position, or -1 for an undeclared
// flag composite.
func (m *Member) Index() int { return m.index }

// Declared reports whether the member was declared, as opposed to being an
// ad hoc flag composite.
func (m *Member) Declared() bool { return m.index >= 0 }

// Prop returns the value of the named property. Undeclared flag composites
// have no properties.
func (m *Member) Prop(name string) (any, error) {
	i, ok := m.enum.propIndex[name]
	if !ok || m.props == nil {
		return nil, Errorf(CodeNoProperty, "%s has no property %q", m, name).
			WithDetail("property", name)
	}
	return m.props[i], nil
}

// MustProp is like Prop but panics if the property does not exist.
func (m *Member) MustProp(name string) any {
	v, err := m.Prop(name)
	if err != nil {
		panic(err)
	}
	return v
}

// HasProp reports whether the member has the named property.
func (m *Member) HasProp(name string) bool {
	_, ok := m.enum.propIndex[name]
	return ok && m.props != nil
}

// Props returns the member's property values keyed by property name.
func (m *Member) Props() map[string]any {
	if m.props == nil {
		return nil
	}
	out := make(map[string]any, len(m.props))
	for i, p := range m.enum.props {
		out[p.Name] = m.props[i]
	}
	return out
}

// attr returns a builtin attribute, property, or zero-argument method
// result by name.
func (m *Member) attr(name string) (any, bool) {
	switch name {
	case builtinName:
		return m.name, true
	case builtinValue:
		return m.value, true
	}
	if v, err := m.Prop(name); err == nil {
		return v, true
	}
	if m.HasMethod(name) {
		v, err := m.Call(name)
		if err == nil {
			return v, true
		}
	}
	return nil, false
}

// Equal reports whether v resolves to m.
func (m *Member) Equal(v any) bool {
	if o, ok := v.(*Member); ok {
		return o == m
	}
	o, err := m.enum.resolve(v)
	return err == nil && o == m
}

// String returns "Enum.NAME", or "Enum(value)" for an undeclared flag
// composite.
func (m *Member) String() string {
	if m.index < 0 {
		return m.enum.name + "(" + strconv.FormatUint(m.bits, 10) + ")"
	}
	return m.enum.name + "." + m.name
}

// GoString implements fmt.GoStringer.
func (m *Member) GoString() string {
	return fmt.Sprintf("<%s: %#v>", m, m.value)
}

// MarshalText encodes a reference to the member that Registry.Unmarshal
// turns back into the same member.
func (m *Member) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// MarshalJSON encodes the member's canonical value.
func (m *Member) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.value)
}
