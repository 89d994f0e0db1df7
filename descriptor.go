package enumprops

import "slices"

// Descriptor is a serializable description of a built enumeration.
type Descriptor struct {
	// Name is the enumeration name.
	Name string `json:"name" yaml:"name"`

	Kind Kind `json:"kind" yaml:"kind"`

	// Properties lists the declared properties in declaration order.
	Properties []Prop `json:"properties,omitempty" yaml:"properties,omitempty"`

	// SymmetricBuiltins lists the builtin attributes that take part in
	// resolution, in precedence order.
	SymmetricBuiltins []Prop `json:"symmetricBuiltins,omitempty" yaml:"symmetricBuiltins,omitempty"`

	// Members contains the declared members in declaration order.
	// Aliases are not listed here.
	Members []MemberDescriptor `json:"members" yaml:"members"`

	// Aliases contains every alias in declaration order.
	Aliases []AliasDescriptor `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// FirstClass lists the names reported by Enum.FirstClassMembers.
	FirstClass []string `json:"firstClass,omitempty" yaml:"firstClass,omitempty"`

	// CoerceTypes lists the Go types resolution converts input to, in order.
	CoerceTypes []string `json:"coerceTypes,omitempty" yaml:"coerceTypes,omitempty"`
}

// MemberDescriptor describes a single declared member.
type MemberDescriptor struct {
	Name string `json:"name" yaml:"name"`

	// Value is the canonical value.
	Value any `json:"value" yaml:"value"`

	// Props holds the property values, aligned with Descriptor.Properties.
	Props []any `json:"props,omitempty" yaml:"props,omitempty"`

	// Flags names the atomic flags of a flag member that is not itself
	// atomic.
	Flags []string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// AliasDescriptor describes a name declared with the value of an earlier
// member.
type AliasDescriptor struct {
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target" yaml:"target"`
}

// Describe returns a descriptor of e.
func (e *Enum) Describe() *Descriptor {
	d := &Descriptor{
		Name:              e.name,
		Kind:              e.kind,
		Properties:        e.Properties(),
		SymmetricBuiltins: e.SymmetricBuiltins(),
		Members:           make([]MemberDescriptor, 0, len(e.members)),
	}
	for _, m := range e.members {
		md := MemberDescriptor{
			Name:  m.name,
			Value: m.value,
			Props: append([]any(nil), m.props...),
		}
		if e.kind == KindFlag && !m.atomic() {
			for f := range m.All() {
				md.Flags = append(md.Flags, f.name)
			}
		}
		d.Members = append(d.Members, md)
	}
	for _, name := range e.names {
		m := e.byName[name]
		if m.name != name {
			d.Aliases = append(d.Aliases, AliasDescriptor{Name: name, Target: m.name})
		}
	}
	if !slices.Equal(e.firstClass, e.names) {
		d.FirstClass = e.FirstClassMembers()
	}
	for _, t := range e.coerceTypes {
		d.CoerceTypes = append(d.CoerceTypes, t.String())
	}
	return d
}
