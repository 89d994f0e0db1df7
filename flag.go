package enumprops

import (
	"iter"
	"reflect"
	"strings"
)

// Flag returns the member for a bit pattern: the declared member with that
// value if there is one, otherwise the composite of the atomic flags. Bits
// not covered by any declared member are rejected.
func (e *Enum) Flag(bits uint64) (*Member, error) {
	if e.kind != KindFlag {
		return nil, Errorf(CodeInvalidDeclaration, "%s is not a flag enumeration", e.name)
	}
	m, ok := e.flag(bits)
	if !ok {
		return nil, notFound(e, bits)
	}
	return m, nil
}

func (e *Enum) flag(bits uint64) (*Member, bool) {
	if bits&^e.allBits != 0 {
		return nil, false
	}
	vt := e.valueType
	if vt == nil {
		vt = reflect.TypeFor[int]()
	}
	value, ok := coerce(bits, vt)
	if !ok {
		return nil, false
	}
	if m, ok := e.byValue[value]; ok {
		return m, true
	}
	if m, ok := e.composites.Load(bits); ok {
		return m.(*Member), true
	}

	c := &Member{
		enum:  e,
		value: value,
		index: -1,
		bits:  bits,
	}
	names := make([]string, 0, 4)
	for a := range c.All() {
		names = append(names, a.name)
	}
	c.name = strings.Join(names, "|")

	// LoadOrStore keeps the first composite stored, so concurrent callers
	// share one singleton.
	m, _ := e.composites.LoadOrStore(bits, c)
	return m.(*Member), true
}

// Bits returns the bit pattern of a flag member.
func (m *Member) Bits() uint64 { return m.bits }

// Or returns the flag member with the bits of m and all others set.
// It panics if any operand belongs to another enumeration.
func (m *Member) Or(others ...*Member) *Member {
	bits := m.bits
	for _, o := range others {
		m.sameFlag(o)
		bits |= o.bits
	}
	return m.mustFlag(bits)
}

// And returns the flag member with the bits common to m and o.
func (m *Member) And(o *Member) *Member {
	m.sameFlag(o)
	return m.mustFlag(m.bits & o.bits)
}

// Xor returns the flag member with the bits set in exactly one of m and o.
func (m *Member) Xor(o *Member) *Member {
	m.sameFlag(o)
	return m.mustFlag(m.bits ^ o.bits)
}

// Not returns the flag member with every declared bit not set in m.
func (m *Member) Not() *Member {
	m.sameFlag(m)
	return m.mustFlag(^m.bits & m.enum.allBits)
}

// Has reports whether every bit of o is set in m.
func (m *Member) Has(o *Member) bool {
	m.sameFlag(o)
	return m.bits&o.bits == o.bits
}

func (m *Member) sameFlag(o *Member) {
	if m.enum.kind != KindFlag {
		panic("enumprops: " + m.enum.name + " is not a flag enumeration")
	}
	if o == nil || o.enum != m.enum {
		panic("enumprops: cannot combine " + m.String() + " with a member of another enumeration")
	}
}

func (m *Member) mustFlag(bits uint64) *Member {
	f, ok := m.enum.flag(bits)
	if !ok {
		// Bits derived from declared members are always valid.
		panic("enumprops: invalid flag bits")
	}
	return f
}

// atomic reports whether m is a single-bit flag.
func (m *Member) atomic() bool {
	return m.bits != 0 && m.bits&(m.bits-1) == 0
}

// All iterates over the atomic (single-bit) declared flags set in m, in
// declaration order. For non-flag enumerations it yields nothing.
func (m *Member) All() iter.Seq[*Member] {
	return func(yield func(*Member) bool) {
		if m.enum.kind != KindFlag {
			return
		}
		for _, f := range m.enum.members {
			if f.atomic() && m.bits&f.bits == f.bits {
				if !yield(f) {
					return
				}
			}
		}
	}
}

// Flagged returns the atomic flags set in m, in declaration order. The
// result is computed once and shared; callers must not modify it.
func (m *Member) Flagged() []*Member {
	m.flaggedOnce.Do(func() {
		flagged := make([]*Member, 0)
		for f := range m.All() {
			flagged = append(flagged, f)
		}
		m.flagged = flagged
	})
	return m.flagged
}

// Len returns the number of atomic flags set in m.
func (m *Member) Len() int {
	if m.bits == 0 {
		return 0
	}
	return len(m.Flagged())
}
