// Package enumprops builds enumerations whose members carry named
// properties in addition to their name and value, and which can optionally
// be resolved from any of those property values.
//
// An enumeration is declared with a Builder and is immutable once built:
//
//	color := enumprops.New("Color",
//		enumprops.S("rgb"),
//		enumprops.S("hex", enumprops.CaseFold()),
//	).
//		Member("RED", 1, [3]int{1, 0, 0}, "ff0000").
//		Member("GREEN", 2, [3]int{0, 1, 0}, "00ff00").
//		Member("BLUE", 3, [3]int{0, 0, 1}, "0000ff").
//		MustBuild()
//
//	red, _ := color.Resolve("FF0000")
//	red.MustProp("rgb") // [3]int{1, 0, 0}
//
// Resolve tries, in order: canonical values, exact symmetric property
// values, case-folded symmetric string values, and finally coercion of the
// input to each value type seen during construction.
package enumprops

import (
	"bytes"
	"encoding/json"
	"iter"
	"reflect"
	"slices"
	"sync"
)

// Kind selects the flavor of an enumeration.
type Kind int

const (
	// KindEnum places no constraint on member values.
	KindEnum Kind = iota

	// KindInt requires integer member values.
	KindInt

	// KindString requires string member values.
	KindString

	// KindFlag requires non-negative integer member values and enables
	// bitwise composition and flag decomposition.
	KindFlag
)

func (k Kind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// ParseKind parses the name of a kind as returned by Kind.String.
// The empty string is KindEnum.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "enum":
		return KindEnum, nil
	case "int":
		return KindInt, nil
	case "string":
		return KindString, nil
	case "flag":
		return KindFlag, nil
	}
	return KindEnum, Errorf(CodeInvalidDeclaration, "unknown enumeration kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Enum is a finished enumeration type. It is safe for concurrent use.
type Enum struct {
	name  string
	kind  Kind
	props []Prop
	// propIndex maps a property name to its position in props.
	propIndex map[string]int

	members    []*Member
	byName     map[string]*Member
	names      []string // every declared name, aliases included
	firstClass []string
	byValue    map[any]*Member
	nested     map[string]reflect.Type

	builtins    []Prop
	exact       map[any]*Member
	folded      map[string]*Member
	coerceTypes []reflect.Type

	methods map[string]MethodFunc

	// flag state
	valueType  reflect.Type
	allBits    uint64
	composites sync.Map // uint64 -> *Member

	resolve ResolveFunc
}

// Name returns the enumeration's name.
func (e *Enum) Name() string { return e.name }

func (e *Enum) String() string { return e.name }

// Kind returns the enumeration's kind.
func (e *Enum) Kind() Kind { return e.kind }

// Properties returns the declared properties in declaration order.
func (e *Enum) Properties() []Prop { return slices.Clone(e.props) }

// Property returns the declared property with the given name.
func (e *Enum) Property(name string) (Prop, bool) {
	i, ok := e.propIndex[name]
	if !ok {
		return Prop{}, false
	}
	return e.props[i], true
}

// SymmetricBuiltins returns the builtin attributes that take part in
// symmetric lookups, in precedence order.
func (e *Enum) SymmetricBuiltins() []Prop { return slices.Clone(e.builtins) }

// Members returns the canonical members in declaration order.
// Aliases and undeclared flag composites are not included.
func (e *Enum) Members() []*Member { return slices.Clone(e.members) }

// All iterates over the canonical members in declaration order.
func (e *Enum) All() iter.Seq[*Member] {
	return func(yield func(*Member) bool) {
		for _, m := range e.members {
			if !yield(m) {
				return
			}
		}
	}
}

// Len returns the number of canonical members.
func (e *Enum) Len() int { return len(e.members) }

// Get returns the member declared under name. Aliases resolve to the
// member they alias.
func (e *Enum) Get(name string) (*Member, bool) {
	m, ok := e.byName[name]
	return m, ok
}

// MustGet is like Get but panics if name is not declared.
func (e *Enum) MustGet(name string) *Member {
	m, ok := e.byName[name]
	if !ok {
		panic("enumprops: " + e.name + " has no member " + name)
	}
	return m
}

// MemberMap returns every declared name, aliases included, mapped to its
// member.
func (e *Enum) MemberMap() map[string]*Member {
	out := make(map[string]*Member, len(e.byName))
	for k, v := range e.byName {
		out[k] = v
	}
	return out
}

// Names returns every declared name, aliases included, in declaration order.
func (e *Enum) Names() []string { return slices.Clone(e.names) }

// FirstClassMembers returns the names of members and aliases declared
// directly, as opposed to keys that are only reachable through symmetric
// lookup. The list can be overridden with Builder.FirstClassMembers.
func (e *Enum) FirstClassMembers() []string { return slices.Clone(e.firstClass) }

// ByValue returns the member whose canonical value is v.
func (e *Enum) ByValue(v any) (*Member, bool) {
	return e.canonical(v)
}

// Nested returns a nested type declared on the enumeration.
func (e *Enum) Nested(name string) (reflect.Type, bool) {
	t, ok := e.nested[name]
	return t, ok
}

// CoerceTypes returns the ordered list of types Resolve tries to convert
// unmatched input to.
func (e *Enum) CoerceTypes() []reflect.Type { return slices.Clone(e.coerceTypes) }

// Contains reports whether v is a member of e or the canonical value of
// one of its members.
func (e *Enum) Contains(v any) bool {
	if m, ok := v.(*Member); ok {
		return m != nil && m.enum == e
	}
	_, ok := e.canonical(v)
	return ok
}

// Resolve returns the member v stands for. See the package documentation
// for the order in which candidates are tried. Every failure is reported as
// a single error matching ErrValueNotFound.
func (e *Enum) Resolve(v any) (*Member, error) {
	return e.resolve(v)
}

// MustResolve is like Resolve but panics on failure.
func (e *Enum) MustResolve(v any) *Member {
	m, err := e.resolve(v)
	if err != nil {
		panic(err)
	}
	return m
}

// DecodeJSON resolves a JSON encoded value, as produced by
// Member.MarshalJSON, to a member.
func (e *Enum) DecodeJSON(data []byte) (*Member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Errorf(CodeInvalidDeclaration, "decode %s: %v", e.name, err)
	}
	return e.resolve(fromJSON(v))
}

// fromJSON replaces json.Number values with int64 or float64.
func fromJSON(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		for i := range x {
			x[i] = fromJSON(x[i])
		}
		return x
	default:
		return v
	}
}
