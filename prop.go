package enumprops

import (
	"reflect"
	"slices"
	"strings"
)

// Prop describes a named property slot declared on an enumeration.
// The position of a Prop in the declaration list is the position of its
// value in each member's value tuple, and it is also the precedence of the
// property for symmetric lookups: earlier declarations win.
type Prop struct {
	// Name is the property name.
	Name string `json:"name" yaml:"name"`

	// Symmetric marks the property as a lookup key for Resolve.
	Symmetric bool `json:"symmetric,omitempty" yaml:"symmetric,omitempty"`

	// CaseFold makes string values match case-insensitively.
	// Only meaningful when Symmetric is set.
	CaseFold bool `json:"casefold,omitempty" yaml:"casefold,omitempty"`

	// MatchNone makes a nil property value resolvable from nil.
	// Only meaningful when Symmetric is set.
	MatchNone bool `json:"matchnone,omitempty" yaml:"matchnone,omitempty"`
}

// PropOption configures a symmetric property.
type PropOption func(*Prop)

// CaseFold makes symmetric lookups on string values case-insensitive,
// using full Unicode case folding and NFKD normalization.
func CaseFold() PropOption {
	return func(p *Prop) { p.CaseFold = true }
}

// MatchNone makes nil property values participate in symmetric lookups.
// By default members with a nil value for a symmetric property are not
// reachable from nil, so that several members may leave it blank.
func MatchNone() PropOption {
	return func(p *Prop) { p.MatchNone = true }
}

// P declares a plain property.
func P(name string) Prop {
	return Prop{Name: name}
}

// S declares a symmetric property.
func S(name string, opts ...PropOption) Prop {
	p := Prop{Name: name, Symmetric: true}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Symmetric is annotation metadata that marks an annotated property as
// symmetric. It is the annotation-style counterpart of S.
type Symmetric struct {
	CaseFold  bool
	MatchNone bool
}

// reserved names cannot be used as property names.
var reserved = []string{
	"_properties_",
	"_symmetric_builtins_",
	"_ep_coerce_types_",
	"_ep_symmetric_map_",
	"_ep_isymmetric_map_",
}

// builtin member attributes that annotations route to symmetric builtins.
const (
	builtinName  = "name"
	builtinValue = "value"
)

func isReserved(name string) bool {
	return slices.Contains(reserved, name)
}

func isBuiltin(name string) bool {
	return name == builtinName || name == builtinValue
}

// annotation is a recorded annotation-style property declaration.
type annotation struct {
	name string
	sym  *Symmetric
}

func (a annotation) prop() Prop {
	if a.sym == nil {
		return P(a.name)
	}
	return Prop{
		Name:      a.name,
		Symmetric: true,
		CaseFold:  a.sym.CaseFold,
		MatchNone: a.sym.MatchNone,
	}
}

// tagKey is the struct tag read by Builder.AnnotateStruct.
const tagKey = "enum"

// annotationsFromStruct reads annotations from the fields of a struct type.
// Fields are tagged as:
//
//	Label string `enum:"label"`
//	Hex   string `enum:"hex,symmetric,casefold"`
//	Skip  int    `enum:"-"`
//
// Untagged exported fields become plain properties named after the field.
func annotationsFromStruct(t reflect.Type) ([]annotation, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, Errorf(CodeInvalidDeclaration, "annotations must come from a struct, got %s", t)
	}

	var out []annotation
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, ok := f.Tag.Lookup(tagKey)
		if tag == "-" {
			continue
		}
		if !ok || tag == "" {
			out = append(out, annotation{name: f.Name})
			continue
		}

		parts := strings.Split(tag, ",")
		a := annotation{name: parts[0]}
		if a.name == "" {
			a.name = f.Name
		}
		for _, opt := range parts[1:] {
			switch strings.TrimSpace(opt) {
			case "symmetric":
				if a.sym == nil {
					a.sym = &Symmetric{}
				}
			case "casefold":
				if a.sym == nil {
					a.sym = &Symmetric{}
				}
				a.sym.CaseFold = true
			case "matchnone":
				if a.sym == nil {
					a.sym = &Symmetric{}
				}
				a.sym.MatchNone = true
			default:
				return nil, Errorf(CodeInvalidDeclaration, "field %s: unknown %s tag option %q", f.Name, tagKey, opt)
			}
		}
		out = append(out, a)
	}
	return out, nil
}
