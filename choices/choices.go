// Package choices exposes enumerations to forms and request validation:
// choice lists for rendering, validator tags for checking input, and a
// gorilla/schema converter for decoding it.
package choices

import (
	"fmt"
	"iter"

	"github.com/broady/enumprops"
)

// Choice is one entry of a choice list.
type Choice struct {
	// Name is the member name.
	Name string `json:"name"`

	// Value is the member's canonical value.
	Value any `json:"value"`

	// Label is the text shown for the choice.
	Label string `json:"label"`
}

// Choices returns the choice list for e's first class members, in order.
// Aliases listed as first class do not add choices of their own.
// Labels come from labelProp, or from the member name when labelProp is
// empty or the member's value for it is nil.
func Choices(e *enumprops.Enum, labelProp string) ([]Choice, error) {
	if labelProp != "" {
		if _, ok := e.Property(labelProp); !ok {
			return nil, enumprops.Errorf(enumprops.CodeNoProperty, "%s has no property %q", e, labelProp).
				WithDetail("property", labelProp)
		}
	}

	var out []Choice
	for m := range firstClass(e) {
		name := m.Name()
		c := Choice{Name: name, Value: m.Value(), Label: name}
		if labelProp != "" {
			if v := m.MustProp(labelProp); v != nil {
				c.Label = fmt.Sprint(v)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// Values returns the canonical values of e's first class members.
func Values(e *enumprops.Enum) []any {
	var out []any
	for m := range firstClass(e) {
		out = append(out, m.Value())
	}
	return out
}

// Labels returns the labels Choices would produce.
func Labels(e *enumprops.Enum, labelProp string) ([]string, error) {
	cs, err := Choices(e, labelProp)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Label
	}
	return out, nil
}

// Names returns the names of e's first class members.
func Names(e *enumprops.Enum) []string {
	var out []string
	for m := range firstClass(e) {
		out = append(out, m.Name())
	}
	return out
}

// firstClass iterates over the members named by e.FirstClassMembers,
// visiting a member once even when aliases of it are listed.
func firstClass(e *enumprops.Enum) iter.Seq[*enumprops.Member] {
	return func(yield func(*enumprops.Member) bool) {
		seen := make(map[*enumprops.Member]bool)
		for _, name := range e.FirstClassMembers() {
			m := e.MustGet(name)
			if seen[m] {
				continue
			}
			seen[m] = true
			if !yield(m) {
				return
			}
		}
	}
}
