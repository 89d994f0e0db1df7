// Package directive parses enumprops directives from Go comments.
//
// Directives are line comments in the form:
//
//	//enumprops:enum [enum|int|string|flag]
//	//enumprops:prop name [symmetric] [casefold] [matchnone]
//	//enumprops:values <YAML flow sequence>
//
// The enum and prop directives annotate a type declaration: enum marks the
// type as an enumeration whose members are the package constants of that
// type, and each prop declares a property in order. The values directive
// annotates a constant and lists its property values.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"slices"
	"strings"
)

// Prefix starts every directive.
const Prefix = "//enumprops:"

// Kind represents the type of directive.
type Kind string

const (
	KindEnum   Kind = "enum"
	KindProp   Kind = "prop"
	KindValues Kind = "values"
)

// Directive represents a parsed enumprops directive.
type Directive struct {
	Kind Kind           // enum, prop or values
	Args []string       // whitespace separated arguments
	Text string         // everything after the directive name, trimmed
	Pos  token.Position // source location
}

// Parse extracts the directives from the comment groups, in order.
// Nil groups are skipped.
func Parse(fset *token.FileSet, groups ...*ast.CommentGroup) ([]Directive, error) {
	var directives []Directive
	for _, cg := range groups {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}

			text := strings.TrimPrefix(c.Text, Prefix)
			name, rest, _ := strings.Cut(text, " ")
			name = strings.TrimSpace(name)
			rest = strings.TrimSpace(rest)
			pos := fset.Position(c.Pos())

			d := Directive{
				Kind: Kind(name),
				Text: rest,
				Pos:  pos,
			}
			if rest != "" {
				d.Args = strings.Fields(rest)
			}
			switch d.Kind {
			case KindEnum:
				if len(d.Args) > 1 {
					return nil, fmt.Errorf("%s: %s%s takes at most one argument", pos, Prefix, name)
				}
			case KindProp:
				if len(d.Args) == 0 {
					return nil, fmt.Errorf("%s: %s%s requires a property name", pos, Prefix, name)
				}
				for _, opt := range d.Args[1:] {
					switch opt {
					case "symmetric", "casefold", "matchnone":
					default:
						return nil, fmt.Errorf("%s: unknown %s%s option %q", pos, Prefix, name, opt)
					}
				}
			case KindValues:
				if d.Text == "" {
					return nil, fmt.Errorf("%s: %s%s requires a value list", pos, Prefix, name)
				}
			default:
				return nil, fmt.Errorf("%s: unknown directive %s%s", pos, Prefix, name)
			}
			directives = append(directives, d)
		}
	}
	return directives, nil
}

// Has reports whether an option is among the directive's arguments after
// the first.
func (d Directive) Has(opt string) bool {
	return len(d.Args) > 1 && slices.Contains(d.Args[1:], opt)
}

// Arg returns the i'th argument, or the empty string.
func (d Directive) Arg(i int) string {
	if i < len(d.Args) {
		return d.Args[i]
	}
	return ""
}
