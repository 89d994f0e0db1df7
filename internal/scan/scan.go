// Package scan discovers enumerations declared in Go source with
// enumprops directives and turns them into declarations:
//
//	//enumprops:enum
//	//enumprops:prop label
//	//enumprops:prop hex symmetric casefold
//	type Color int
//
//	const (
//		//enumprops:values ["Red", "ff0000"]
//		Red Color = iota + 1
//		Green Color = iota + 1 //enumprops:values ["Green", "00ff00"]
//	)
//
// The members of an enumeration are the package constants of its type, in
// source order.
package scan

import (
	"context"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
	"gopkg.in/yaml.v3"

	"github.com/broady/enumprops"
	"github.com/broady/enumprops/decl"
	"github.com/broady/enumprops/internal/directive"
)

// Enum is an enumeration found in source.
type Enum struct {
	// Decl is the declaration built from the source.
	Decl *decl.File

	// TypeName is the Go type the enumeration was declared on.
	TypeName string

	// Pos is the location of the enum directive.
	Pos token.Position
}

// Result contains the enumerations found in a package.
type Result struct {
	Enums []Enum

	// PackagePath is the import path of the scanned package.
	PackagePath string

	// Dir is the directory containing the package.
	Dir string
}

// Package scans a Go package for annotated enumerations.
//
// The pattern follows go command semantics and must match exactly one
// package. If dir is empty, the current directory is used.
func Package(ctx context.Context, pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
		Dir: dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}

	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		PackagePath: pkg.PkgPath,
	}
	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	s := &scanner{fset: pkg.Fset, info: pkg.TypesInfo}
	for _, f := range pkg.Syntax {
		if err := s.types(f); err != nil {
			return nil, err
		}
	}
	for _, f := range pkg.Syntax {
		if err := s.consts(f); err != nil {
			return nil, err
		}
	}

	for _, e := range s.enums {
		result.Enums = append(result.Enums, Enum{
			Decl:     e.file,
			TypeName: e.obj.Name(),
			Pos:      e.pos,
		})
	}
	return result, nil
}

type scanner struct {
	fset  *token.FileSet
	info  *types.Info
	enums []*enumType
}

type enumType struct {
	obj  *types.TypeName
	file *decl.File
	pos  token.Position
}

// types records every type declaration carrying an enum directive.
func (s *scanner) types(f *ast.File) error {
	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && !gd.Lparen.IsValid() {
				doc = gd.Doc
			}
			ds, err := directive.Parse(s.fset, doc)
			if err != nil {
				return err
			}
			e, err := s.enumType(ts, ds)
			if err != nil {
				return err
			}
			if e != nil {
				s.enums = append(s.enums, e)
			}
		}
	}
	return nil
}

func (s *scanner) enumType(ts *ast.TypeSpec, ds []directive.Directive) (*enumType, error) {
	var enum *directive.Directive
	var props []enumprops.Prop
	for i, d := range ds {
		switch d.Kind {
		case directive.KindEnum:
			enum = &ds[i]
		case directive.KindProp:
			p := enumprops.P(d.Arg(0))
			if d.Has("symmetric") || d.Has("casefold") || d.Has("matchnone") {
				p.Symmetric = true
				p.CaseFold = d.Has("casefold")
				p.MatchNone = d.Has("matchnone")
			}
			props = append(props, p)
		case directive.KindValues:
			return nil, fmt.Errorf("%s: %s%s belongs on a constant", d.Pos, directive.Prefix, d.Kind)
		}
	}
	if enum == nil {
		if len(props) > 0 {
			return nil, fmt.Errorf("%s: %s%s requires %s%s on the type",
				ds[0].Pos, directive.Prefix, directive.KindProp, directive.Prefix, directive.KindEnum)
		}
		return nil, nil
	}

	obj, ok := s.info.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s: no type information for %s", enum.Pos, ts.Name.Name)
	}
	basic, ok := obj.Type().Underlying().(*types.Basic)
	if !ok {
		return nil, fmt.Errorf("%s: %s must have a basic underlying type", enum.Pos, ts.Name.Name)
	}

	kind, err := enumprops.ParseKind(enum.Arg(0))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", enum.Pos, err)
	}
	if enum.Arg(0) == "" {
		kind = inferKind(basic)
	}

	return &enumType{
		obj: obj,
		file: &decl.File{
			Name:       ts.Name.Name,
			Kind:       kind,
			Properties: props,
		},
		pos: enum.Pos,
	}, nil
}

func inferKind(basic *types.Basic) enumprops.Kind {
	switch {
	case basic.Info()&types.IsInteger != 0:
		return enumprops.KindInt
	case basic.Info()&types.IsString != 0:
		return enumprops.KindString
	default:
		return enumprops.KindEnum
	}
}

// consts adds the constants of each enumeration type as members.
func (s *scanner) consts(f *ast.File) error {
	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		for _, spec := range gd.Specs {
			vs := spec.(*ast.ValueSpec)
			doc := vs.Doc
			if doc == nil && !gd.Lparen.IsValid() {
				doc = gd.Doc
			}
			for _, ident := range vs.Names {
				c, ok := s.info.Defs[ident].(*types.Const)
				if !ok {
					continue
				}
				e := s.lookup(c.Type())
				if e == nil {
					continue
				}
				m, err := s.member(c, doc, vs.Comment)
				if err != nil {
					return err
				}
				e.file.Members = append(e.file.Members, m)
			}
		}
	}
	return nil
}

func (s *scanner) lookup(t types.Type) *enumType {
	for _, e := range s.enums {
		if types.Identical(e.obj.Type(), t) {
			return e
		}
	}
	return nil
}

func (s *scanner) member(c *types.Const, groups ...*ast.CommentGroup) (decl.Member, error) {
	m := decl.Member{Name: c.Name()}
	if err := m.Value.Encode(constantValue(c.Val())); err != nil {
		return m, fmt.Errorf("%s: %w", s.fset.Position(c.Pos()), err)
	}

	ds, err := directive.Parse(s.fset, groups...)
	if err != nil {
		return m, err
	}
	for _, d := range ds {
		if d.Kind != directive.KindValues {
			return m, fmt.Errorf("%s: %s%s belongs on a type", d.Pos, directive.Prefix, d.Kind)
		}
		if m.Props != nil {
			return m, fmt.Errorf("%s: %s has more than one %s%s", d.Pos, c.Name(), directive.Prefix, d.Kind)
		}
		var list yaml.Node
		if err := yaml.Unmarshal([]byte(d.Text), &list); err != nil {
			return m, fmt.Errorf("%s: %w", d.Pos, err)
		}
		seq := &list
		if seq.Kind == yaml.DocumentNode && len(seq.Content) > 0 {
			seq = seq.Content[0]
		}
		if seq.Kind != yaml.SequenceNode {
			return m, fmt.Errorf("%s: %s%s expects a list", d.Pos, directive.Prefix, d.Kind)
		}
		m.Props = make([]yaml.Node, len(seq.Content))
		for i, n := range seq.Content {
			m.Props[i] = *n
		}
	}
	return m, nil
}

// constantValue converts a constant.Value to string, int64, float64 or bool.
func constantValue(v constant.Value) any {
	switch v.Kind() {
	case constant.String:
		return constant.StringVal(v)
	case constant.Int:
		if i64, ok := constant.Int64Val(v); ok {
			return i64
		}
		u64, _ := constant.Uint64Val(v)
		return u64
	case constant.Float:
		f64, _ := constant.Float64Val(v)
		return f64
	case constant.Bool:
		return constant.BoolVal(v)
	default:
		return v.String()
	}
}
