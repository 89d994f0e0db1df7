// Package decl reads and writes enumeration declarations as YAML documents,
// so enumerations can be defined outside Go code and inspected by tools.
//
// A declaration looks like:
//
//	name: Color
//	properties:
//	  - name: rgb
//	    symmetric: true
//	  - name: hex
//	    symmetric: true
//	    casefold: true
//	members:
//	  - name: RED
//	    value: 1
//	    props: [!tuple [1, 0, 0], ff0000]
//	  - name: CRIMSON
//	    alias: RED
//
// Sequences in a value position are tuples. In a property position they are
// lists, whose elements are each a lookup key, unless tagged !tuple.
// Several declarations may share a file as separate YAML documents.
package decl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/broady/enumprops"
)

// TupleTag marks a YAML sequence as a single tuple value.
const TupleTag = "!tuple"

// File is one enumeration declaration.
type File struct {
	Name              string           `yaml:"name"`
	Kind              enumprops.Kind   `yaml:"kind,omitempty"`
	Properties        []enumprops.Prop `yaml:"properties,omitempty"`
	SymmetricBuiltins []enumprops.Prop `yaml:"symmetricBuiltins,omitempty"`
	FirstClass        []string         `yaml:"firstClass,omitempty"`
	Members           []Member         `yaml:"members"`
}

// Member declares a member or an alias.
type Member struct {
	Name string `yaml:"name"`

	// Value is the canonical value. Ignored when Auto or Alias is set.
	Value yaml.Node `yaml:"value,omitempty"`

	// Auto asks for a generated value.
	Auto bool `yaml:"auto,omitempty"`

	// Alias names an earlier member this name is an alias of.
	Alias string `yaml:"alias,omitempty"`

	// Props holds the property values, aligned with File.Properties.
	Props []yaml.Node `yaml:"props,omitempty"`
}

// Load reads every declaration in the YAML file at path.
func Load(path string) ([]*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file: %w", err)
	}
	files, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return files, nil
}

// Parse decodes every YAML document in data and validates it.
func Parse(data []byte) ([]*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var files []*File
	for {
		f := &File{}
		err := dec.Decode(f)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse declaration: %w", err)
		}
		if err := f.Validate(); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, enumprops.NewError(enumprops.CodeInvalidDeclaration, "no declarations found")
	}
	return files, nil
}

// Validate checks the structure of the declaration. Problems the builder
// detects, such as arity, are left to Build.
func (f *File) Validate() error {
	if f.Name == "" {
		return enumprops.NewError(enumprops.CodeInvalidDeclaration, "name is required")
	}
	var errs []error
	seen := make(map[string]bool, len(f.Members))
	for i, m := range f.Members {
		switch {
		case m.Name == "":
			errs = append(errs, enumprops.Errorf(enumprops.CodeInvalidDeclaration,
				"%s: members[%d].name is required", f.Name, i))
		case m.Alias != "" && !seen[m.Alias]:
			errs = append(errs, enumprops.Errorf(enumprops.CodeInvalidDeclaration,
				"%s.%s: alias target %s must be declared earlier", f.Name, m.Name, m.Alias))
		case m.Alias != "" && (m.Auto || m.Value.Kind != 0 || len(m.Props) > 0):
			errs = append(errs, enumprops.Errorf(enumprops.CodeInvalidDeclaration,
				"%s.%s: an alias cannot have a value or properties", f.Name, m.Name))
		case m.Auto && m.Value.Kind != 0:
			errs = append(errs, enumprops.Errorf(enumprops.CodeInvalidDeclaration,
				"%s.%s: auto and value are mutually exclusive", f.Name, m.Name))
		}
		seen[m.Name] = true
	}
	return errors.Join(errs...)
}

// Builder returns a builder holding the declaration, for further
// configuration before Build.
func (f *File) Builder() (*enumprops.Builder, error) {
	b := enumprops.New(f.Name, f.Properties...).WithKind(f.Kind)
	if len(f.SymmetricBuiltins) > 0 {
		items := make([]any, len(f.SymmetricBuiltins))
		for i, p := range f.SymmetricBuiltins {
			items[i] = p
		}
		b.SymmetricBuiltins(items...)
	}

	values := make(map[string][]any, len(f.Members))
	for _, m := range f.Members {
		if m.Alias != "" {
			b.Member(m.Name, values[m.Alias]...)
			continue
		}

		var v any = enumprops.Auto
		if !m.Auto {
			var err error
			if v, err = decodeValue(&m.Value); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", f.Name, m.Name, err)
			}
		}
		vs := []any{v}
		for i := range m.Props {
			p, err := decodeProp(&m.Props[i])
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", f.Name, m.Name, err)
			}
			vs = append(vs, p)
		}
		values[m.Name] = vs
		b.Member(m.Name, vs...)
	}

	if len(f.FirstClass) > 0 {
		b.FirstClassMembers(f.FirstClass...)
	}
	return b, nil
}

// Build builds the declared enumeration with the default builder settings.
func (f *File) Build() (*enumprops.Enum, error) {
	b, err := f.Builder()
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// FromEnum returns the declaration of a built enumeration.
func FromEnum(e *enumprops.Enum) (*File, error) {
	d := e.Describe()
	f := &File{
		Name:              d.Name,
		Kind:              d.Kind,
		Properties:        d.Properties,
		SymmetricBuiltins: d.SymmetricBuiltins,
		FirstClass:        d.FirstClass,
	}
	for _, name := range e.Names() {
		m := e.MustGet(name)
		if m.Name() != name {
			f.Members = append(f.Members, Member{Name: name, Alias: m.Name()})
			continue
		}
		dm := Member{Name: name}
		if err := encodeNode(&dm.Value, m.Value()); err != nil {
			return nil, fmt.Errorf("%s: %w", m, err)
		}
		for _, p := range e.Properties() {
			var n yaml.Node
			if err := encodeNode(&n, m.MustProp(p.Name)); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", m, p.Name, err)
			}
			dm.Props = append(dm.Props, n)
		}
		f.Members = append(f.Members, dm)
	}
	return f, nil
}

// Marshal encodes the declarations as a multi-document YAML stream.
func Marshal(files ...*File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, f := range files {
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("failed to marshal declaration %s: %w", f.Name, err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the declarations to path, creating its directory if needed.
func Save(path string, files ...*File) error {
	data, err := Marshal(files...)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create declaration directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write declaration file: %w", err)
	}
	return nil
}
