// Package load builds the enumerations declared in a file for the CLI
// commands.
package load

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/broady/enumprops"
	"github.com/broady/enumprops/decl"
)

// Set is the enumerations of one declaration file, registered with a
// private registry.
type Set struct {
	Enums    []*enumprops.Enum
	Registry *enumprops.Registry
}

// File builds every declaration in the YAML file at path.
func File(path string, logger *slog.Logger) (*Set, error) {
	files, err := decl.Load(path)
	if err != nil {
		return nil, err
	}

	s := &Set{Registry: enumprops.NewRegistry()}
	for _, f := range files {
		b, err := f.Builder()
		if err != nil {
			return nil, err
		}
		e, err := b.WithLogger(logger).WithRegistry(s.Registry).Build()
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", f.Name, err)
		}
		s.Enums = append(s.Enums, e)
	}
	return s, nil
}

// Select returns the enumeration called name. An empty name selects the
// only enumeration of a single-declaration file.
func (s *Set) Select(name string) (*enumprops.Enum, error) {
	if name == "" {
		if len(s.Enums) == 1 {
			return s.Enums[0], nil
		}
		return nil, fmt.Errorf("multiple enumerations found (%s); specify one with --enum", s.names())
	}
	e, ok := s.Registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no enumeration named %q (have %s)", name, s.names())
	}
	return e, nil
}

func (s *Set) names() string {
	names := make([]string, len(s.Enums))
	for i, e := range s.Enums {
		names[i] = e.Name()
	}
	return strings.Join(names, ", ")
}
