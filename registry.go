package enumprops

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Registry maps enumeration names to enumerations so that the text form of
// a member ("Color.RED", "Perm(3)") can be turned back into the member.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	enums map[string]*Enum
}

// DefaultRegistry is the registry Builder.Build registers with unless
// told otherwise.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{enums: make(map[string]*Enum)}
}

// Register adds e to the registry, replacing any enumeration registered
// under the same name.
func (r *Registry) Register(e *Enum) {
	r.register(e, slog.Default())
}

func (r *Registry) register(e *Enum, logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate registration
	if prev, exists := r.enums[e.name]; exists && prev != e {
		logger.Warn("duplicate enumeration registration",
			slog.String("enum", e.name),
			slog.Int("members", len(e.members)))
	}
	r.enums[e.name] = e
}

// Lookup returns the enumeration registered under name.
func (r *Registry) Lookup(name string) (*Enum, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.enums[name]
	return e, ok
}

// Enums returns the registered enumerations sorted by name.
func (r *Registry) Enums() []*Enum {
	r.mu.RLock()
	out := make([]*Enum, 0, len(r.enums))
	for _, e := range r.enums {
		out = append(out, e)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Enum) int { return strings.Compare(a.name, b.name) })
	return out
}

// Unmarshal returns the member named by text, in any of the forms
// Member.MarshalText produces:
//
//	Color.RED     a declared member or alias
//	Perm.R|W      a flag composite, by atomic names
//	Perm(3)       a flag composite, by bits
//
// The member returned is the same singleton the text was produced from.
func (r *Registry) Unmarshal(text []byte) (*Member, error) {
	s := string(text)

	if strings.HasSuffix(s, ")") {
		if i := strings.LastIndexByte(s, '('); i > 0 {
			e, err := r.enum(s[:i])
			if err != nil {
				return nil, err
			}
			bits, perr := strconv.ParseUint(s[i+1:len(s)-1], 10, 64)
			if perr != nil {
				return nil, notFound(e, s)
			}
			return e.Flag(bits)
		}
	}

	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return nil, Errorf(CodeNotFound, "%q is not a member reference", s)
	}
	e, err := r.enum(s[:i])
	if err != nil {
		return nil, err
	}
	names := s[i+1:]
	if m, ok := e.byName[names]; ok {
		return m, nil
	}
	if e.kind != KindFlag || !strings.Contains(names, "|") {
		return nil, notFound(e, s)
	}

	var bits uint64
	for name := range strings.SplitSeq(names, "|") {
		m, ok := e.byName[name]
		if !ok {
			return nil, notFound(e, s)
		}
		bits |= m.bits
	}
	return e.Flag(bits)
}

func (r *Registry) enum(name string) (*Enum, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, Errorf(CodeNotFound, "no enumeration named %q is registered", name).
			WithDetail("enum", name)
	}
	return e, nil
}

// Unmarshal resolves text with DefaultRegistry.
func Unmarshal(text []byte) (*Member, error) {
	return DefaultRegistry.Unmarshal(text)
}
