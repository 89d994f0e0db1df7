package enumprops

// MethodFunc is a method bound to enumeration members.
type MethodFunc func(m *Member, args ...any) (any, error)

// specialization binds a method implementation to specific members.
type specialization struct {
	method  string
	fn      MethodFunc
	targets []any
}

// Call invokes the named method on the member. A specialization bound to
// this member takes precedence over the base implementation declared with
// Builder.Method.
func (m *Member) Call(name string, args ...any) (any, error) {
	fn := m.method(name)
	if fn == nil {
		return nil, Errorf(CodeNoMethod, "%s has no method %q", m, name).
			WithDetail("method", name)
	}
	return fn(m, args...)
}

// HasMethod reports whether the member has an implementation of name.
func (m *Member) HasMethod(name string) bool {
	return m.method(name) != nil
}

func (m *Member) method(name string) MethodFunc {
	if fn, ok := m.specialized[name]; ok {
		return fn
	}
	return m.enum.methods[name]
}

// bindSpecializations resolves each specialization's targets to members
// and records the implementation on them. Later specializations of the same
// method for the same member replace earlier ones.
func bindSpecializations(e *Enum, specs []specialization) []error {
	var errs []error
	for _, s := range specs {
		for _, target := range s.targets {
			m, ok := specializationTarget(e, target)
			if !ok {
				errs = append(errs, Errorf(CodeInvalidDeclaration,
					"%s.%s: specialization target %#v is not a member", e.name, s.method, target))
				continue
			}
			if m.specialized == nil {
				m.specialized = make(map[string]MethodFunc)
			}
			m.specialized[s.method] = s.fn
		}
	}
	return errs
}

// specializationTarget finds the member with target as its canonical
// value, or failing that the member declared under that name.
func specializationTarget(e *Enum, target any) (*Member, bool) {
	if m, ok := e.byCanonicalValue(target); ok {
		return m, true
	}
	if s, ok := target.(string); ok {
		m, ok := e.byName[s]
		return m, ok
	}
	return nil, false
}
