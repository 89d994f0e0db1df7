package enumprops

import (
	"errors"
	"log/slog"
	"reflect"
	"slices"
)

// Builder collects an enumeration's declarations. Nothing is validated
// until Build, which reports every problem it finds at once.
//
// Properties are declared either explicitly, by passing P and S
// descriptors to New, or by annotation, with Annotate and AnnotateStruct.
// When any explicit descriptor is given, annotations are ignored.
type Builder struct {
	name     string
	kind     Kind
	props    []Prop
	explicit bool

	annotations []annotation
	decls       []declaration
	nested      map[string]reflect.Type
	builtins    []any

	methods       map[string]MethodFunc
	specs         []specialization
	firstClass    []string
	hasFirstClass bool

	logger       *slog.Logger
	registry     *Registry
	interceptors []ResolveInterceptor

	errs []error
}

// New starts the declaration of an enumeration. The given properties are
// matched, in order, to the trailing values of each member's value tuple.
func New(name string, props ...Prop) *Builder {
	return &Builder{
		name:     name,
		props:    slices.Clone(props),
		explicit: len(props) > 0,
		nested:   make(map[string]reflect.Type),
		methods:  make(map[string]MethodFunc),
		registry: DefaultRegistry,
	}
}

// WithKind sets the enumeration kind. The default is KindEnum.
func (b *Builder) WithKind(k Kind) *Builder {
	b.kind = k
	return b
}

// WithLogger sets the logger used during construction.
// If not set, slog.Default() will be used.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithRegistry sets the registry the finished enumeration is registered
// with. The default is DefaultRegistry; nil disables registration.
func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.registry = r
	return b
}

// WithInterceptor adds a resolution interceptor. Interceptors run in the
// order they were added, the first being outermost.
func (b *Builder) WithInterceptor(i ResolveInterceptor) *Builder {
	b.interceptors = append(b.interceptors, i)
	return b
}

// Annotate declares a property by annotation. Passing a Symmetric makes it
// symmetric. Annotations on "name" or "value" make those builtin
// attributes symmetric instead of declaring a property. Annotations made
// after the first member declaration are not property declarations and are
// ignored.
func (b *Builder) Annotate(name string, sym ...Symmetric) *Builder {
	if len(b.decls) > 0 {
		return b
	}
	a := annotation{name: name}
	if len(sym) > 0 {
		s := sym[0]
		a.sym = &s
	}
	b.annotations = append(b.annotations, a)
	return b
}

// AnnotateStruct declares properties from the exported fields of a struct
// (or pointer to struct) value, in field order. See Annotate for the rules
// that apply; the field tags are:
//
//	Label string `enum:"label"`
//	Hex   string `enum:"hex,symmetric,casefold"`
//	Note  string `enum:"-"`
func (b *Builder) AnnotateStruct(v any) *Builder {
	if len(b.decls) > 0 {
		return b
	}
	t := reflect.TypeOf(v)
	if t == nil {
		b.errs = append(b.errs, Errorf(CodeInvalidDeclaration, "%s: nil annotation struct", b.name))
		return b
	}
	as, err := annotationsFromStruct(t)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.annotations = append(b.annotations, as...)
	return b
}

// Member declares a member. The trailing values are the property values,
// aligned with the declared properties; the leading values form the
// member's canonical value. A single reflect.Type value declares a nested
// type instead, which is not a member.
func (b *Builder) Member(name string, values ...any) *Builder {
	if len(values) == 1 {
		if t, ok := values[0].(reflect.Type); ok {
			return b.Nested(name, t)
		}
	}
	b.decls = append(b.decls, declaration{name: name, values: slices.Clone(values)})
	return b
}

// Nested attaches a type to the enumeration under name. Nested types are
// not members and their values are never decomposed.
func (b *Builder) Nested(name string, t reflect.Type) *Builder {
	b.nested[name] = t
	return b
}

// SymmetricBuiltins makes builtin attributes resolvable. Each item is either
// an attribute name or a symmetric property (S) naming one. Attributes are
// "name", "value", a declared property, or a method that takes no
// arguments. Builtins rank below declared symmetric properties.
func (b *Builder) SymmetricBuiltins(items ...any) *Builder {
	b.builtins = append(b.builtins, items...)
	return b
}

// Method declares the base implementation of a method.
func (b *Builder) Method(name string, fn MethodFunc) *Builder {
	b.methods[name] = fn
	return b
}

// Specialize binds fn as the implementation of method for the members
// named by targets. A target is a member's canonical value or, if no
// member has that value, a member name. Members without a specialization
// use the base implementation declared with Method, if any.
func (b *Builder) Specialize(method string, fn MethodFunc, targets ...any) *Builder {
	b.specs = append(b.specs, specialization{method: method, fn: fn, targets: targets})
	return b
}

// FirstClassMembers overrides the list reported by Enum.FirstClassMembers.
func (b *Builder) FirstClassMembers(names ...string) *Builder {
	b.firstClass = slices.Clone(names)
	b.hasFirstClass = true
	return b
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Enum {
	e, err := b.Build()
	if err != nil {
		panic(err)
	}
	return e
}

// Build constructs the enumeration. Construction runs in stages:
//
//  1. resolve the property descriptors and symmetric builtins
//  2. decompose every member's value tuple
//  3. generate auto values and normalize values for the kind
//  4. create members and aliases and assign property values
//  5. bind method specializations
//  6. build the symmetric lookup tables and the coercion chain
func (b *Builder) Build() (*Enum, error) {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if b.name == "" {
		return nil, NewError(CodeInvalidDeclaration, "enumeration name is required")
	}

	props, builtins := b.resolveProps()
	if err := validateProps(b.name, props); err != nil {
		return nil, err
	}
	if err := b.validateNames(); err != nil {
		return nil, err
	}

	ds, err := decomposeAll(b.decls, len(props))
	if err != nil {
		return nil, err
	}
	valueType, err := finalizeValues(b.name, b.kind, ds)
	if err != nil {
		return nil, err
	}

	e := &Enum{
		name:      b.name,
		kind:      b.kind,
		props:     props,
		propIndex: make(map[string]int, len(props)),
		byName:    make(map[string]*Member, len(ds)),
		byValue:   make(map[any]*Member, len(ds)),
		nested:    make(map[string]reflect.Type, len(b.nested)),
		methods:   make(map[string]MethodFunc, len(b.methods)),
		valueType: valueType,
	}
	for i, p := range props {
		e.propIndex[p.Name] = i
	}
	for k, v := range b.nested {
		e.nested[k] = v
	}
	for k, v := range b.methods {
		e.methods[k] = v
	}

	// owners[i] is the member ds[i] declared or aliased.
	owners := make([]*Member, len(ds))
	for i, d := range ds {
		e.names = append(e.names, d.name)
		if m, ok := e.byValue[d.value]; ok {
			owners[i] = m
			e.byName[d.name] = m
			continue
		}
		m := &Member{
			enum:  e,
			name:  d.name,
			value: d.value,
			index: len(e.members),
			props: d.props,
		}
		if b.kind == KindFlag {
			m.bits, _ = toUint64(reflect.ValueOf(d.value))
			e.allBits |= m.bits
		}
		e.members = append(e.members, m)
		e.byName[d.name] = m
		e.byValue[d.value] = m
		owners[i] = m
	}

	if b.hasFirstClass {
		for _, name := range b.firstClass {
			if _, ok := e.byName[name]; !ok {
				return nil, Errorf(CodeInvalidDeclaration, "%s: first class member %s is not declared", b.name, name)
			}
		}
		e.firstClass = slices.Clone(b.firstClass)
	} else {
		e.firstClass = slices.Clone(e.names)
	}

	if errs := bindSpecializations(e, b.specs); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	builtinProps, err := resolveBuiltins(e, builtins)
	if err != nil {
		return nil, err
	}
	e.builtins = builtinProps

	tables, err := buildSymmetric(e, ds, owners)
	if err != nil {
		return nil, err
	}
	e.exact = tables.exact
	e.folded = tables.folded
	e.coerceTypes = buildCoerceTypes(e, ds)

	e.resolve = chainInterceptors(e, b.interceptors, e.lookup)

	if b.registry != nil {
		b.registry.register(e, logger)
	}

	logger.Debug("enumeration built",
		slog.String("enum", e.name),
		slog.String("kind", e.kind.String()),
		slog.Int("members", len(e.members)),
		slog.Int("aliases", len(e.names)-len(e.members)),
		slog.Int("symmetric_keys", len(e.exact)),
		slog.Int("folded_keys", len(e.folded)))

	return e, nil
}

// resolveProps decides which declaration style is live and returns the
// tuple properties and the builtin items in precedence order.
func (b *Builder) resolveProps() ([]Prop, []any) {
	builtins := slices.Clone(b.builtins)
	if b.explicit {
		return slices.Clone(b.props), builtins
	}

	var props []Prop
	for _, a := range b.annotations {
		if isReserved(a.name) {
			// Bookkeeping names are never properties.
			continue
		}
		if isBuiltin(a.name) {
			if a.sym != nil {
				builtins = append(builtins, a.prop())
			}
			continue
		}
		props = append(props, a.prop())
	}
	return props, builtins
}

func validateProps(enumName string, props []Prop) error {
	var errs []error
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		switch {
		case p.Name == "":
			errs = append(errs, Errorf(CodeInvalidDeclaration, "%s: property name is required", enumName))
		case isReserved(p.Name), isBuiltin(p.Name):
			errs = append(errs, Errorf(CodeReserved, "%s: %s is reserved", enumName, p.Name).
				WithDetail("property", p.Name))
		case seen[p.Name]:
			errs = append(errs, Errorf(CodeInvalidDeclaration, "%s: property %s is declared twice", enumName, p.Name).
				WithDetail("property", p.Name))
		}
		seen[p.Name] = true
	}
	return errors.Join(errs...)
}

func (b *Builder) validateNames() error {
	var errs []error
	seen := make(map[string]bool, len(b.decls))
	for _, d := range b.decls {
		switch {
		case !validIdentifier(d.name):
			errs = append(errs, Errorf(CodeInvalidDeclaration, "%s: invalid member name %q", b.name, d.name))
		case isReserved(d.name):
			errs = append(errs, Errorf(CodeReserved, "%s: %s is reserved", b.name, d.name).
				WithDetail("member", d.name))
		case seen[d.name]:
			errs = append(errs, Errorf(CodeInvalidDeclaration, "%s: attempted to reuse member name %s", b.name, d.name).
				WithDetail("member", d.name))
		default:
			if _, ok := b.nested[d.name]; ok {
				errs = append(errs, Errorf(CodeInvalidDeclaration, "%s: %s is declared as both a member and a nested type", b.name, d.name).
					WithDetail("member", d.name))
			}
		}
		seen[d.name] = true
	}
	return errors.Join(errs...)
}

// resolveBuiltins turns builtin items into symmetric descriptors and checks
// that every member has the attribute each names.
func resolveBuiltins(e *Enum, items []any) ([]Prop, error) {
	out := make([]Prop, 0, len(items))
	for _, item := range items {
		var p Prop
		switch v := item.(type) {
		case string:
			p = S(v)
		case Prop:
			if !v.Symmetric {
				return nil, Errorf(CodeInvalidBuiltin, "%s: symmetric builtin %s must be declared with S", e.name, v.Name)
			}
			p = v
		default:
			return nil, Errorf(CodeInvalidBuiltin, "%s: symmetric builtins contained %T, expected string or S() property", e.name, item)
		}
		for _, m := range e.members {
			if _, ok := m.attr(p.Name); !ok {
				return nil, Errorf(CodeInvalidBuiltin, "%s.%s does not exist, but is listed as a symmetric builtin", e.name, p.Name).
					WithDetail("builtin", p.Name).
					WithDetail("member", m.name)
			}
		}
		out = append(out, p)
	}
	return out, nil
}
