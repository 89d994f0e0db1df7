package enumprops

import (
	"bytes"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func TestBuild_Basic(t *testing.T) {
	color := build(t, newColor())

	if color.Name() != "Color" {
		t.Errorf("expected name Color, got %s", color.Name())
	}
	if color.Len() != 3 {
		t.Errorf("expected 3 members, got %d", color.Len())
	}

	props := color.Properties()
	if len(props) != 2 || props[0].Name != "rgb" || props[1].Name != "hex" {
		t.Errorf("unexpected properties %+v", props)
	}

	red := color.MustGet("RED")
	if red.Value() != 1 {
		t.Errorf("RED value = %v, want 1", red.Value())
	}
	if red.MustProp("rgb") != [3]int{1, 0, 0} {
		t.Errorf("RED rgb = %v", red.MustProp("rgb"))
	}
	if red.MustProp("hex") != "ff0000" {
		t.Errorf("RED hex = %v", red.MustProp("hex"))
	}
	if red.Index() != 0 || !red.Declared() {
		t.Errorf("RED index = %d, declared = %v", red.Index(), red.Declared())
	}

	var names []string
	for m := range color.All() {
		names = append(names, m.Name())
	}
	if !slices.Equal(names, []string{"RED", "GREEN", "BLUE"}) {
		t.Errorf("iteration order = %v", names)
	}
}

func TestBuild_ArityErrorsForEveryMember(t *testing.T) {
	_, err := New("Broken", P("a"), P("b")).
		WithRegistry(nil).
		Member("X", 1, "a").
		Member("Y", 2).
		Member("Z", 3, "a", "b").
		Build()

	if CodeOf(err) != CodeArity {
		t.Fatalf("expected arity error, got %v", err)
	}
	errs := joined(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), err)
	}
	if !strings.Contains(errs[0].Error(), "X must have 2 property values") {
		t.Errorf("unexpected message %q", errs[0].Error())
	}
	if !strings.Contains(errs[1].Error(), "Y must have 2 property values") {
		t.Errorf("unexpected message %q", errs[1].Error())
	}
}

func TestBuild_DeclarationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		want    ErrorCode
	}{
		{
			name:    "reserved property",
			builder: New("E", P("_properties_")).Member("A", 1, "x"),
			want:    CodeReserved,
		},
		{
			name:    "builtin property name",
			builder: New("E", S("name")).Member("A", 1, "x"),
			want:    CodeReserved,
		},
		{
			name:    "duplicate property",
			builder: New("E", P("a"), S("a")).Member("A", 1, "x", "y"),
			want:    CodeInvalidDeclaration,
		},
		{
			name:    "reused member name",
			builder: New("E").Member("A", 1).Member("A", 2),
			want:    CodeInvalidDeclaration,
		},
		{
			name:    "invalid member name",
			builder: New("E").Member("A.B", 1),
			want:    CodeInvalidDeclaration,
		},
		{
			name:    "missing name",
			builder: New("").Member("A", 1),
			want:    CodeInvalidDeclaration,
		},
		{
			name:    "unhashable symmetric value",
			builder: New("E", S("alt")).Member("A", 1, []any{[]int{1}}),
			want:    CodeUnhashable,
		},
		{
			name:    "unknown first class member",
			builder: New("E").Member("A", 1).FirstClassMembers("B"),
			want:    CodeInvalidDeclaration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.WithRegistry(nil).Build()
			if CodeOf(err) != tt.want {
				t.Errorf("expected %s error, got %v", tt.want, err)
			}
		})
	}
}

func TestBuild_Aliases(t *testing.T) {
	e := build(t, New("Size", P("label")).
		Member("SMALL", 1, "Small").
		Member("MEDIUM", 2, "Medium").
		Member("S", 1, "ignored"))

	small := e.MustGet("SMALL")
	if alias := e.MustGet("S"); alias != small {
		t.Errorf("expected S to alias SMALL, got %v", alias)
	}
	if small.MustProp("label") != "Small" {
		t.Errorf("alias changed the member's properties: %v", small.MustProp("label"))
	}
	if e.Len() != 2 {
		t.Errorf("expected 2 canonical members, got %d", e.Len())
	}
	if !slices.Equal(e.Names(), []string{"SMALL", "MEDIUM", "S"}) {
		t.Errorf("names = %v", e.Names())
	}
	if !slices.Equal(e.FirstClassMembers(), []string{"SMALL", "MEDIUM", "S"}) {
		t.Errorf("first class = %v", e.FirstClassMembers())
	}
	if len(e.MemberMap()) != 3 {
		t.Errorf("member map = %v", e.MemberMap())
	}
}

func TestBuild_FirstClassOverride(t *testing.T) {
	e := build(t, New("Size").
		Member("SMALL", 1).
		Member("LARGE", 2).
		FirstClassMembers("LARGE"))
	if !slices.Equal(e.FirstClassMembers(), []string{"LARGE"}) {
		t.Errorf("first class = %v", e.FirstClassMembers())
	}
}

func TestBuild_Annotations(t *testing.T) {
	e := build(t, New("Planet").
		Annotate("mass").
		Annotate("symbol", Symmetric{CaseFold: true}).
		Member("MERCURY", 1, 3.3e23, "☿").
		Member("VENUS", 2, 4.87e24, "♀").
		Annotate("trailing"))

	props := e.Properties()
	want := []Prop{{Name: "mass"}, {Name: "symbol", Symmetric: true, CaseFold: true}}
	if !reflect.DeepEqual(props, want) {
		t.Errorf("properties = %+v, want %+v", props, want)
	}
	if m := mustResolve(t, e, "♀"); m.Name() != "VENUS" {
		t.Errorf("expected VENUS, got %v", m)
	}
	if e.MustGet("MERCURY").MustProp("mass") != 3.3e23 {
		t.Errorf("unexpected mass %v", e.MustGet("MERCURY").MustProp("mass"))
	}
}

func TestBuild_AnnotateStruct(t *testing.T) {
	type colorProps struct {
		Label string `enum:"label"`
		Hex   string `enum:"hex,symmetric,casefold"`
		Note  string `enum:"-"`
	}

	e := build(t, New("Color").
		AnnotateStruct(colorProps{}).
		Member("RED", 1, "Red", "ff0000").
		Member("GREEN", 2, "Green", "00ff00"))

	if m := mustResolve(t, e, "00FF00"); m.Name() != "GREEN" {
		t.Errorf("expected GREEN, got %v", m)
	}
	if e.MustGet("RED").MustProp("label") != "Red" {
		t.Errorf("unexpected label %v", e.MustGet("RED").MustProp("label"))
	}
	if _, ok := e.Property("Note"); ok {
		t.Error("skipped field should not be a property")
	}
}

func TestBuild_ExplicitDisablesAnnotations(t *testing.T) {
	e := build(t, New("E", P("x")).
		Annotate("y").
		Member("A", 1, "x-value"))

	if len(e.Properties()) != 1 || e.Properties()[0].Name != "x" {
		t.Errorf("expected only the explicit property, got %+v", e.Properties())
	}
}

func TestBuild_NameAnnotationBecomesBuiltin(t *testing.T) {
	e := build(t, New("Level").
		Annotate("name", Symmetric{CaseFold: true}).
		Annotate("label").
		Member("LOW", 1, "Low").
		Member("HIGH", 2, "High"))

	if len(e.Properties()) != 1 {
		t.Errorf("expected name annotation not to declare a property, got %+v", e.Properties())
	}
	builtins := e.SymmetricBuiltins()
	if len(builtins) != 1 || builtins[0].Name != "name" || !builtins[0].CaseFold {
		t.Errorf("unexpected builtins %+v", builtins)
	}
	if m := mustResolve(t, e, "high"); m.Name() != "HIGH" {
		t.Errorf("expected HIGH, got %v", m)
	}
}

func TestBuild_Nested(t *testing.T) {
	type inner struct{ X int }

	e := build(t, New("Outer").
		Member("A", 1).
		Member("Inner", reflect.TypeFor[inner]()).
		Member("B", 2))

	if e.Len() != 2 {
		t.Errorf("nested type should not be a member, got %d members", e.Len())
	}
	if typ, ok := e.Nested("Inner"); !ok || typ != reflect.TypeFor[inner]() {
		t.Errorf("Nested(Inner) = %v, %v", typ, ok)
	}
	if _, ok := e.Get("Inner"); ok {
		t.Error("nested type should not be gettable as a member")
	}
}

func TestBuild_SymmetricBuiltins(t *testing.T) {
	e := build(t, New("Color", P("label")).
		Member("RED", 1, "Red").
		Member("GREEN", 2, "Green").
		Method("code", func(m *Member, args ...any) (any, error) {
			return strings.ToLower(m.Name()[:1]), nil
		}).
		SymmetricBuiltins(S("label", CaseFold()), "code"))

	if m := mustResolve(t, e, "green"); m.Name() != "GREEN" {
		t.Errorf("expected GREEN via folded label, got %v", m)
	}
	if m := mustResolve(t, e, "r"); m.Name() != "RED" {
		t.Errorf("expected RED via code method, got %v", m)
	}
}

func TestBuild_SymmetricBuiltinErrors(t *testing.T) {
	tests := []struct {
		name  string
		items []any
	}{
		{"missing attribute", []any{"missing"}},
		{"plain descriptor", []any{P("label")}},
		{"wrong item type", []any{42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("E", P("label")).
				WithRegistry(nil).
				Member("A", 1, "a").
				SymmetricBuiltins(tt.items...).
				Build()
			if CodeOf(err) != CodeInvalidBuiltin {
				t.Errorf("expected %s error, got %v", CodeInvalidBuiltin, err)
			}
		})
	}
}

func TestBuild_LogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	build(t, newColor().WithLogger(logger))

	out := buf.String()
	if !strings.Contains(out, "enumeration built") {
		t.Errorf("expected build log, got %q", out)
	}
	if !strings.Contains(out, `"members":3`) {
		t.Errorf("expected member count in log, got %q", out)
	}
}
