package enumprops

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func TestResolve_Color(t *testing.T) {
	color := build(t, newColor())
	red := color.MustGet("RED")

	tests := []struct {
		name  string
		value any
	}{
		{"member", red},
		{"canonical value", 1},
		{"name", "RED"},
		{"exact hex", "ff0000"},
		{"folded hex", "FF0000"},
		{"rgb array", [3]int{1, 0, 0}},
		{"rgb tuple", Tuple(1, 0, 0)},
		{"rgb slice", []int{1, 0, 0}},
		{"value as string", "1"},
		{"value as float", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustResolve(t, color, tt.value); got != red {
				t.Errorf("Resolve(%#v) = %v, want %v", tt.value, got, red)
			}
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	color := build(t, newColor())

	for _, v := range []any{"purple", "red", 4, 1.5, nil, []int{1, 1, 1}, [2]int{1, 0}} {
		assertNotFound(t, color, v)
	}

	other := build(t, New("Other").Member("RED", 1))
	assertNotFound(t, color, other.MustGet("RED"))
}

func TestResolve_PropertyPrecedence(t *testing.T) {
	e := build(t, New("Order", S("a"), S("b")).
		Member("FIRST", 1, "z", "1").
		Member("SECOND", 2, "1", "w"))

	if m := mustResolve(t, e, "1"); m.Name() != "SECOND" {
		t.Errorf("expected the earlier property to win, got %v", m)
	}
	if m := mustResolve(t, e, "w"); m.Name() != "SECOND" {
		t.Errorf("expected SECOND, got %v", m)
	}
}

func TestResolve_Overloads(t *testing.T) {
	e := build(t, New("Priority", S("code"), S("alt")).
		Member("ONE", 0, "1", []any{3, 4}).
		Member("TWO", 1, "2", []any{3, "4"}).
		Member("THREE", 2, "3", []any{3, 4}))

	tests := []struct {
		value any
		want  string
	}{
		{0, "ONE"},
		{1, "TWO"},
		{"1", "ONE"},
		{3, "ONE"},
		{"3", "THREE"},
		{4, "ONE"},
		{"4", "TWO"},
		{"THREE", "THREE"},
	}

	for _, tt := range tests {
		if m := mustResolve(t, e, tt.value); m.Name() != tt.want {
			t.Errorf("Resolve(%#v) = %v, want %s", tt.value, m, tt.want)
		}
	}
}

func TestResolve_NameRanksBelowProperties(t *testing.T) {
	e := build(t, New("Swap", S("other")).
		Member("A", 1, "B").
		Member("B", 2, "A"))

	if m := mustResolve(t, e, "A"); m.Name() != "B" {
		t.Errorf("expected property value to win over name, got %v", m)
	}
	if m := mustResolve(t, e, e.MustGet("A")); m.Name() != "A" {
		t.Errorf("expected member to resolve to itself, got %v", m)
	}
}

func TestResolve_CaseFold(t *testing.T) {
	e := build(t, New("Street", S("label", CaseFold())).
		Member("MAIN", 1, "Straße").
		Member("SIGMA", 2, "ΣΑΣ"))

	tests := []struct {
		value any
		want  string
	}{
		{"Straße", "MAIN"},
		{"strasse", "MAIN"},
		{"STRASSE", "MAIN"},
		{"σας", "SIGMA"},
		{"σασ", "SIGMA"},
	}
	for _, tt := range tests {
		if m := mustResolve(t, e, tt.value); m.Name() != tt.want {
			t.Errorf("Resolve(%q) = %v, want %s", tt.value, m, tt.want)
		}
	}
	assertNotFound(t, e, "strasze")
	assertNotFound(t, e, "main")
}

func TestResolve_CaseSensitiveWithoutFold(t *testing.T) {
	e := build(t, New("Code", S("code")).
		Member("A", 1, "abc"))

	assertNotFound(t, e, "ABC")
	mustResolve(t, e, "abc")
}

func TestResolve_MatchNone(t *testing.T) {
	plain := build(t, New("Plain", S("alt")).
		Member("A", 1, nil).
		Member("B", 2, "b"))
	assertNotFound(t, plain, nil)

	matching := build(t, New("Matching", S("alt", MatchNone())).
		Member("A", 1, nil).
		Member("B", 2, "b"))
	if m := mustResolve(t, matching, nil); m.Name() != "A" {
		t.Errorf("expected A, got %v", m)
	}
}

func TestResolve_ListExpansion(t *testing.T) {
	e := build(t, New("Bool", S("aliases", CaseFold())).
		Member("TRUE", true, []string{"yes", "on", "1"}).
		Member("FALSE", false, map[string]struct{}{"no": {}, "off": {}, "0": {}}))

	tests := []struct {
		value any
		want  string
	}{
		{true, "TRUE"},
		{"YES", "TRUE"},
		{"on", "TRUE"},
		{"Off", "FALSE"},
		{"0", "FALSE"},
		{1, "TRUE"},
	}
	for _, tt := range tests {
		if m := mustResolve(t, e, tt.value); m.Name() != tt.want {
			t.Errorf("Resolve(%#v) = %v, want %s", tt.value, m, tt.want)
		}
	}
}

func TestResolve_BoolSetProperty(t *testing.T) {
	e := build(t, New("Switch", S("aliases", CaseFold())).
		Member("ON", 1, map[string]bool{"yes": true, "enabled": true, "no": false}).
		Member("OFF", 0, map[string]bool{"no": true, "yes": false}))

	tests := []struct {
		value any
		want  string
	}{
		{"yes", "ON"},
		{"Enabled", "ON"},
		{"NO", "OFF"},
	}
	for _, tt := range tests {
		if m := mustResolve(t, e, tt.value); m.Name() != tt.want {
			t.Errorf("Resolve(%#v) = %v, want %s", tt.value, m, tt.want)
		}
	}
}

func TestResolve_IntKindCoercion(t *testing.T) {
	e := build(t, New("Level").
		WithKind(KindInt).
		Member("LOW", 5).
		Member("HIGH", 10))

	for _, v := range []any{5, "5", int64(5), uint8(5), 5.0} {
		if m := mustResolve(t, e, v); m.Name() != "LOW" {
			t.Errorf("Resolve(%#v) = %v, want LOW", v, m)
		}
	}
	assertNotFound(t, e, 5.5)
	assertNotFound(t, e, "five")
}

func TestResolve_CoercionOrder(t *testing.T) {
	type code1 int
	type code2 int

	e := build(t, New("Coded", S("first"), S("second")).
		Member("A", 1, code1(7), code2(8)).
		Member("B", 2, code1(8), code2(7)))

	// 7 matches nothing exactly; code1 is tried before code2.
	if m := mustResolve(t, e, 7); m.Name() != "A" {
		t.Errorf("expected A via code1, got %v", m)
	}
	if m := mustResolve(t, e, code2(7)); m.Name() != "B" {
		t.Errorf("expected B via exact code2, got %v", m)
	}
}

func TestEnum_CoerceTypes(t *testing.T) {
	color := build(t, newColor())

	want := []reflect.Type{
		reflect.TypeFor[int](),
		reflect.TypeFor[[3]int](),
		reflect.TypeFor[string](),
	}
	if got := color.CoerceTypes(); !slices.Equal(got, want) {
		t.Errorf("CoerceTypes() = %v, want %v", got, want)
	}
}

func TestEnum_CoerceTypesIncludeNames(t *testing.T) {
	type word string

	level := build(t, New("Level").
		WithKind(KindInt).
		Member("LOW", 5).
		Member("HIGH", 10))

	want := []reflect.Type{reflect.TypeFor[int](), reflect.TypeFor[string]()}
	if got := level.CoerceTypes(); !slices.Equal(got, want) {
		t.Errorf("CoerceTypes() = %v, want %v", got, want)
	}

	// A named string type only reaches the name table through coercion.
	if m := mustResolve(t, level, word("HIGH")); m.Name() != "HIGH" {
		t.Errorf("Resolve(word(HIGH)) = %v, want HIGH", m)
	}
	if m := mustResolve(t, level, word("5")); m.Name() != "LOW" {
		t.Errorf("Resolve(word(5)) = %v, want LOW", m)
	}
	assertNotFound(t, level, word("high"))
}

func TestEnum_Contains(t *testing.T) {
	color := build(t, newColor())

	if !color.Contains(color.MustGet("RED")) {
		t.Error("expected member to be contained")
	}
	if !color.Contains(2) {
		t.Error("expected canonical value to be contained")
	}
	if color.Contains("ff0000") {
		t.Error("symmetric values are not canonical values")
	}
	if color.Contains([]int{1}) {
		t.Error("unhashable values are never contained")
	}
}

func TestEnum_ByValue(t *testing.T) {
	color := build(t, newColor())

	if m, ok := color.ByValue(3); !ok || m.Name() != "BLUE" {
		t.Errorf("ByValue(3) = %v, %v", m, ok)
	}
	if _, ok := color.ByValue("3"); ok {
		t.Error("ByValue should not coerce")
	}
}

func TestEnum_MustResolvePanics(t *testing.T) {
	color := build(t, newColor())

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrValueNotFound) {
			t.Errorf("expected not found panic, got %v", r)
		}
	}()
	color.MustResolve("purple")
}

func TestMember_Equal(t *testing.T) {
	color := build(t, newColor())
	red := color.MustGet("RED")

	if !red.Equal("FF0000") || !red.Equal(1) || !red.Equal(red) {
		t.Error("expected RED to equal its symmetric values")
	}
	if red.Equal("00ff00") || red.Equal(color.MustGet("GREEN")) || red.Equal("purple") {
		t.Error("expected RED not to equal other values")
	}
}

func TestMember_Props(t *testing.T) {
	color := build(t, newColor())
	red := color.MustGet("RED")

	if !red.HasProp("hex") || red.HasProp("label") {
		t.Error("unexpected HasProp result")
	}
	if _, err := red.Prop("label"); !errors.Is(err, ErrNoProperty) {
		t.Errorf("expected no property error, got %v", err)
	}
	props := red.Props()
	if props["hex"] != "ff0000" || props["rgb"] != [3]int{1, 0, 0} {
		t.Errorf("unexpected props %v", props)
	}
}

func TestMember_Strings(t *testing.T) {
	color := build(t, newColor())
	red := color.MustGet("RED")

	if red.String() != "Color.RED" {
		t.Errorf("String() = %q", red.String())
	}
	text, err := red.MarshalText()
	if err != nil || string(text) != "Color.RED" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}
	if got := red.GoString(); got != "<Color.RED: 1>" {
		t.Errorf("GoString() = %q", got)
	}
}

func TestJSON(t *testing.T) {
	color := build(t, newColor())

	data, err := color.MustGet("GREEN").MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "2" {
		t.Errorf("MarshalJSON() = %s, want 2", data)
	}

	tests := []struct {
		data string
		want string
	}{
		{`2`, "GREEN"},
		{`"GREEN"`, "GREEN"},
		{`"00FF00"`, "GREEN"},
		{`[0, 0, 1]`, "BLUE"},
	}
	for _, tt := range tests {
		m, err := color.DecodeJSON([]byte(tt.data))
		if err != nil {
			t.Errorf("DecodeJSON(%s): %v", tt.data, err)
			continue
		}
		if m.Name() != tt.want {
			t.Errorf("DecodeJSON(%s) = %v, want %s", tt.data, m, tt.want)
		}
	}

	if _, err := color.DecodeJSON([]byte(`{`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := color.DecodeJSON([]byte(`7`)); !errors.Is(err, ErrValueNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
