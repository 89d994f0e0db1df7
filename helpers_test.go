package enumprops

import (
	"errors"
	"testing"
)

// build builds b with a private registry and fails the test on error.
func build(t *testing.T, b *Builder) *Enum {
	t.Helper()
	e, err := b.WithRegistry(NewRegistry()).Build()
	if err != nil {
		t.Fatalf("build %s: %v", b.name, err)
	}
	return e
}

func newColor() *Builder {
	return New("Color",
		S("rgb"),
		S("hex", CaseFold()),
	).
		Member("RED", 1, [3]int{1, 0, 0}, "ff0000").
		Member("GREEN", 2, [3]int{0, 1, 0}, "00ff00").
		Member("BLUE", 3, [3]int{0, 0, 1}, "0000ff")
}

func newPerm() *Builder {
	return New("Perm", S("label", CaseFold())).
		WithKind(KindFlag).
		Member("R", 1, "read").
		Member("W", 2, "write").
		Member("X", 4, "execute").
		Member("RW", 3, "read-write")
}

func mustResolve(t *testing.T, e *Enum, v any) *Member {
	t.Helper()
	m, err := e.Resolve(v)
	if err != nil {
		t.Fatalf("%s.Resolve(%#v): %v", e, v, err)
	}
	return m
}

func assertNotFound(t *testing.T, e *Enum, v any) {
	t.Helper()
	m, err := e.Resolve(v)
	if err == nil {
		t.Errorf("%s.Resolve(%#v) = %s, want not found", e, v, m)
		return
	}
	if !errors.Is(err, ErrValueNotFound) {
		t.Errorf("%s.Resolve(%#v): expected not found error, got %v", e, v, err)
	}
}

// joined returns the errors combined by errors.Join, or err itself.
func joined(err error) []error {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		return u.Unwrap()
	}
	return []error{err}
}
