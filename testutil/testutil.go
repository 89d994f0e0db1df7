// Package testutil provides testing helpers for code built on enumprops.
// This package is designed to be import-cycle safe and can be used from any
// package outside the root.
package testutil

import (
	"errors"
	"testing"

	"github.com/broady/enumprops"
)

// MustBuild builds b with a private registry, failing the test on error.
func MustBuild(t *testing.T, b *enumprops.Builder) *enumprops.Enum {
	t.Helper()

	e, err := b.WithRegistry(enumprops.NewRegistry()).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return e
}

// AssertResolves checks that value resolves to the member named want.
func AssertResolves(t *testing.T, e *enumprops.Enum, value any, want string) *enumprops.Member {
	t.Helper()

	m, err := e.Resolve(value)
	if err != nil {
		t.Errorf("%s.Resolve(%#v): unexpected error: %v", e, value, err)
		return nil
	}
	if m.Name() != want {
		t.Errorf("%s.Resolve(%#v) = %s, want %s.%s", e, value, m, e, want)
	}
	if again, _ := e.Resolve(value); again != m {
		t.Errorf("%s.Resolve(%#v) returned a different member on the second call", e, value)
	}
	return m
}

// AssertNotFound checks that value does not resolve.
func AssertNotFound(t *testing.T, e *enumprops.Enum, value any) {
	t.Helper()

	m, err := e.Resolve(value)
	if err == nil {
		t.Errorf("%s.Resolve(%#v) = %s, want not found", e, value, m)
		return
	}
	if !errors.Is(err, enumprops.ErrValueNotFound) {
		t.Errorf("%s.Resolve(%#v): expected not found error, got %v", e, value, err)
	}
}

// AssertCode checks that err carries the expected error code.
func AssertCode(t *testing.T, err error, want enumprops.ErrorCode) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := enumprops.CodeOf(err); got != want {
		t.Errorf("expected error code %s, got %s (%v)", want, got, err)
	}
}
