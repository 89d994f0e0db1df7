package enumprops

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewError(t *testing.T) {
	err := NewError(CodeNotFound, "value not found")
	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.Message != "value not found" {
		t.Errorf("expected message 'value not found', got %s", err.Message)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(CodeArity, "%s must have %d property values", "RED", 2)
	if err.Code != CodeArity {
		t.Errorf("expected code %s, got %s", CodeArity, err.Code)
	}
	if err.Message != "RED must have 2 property values" {
		t.Errorf("expected formatted message, got %s", err.Message)
	}
}

func TestErrorError(t *testing.T) {
	err := NewError(CodeReserved, "_properties_ is reserved")
	expected := "reserved: _properties_ is reserved"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same code", Errorf(CodeNotFound, "x"), ErrValueNotFound, true},
		{"different code", Errorf(CodeArity, "x"), ErrValueNotFound, false},
		{"wrapped", fmt.Errorf("outer: %w", Errorf(CodeNoProperty, "x")), ErrNoProperty, true},
		{"joined", errors.Join(errors.New("other"), Errorf(CodeNoMethod, "x")), ErrNoMethod, true},
		{"plain error", errors.New("x"), ErrValueNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorWithDetail(t *testing.T) {
	base := NewError(CodeArity, "bad")
	withOne := base.WithDetail("member", "RED")
	withTwo := withOne.WithDetail("properties", 2)

	if base.Details != nil {
		t.Errorf("expected base error to be unchanged, got %v", base.Details)
	}
	if len(withOne.Details) != 1 {
		t.Errorf("expected 1 detail, got %v", withOne.Details)
	}
	if withTwo.Details["member"] != "RED" || withTwo.Details["properties"] != 2 {
		t.Errorf("unexpected details %v", withTwo.Details)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(nil); got != "" {
		t.Errorf("expected empty code for nil, got %s", got)
	}
	if got := CodeOf(errors.New("x")); got != "" {
		t.Errorf("expected empty code for plain error, got %s", got)
	}
	err := errors.Join(Errorf(CodeArity, "a"), Errorf(CodeArity, "b"))
	if got := CodeOf(err); got != CodeArity {
		t.Errorf("expected %s, got %s", CodeArity, got)
	}
}

func TestNotFoundDetails(t *testing.T) {
	color := build(t, newColor())
	_, err := color.Resolve("purple")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, e.Code)
	}
	if e.Details["enum"] != "Color" {
		t.Errorf("expected enum detail, got %v", e.Details)
	}
}
