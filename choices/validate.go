package choices

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/enumprops"
)

// Validator wraps a validator.Validate with one tag per enumeration. A field
// passes an enumeration's tag when its value resolves to a member:
//
//	v := choices.NewValidator()
//	v.Register("color", color)
//
//	type Paint struct {
//	    Color string `validate:"required,color"`
//	}
//
// Register is not safe for concurrent use and should be called before the
// first validation, like validator.Validate.RegisterValidation.
type Validator struct {
	validate *validator.Validate
	enums    map[string]*enumprops.Enum
}

func NewValidator() *Validator {
	validate := validator.New()
	validate.RegisterCustomTypeFunc(memberRef, Value{})
	return &Validator{
		validate: validate,
		enums:    make(map[string]*enumprops.Enum),
	}
}

// memberRef presents a Value field to tags as the member's text form.
func memberRef(field reflect.Value) any {
	v, ok := field.Interface().(Value)
	if !ok || v.Member == nil {
		return nil
	}
	return v.String()
}

// Register makes tag check that field values resolve to members of e.
func (v *Validator) Register(tag string, e *enumprops.Enum) error {
	refs := enumprops.NewRegistry()
	refs.Register(e)
	err := v.validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return resolves(e, refs, fl.Field())
	})
	if err != nil {
		return enumprops.Errorf(enumprops.CodeInvalidDeclaration, "register %s validation: %v", e, err)
	}
	v.enums[tag] = e
	return nil
}

// Validate returns the underlying validator.
func (v *Validator) Validate() *validator.Validate {
	return v.validate
}

// Struct validates the fields of s. Failures are reported as a single
// *enumprops.Error whose details map each field to its problem.
func (v *Validator) Struct(s any) error {
	return v.convert(v.validate.Struct(s))
}

// Var validates a single value against tag.
func (v *Validator) Var(field any, tag string) error {
	switch x := field.(type) {
	case *enumprops.Member:
		if x != nil {
			field = x.String()
		}
	case Value:
		field = memberRef(reflect.ValueOf(x))
	}
	return v.convert(v.validate.Var(field, tag))
}

func (v *Validator) convert(err error) error {
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}

	details := make(map[string]any)
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msg := v.formatValidationError(ve)
		field := ve.Field()
		if field == "" {
			field = "value"
		}
		details[field] = msg
		messages = append(messages, field+": "+msg)
	}
	return &enumprops.Error{
		Code:    enumprops.CodeNotFound,
		Message: strings.Join(messages, "; "),
		Details: details,
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func (v *Validator) formatValidationError(ve validator.FieldError) string {
	if e, ok := v.enums[ve.Tag()]; ok {
		return fmt.Sprintf("must be one of %s", strings.Join(e.FirstClassMembers(), ", "))
	}
	switch ve.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// resolves reports whether the field value resolves to a member of e.
// refs holds only e, so text references to other enumerations fail.
func resolves(e *enumprops.Enum, refs *enumprops.Registry, field reflect.Value) bool {
	if !field.IsValid() || !field.CanInterface() {
		return false
	}
	v := field.Interface()
	if s, ok := v.(string); ok {
		if _, err := refs.Unmarshal([]byte(s)); err == nil {
			return true
		}
	}
	_, err := e.Resolve(v)
	return err == nil
}
