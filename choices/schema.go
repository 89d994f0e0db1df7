package choices

import (
	"reflect"

	"github.com/gorilla/schema"

	"github.com/broady/enumprops"
)

// Value is a form field holding a member. Decoders learn which
// enumerations a Value may hold through RegisterConverter.
type Value struct {
	*enumprops.Member
}

// RegisterConverter teaches d to decode Value fields. Input is resolved
// against each enumeration in turn and the first match wins; the text form
// produced by Member.MarshalText is accepted too.
func RegisterConverter(d *schema.Decoder, enums ...*enumprops.Enum) {
	refs := enumprops.NewRegistry()
	for _, e := range enums {
		refs.Register(e)
	}
	d.RegisterConverter(Value{}, func(s string) reflect.Value {
		m, ok := convert(s, enums, refs)
		if !ok {
			return reflect.Value{}
		}
		return reflect.ValueOf(Value{Member: m})
	})
}

func convert(s string, enums []*enumprops.Enum, refs *enumprops.Registry) (*enumprops.Member, bool) {
	for _, e := range enums {
		if m, err := e.Resolve(s); err == nil {
			return m, true
		}
	}
	if m, err := refs.Unmarshal([]byte(s)); err == nil {
		return m, true
	}
	return nil, false
}
