package decl

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/broady/enumprops"
)

// decodeValue decodes a canonical value. Every sequence is a tuple, since
// canonical values must be comparable.
func decodeValue(n *yaml.Node) (any, error) {
	return decodeNode(n, true)
}

// decodeProp decodes a property value. Sequences are lists unless tagged
// !tuple.
func decodeProp(n *yaml.Node) (any, error) {
	return decodeNode(n, false)
}

func decodeNode(n *yaml.Node, tuples bool) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil

	case yaml.AliasNode:
		return decodeNode(n.Alias, tuples)

	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0], tuples)

	case yaml.SequenceNode:
		tuple := tuples || n.Tag == TupleTag
		vs := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := decodeNode(c, tuple)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		if tuple {
			return enumprops.Tuple(vs...), nil
		}
		return vs, nil

	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var k string
			if err := n.Content[i].Decode(&k); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Content[i].Line, err)
			}
			v, err := decodeNode(n.Content[i+1], tuples)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil

	case yaml.ScalarNode:
		if n.Tag == TupleTag {
			return nil, fmt.Errorf("line %d: %s applies to sequences", n.Line, TupleTag)
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// encodeNode encodes v into n. Arrays, tuples included, are tagged !tuple
// so that they decode back to a single value.
func encodeNode(n *yaml.Node, v any) error {
	if v == nil {
		*n = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array, reflect.Slice:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		*n = yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		if rv.Kind() == reflect.Array {
			n.Tag = TupleTag
		}
		for i := range rv.Len() {
			var c yaml.Node
			if err := encodeNode(&c, rv.Index(i).Interface()); err != nil {
				return err
			}
			n.Content = append(n.Content, &c)
		}
		return nil
	}
	return n.Encode(v)
}
