package spec

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
)

// UnmarshalYAML decodes a schema fragment keeping property order.
func (s *SchemaNode) UnmarshalYAML(node *yaml.Node) error {
	v, err := jsonvalue.FromYAML(node)
	if err != nil {
		return err
	}
	return s.fromValue(v)
}

// UnmarshalJSON decodes a schema fragment keeping property order.
func (s *SchemaNode) UnmarshalJSON(data []byte) error {
	v, err := jsonvalue.Decode(data)
	if err != nil {
		return err
	}
	return s.fromValue(v)
}

// ParseSchema decodes a YAML or JSON schema fragment.
func ParseSchema(data []byte) (*SchemaNode, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	s := &SchemaNode{}
	if err := s.UnmarshalYAML(&node); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return s, nil
}

func (s *SchemaNode) fromValue(v any) error {
	if v == nil {
		*s = SchemaNode{}
		return nil
	}
	obj, ok := v.(*jsonvalue.Object)
	if !ok {
		return fmt.Errorf("schema must be an object, got %T", v)
	}
	*s = SchemaNode{}
	for _, m := range obj.Members() {
		switch m.Key {
		case "type":
			// OpenAPI 3.1 allows a list of types; the first non-null one wins.
			switch t := m.Value.(type) {
			case string:
				s.Type = t
			case []any:
				for _, e := range t {
					if name, ok := e.(string); ok && name != "null" {
						s.Type = name
						break
					}
				}
			}
		case "properties":
			props, ok := m.Value.(*jsonvalue.Object)
			if !ok {
				return fmt.Errorf("properties must be an object, got %T", m.Value)
			}
			s.Properties = make([]Property, 0, props.Len())
			for _, p := range props.Members() {
				child := &SchemaNode{}
				if err := child.fromValue(p.Value); err != nil {
					return fmt.Errorf("property %q: %w", p.Key, err)
				}
				s.Properties = append(s.Properties, Property{Name: p.Key, Schema: child})
			}
		case "items":
			child := &SchemaNode{}
			if err := child.fromValue(m.Value); err != nil {
				return fmt.Errorf("items: %w", err)
			}
			s.Items = child
		case "enum":
			if list, ok := m.Value.([]any); ok {
				s.Enum = list
			}
		case "example":
			s.Example = m.Value
			s.HasExample = true
		}
	}
	return nil
}

// schemaConverter turns kin-openapi schemas into SchemaNode graphs. Shared
// and recursive schemas map to the same node, so cycles survive as pointer
// cycles instead of unbounded expansion.
type schemaConverter struct {
	seen map[*openapi3.Schema]*SchemaNode
}

func newSchemaConverter() *schemaConverter {
	return &schemaConverter{seen: map[*openapi3.Schema]*SchemaNode{}}
}

func (c *schemaConverter) convert(ref *openapi3.SchemaRef) *SchemaNode {
	if ref == nil || ref.Value == nil {
		return nil
	}
	src := ref.Value
	if n, ok := c.seen[src]; ok {
		return n
	}
	n := &SchemaNode{Type: src.Type}
	c.seen[src] = n

	if src.Example != nil {
		n.Example = jsonvalue.FromNative(src.Example)
		n.HasExample = true
	}
	for _, e := range src.Enum {
		n.Enum = append(n.Enum, jsonvalue.FromNative(e))
	}
	n.Items = c.convert(src.Items)
	if src.Properties != nil {
		names := make([]string, 0, len(src.Properties))
		for name := range src.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		n.Properties = make([]Property, 0, len(names))
		for _, name := range names {
			n.Properties = append(n.Properties, Property{Name: name, Schema: c.convert(src.Properties[name])})
		}
	}
	for _, part := range src.AllOf {
		c.mergeAllOf(n, c.convert(part))
	}
	return n
}

// mergeAllOf folds an allOf member into n. Properties already on n win.
func (c *schemaConverter) mergeAllOf(n, part *SchemaNode) {
	if part == nil || part == n {
		return
	}
	if n.Type == "" {
		n.Type = part.Type
	}
	if !n.HasExample && part.HasExample {
		n.Example, n.HasExample = part.Example, true
	}
	for _, p := range part.Properties {
		if _, exists := n.Property(p.Name); exists {
			continue
		}
		n.Properties = append(n.Properties, p)
	}
	if n.Items == nil {
		n.Items = part.Items
	}
}

// ConvertSchema converts a single kin-openapi schema.
func ConvertSchema(ref *openapi3.SchemaRef) *SchemaNode {
	return newSchemaConverter().convert(ref)
}

// MarshalJSON renders the node in OpenAPI shape. Cycles are cut with an
// empty object.
func (s *SchemaNode) MarshalJSON() ([]byte, error) {
	v := s.toValue(map[*SchemaNode]bool{})
	out, err := jsonvalue.Compact(v)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (s *SchemaNode) toValue(active map[*SchemaNode]bool) any {
	obj := jsonvalue.NewObject()
	if s == nil || active[s] {
		return obj
	}
	active[s] = true
	defer delete(active, s)

	if s.Type != "" {
		obj.Set("type", s.Type)
	}
	if s.Properties != nil {
		props := jsonvalue.NewObject()
		for _, p := range s.Properties {
			props.Set(p.Name, p.Schema.toValue(active))
		}
		obj.Set("properties", props)
	}
	if s.Items != nil {
		obj.Set("items", s.Items.toValue(active))
	}
	if len(s.Enum) > 0 {
		obj.Set("enum", s.Enum)
	}
	if s.HasExample {
		obj.Set("example", s.Example)
	}
	return obj
}

var _ json.Marshaler = (*SchemaNode)(nil)
