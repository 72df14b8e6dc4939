// Package example builds representative example values from schemas.
package example

import (
	"encoding/json"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
	"github.com/mark3labs/swagger2snippet/internal/spec"
)

// DefaultMaxDepth bounds recursion through nested schemas.
const DefaultMaxDepth = 32

// Synthesize returns an example value for schema.
func Synthesize(schema *spec.SchemaNode) any {
	return SynthesizeDepth(schema, 0, DefaultMaxDepth)
}

// MaxNodes caps how many schema nodes a single synthesis visits. Schemas
// that share subtrees can otherwise expand exponentially within the depth
// bound.
const MaxNodes = 10000

// SynthesizeDepth returns an example for schema found at depth. Anything
// nested deeper than maxDepth becomes nil. A schema reached again through
// its own properties or items becomes nil at the point of re-entry, and once
// MaxNodes schemas have been visited the remaining ones become nil too.
//
// A declared example is returned as is. Objects with properties and arrays
// with items recurse; other schemas get a placeholder for their type.
func SynthesizeDepth(schema *spec.SchemaNode, depth, maxDepth int) any {
	s := synthesizer{
		maxDepth: maxDepth,
		budget:   MaxNodes,
		active:   map[*spec.SchemaNode]bool{},
	}
	return s.value(schema, depth)
}

type synthesizer struct {
	maxDepth int
	budget   int
	// active holds the schemas on the current expansion path.
	active map[*spec.SchemaNode]bool
}

func (s *synthesizer) value(schema *spec.SchemaNode, depth int) any {
	if schema == nil || depth > s.maxDepth || s.active[schema] || s.budget <= 0 {
		return nil
	}
	s.budget--
	if schema.HasExample {
		return schema.Example
	}
	switch {
	case schema.Type == "object" && schema.HasProperties():
		s.active[schema] = true
		defer delete(s.active, schema)
		obj := jsonvalue.NewObject()
		for _, p := range schema.Properties {
			obj.Set(p.Name, s.value(p.Schema, depth+1))
		}
		return obj
	case schema.Type == "array" && schema.Items != nil:
		s.active[schema] = true
		defer delete(s.active, schema)
		return []any{s.value(schema.Items, depth+1)}
	}
	switch schema.Type {
	case "string":
		if len(schema.Enum) > 0 {
			return schema.Enum[0]
		}
		return "string"
	case "number", "integer":
		return json.Number("0")
	case "boolean":
		return false
	case "array":
		return []any{}
	case "object":
		return jsonvalue.NewObject()
	}
	return nil
}

// ForMedia returns the media-level example when one is declared and
// synthesizes one from the schema otherwise.
func ForMedia(m spec.Media) any {
	if m.Example != nil {
		return m.Example
	}
	return Synthesize(m.Schema)
}
