package jsonvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

const maxAliasDepth = 64

// FromYAML converts a YAML node into the same value shapes Decode produces,
// keeping mapping order. Documents that use aliases are first decoded by
// yaml.v3 so its limit on alias expansion rejects alias bombs before they
// are expanded here.
func FromYAML(node *yaml.Node) (any, error) {
	if hasAlias(node) {
		var discard any
		if err := node.Decode(&discard); err != nil {
			return nil, fmt.Errorf("jsonvalue: %w", err)
		}
	}
	return fromYAML(node, 0)
}

func hasAlias(node *yaml.Node) bool {
	if node == nil {
		return false
	}
	if node.Kind == yaml.AliasNode {
		return true
	}
	for _, c := range node.Content {
		if hasAlias(c) {
			return true
		}
	}
	return false
}

func fromYAML(node *yaml.Node, aliases int) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAML(node.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return nil, fmt.Errorf("jsonvalue: alias nesting exceeds %d at line %d", maxAliasDepth, node.Line)
		}
		return fromYAML(node.Alias, aliases+1)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("jsonvalue: mapping key at line %d: %w", node.Content[i].Line, err)
			}
			val, err := fromYAML(node.Content[i+1], aliases)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, c := range node.Content {
			val, err := fromYAML(c, aliases)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalar(node)
	}
	return nil, fmt.Errorf("jsonvalue: unsupported YAML node kind %d", node.Kind)
}

func scalar(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case int:
		return json.Number(strconv.Itoa(t)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, nil
		}
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	}
	return v, nil
}

// FromNative converts values produced by encoding/json or yaml.v3 into the
// shapes of this package. Maps become objects with sorted keys.
func FromNative(v any) any {
	switch t := v.(type) {
	case map[string]any:
		obj := NewObject()
		for _, k := range sortedKeys(t) {
			obj.Set(k, FromNative(t[k]))
		}
		return obj
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = FromNative(e)
		}
		return out
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return json.Number(strconv.FormatInt(int64(t), 10))
		}
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	case int:
		return json.Number(strconv.Itoa(t))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	}
	return v
}
