package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
)

// Header is a single header name/value pair.
type Header struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Headers is an ordered header mapping. Names are compared case-sensitively,
// so "content-type" and "Content-Type" are distinct entries.
type Headers []Header

// Get returns the value stored under name.
func (h Headers) Get(name string) (string, bool) {
	for _, e := range h {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Set stores value under name. An existing entry keeps its position.
func (h *Headers) Set(name, value string) {
	for i := range *h {
		if (*h)[i].Name == name {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, Header{Name: name, Value: value})
}

// Clone returns an independent copy.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	out := make(Headers, len(h))
	copy(out, h)
	return out
}

// ParseHeader parses "Name: value".
func ParseHeader(s string) (Header, error) {
	name, value, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Header{}, fmt.Errorf("invalid header %q (expected \"Name: value\")", s)
	}
	return Header{Name: name, Value: strings.TrimSpace(value)}, nil
}

// MarshalJSON encodes the headers as a JSON object in order.
func (h Headers) MarshalJSON() ([]byte, error) {
	obj := jsonvalue.NewObject()
	for _, e := range h {
		obj.Set(e.Name, e.Value)
	}
	return obj.MarshalJSON()
}

// UnmarshalJSON accepts either an object of string values (order kept) or a
// list of {"name","value"} entries.
func (h *Headers) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*h = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Header
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*h = nil
		for _, e := range list {
			h.Set(e.Name, e.Value)
		}
		return nil
	}
	v, err := jsonvalue.Decode(trimmed)
	if err != nil {
		return err
	}
	obj, ok := v.(*jsonvalue.Object)
	if !ok {
		return fmt.Errorf("headers: expected object, got %T", v)
	}
	*h = nil
	for _, m := range obj.Members() {
		h.Set(m.Key, headerValue(m.Value))
	}
	return nil
}

// UnmarshalYAML accepts a mapping (order kept) or a sequence of name/value entries.
func (h *Headers) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		*h = nil
		for i := 0; i+1 < len(node.Content); i += 2 {
			var name, value string
			if err := node.Content[i].Decode(&name); err != nil {
				return err
			}
			if err := node.Content[i+1].Decode(&value); err != nil {
				return fmt.Errorf("header %q: %w", name, err)
			}
			h.Set(name, value)
		}
		return nil
	case yaml.SequenceNode:
		var list []Header
		if err := node.Decode(&list); err != nil {
			return err
		}
		*h = nil
		for _, e := range list {
			h.Set(e.Name, e.Value)
		}
		return nil
	}
	return fmt.Errorf("headers: line %d: expected mapping or sequence", node.Line)
}

func headerValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	s, err := jsonvalue.Compact(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
