package request

import (
	"net/url"
	"strings"
)

// Param is a value entered for an operation parameter.
type Param struct {
	Name  string `json:"name" yaml:"name"`
	In    string `json:"in" yaml:"in"` // path|query|header
	Value string `json:"value" yaml:"value"`
}

// BuildURL fills path placeholders and appends query parameters to template.
// Params with empty values are skipped. Only the first occurrence of each
// placeholder is replaced.
func BuildURL(template string, params []Param) string {
	u := template
	var query []string
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		switch p.In {
		case "path":
			u = strings.Replace(u, "{"+p.Name+"}", EscapeComponent(p.Value), 1)
		case "query":
			query = append(query, p.Name+"="+EscapeComponent(p.Value))
		}
	}
	if len(query) > 0 {
		u += "?" + strings.Join(query, "&")
	}
	return u
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent escapes s like ECMAScript encodeURIComponent.
func EscapeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}

// JoinURL joins a server base and an operation path with exactly one slash.
func JoinURL(base, path string) string {
	if base == "" {
		return path
	}
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
