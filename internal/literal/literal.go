// Package literal renders strings and JSON-shaped values as source literals of
// the snippet target languages.
package literal

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
)

// Language identifies a literal grammar.
type Language string

const (
	JavaScript Language = "javascript"
	Python     Language = "python"
	Ruby       Language = "ruby"
	Go         Language = "go"
	JSON       Language = "json"
)

// DefaultMaxDepth bounds recursion in Serialize.
const DefaultMaxDepth = 64

const indentUnit = "  "

// Grammar describes how one language spells literals.
type Grammar struct {
	// Delimiter quotes string literals.
	Delimiter string
	Null      string
	True      string
	False     string

	ObjectOpen  string
	ObjectClose string
	ArrayOpen   string
	ArrayClose  string
	// KeySeparator sits between a quoted key and its value.
	KeySeparator string
	// TrailingComma terminates the last element of a multi-line block.
	TrailingComma bool
}

var grammars = map[Language]Grammar{
	JavaScript: {
		Delimiter: "'", Null: "null", True: "true", False: "false",
		ObjectOpen: "{", ObjectClose: "}", ArrayOpen: "[", ArrayClose: "]",
		KeySeparator: ": ",
	},
	Python: {
		Delimiter: `"`, Null: "None", True: "True", False: "False",
		ObjectOpen: "{", ObjectClose: "}", ArrayOpen: "[", ArrayClose: "]",
		KeySeparator: ": ",
	},
	Ruby: {
		Delimiter: `"`, Null: "nil", True: "true", False: "false",
		ObjectOpen: "{", ObjectClose: "}", ArrayOpen: "[", ArrayClose: "]",
		KeySeparator: " => ",
	},
	Go: {
		Delimiter: `"`, Null: "nil", True: "true", False: "false",
		ObjectOpen: "map[string]any{", ObjectClose: "}", ArrayOpen: "[]any{", ArrayClose: "}",
		KeySeparator: ": ", TrailingComma: true,
	},
	JSON: {
		Delimiter: `"`, Null: "null", True: "true", False: "false",
		ObjectOpen: "{", ObjectClose: "}", ArrayOpen: "[", ArrayClose: "]",
		KeySeparator: ": ",
	},
}

// GrammarFor returns the grammar for lang.
func GrammarFor(lang Language) (Grammar, bool) {
	g, ok := grammars[lang]
	return g, ok
}

func grammarOrJSON(lang Language) Grammar {
	if g, ok := grammars[lang]; ok {
		return g
	}
	return grammars[JSON]
}

// Escape makes raw safe to place between lang's string delimiters.
func Escape(raw string, lang Language) string {
	return grammarOrJSON(lang).Escape(raw)
}

// Escape replaces backslashes, then delimiters, then newlines. The order
// matters: backslashes introduced by later steps must not be doubled.
func (g Grammar) Escape(raw string) string {
	s := strings.ReplaceAll(raw, `\`, `\\`)
	s = strings.ReplaceAll(s, g.Delimiter, `\`+g.Delimiter)
	return strings.ReplaceAll(s, "\n", `\n`)
}

// Quote returns raw as a complete string literal.
func (g Grammar) Quote(raw string) string {
	return g.Delimiter + g.Escape(raw) + g.Delimiter
}

// Quote returns raw as a complete lang string literal.
func Quote(raw string, lang Language) string {
	return grammarOrJSON(lang).Quote(raw)
}

// Serialize renders v as a lang literal. Nested lines are indented relative
// to indent levels of two spaces; the first line carries no indentation.
func Serialize(v any, lang Language, indent int) string {
	return SerializeDepth(v, lang, indent, DefaultMaxDepth)
}

// SerializeDepth is Serialize with an explicit nesting bound. Values nested
// deeper than maxDepth render as the language's null.
func SerializeDepth(v any, lang Language, indent, maxDepth int) string {
	var b strings.Builder
	grammarOrJSON(lang).write(&b, v, indent, 0, maxDepth)
	return b.String()
}

func (g Grammar) write(b *strings.Builder, v any, indent, depth, maxDepth int) {
	if depth > maxDepth {
		b.WriteString(g.Null)
		return
	}
	switch t := v.(type) {
	case nil:
		b.WriteString(g.Null)
	case bool:
		if t {
			b.WriteString(g.True)
		} else {
			b.WriteString(g.False)
		}
	case string:
		b.WriteString(g.Quote(t))
	case json.Number:
		if t == "" {
			b.WriteString("0")
		} else {
			b.WriteString(string(t))
		}
	case float64:
		g.writeFloat(b, t)
	case float32:
		g.writeFloat(b, float64(t))
	case int:
		b.WriteString(strconv.Itoa(t))
	case int32:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case uint64:
		b.WriteString(strconv.FormatUint(t, 10))
	case *jsonvalue.Object:
		if t == nil {
			b.WriteString(g.Null)
			return
		}
		members := t.Members()
		g.block(b, g.ObjectOpen, g.ObjectClose, len(members), indent, func(i int) {
			b.WriteString(g.Quote(members[i].Key))
			b.WriteString(g.KeySeparator)
			g.write(b, members[i].Value, indent+1, depth+1, maxDepth)
		})
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		g.block(b, g.ObjectOpen, g.ObjectClose, len(keys), indent, func(i int) {
			b.WriteString(g.Quote(keys[i]))
			b.WriteString(g.KeySeparator)
			g.write(b, t[keys[i]], indent+1, depth+1, maxDepth)
		})
	case []any:
		g.block(b, g.ArrayOpen, g.ArrayClose, len(t), indent, func(i int) {
			g.write(b, t[i], indent+1, depth+1, maxDepth)
		})
	default:
		b.WriteString(g.Quote(fmt.Sprint(t)))
	}
}

func (g Grammar) writeFloat(b *strings.Builder, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		b.WriteString(g.Null)
		return
	}
	b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

func (g Grammar) block(b *strings.Builder, open, close string, n, indent int, element func(i int)) {
	if n == 0 {
		b.WriteString(open)
		b.WriteString(close)
		return
	}
	inner := strings.Repeat(indentUnit, indent+1)
	b.WriteString(open)
	b.WriteString("\n")
	for i := 0; i < n; i++ {
		b.WriteString(inner)
		element(i)
		if i < n-1 || g.TrailingComma {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(indentUnit, indent))
	b.WriteString(close)
}
