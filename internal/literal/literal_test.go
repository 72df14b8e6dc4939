package literal

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
)

func TestEscapeOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang Language
		in   string
		want string
	}{
		{JavaScript, `it's`, `it\'s`},
		{JavaScript, `a\b`, `a\\b`},
		{JavaScript, `\'`, `\\\'`},
		{JavaScript, "line1\nline2", `line1\nline2`},
		{JavaScript, `say "hi"`, `say "hi"`},
		{Python, `say "hi"`, `say \"hi\"`},
		{Python, `it's`, `it's`},
		{Ruby, `C:\tmp "x"`, `C:\\tmp \"x\"`},
		{Go, "\\\"\n", `\\\"\n`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in, tt.lang), "%s %q", tt.lang, tt.in)
	}
}

func TestEscapeLeavesOtherCharacters(t *testing.T) {
	t.Parallel()

	in := "tab\there ünïcode $ # {}"
	assert.Equal(t, in, Escape(in, JavaScript))
	assert.Equal(t, in, Escape(in, Python))
}

func TestSerializeEmptyContainers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{}", Serialize(jsonvalue.NewObject(), JavaScript, 0))
	assert.Equal(t, "[]", Serialize([]any{}, Python, 3))
	assert.Equal(t, "map[string]any{}", Serialize(map[string]any{}, Go, 0))
	assert.Equal(t, "[]any{}", Serialize([]any{}, Go, 0))
}

func TestSerializeScalars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "None", Serialize(nil, Python, 0))
	assert.Equal(t, "nil", Serialize(nil, Ruby, 0))
	assert.Equal(t, "null", Serialize(nil, JavaScript, 0))
	assert.Equal(t, "True", Serialize(true, Python, 0))
	assert.Equal(t, "false", Serialize(false, Ruby, 0))
	assert.Equal(t, "42", Serialize(json.Number("42"), Ruby, 0))
	assert.Equal(t, "1.5", Serialize(1.5, JavaScript, 0))
	assert.Equal(t, `'it\'s'`, Serialize("it's", JavaScript, 0))
}

func TestSerializeNestedObject(t *testing.T) {
	t.Parallel()

	v, err := jsonvalue.DecodeString(`{"name":"Fluffy","tags":["a","b"],"owner":{"id":1,"vip":false},"note":null}`)
	require.NoError(t, err)

	want := "{\n" +
		"  \"name\": \"Fluffy\",\n" +
		"  \"tags\": [\n" +
		"    \"a\",\n" +
		"    \"b\"\n" +
		"  ],\n" +
		"  \"owner\": {\n" +
		"    \"id\": 1,\n" +
		"    \"vip\": False\n" +
		"  },\n" +
		"  \"note\": None\n" +
		"}"
	assert.Equal(t, want, Serialize(v, Python, 0))
}

func TestSerializeRubyAndGoSyntax(t *testing.T) {
	t.Parallel()

	v, err := jsonvalue.DecodeString(`{"a":[true],"b":null}`)
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"a\" => [\n    true\n  ],\n  \"b\" => nil\n}", Serialize(v, Ruby, 0))
	assert.Equal(t, "map[string]any{\n  \"a\": []any{\n    true,\n  },\n  \"b\": nil,\n}", Serialize(v, Go, 0))
}

func TestSerializeIndentOffsetsClosingBrace(t *testing.T) {
	t.Parallel()

	obj := jsonvalue.NewObject()
	obj.Set("k", "v")
	assert.Equal(t, "{\n    'k': 'v'\n  }", Serialize(obj, JavaScript, 1))
}

func TestSerializeDepthBound(t *testing.T) {
	t.Parallel()

	v, err := jsonvalue.DecodeString(`{"a":{"b":{"c":1}}}`)
	require.NoError(t, err)

	got := SerializeDepth(v, JSON, 0, 1)
	assert.Equal(t, "{\n  \"a\": {\n    \"b\": null\n  }\n}", got)
}

func TestSerializeJSONGrammarRoundTrips(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"z":1,"a":"x\ny","q":"say \"hi\"","p":"back\\slash","nested":{"list":[1,2.5,true,null,{}]},"empty":[]}`,
		`["it's",{"k":"v"}]`,
		`"plain"`,
	}
	for _, in := range inputs {
		v, err := jsonvalue.DecodeString(in)
		require.NoError(t, err)

		rendered := Serialize(v, JSON, 0)
		back, err := jsonvalue.DecodeString(rendered)
		require.NoError(t, err, "rendered:\n%s", rendered)

		want, _ := jsonvalue.Compact(v)
		got, _ := jsonvalue.Compact(back)
		assert.Equal(t, want, got)
	}
}

func TestSerializeSourceGrammarsRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"z":1,"a":"x\ny","q":"say \"hi\"","s":"it's","p":"back\\slash","nested":{"list":[1,-2.5,1e3,true,false,null,{}]},"empty":[]}`,
		`[{"k":"v","none":null},"é ✓",["\\'\""]]`,
	}
	for _, lang := range []Language{JavaScript, Python, Ruby} {
		g, ok := GrammarFor(lang)
		require.True(t, ok)
		for _, in := range inputs {
			v, err := jsonvalue.DecodeString(in)
			require.NoError(t, err)

			rendered := Serialize(v, lang, 1)
			back, err := jsonvalue.DecodeString(literalToJSON(t, g, rendered))
			require.NoError(t, err, "%s rendered:\n%s", lang, rendered)

			want, _ := jsonvalue.Compact(v)
			got, _ := jsonvalue.Compact(back)
			assert.Equal(t, want, got, "%s rendered:\n%s", lang, rendered)
		}
	}
}

// literalToJSON reads a literal written in grammar g back as JSON text. It
// undoes the three escapes, swaps keyword spellings and turns "=>" into ":".
func literalToJSON(t *testing.T, g Grammar, src string) string {
	t.Helper()
	var out strings.Builder
	delim := g.Delimiter[0]
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == delim:
			var raw strings.Builder
			i++
			for ; i < len(src) && src[i] != delim; i++ {
				if src[i] != '\\' {
					raw.WriteByte(src[i])
					continue
				}
				i++
				require.Less(t, i, len(src), "dangling escape in %q", src)
				switch src[i] {
				case 'n':
					raw.WriteByte('\n')
				case '\\', delim:
					raw.WriteByte(src[i])
				default:
					t.Fatalf("unexpected escape \\%c in %q", src[i], src)
				}
			}
			require.Less(t, i, len(src), "unterminated string in %q", src)
			i++
			quoted, err := json.Marshal(raw.String())
			require.NoError(t, err)
			out.Write(quoted)
		case c == '=' && strings.HasPrefix(src[i:], "=>"):
			out.WriteByte(':')
			i += 2
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
			j := i
			for j < len(src) && (src[j] >= 'a' && src[j] <= 'z' || src[j] >= 'A' && src[j] <= 'Z') {
				j++
			}
			switch src[i:j] {
			case g.Null:
				out.WriteString("null")
			case g.True:
				out.WriteString("true")
			case g.False:
				out.WriteString("false")
			default:
				t.Fatalf("unexpected word %q in %q", src[i:j], src)
			}
			i = j
		case c == '-' || c >= '0' && c <= '9':
			j := i + 1
			for j < len(src) && strings.IndexByte("0123456789.eE+-", src[j]) >= 0 {
				j++
			}
			out.WriteString(src[i:j])
			i = j
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

func TestSerializeUnknownLanguageFallsBackToJSON(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"x"`, Serialize("x", Language("cobol"), 0))
	_, ok := GrammarFor(Language("cobol"))
	assert.False(t, ok)
}

func TestSerializeFallsBackToStringForOtherTypes(t *testing.T) {
	t.Parallel()

	type point struct{ X, Y int }
	assert.Equal(t, `"{1 2}"`, Serialize(point{1, 2}, Python, 0))
}
