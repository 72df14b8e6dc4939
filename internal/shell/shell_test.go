package shell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagger2snippet/internal/request"
)

func samplePost() request.Descriptor {
	return request.Prepare(request.Descriptor{
		Method: "post",
		URL:    "https://api.test/pets",
		Body:   "{\n  \"name\": \"Fluffy\",\n  \"age\": 3\n}",
	}, &request.Auth{Type: request.AuthBearer, Value: "tok"})
}

func TestFormatMultiline(t *testing.T) {
	t.Parallel()

	want := "curl -X POST \\\n" +
		"  \"https://api.test/pets\" \\\n" +
		"  -H \"Content-Type: application/json\" \\\n" +
		"  -H \"Authorization: Bearer tok\" \\\n" +
		"  -d '{\"name\":\"Fluffy\",\"age\":3}'"
	assert.Equal(t, want, Format(samplePost(), Multiline))
}

func TestFormatSingle(t *testing.T) {
	t.Parallel()

	want := `curl -X POST "https://api.test/pets" -H "Content-Type: application/json" -H "Authorization: Bearer tok" -d '{"name":"Fluffy","age":3}'`
	assert.Equal(t, want, Format(samplePost(), Single))
}

func TestFormatEscaped(t *testing.T) {
	t.Parallel()

	got := Format(samplePost(), Escaped)
	assert.True(t, strings.HasPrefix(got, `"curl -X POST" "\"https://api.test/pets\"" "-H \"Content-Type: application/json\""`), got)
	assert.True(t, strings.HasSuffix(got, `"-d '{\"name\":\"Fluffy\",\"age\":3}'"`), got)
}

func TestCurlStylesShareTokens(t *testing.T) {
	t.Parallel()

	req := samplePost()
	multi := Format(req, Multiline)
	single := Format(req, Single)

	for _, tok := range curlTokens(req) {
		assert.Contains(t, multi, tok)
		assert.Contains(t, single, tok)
		assert.Contains(t, Format(req, Escaped), `"`+escapeDoubleQuoted(tok)+`"`)
	}
	assert.Equal(t, len(curlTokens(req))-1, strings.Count(multi, " \\\n  "))
}

func TestFormatNonJSONBodyVerbatim(t *testing.T) {
	t.Parallel()

	req := request.Descriptor{Method: "PUT", URL: "https://api.test/x", Body: "name=a b"}
	assert.Equal(t, `curl -X PUT "https://api.test/x" -d 'name=a b'`, Format(req, Single))
}

func TestFormatOmitsBodyForGet(t *testing.T) {
	t.Parallel()

	req := request.Descriptor{Method: "", URL: "https://api.test/x", Body: `{"a":1}`}
	assert.Equal(t, `curl -X GET "https://api.test/x"`, Format(req, Single))
}

func TestFormatPowerShell(t *testing.T) {
	t.Parallel()

	req := request.Descriptor{
		Method:  "post",
		URL:     "https://api.test/pets?q=it's",
		Headers: request.Headers{{Name: "X-Note", Value: "it's"}},
		Body:    `{"name": "O'Brien"}`,
	}
	want := "$headers = @{\n" +
		"    'X-Note' = 'it''s'\n" +
		"}\n" +
		"$body = '{\"name\":\"O''Brien\"}'\n" +
		"\n" +
		"Invoke-WebRequest -Uri 'https://api.test/pets?q=it''s' -Method POST -Headers $headers -Body $body -ContentType 'application/json'"
	assert.Equal(t, want, Format(req, PowerShell))
}

func TestFormatPowerShellWithoutBody(t *testing.T) {
	t.Parallel()

	got := Format(request.Descriptor{Method: "delete", URL: "https://api.test/pets/1"}, PowerShell)
	assert.Equal(t, "$headers = @{\n}\n\nInvoke-WebRequest -Uri 'https://api.test/pets/1' -Method DELETE -Headers $headers", got)
}

func TestParseStyleAndDownloadMetadata(t *testing.T) {
	t.Parallel()

	st, err := ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, Multiline, st)

	st, err = ParseStyle("PowerShell")
	require.NoError(t, err)
	assert.Equal(t, PowerShell, st)
	assert.Equal(t, "text/plain", st.MIMEType())
	assert.Equal(t, ".ps1", st.Extension())

	for _, s := range []Style{Multiline, Single, Escaped} {
		assert.Equal(t, "text/x-sh", s.MIMEType())
		assert.Equal(t, ".sh", s.Extension())
	}

	_, err = ParseStyle("fish")
	assert.Error(t, err)
}
