package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInject(t *testing.T) {
	t.Parallel()

	base := Headers{{Name: "Content-Type", Value: ContentTypeJSON}}
	tests := []struct {
		name  string
		auth  *Auth
		key   string
		value string
	}{
		{"bearer", &Auth{Type: AuthBearer, Value: "tok"}, "Authorization", "Bearer tok"},
		{"oauth2", &Auth{Type: AuthOAuth2, Value: "tok"}, "Authorization", "Bearer tok"},
		{"api key", &Auth{Type: AuthAPIKey, Value: "k1"}, "X-API-Key", "k1"},
		{"basic", &Auth{Type: AuthBasic, Value: "user:pass"}, "Authorization", "Basic dXNlcjpwYXNz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inject(base, tt.auth)
			v, ok := got.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.value, v)
			assert.Len(t, base, 1, "input must not be modified")
		})
	}
}

func TestInjectPassThrough(t *testing.T) {
	t.Parallel()

	base := Headers{{Name: "X-Trace", Value: "1"}}
	assert.Equal(t, base, Inject(base, nil))
	assert.Equal(t, base, Inject(base, &Auth{Type: AuthBearer}))
	assert.Equal(t, base, Inject(base, &Auth{Type: "digest", Value: "x"}))
}

func TestInjectOverridesExistingAuthorization(t *testing.T) {
	t.Parallel()

	base := Headers{{Name: "Authorization", Value: "old"}, {Name: "Accept", Value: "*/*"}}
	got := Inject(base, &Auth{Type: AuthBearer, Value: "new"})
	assert.Equal(t, Headers{{Name: "Authorization", Value: "Bearer new"}, {Name: "Accept", Value: "*/*"}}, got)
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	got := WithDefaults(nil)
	assert.Equal(t, Headers{{Name: "Content-Type", Value: ContentTypeJSON}}, got)

	got = WithDefaults(Headers{{Name: "Accept", Value: "text/plain"}, {Name: "Content-Type", Value: "text/xml"}})
	assert.Equal(t, Headers{
		{Name: "Content-Type", Value: "text/xml"},
		{Name: "Accept", Value: "text/plain"},
	}, got)

	// Header identity is case-sensitive.
	got = WithDefaults(Headers{{Name: "content-type", Value: "text/xml"}})
	assert.Len(t, got, 2)
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	d := Prepare(Descriptor{Method: "get", URL: "https://api.test/pets"}, &Auth{Type: AuthAPIKey, Value: "secret"})
	assert.Equal(t, Headers{
		{Name: "Content-Type", Value: ContentTypeJSON},
		{Name: "X-API-Key", Value: "secret"},
	}, d.Headers)
	assert.Equal(t, "GET", d.NormalizedMethod())
}

func TestPayload(t *testing.T) {
	t.Parallel()

	_, ok := Descriptor{Method: "GET", Body: `{"a":1}`}.Payload()
	assert.False(t, ok, "GET carries no body")

	_, ok = Descriptor{Method: "POST"}.Payload()
	assert.False(t, ok, "empty body is absent")

	p, ok := Descriptor{Method: "patch", Body: `{"a":1}`}.Payload()
	require.True(t, ok)
	assert.True(t, p.JSON)

	p, ok = Descriptor{Method: "PUT", Body: "name=x"}.Payload()
	require.True(t, ok)
	assert.False(t, p.JSON)
	assert.Equal(t, "name=x", p.Raw)
}

func TestParseAuthType(t *testing.T) {
	t.Parallel()

	at, err := ParseAuthType(" Bearer ")
	require.NoError(t, err)
	assert.Equal(t, AuthBearer, at)

	_, err = ParseAuthType("digest")
	assert.Error(t, err)
}

func TestParseHeader(t *testing.T) {
	t.Parallel()

	h, err := ParseHeader("X-Request-Id:  abc:def ")
	require.NoError(t, err)
	assert.Equal(t, Header{Name: "X-Request-Id", Value: "abc:def"}, h)

	_, err = ParseHeader("novalue")
	assert.Error(t, err)
	_, err = ParseHeader(": value")
	assert.Error(t, err)
}

func TestHeadersJSON(t *testing.T) {
	t.Parallel()

	var h Headers
	require.NoError(t, json.Unmarshal([]byte(`{"Z-Last":"1","A-First":"2","n":3}`), &h))
	assert.Equal(t, Headers{{"Z-Last", "1"}, {"A-First", "2"}, {"n", "3"}}, h)

	out, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `{"Z-Last":"1","A-First":"2","n":"3"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`[{"name":"B","value":"1"},{"name":"A","value":"2"}]`), &h))
	assert.Equal(t, Headers{{"B", "1"}, {"A", "2"}}, h)
}

func TestHeadersYAML(t *testing.T) {
	t.Parallel()

	var cfg struct {
		Headers Headers `yaml:"headers"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("headers:\n  Zed: one\n  Alpha: two\n"), &cfg))
	assert.Equal(t, Headers{{"Zed", "one"}, {"Alpha", "two"}}, cfg.Headers)
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	params := []Param{
		{Name: "petId", In: "path", Value: "a b/c"},
		{Name: "limit", In: "query", Value: "10"},
		{Name: "q", In: "query", Value: "it's (ok)*!"},
		{Name: "skip", In: "query", Value: ""},
		{Name: "X-Trace", In: "header", Value: "1"},
	}
	got := BuildURL("https://api.test/pets/{petId}/{petId}", params)
	assert.Equal(t, "https://api.test/pets/a%20b%2Fc/{petId}?limit=10&q=it's%20(ok)*!", got)

	assert.Equal(t, "https://api.test/pets", BuildURL("https://api.test/pets", nil))
}

func TestJoinURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://api.test/v1/pets", JoinURL("https://api.test/v1/", "/pets"))
	assert.Equal(t, "/pets", JoinURL("", "/pets"))
	assert.Equal(t, "https://api.test", JoinURL("https://api.test", ""))
}
