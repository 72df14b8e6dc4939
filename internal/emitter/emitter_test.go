package emitter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagger2snippet/internal/request"
)

func samplePost() request.Descriptor {
	return request.Prepare(request.Descriptor{
		Method: "POST",
		URL:    "https://api.test/pets",
		Body:   `{"name":"Fluffy"}`,
	}, &request.Auth{Type: request.AuthBearer, Value: "tok"})
}

func TestCatalogOrderAndVariants(t *testing.T) {
	t.Parallel()

	var ids []string
	for _, l := range Languages() {
		ids = append(ids, l.ID)
		assert.NotEmpty(t, l.Variants, l.ID)
		assert.NotEmpty(t, l.DisplayName, l.ID)
	}
	assert.Equal(t, []string{"javascript", "python", "ruby", "php", "go", "java", "csharp", "swift", "kotlin"}, ids)

	js, ok := Lookup(" JavaScript ")
	require.True(t, ok)
	assert.Equal(t, []string{"fetch", "axios"}, js.Variants)
	assert.Equal(t, "fetch", js.DefaultVariant())
}

func TestLanguagesReturnsCopies(t *testing.T) {
	t.Parallel()

	langs := Languages()
	langs[0].Variants[0] = "mutated"
	js, _ := Lookup("javascript")
	assert.Equal(t, "fetch", js.Variants[0])
}

func TestSupported(t *testing.T) {
	t.Parallel()

	s := Supported()
	assert.Len(t, s, 9)
	assert.Equal(t, CatalogEntry{Name: "Python", Variants: []string{"requests", "httpx"}, Implemented: true}, s["python"])
	assert.False(t, s["kotlin"].Implemented)
	assert.Equal(t, "C#", s["csharp"].Name)
}

func TestGenerateEveryImplementedVariant(t *testing.T) {
	t.Parallel()

	req := samplePost()
	for _, l := range Languages() {
		if !l.Implemented() {
			continue
		}
		for _, v := range l.Variants {
			s, err := Generate(l.ID, v, req)
			require.NoError(t, err, "%s/%s", l.ID, v)
			assert.Equal(t, v, s.Variant)
			assert.NotEmpty(t, s.Code)
			assert.Contains(t, s.Code, "https://api.test/pets", "%s/%s", l.ID, v)
			assert.Contains(t, s.Code, "Fluffy", "%s/%s", l.ID, v)
			for _, h := range req.Headers {
				assert.Equal(t, 1, strings.Count(s.Code, h.Value), "%s/%s header %s", l.ID, v, h.Name)
			}
		}
	}
}

func TestGenerateUnknownVariantFallsBack(t *testing.T) {
	t.Parallel()

	req := samplePost()
	fallback, err := Generate("python", "urllib3", req)
	require.NoError(t, err)
	def, err := Generate("python", "requests", req)
	require.NoError(t, err)

	assert.Equal(t, "requests", fallback.Variant)
	assert.Equal(t, def.Code, fallback.Code)

	empty, err := Generate("ruby", "", req)
	require.NoError(t, err)
	assert.Equal(t, "net_http", empty.Variant)
}

func TestGenerateUnsupportedLanguage(t *testing.T) {
	t.Parallel()

	s, err := Generate("cobol", "", samplePost())
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
	assert.Contains(t, err.Error(), "cobol")

	res := GenerateResult("cobol", "", samplePost())
	assert.Empty(t, res.Code)
	assert.NotEmpty(t, res.Error)
}

func TestGenerateNotImplemented(t *testing.T) {
	t.Parallel()

	_, err := Generate("kotlin", "okhttp", samplePost())
	assert.ErrorIs(t, err, ErrNotImplemented)

	res := GenerateResult("swift", "", samplePost())
	assert.Empty(t, res.Code)
	assert.Contains(t, res.Error, "not implemented")
}

func TestGenerateResultSuccess(t *testing.T) {
	t.Parallel()

	res := GenerateResult("javascript", "axios", samplePost())
	assert.Empty(t, res.Error)
	assert.Contains(t, res.Code, "require('axios')")
}

func TestFileName(t *testing.T) {
	t.Parallel()

	name := FileName("post /pets/{petId}", &Snippet{Language: "ruby", Variant: "net_http"})
	assert.Equal(t, "post-pets-petid.ruby-net-http.rb", name)

	assert.Equal(t, "request.javascript-fetch.js", FileName("", &Snippet{Language: "javascript", Variant: "fetch"}))
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "snippet.py")
	require.NoError(t, WriteFile(path, []byte("print(1)\n"), false))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "print(1)\n", string(got))

	assert.Error(t, WriteFile(path, []byte("x"), false), "existing file without force")
	require.NoError(t, WriteFile(path, []byte("x"), true))

	assert.Error(t, WriteFile(filepath.Dir(path), []byte("x"), true), "directory target")
}
