package goemitter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mark3labs/swagger2snippet/internal/request"
)

func TestEmitWithJSONBody(t *testing.T) {
	t.Parallel()

	req := request.Descriptor{
		Method:  "post",
		URL:     "https://api.test/pets",
		Headers: request.Headers{{Name: "Content-Type", Value: "application/json"}},
		Body:    `{"name":"Fluffy","tags":["a"]}`,
	}
	want := "package main\n\n" +
		"import (\n" +
		"\t\"bytes\"\n" +
		"\t\"encoding/json\"\n" +
		"\t\"fmt\"\n" +
		"\t\"io\"\n" +
		"\t\"net/http\"\n" +
		")\n\n" +
		"func main() {\n" +
		"\tpayload := map[string]any{\n" +
		"\t  \"name\": \"Fluffy\",\n" +
		"\t  \"tags\": []any{\n" +
		"\t    \"a\",\n" +
		"\t  },\n" +
		"\t}\n" +
		"\tbody, err := json.Marshal(payload)\n" +
		"\tif err != nil {\n\t\tpanic(err)\n\t}\n\n" +
		"\treq, err := http.NewRequest(\"POST\", \"https://api.test/pets\", bytes.NewReader(body))\n" +
		"\tif err != nil {\n\t\tpanic(err)\n\t}\n" +
		"\treq.Header[\"Content-Type\"] = []string{\"application/json\"}\n\n" +
		"\tresp, err := http.DefaultClient.Do(req)\n" +
		"\tif err != nil {\n\t\tpanic(err)\n\t}\n" +
		"\tdefer resp.Body.Close()\n\n" +
		"\tdata, err := io.ReadAll(resp.Body)\n" +
		"\tif err != nil {\n\t\tpanic(err)\n\t}\n" +
		"\tfmt.Println(string(data))\n" +
		"}\n"
	assert.Equal(t, want, Emit(NetHTTP, req))
}

func TestEmitGetWithoutBody(t *testing.T) {
	t.Parallel()

	got := Emit("", request.Descriptor{URL: "https://api.test/pets"})
	assert.Contains(t, got, `req, err := http.NewRequest("GET", "https://api.test/pets", nil)`)
	assert.NotContains(t, got, `"bytes"`)
	assert.NotContains(t, got, `"strings"`)
}

func TestEmitRawBody(t *testing.T) {
	t.Parallel()

	got := Emit(NetHTTP, request.Descriptor{Method: "PUT", URL: "https://api.test", Body: "a\nb"})
	assert.Contains(t, got, `strings.NewReader("a\nb")`)
	assert.Contains(t, got, "\t\"strings\"\n")
}

func TestEmitKeepsHeaderNameCase(t *testing.T) {
	t.Parallel()

	got := Emit(NetHTTP, request.Descriptor{
		URL: "https://api.test",
		Headers: request.Headers{
			{Name: "Content-Type", Value: "application/json"},
			{Name: "content-type", Value: "text/plain"},
			{Name: "x-api-key", Value: "k"},
		},
	})
	assert.Contains(t, got, "\treq.Header[\"Content-Type\"] = []string{\"application/json\"}\n")
	assert.Contains(t, got, "\treq.Header[\"content-type\"] = []string{\"text/plain\"}\n")
	assert.Contains(t, got, "\treq.Header[\"x-api-key\"] = []string{\"k\"}\n")
	assert.NotContains(t, got, "Header.Set")
}
