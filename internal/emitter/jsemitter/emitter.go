// Package jsemitter renders JavaScript snippets using fetch or axios.
package jsemitter

import (
	"strings"

	"github.com/mark3labs/swagger2snippet/internal/literal"
	"github.com/mark3labs/swagger2snippet/internal/request"
)

const (
	Fetch = "fetch"
	Axios = "axios"
)

// Variants lists the supported client libraries; the first is the default.
var Variants = []string{Fetch, Axios}

// Emit renders req. Unknown variants render as fetch.
func Emit(variant string, req request.Descriptor) string {
	if variant == Axios {
		return axios(req)
	}
	return fetch(req)
}

func fetch(req request.Descriptor) string {
	var b strings.Builder
	body, bodyRef := payload(&b, req, "JSON.stringify(payload)")

	b.WriteString("const response = await fetch(" + quote(req.URL) + ", {\n")
	b.WriteString("  method: " + quote(req.NormalizedMethod()) + ",\n")
	b.WriteString("  headers: " + headersObject(req.Headers, "  "))
	if body {
		b.WriteString(",\n  body: " + bodyRef)
	}
	b.WriteString("\n});\n\n")
	b.WriteString("const data = await response.json();\n")
	b.WriteString("console.log(data);\n")
	return b.String()
}

func axios(req request.Descriptor) string {
	var b strings.Builder
	b.WriteString("const axios = require('axios');\n\n")
	body, bodyRef := payload(&b, req, "payload")

	b.WriteString("const response = await axios({\n")
	b.WriteString("  method: " + quote(strings.ToLower(req.NormalizedMethod())) + ",\n")
	b.WriteString("  url: " + quote(req.URL) + ",\n")
	b.WriteString("  headers: " + headersObject(req.Headers, "  "))
	if body {
		b.WriteString(",\n  data: " + bodyRef)
	}
	b.WriteString("\n});\n\n")
	b.WriteString("console.log(response.data);\n")
	return b.String()
}

// payload declares the body variable when the body is JSON and returns the
// expression the request should send.
func payload(b *strings.Builder, req request.Descriptor, jsonRef string) (bool, string) {
	p, ok := req.Payload()
	if !ok {
		return false, ""
	}
	if !p.JSON {
		return true, quote(p.Raw)
	}
	b.WriteString("const payload = " + literal.Serialize(p.Value, literal.JavaScript, 0) + ";\n\n")
	return true, jsonRef
}

func headersObject(h request.Headers, indent string) string {
	if len(h) == 0 {
		return "{}"
	}
	lines := make([]string, 0, len(h))
	for _, e := range h {
		lines = append(lines, indent+"  "+quote(e.Name)+": "+quote(e.Value))
	}
	return "{\n" + strings.Join(lines, ",\n") + "\n" + indent + "}"
}

func quote(s string) string {
	return literal.Quote(s, literal.JavaScript)
}
