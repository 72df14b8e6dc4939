// Package goemitter renders Go snippets using net/http.
package goemitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/swagger2snippet/internal/literal"
	"github.com/mark3labs/swagger2snippet/internal/request"
)

const NetHTTP = "net_http"

// Variants lists the supported client libraries.
var Variants = []string{NetHTTP}

// Emit renders req as a runnable main package.
func Emit(_ string, req request.Descriptor) string {
	imports := map[string]bool{"fmt": true, "io": true, "net/http": true}

	var body strings.Builder
	bodyArg := "nil"
	if p, ok := req.Payload(); ok {
		if p.JSON {
			imports["bytes"] = true
			imports["encoding/json"] = true
			fmt.Fprintf(&body, "\tpayload := %s\n", indentContinuation(literal.Serialize(p.Value, literal.Go, 0), "\t"))
			body.WriteString("\tbody, err := json.Marshal(payload)\n")
			body.WriteString(panicOnErr)
			body.WriteString("\n")
			bodyArg = "bytes.NewReader(body)"
		} else {
			imports["strings"] = true
			bodyArg = "strings.NewReader(" + quote(p.Raw) + ")"
		}
	}

	var b strings.Builder
	b.WriteString("package main\n\n")
	b.WriteString("import (\n")
	for _, imp := range sortedImports(imports) {
		fmt.Fprintf(&b, "\t%q\n", imp)
	}
	b.WriteString(")\n\n")
	b.WriteString("func main() {\n")
	b.WriteString(body.String())
	fmt.Fprintf(&b, "\treq, err := http.NewRequest(%s, %s, %s)\n", quote(req.NormalizedMethod()), quote(req.URL), bodyArg)
	b.WriteString(panicOnErr)
	for _, h := range req.Headers {
		fmt.Fprintf(&b, "\treq.Header[%s] = []string{%s}\n", quote(h.Name), quote(h.Value))
	}
	b.WriteString("\n")
	b.WriteString("\tresp, err := http.DefaultClient.Do(req)\n")
	b.WriteString(panicOnErr)
	b.WriteString("\tdefer resp.Body.Close()\n\n")
	b.WriteString("\tdata, err := io.ReadAll(resp.Body)\n")
	b.WriteString(panicOnErr)
	b.WriteString("\tfmt.Println(string(data))\n")
	b.WriteString("}\n")
	return b.String()
}

const panicOnErr = "\tif err != nil {\n\t\tpanic(err)\n\t}\n"

// indentContinuation prefixes every line after the first.
func indentContinuation(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}

func sortedImports(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for imp := range set {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}

func quote(s string) string {
	return literal.Quote(s, literal.Go)
}
