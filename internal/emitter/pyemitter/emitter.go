// Package pyemitter renders Python snippets using requests or httpx.
package pyemitter

import (
	"fmt"
	"strings"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
	"github.com/mark3labs/swagger2snippet/internal/literal"
	"github.com/mark3labs/swagger2snippet/internal/request"
)

const (
	Requests = "requests"
	HTTPX    = "httpx"
)

// Variants lists the supported client libraries; the first is the default.
var Variants = []string{Requests, HTTPX}

// Methods with a module-level helper in both libraries.
var shortcutMethods = map[string]bool{
	"get": true, "post": true, "put": true, "patch": true,
	"delete": true, "head": true, "options": true,
}

// Emit renders req. Unknown variants render as requests.
func Emit(variant string, req request.Descriptor) string {
	var b strings.Builder
	lib := Requests
	if variant == HTTPX {
		lib = HTTPX
	}
	fmt.Fprintf(&b, "import %s\n\n", lib)
	fmt.Fprintf(&b, "url = %s\n", quote(req.URL))
	fmt.Fprintf(&b, "headers = %s\n", headersDict(req.Headers))

	args := []string{"url"}
	if p, ok := req.Payload(); ok {
		if p.JSON {
			fmt.Fprintf(&b, "payload = %s\n", literal.Serialize(p.Value, literal.Python, 0))
			args = append(args, "json=payload")
		} else if lib == HTTPX {
			args = append(args, "content="+quote(p.Raw))
		} else {
			args = append(args, "data="+quote(p.Raw))
		}
	}
	args = append(args, "headers=headers")
	b.WriteString("\n")

	call := callExpr(req.NormalizedMethod(), args)
	if lib == HTTPX {
		b.WriteString("with httpx.Client() as client:\n")
		fmt.Fprintf(&b, "    response = client.%s\n\n", call)
	} else {
		fmt.Fprintf(&b, "response = requests.%s\n", call)
	}
	b.WriteString("print(response.json())\n")
	return b.String()
}

func callExpr(method string, args []string) string {
	lower := strings.ToLower(method)
	if shortcutMethods[lower] {
		return lower + "(" + strings.Join(args, ", ") + ")"
	}
	return "request(" + quote(method) + ", " + strings.Join(args, ", ") + ")"
}

func headersDict(h request.Headers) string {
	obj := jsonvalue.NewObject()
	for _, e := range h {
		obj.Set(e.Name, e.Value)
	}
	return literal.Serialize(obj, literal.Python, 0)
}

func quote(s string) string {
	return literal.Quote(s, literal.Python)
}
