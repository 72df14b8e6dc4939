// Package rbemitter renders Ruby snippets using Net::HTTP or HTTParty.
package rbemitter

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
	"github.com/mark3labs/swagger2snippet/internal/literal"
	"github.com/mark3labs/swagger2snippet/internal/request"
)

const (
	NetHTTP  = "net_http"
	HTTParty = "httparty"
)

// Variants lists the supported client libraries; the first is the default.
var Variants = []string{NetHTTP, HTTParty}

// Net::HTTP request classes; other methods use Net::HTTPGenericRequest.
var netHTTPClasses = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true, "TRACE": true,
}

// Emit renders req. Unknown variants render as net_http.
func Emit(variant string, req request.Descriptor) string {
	if variant == HTTParty {
		return httparty(req)
	}
	return netHTTP(req)
}

func netHTTP(req request.Descriptor) string {
	var b strings.Builder
	b.WriteString("require 'net/http'\n")
	b.WriteString("require 'uri'\n")
	b.WriteString("require 'json'\n\n")
	fmt.Fprintf(&b, "uri = URI(%s)\n", quote(req.URL))

	p, hasBody := req.Payload()
	if hasBody && p.JSON {
		fmt.Fprintf(&b, "payload = %s\n", literal.Serialize(p.Value, literal.Ruby, 0))
	}

	b.WriteString("\nhttp = Net::HTTP.new(uri.host, uri.port)\n")
	b.WriteString("http.use_ssl = uri.scheme == \"https\"\n\n")

	method := req.NormalizedMethod()
	if netHTTPClasses[method] {
		fmt.Fprintf(&b, "request = Net::HTTP::%s.new(uri)\n", cases.Title(language.English).String(method))
	} else {
		fmt.Fprintf(&b, "request = Net::HTTPGenericRequest.new(%s, %t, true, uri)\n", quote(method), hasBody)
	}
	for _, h := range req.Headers {
		fmt.Fprintf(&b, "request[%s] = %s\n", quote(h.Name), quote(h.Value))
	}
	if hasBody {
		if p.JSON {
			b.WriteString("request.body = payload.to_json\n")
		} else {
			fmt.Fprintf(&b, "request.body = %s\n", quote(p.Raw))
		}
	}

	b.WriteString("\nresponse = http.request(request)\n")
	b.WriteString("puts JSON.parse(response.body)\n")
	return b.String()
}

func httparty(req request.Descriptor) string {
	var b strings.Builder
	b.WriteString("require 'httparty'\n")
	b.WriteString("require 'json'\n\n")

	args := []string{quote(req.URL), "headers: " + headersHash(req.Headers, 1)}
	if p, ok := req.Payload(); ok {
		if p.JSON {
			fmt.Fprintf(&b, "payload = %s\n\n", literal.Serialize(p.Value, literal.Ruby, 0))
			args = append(args, "body: payload.to_json")
		} else {
			args = append(args, "body: "+quote(p.Raw))
		}
	}

	method := strings.ToLower(req.NormalizedMethod())
	fmt.Fprintf(&b, "response = HTTParty.%s(\n  %s\n)\n\n", method, strings.Join(args, ",\n  "))
	b.WriteString("puts JSON.parse(response.body)\n")
	return b.String()
}

func headersHash(h request.Headers, indent int) string {
	obj := jsonvalue.NewObject()
	for _, e := range h {
		obj.Set(e.Name, e.Value)
	}
	return literal.Serialize(obj, literal.Ruby, indent)
}

func quote(s string) string {
	return literal.Quote(s, literal.Ruby)
}
