// Package explorer turns an OpenAPI operation plus user input into the
// request that snippets and shell commands are generated for.
package explorer

import (
	"fmt"
	"strings"

	"github.com/mark3labs/swagger2snippet/internal/example"
	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
	"github.com/mark3labs/swagger2snippet/internal/request"
	"github.com/mark3labs/swagger2snippet/internal/spec"
)

// Input is what a user entered for one operation.
type Input struct {
	// Server overrides the document's first server URL.
	Server string
	// Params holds parameter values by name.
	Params map[string]string
	Headers request.Headers
	// Body replaces the synthesized request body example.
	Body string
	Auth *request.Auth
	// UseExamples fills parameters without a value from their examples.
	UseExamples bool
}

// BuildRequest resolves ep against servers and in. Default headers and auth
// are applied, so the result can go straight to an emitter or shell.Format.
func BuildRequest(ep *spec.EndpointModel, servers []spec.Server, in Input) (request.Descriptor, error) {
	if ep == nil {
		return request.Descriptor{}, fmt.Errorf("explorer: nil endpoint")
	}
	base := strings.TrimSpace(in.Server)
	if base == "" && len(servers) > 0 {
		base = servers[0].URL
	}

	var params []request.Param
	headers := in.Headers.Clone()
	for _, p := range ep.Parameters {
		value, ok := in.Params[p.Name]
		if !ok && in.UseExamples && p.Example != nil {
			value = exampleText(p.Example)
		}
		switch p.In {
		case "path", "query":
			params = append(params, request.Param{Name: p.Name, In: p.In, Value: value})
		case "header":
			if value != "" {
				if _, exists := headers.Get(p.Name); !exists {
					headers.Set(p.Name, value)
				}
			}
		}
	}

	d := request.Descriptor{
		Method:  strings.ToUpper(string(ep.Method)),
		URL:     request.BuildURL(request.JoinURL(base, ep.Path), params),
		Headers: headers,
		Body:    in.Body,
	}
	if d.Body == "" && request.IsMutating(d.Method) {
		body, err := BodyExample(ep)
		if err != nil {
			return request.Descriptor{}, err
		}
		d.Body = body
	}
	return request.Prepare(d, in.Auth), nil
}

// BodyExample returns the JSON request body example for ep, indented by two
// spaces, or "" when the operation takes no JSON body.
func BodyExample(ep *spec.EndpointModel) (string, error) {
	if ep.RequestBody == nil {
		return "", nil
	}
	media, ok := spec.JSONMedia(ep.RequestBody.Content)
	if !ok {
		return "", nil
	}
	v := example.ForMedia(media)
	if v == nil {
		return "", nil
	}
	out, err := jsonvalue.Indent(v)
	if err != nil {
		return "", fmt.Errorf("render body example: %w", err)
	}
	return out, nil
}

// exampleText renders a parameter example as it would be typed in.
func exampleText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	out, err := jsonvalue.Compact(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return out
}
