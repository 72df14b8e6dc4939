package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mark3labs/swagger2snippet/internal/emitter"
	"github.com/mark3labs/swagger2snippet/internal/example"
	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
	"github.com/mark3labs/swagger2snippet/internal/literal"
	"github.com/mark3labs/swagger2snippet/internal/request"
	"github.com/mark3labs/swagger2snippet/internal/shell"
	"github.com/mark3labs/swagger2snippet/internal/spec"
)

type requestInput struct {
	Method    string           `json:"method,omitempty"     jsonschema:"HTTP method, GET when omitted"`
	URL       string           `json:"url"                  jsonschema:"Absolute request URL including the query string"`
	Headers   []request.Header `json:"headers,omitempty"    jsonschema:"Ordered request headers"`
	Body      string           `json:"body,omitempty"       jsonschema:"Request body; JSON text is rendered as a native literal"`
	AuthType  string           `json:"auth_type,omitempty"  jsonschema:"One of bearer, api_key, basic, oauth2"`
	AuthValue string           `json:"auth_value,omitempty" jsonschema:"Token, key or user:password for basic auth"`
}

// descriptor validates the input and folds default headers and auth in.
func (in requestInput) descriptor() (request.Descriptor, error) {
	if strings.TrimSpace(in.URL) == "" {
		return request.Descriptor{}, fmt.Errorf("url is required")
	}
	authType, err := request.ParseAuthType(in.AuthType)
	if err != nil {
		return request.Descriptor{}, err
	}
	var auth *request.Auth
	if authType != "" {
		auth = &request.Auth{Type: authType, Value: in.AuthValue}
	}
	d := request.Descriptor{
		Method:  in.Method,
		URL:     strings.TrimSpace(in.URL),
		Headers: request.Headers(in.Headers),
		Body:    in.Body,
	}
	return request.Prepare(d, auth), nil
}

type generateCodeInput struct {
	Request  requestInput `json:"request"           jsonschema:"The HTTP request to render"`
	Language string       `json:"language"          jsonschema:"Language id from list_languages"`
	Variant  string       `json:"variant,omitempty" jsonschema:"Client library variant; the language default when omitted"`
}

type generateCodeOutput struct {
	Language string `json:"language"`
	Variant  string `json:"variant"`
	Code     string `json:"code"`
}

func handleGenerateCode(_ context.Context, _ *mcp.CallToolRequest, input generateCodeInput) (*mcp.CallToolResult, generateCodeOutput, error) {
	d, err := input.Request.descriptor()
	if err != nil {
		return errResult(err), generateCodeOutput{}, nil
	}
	s, err := emitter.Generate(input.Language, input.Variant, d)
	if err != nil {
		return errResult(err), generateCodeOutput{}, nil
	}
	return nil, generateCodeOutput{Language: s.Language, Variant: s.Variant, Code: s.Code}, nil
}

type formatShellInput struct {
	Request requestInput `json:"request"         jsonschema:"The HTTP request to render"`
	Style   string       `json:"style,omitempty" jsonschema:"multiline, single, escaped or powershell"`
}

type formatShellOutput struct {
	Style     string `json:"style"`
	Command   string `json:"command"`
	MIMEType  string `json:"mime_type"`
	Extension string `json:"extension"`
}

func handleFormatShell(_ context.Context, _ *mcp.CallToolRequest, input formatShellInput) (*mcp.CallToolResult, formatShellOutput, error) {
	style, err := shell.ParseStyle(input.Style)
	if err != nil {
		return errResult(err), formatShellOutput{}, nil
	}
	d, err := input.Request.descriptor()
	if err != nil {
		return errResult(err), formatShellOutput{}, nil
	}
	return nil, formatShellOutput{
		Style:     string(style),
		Command:   shell.Format(d, style),
		MIMEType:  style.MIMEType(),
		Extension: style.Extension(),
	}, nil
}

type listLanguagesInput struct{}

type languageInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Variants    []string `json:"variants"`
	Implemented bool     `json:"implemented"`
}

type listLanguagesOutput struct {
	Languages []languageInfo `json:"languages"`
}

func handleListLanguages(_ context.Context, _ *mcp.CallToolRequest, _ listLanguagesInput) (*mcp.CallToolResult, listLanguagesOutput, error) {
	langs := emitter.Languages()
	out := listLanguagesOutput{Languages: make([]languageInfo, 0, len(langs))}
	for _, l := range langs {
		out.Languages = append(out.Languages, languageInfo{
			ID:          l.ID,
			Name:        l.DisplayName,
			Variants:    l.Variants,
			Implemented: l.Implemented(),
		})
	}
	return nil, out, nil
}

type synthesizeInput struct {
	SchemaJSON string `json:"schema_json"         jsonschema:"The schema as JSON or YAML text"`
	Language   string `json:"language,omitempty"  jsonschema:"json (default), javascript, python, ruby or go"`
	MaxDepth   int    `json:"max_depth,omitempty" jsonschema:"Recursion limit for nested schemas (default 32)"`
}

type synthesizeOutput struct {
	Language string `json:"language"`
	Example  string `json:"example"`
}

func handleSynthesizeExample(_ context.Context, _ *mcp.CallToolRequest, input synthesizeInput) (*mcp.CallToolResult, synthesizeOutput, error) {
	if strings.TrimSpace(input.SchemaJSON) == "" {
		return errResult(fmt.Errorf("schema_json is required")), synthesizeOutput{}, nil
	}
	lang := literal.Language(strings.ToLower(strings.TrimSpace(input.Language)))
	if lang == "" {
		lang = literal.JSON
	}
	if _, ok := literal.GrammarFor(lang); !ok {
		return errResult(fmt.Errorf("unknown literal language %q", input.Language)), synthesizeOutput{}, nil
	}
	schema, err := spec.ParseSchema([]byte(input.SchemaJSON))
	if err != nil {
		return errResult(err), synthesizeOutput{}, nil
	}
	depth := input.MaxDepth
	if depth <= 0 {
		depth = example.DefaultMaxDepth
	}
	v := example.SynthesizeDepth(schema, 0, depth)

	var text string
	if lang == literal.JSON {
		text, err = jsonvalue.Indent(v)
		if err != nil {
			return errResult(err), synthesizeOutput{}, nil
		}
	} else {
		text = literal.Serialize(v, lang, 0)
	}
	return nil, synthesizeOutput{Language: string(lang), Example: text}, nil
}
