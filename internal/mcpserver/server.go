// Package mcpserver exposes snippet generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `swagger2snippet MCP server: turns an HTTP request description into client code and shell commands, and synthesizes example payloads from JSON schemas.

Requests are described by method, url, ordered headers, an optional body and optional auth (bearer, api_key, basic, oauth2). A Content-Type: application/json header is added unless one is given. JSON bodies are rendered as native literals of the target language; other bodies are passed through as strings.

Call list_languages first to see which language/variant pairs can be generated.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, version string) error {
	return NewServer(version).Run(ctx, &mcp.StdioTransport{})
}

// NewServer builds a server with every tool registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "swagger2snippet", Version: version},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_code",
		Description: "Generate a client code snippet for an HTTP request. Languages with variants: javascript (fetch, axios), python (requests, httpx), ruby (net_http, httparty), go (net_http). An unknown variant falls back to the language default. Languages that are listed but not implemented return an error.",
	}, handleGenerateCode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "format_shell_command",
		Description: "Render an HTTP request as a shell command. Styles: multiline (curl with line continuations, default), single (curl on one line), escaped (curl with double-quoted arguments), powershell (Invoke-WebRequest).",
	}, handleFormatShell)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_languages",
		Description: "List the language catalog in display order with each language's variants and whether code generation is implemented.",
	}, handleListLanguages)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "synthesize_example",
		Description: "Build an example value from a JSON schema (type, properties, items, enum, example). Declared examples win; objects and arrays recurse; strings become \"string\" or the first enum value, numbers 0, booleans false. Returns JSON by default or a literal in javascript, python, ruby or go.",
	}, handleSynthesizeExample)
}

var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
