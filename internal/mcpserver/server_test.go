package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestSession connects an in-process client to a fresh server. The
// server shuts down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := NewServer("test")
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})
	return session
}

func structured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.NotNil(t, result.StructuredContent)
	data, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	slices.Sort(names)
	assert.Equal(t, []string{"format_shell_command", "generate_code", "list_languages", "synthesize_example"}, names)
}

func TestIntegration_CallTool_GenerateCode(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "generate_code",
		Arguments: map[string]any{
			"language": "ruby",
			"variant":  "httparty",
			"request": map[string]any{
				"method":  "PUT",
				"url":     "https://api.test/pets/1",
				"headers": []map[string]any{{"name": "Accept", "value": "application/json"}},
				"body":    `{"name":"Rex"}`,
			},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := structured(t, result)
	assert.Equal(t, "ruby", out["language"])
	assert.Equal(t, "httparty", out["variant"])
	assert.Contains(t, out["code"], "HTTParty.put")
}

func TestIntegration_CallTool_Error(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "generate_code",
		Arguments: map[string]any{"language": "swift", "request": map[string]any{"url": "https://x"}},
	})
	require.NoError(t, err, "protocol call should succeed even on tool error")
	assert.True(t, result.IsError)
}
