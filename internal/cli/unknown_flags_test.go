package cli

import (
	"context"
	"strings"
	"testing"
)

func TestUnknownFlag_ShowsHelpAndUsageError(t *testing.T) {
	for _, sub := range []string{"generate", "curl", "example", "languages", "init", "mcp"} {
		err := runRoot(t, sub, "--unknown-flag")
		if err == nil {
			t.Fatalf("%s: expected error for unknown flag", sub)
		}
		if _, ok := err.(usageError); !ok {
			t.Fatalf("%s: expected usage error, got %T: %v", sub, err, err)
		}
		if !strings.Contains(err.Error(), "unknown flag") || !strings.Contains(err.Error(), "Usage:") {
			t.Fatalf("%s: unexpected error text: %v", sub, err)
		}
	}
}

func TestMCPCommandRunsServer(t *testing.T) {
	called := false
	mcpRunner = func(ctx context.Context) error {
		called = true
		return nil
	}
	t.Cleanup(func() {
		mcpRunner = runMCP
	})

	if err := runRoot(t, "mcp"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !called {
		t.Fatalf("expected mcp runner to be called")
	}
	if err := runRoot(t, "mcp", "extra"); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}
