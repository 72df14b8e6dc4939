package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/swagger2snippet/internal/emitter"
)

const defaultConfigFile = "swagger2snippet.yaml"

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Force      bool
	Verbose    bool

	stdout io.Writer
}

var initRunner = runInit

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample swagger2snippet configuration file",
		Long:  "Scaffold a commented swagger2snippet configuration file that documents available options.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			cfg := &InitConfig{
				OutputPath: out,
				Force:      force,
				Verbose:    verbose,
				stdout:     cmd.OutOrStdout(),
			}
			return initRunner(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("out", defaultConfigFile, "Where to write the sample config file")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(_ context.Context, cfg *InitConfig) error {
	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = defaultConfigFile
	}
	absPath, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	content := strings.TrimSpace(sampleConfigYAML) + "\n"
	if err := emitter.WriteFile(absPath, []byte(content), cfg.Force); err != nil {
		return newUsageError(fmt.Sprintf("init: %v\nHint: choose a different --out or use --force to overwrite.", err))
	}

	w := cfg.stdout
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "Wrote sample config to %s\n", absPath)
	return nil
}

// sampleConfigYAML documents every config key. Environment variables named
// SWAGGER2SNIPPET_<KEY> override the file; flags override both.
const sampleConfigYAML = `# swagger2snippet configuration (YAML)
# All fields are optional. Environment variables (SWAGGER2SNIPPET_INPUT,
# SWAGGER2SNIPPET_LANG, ...) override this file; command-line flags override both.

# Path or URL to the Swagger/OpenAPI document used with --operation.
# input: ./openapi.yaml

# Base URL replacing the document's first server.
# server: https://staging.example.com/v1

# Snippet language (javascript|python|ruby|go) and client variant.
# lang: javascript
# variant: fetch

# Shell command style for the curl command (multiline|single|escaped|powershell).
# style: multiline

# Credentials folded into every request (bearer|api_key|basic|oauth2).
# For basic auth the value is user:password.
# authType: bearer
# authValue: ${TOKEN}

# Extra request headers, in order. SWAGGER2SNIPPET_HEADERS takes
# "Name: value" pairs separated by "|".
# headers:
#   Accept: application/json
#   X-Request-Source: docs

# Recursion limit when synthesizing examples from nested schemas.
# maxDepth: 32

# Enable verbose logging.
# verbose: false
`
