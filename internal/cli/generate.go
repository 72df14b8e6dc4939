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

// GenerateConfig captures all inputs of the generate command after merging
// defaults, config file values, the environment and CLI overrides.
type GenerateConfig struct {
	Config
	Request RequestOptions
	// Out is a file or an existing directory. Snippets go to stdout when empty.
	Out   string
	Force bool

	stdout io.Writer
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a client code snippet for an HTTP request",
		Long: "Generate a client code snippet for an HTTP request, given directly or as an " +
			"operation of an OpenAPI/Swagger document. Options can be provided via flags, " +
			"environment variables, config files, or defaults.",
		Example: strings.TrimSpace(`  swagger2snippet generate --url https://api.example.com/pets --lang python
  swagger2snippet generate --input petstore.yaml --operation "POST /pets" --lang ruby --variant httparty
  swagger2snippet generate -X PUT --url https://api.example.com/pets/1 -d @pet.json --auth-type bearer --auth-value $TOKEN`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("lang", "", "Target language (javascript|python|ruby|go); defaults to javascript")
	flags.String("variant", "", "Client library variant; the language default when omitted or unknown")
	flags.String("out", "", "Write the snippet to this file, or into this directory with a derived name")
	flags.Bool("force", false, "Overwrite an existing output file")
	addRequestFlags(flags)

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	base, err := resolveConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	ro, err := readRequestOptions(cmd.Flags(), cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	cfg := &GenerateConfig{Config: base, Request: ro, stdout: cmd.OutOrStdout()}
	if cfg.Out, err = cmd.Flags().GetString("out"); err != nil {
		return nil, err
	}
	if cfg.Force, err = cmd.Flags().GetBool("force"); err != nil {
		return nil, err
	}
	cfg.Out = strings.TrimSpace(cfg.Out)

	if err := cfg.validateLang("generate"); err != nil {
		return nil, err
	}
	if _, err := cfg.auth(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	d, name, err := resolveRequest(ctx, &cfg.Config, cfg.Request)
	if err != nil {
		return err
	}
	snippet, err := emitter.Generate(cfg.Lang, cfg.Variant, d)
	if err != nil {
		return newUsageError(fmt.Sprintf("generate: %v", err))
	}

	code := snippet.Code
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	if cfg.Out == "" {
		_, err := io.WriteString(cfg.writer(), code)
		return err
	}

	path := cfg.Out
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, emitter.FileName(name, snippet))
	}
	if err := emitter.WriteFile(path, []byte(code), cfg.Force); err != nil {
		return wrapOutputError(err, path)
	}
	fmt.Fprintf(cfg.writer(), "Wrote %s/%s snippet to %s\n", snippet.Language, snippet.Variant, path)
	return nil
}

func (c *GenerateConfig) writer() io.Writer {
	if c.stdout == nil {
		return os.Stdout
	}
	return c.stdout
}

func wrapOutputError(err error, path string) error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") ||
		strings.Contains(lower, "rename") || strings.Contains(lower, "exists") || strings.Contains(lower, "directory") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out or use --force when appropriate.", path, msg))
	}
	return err
}
