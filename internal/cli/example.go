package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mark3labs/swagger2snippet/internal/example"
	"github.com/mark3labs/swagger2snippet/internal/jsonvalue"
	"github.com/mark3labs/swagger2snippet/internal/literal"
	"github.com/mark3labs/swagger2snippet/internal/spec"
)

// ExampleConfig captures the inputs of the example command.
type ExampleConfig struct {
	Config
	SchemaFile string
	Schema     string
	Operation  string
	Response   string
	// Literal selects the output grammar; json unless --lang is given.
	Literal literal.Language
	Pretty  bool

	stdout io.Writer
}

var exampleRunner = runExample

func newExampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Synthesize an example value from a schema",
		Long: "Synthesize an example value from a JSON schema file, a named component schema, " +
			"or the request/response body of an operation. Declared examples are used as is.",
		Example: strings.TrimSpace(`  swagger2snippet example --schema-file pet.schema.json
  swagger2snippet example --input petstore.yaml --schema Pet --lang python
  swagger2snippet example --input petstore.yaml --operation "GET /pets/{petId}" --response 200 --compact`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveExampleConfig(cmd)
			if err != nil {
				return err
			}
			return exampleRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("schema-file", "", "YAML or JSON file holding a single schema")
	flags.String("input", "", "Path or URL to the Swagger/OpenAPI document")
	flags.String("schema", "", "Component schema name in --input")
	flags.String("operation", "", "Operation in --input, e.g. \"POST /pets\"")
	flags.String("response", "", "Response status for --operation (request body when omitted)")
	flags.String("lang", "", "Render as a literal of this language (json|javascript|python|ruby|go)")
	flags.Int("max-depth", 0, "Recursion limit for nested schemas")
	flags.Bool("pretty", false, "Indent JSON output (default when stdout is a terminal)")
	flags.Bool("compact", false, "Print JSON on one line")

	return cmd
}

func resolveExampleConfig(cmd *cobra.Command) (*ExampleConfig, error) {
	flags := cmd.Flags()
	base, err := resolveConfig(flags)
	if err != nil {
		return nil, err
	}
	cfg := &ExampleConfig{Config: base, stdout: cmd.OutOrStdout()}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"schema-file", &cfg.SchemaFile},
		{"schema", &cfg.Schema},
		{"operation", &cfg.Operation},
		{"response", &cfg.Response},
	} {
		v, err := flags.GetString(f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = strings.TrimSpace(v)
	}

	lang, err := flags.GetString("lang")
	if err != nil {
		return nil, err
	}
	// Only the flag selects the grammar; a configured snippet lang does not.
	cfg.Literal = literal.JSON
	if lang = strings.ToLower(strings.TrimSpace(lang)); lang != "" {
		cfg.Literal = literal.Language(lang)
	}
	if _, ok := literal.GrammarFor(cfg.Literal); !ok {
		return nil, usageErrorf("example: unsupported --lang %q (allowed: json, javascript, python, ruby, go)", lang)
	}

	pretty, err := flags.GetBool("pretty")
	if err != nil {
		return nil, err
	}
	compact, err := flags.GetBool("compact")
	if err != nil {
		return nil, err
	}
	switch {
	case pretty && compact:
		return nil, newUsageError("example: --pretty and --compact cannot be combined")
	case pretty:
		cfg.Pretty = true
	case compact:
		cfg.Pretty = false
	default:
		if f, ok := cfg.stdout.(*os.File); ok {
			cfg.Pretty = term.IsTerminal(int(f.Fd()))
		}
	}

	sources := 0
	if cfg.SchemaFile != "" {
		sources++
	}
	if cfg.Schema != "" {
		sources++
	}
	if cfg.Operation != "" {
		sources++
	}
	switch {
	case sources == 0:
		return nil, newUsageError("example: one of --schema-file, --schema or --operation is required")
	case sources > 1:
		return nil, newUsageError("example: --schema-file, --schema and --operation are mutually exclusive")
	case cfg.SchemaFile == "" && cfg.Input == "":
		return nil, newUsageError("example: --input is required with --schema and --operation")
	case cfg.Response != "" && cfg.Operation == "":
		return nil, newUsageError("example: --response needs --operation")
	}
	return cfg, nil
}

func runExample(ctx context.Context, cfg *ExampleConfig) error {
	value, err := exampleValue(ctx, cfg)
	if err != nil {
		return err
	}

	var text string
	switch {
	case cfg.Literal != literal.JSON:
		text = literal.Serialize(value, cfg.Literal, 0)
	case cfg.Pretty:
		text, err = jsonvalue.Indent(value)
	default:
		text, err = jsonvalue.Compact(value)
	}
	if err != nil {
		return fmt.Errorf("render example: %w", err)
	}

	w := cfg.stdout
	if w == nil {
		w = os.Stdout
	}
	_, err = io.WriteString(w, text+"\n")
	return err
}

func exampleValue(ctx context.Context, cfg *ExampleConfig) (any, error) {
	if cfg.SchemaFile != "" {
		data, err := os.ReadFile(cfg.SchemaFile)
		if err != nil {
			return nil, usageErrorf("example: read schema file: %v", err)
		}
		schema, err := spec.ParseSchema(data)
		if err != nil {
			return nil, usageErrorf("example: %s: %v", cfg.SchemaFile, err)
		}
		return example.SynthesizeDepth(schema, 0, cfg.MaxDepth), nil
	}

	sm, err := loadServiceModel(ctx, cfg.Input)
	if err != nil {
		return nil, err
	}
	if cfg.Schema != "" {
		schema, ok := sm.Schemas[cfg.Schema]
		if !ok {
			return nil, usageErrorf("example: schema %q not found in document", cfg.Schema)
		}
		return example.SynthesizeDepth(schema, 0, cfg.MaxDepth), nil
	}

	ep, err := findOperation(sm, cfg.Operation)
	if err != nil {
		return nil, err
	}
	content, err := operationContent(ep, cfg.Response)
	if err != nil {
		return nil, err
	}
	media, ok := spec.JSONMedia(content)
	if !ok {
		return nil, usageErrorf("example: %s has no body content", describeBody(ep, cfg.Response))
	}
	if media.Example != nil {
		return media.Example, nil
	}
	return example.SynthesizeDepth(media.Schema, 0, cfg.MaxDepth), nil
}

// operationContent picks the request body, or the named response.
func operationContent(ep *spec.EndpointModel, status string) ([]spec.Media, error) {
	if status != "" {
		r, ok := ep.Response(status)
		if !ok {
			return nil, usageErrorf("example: response %q not declared for %s", status, ep.ID)
		}
		return r.Content, nil
	}
	if ep.RequestBody != nil && len(ep.RequestBody.Content) > 0 {
		return ep.RequestBody.Content, nil
	}
	if r, ok := ep.SuccessResponse(); ok {
		return r.Content, nil
	}
	return nil, nil
}

func describeBody(ep *spec.EndpointModel, status string) string {
	if status != "" {
		return fmt.Sprintf("response %s of %s", status, ep.ID)
	}
	return ep.ID
}
