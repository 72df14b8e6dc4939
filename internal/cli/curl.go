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
	"github.com/mark3labs/swagger2snippet/internal/shell"
)

// CurlConfig captures the inputs of the curl command.
type CurlConfig struct {
	Config
	Request RequestOptions
	// Out is written with the style's extension appended when it has none.
	Out   string
	Force bool

	stdout io.Writer
}

var curlRunner = runCurl

func newCurlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curl",
		Short: "Render an HTTP request as a curl or PowerShell command",
		Long: "Render an HTTP request as a shell command. Styles: multiline (default), single, " +
			"escaped (double-quoted arguments) and powershell (Invoke-WebRequest).",
		Example: strings.TrimSpace(`  swagger2snippet curl --url https://api.example.com/pets -H "Accept: application/json"
  swagger2snippet curl --input petstore.yaml --operation "GET /pets/{petId}" --param petId=42 --style powershell --out get-pet`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveCurlConfig(cmd)
			if err != nil {
				return err
			}
			return curlRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("style", "", "Command style (multiline|single|escaped|powershell); defaults to multiline")
	flags.String("out", "", "Write the command to this file instead of stdout")
	flags.Bool("force", false, "Overwrite an existing output file")
	addRequestFlags(flags)

	return cmd
}

func resolveCurlConfig(cmd *cobra.Command) (*CurlConfig, error) {
	base, err := resolveConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	ro, err := readRequestOptions(cmd.Flags(), cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	cfg := &CurlConfig{Config: base, Request: ro, stdout: cmd.OutOrStdout()}
	if cfg.Out, err = cmd.Flags().GetString("out"); err != nil {
		return nil, err
	}
	if cfg.Force, err = cmd.Flags().GetBool("force"); err != nil {
		return nil, err
	}
	cfg.Out = strings.TrimSpace(cfg.Out)

	style, err := shell.ParseStyle(cfg.Style)
	if err != nil {
		return nil, newUsageError("curl: " + err.Error())
	}
	cfg.Style = string(style)
	if _, err := cfg.auth(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCurl(ctx context.Context, cfg *CurlConfig) error {
	d, _, err := resolveRequest(ctx, &cfg.Config, cfg.Request)
	if err != nil {
		return err
	}
	style := shell.Style(cfg.Style)
	command := shell.Format(d, style) + "\n"

	w := cfg.stdout
	if w == nil {
		w = os.Stdout
	}
	if cfg.Out == "" {
		_, err := io.WriteString(w, command)
		return err
	}

	path := cfg.Out
	if filepath.Ext(path) == "" {
		path += style.Extension()
	}
	if err := emitter.WriteFile(path, []byte(command), cfg.Force); err != nil {
		return wrapOutputError(err, path)
	}
	fmt.Fprintf(w, "Wrote %s command (%s) to %s\n", style, style.MIMEType(), path)
	return nil
}
