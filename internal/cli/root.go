package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

// logLevel backs the default logger; verbose settings raise it to debug.
var logLevel = new(slog.LevelVar)

// Execute runs the swagger2snippet CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swagger2snippet",
		Short: "Generate client code snippets and shell commands for HTTP requests",
		Long: "swagger2snippet renders HTTP requests, given directly or taken from Swagger/OpenAPI " +
			"operations, as JavaScript, Python, Ruby or Go snippets and curl/PowerShell commands, " +
			"and synthesizes example payloads from schemas.",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			logLevel.Set(slog.LevelInfo)
			if verbose {
				logLevel.Set(slog.LevelDebug)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel})))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML or JSON)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	setUsageErrors(cmd)
	for _, sub := range []*cobra.Command{
		newGenerateCmd(),
		newCurlCmd(),
		newExampleCmd(),
		newLanguagesCmd(),
		newInitCmd(),
		newMCPCmd(),
	} {
		setUsageErrors(sub)
		cmd.AddCommand(sub)
	}

	return cmd
}

func setUsageErrors(cmd *cobra.Command) {
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	})
}
