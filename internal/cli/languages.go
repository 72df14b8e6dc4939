package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/swagger2snippet/internal/emitter"
)

type languageEntry struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Variants    []string `json:"variants" yaml:"variants"`
	Implemented bool     `json:"implemented" yaml:"implemented"`
}

func newLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List snippet languages and their variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			return printLanguages(cmd.OutOrStdout(), strings.ToLower(strings.TrimSpace(format)))
		},
	}
	cmd.Flags().String("format", "text", "Output format (text|json|yaml)")
	return cmd
}

func printLanguages(w io.Writer, format string) error {
	langs := emitter.Languages()
	entries := make([]languageEntry, 0, len(langs))
	for _, l := range langs {
		entries = append(entries, languageEntry{
			ID:          l.ID,
			Name:        l.DisplayName,
			Variants:    l.Variants,
			Implemented: l.Implemented(),
		})
	}

	switch format {
	case "", "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tVARIANTS\tSTATUS")
		for _, e := range entries {
			status := "available"
			if !e.Implemented {
				status = "not implemented"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Name, strings.Join(e.Variants, ", "), status)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return usageErrorf("languages: unsupported --format %q (allowed: text, json, yaml)", format)
	}
}
