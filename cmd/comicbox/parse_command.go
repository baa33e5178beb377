package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"comicbox/internal/filename"
	"comicbox/internal/formats"
)

func newParseFilenameCommand(ctx *commandContext) *cobra.Command {
	var output string
	var showTemplate bool

	cmd := &cobra.Command{
		Use:   "parse-filename <name>...",
		Short: "Show the metadata a file name yields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := ctx.formatRegistry()
			out := cmd.OutOrStdout()
			for _, name := range args {
				md, err := registry.Decode(formats.FormatFilename, []byte(name))
				if err != nil {
					return fmt.Errorf("parse %q: %w", name, err)
				}
				if len(args) > 1 {
					fmt.Fprintf(out, "# %s\n", name)
				}
				if showTemplate {
					fmt.Fprintf(out, "# template: %s\n", filename.Best(name).Template)
				}
				if err := writeDocument(cmd, registry, md, output); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "format", "f", outputYAML, "Output format: yaml, json, table or a metadata format name")
	cmd.Flags().BoolVar(&showTemplate, "template", false, "Show the template that matched")
	return cmd
}
