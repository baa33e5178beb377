package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"comicbox/internal/comic"
)

func newReadCommand(ctx *commandContext) *cobra.Command {
	var output string
	var metadataFlags []string
	var showSources bool

	cmd := &cobra.Command{
		Use:   "read <archive>...",
		Short: "Print the synthesized metadata of archives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := ctx.options(metadataFlags, nil)
			if err != nil {
				return err
			}
			loader, err := ctx.loader(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, path := range args {
				c, err := loader.LoadPath(cmd.Context(), path)
				if err != nil {
					return err
				}
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "# %s\n", c.Path)
				}
				if showSources {
					fmt.Fprintln(out, renderSources(c.Sources, shouldColorize(out)))
				}
				if err := writeDocument(cmd, ctx.formatRegistry(), c.Metadata, output); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "format", "f", outputYAML, "Output format: yaml, json, table or a metadata format name")
	cmd.Flags().StringArrayVarP(&metadataFlags, "metadata", "m", nil, "Extra metadata as key=value pairs separated by ';'")
	cmd.Flags().BoolVar(&showSources, "sources", false, "List the metadata sources found before the document")
	return cmd
}

func renderSources(sources []comic.Source, colorize bool) string {
	rows := make([][]string, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, []string{s.Format.String(), s.Origin, strconv.Itoa(s.Rank)})
	}
	return renderTable([]string{"Format", "Origin", "Rank"}, rows, colorize)
}
