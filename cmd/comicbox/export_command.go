package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"comicbox/internal/archive"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var metadataFlags []string
	var writeFormats []string
	var dir string

	cmd := &cobra.Command{
		Use:   "export <archive>",
		Short: "Write metadata files next to an archive instead of into it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := ctx.options(metadataFlags, writeFormats)
			if err != nil {
				return err
			}
			loader, err := ctx.loader(opts)
			if err != nil {
				return err
			}
			writer, err := ctx.writer(opts)
			if err != nil {
				return err
			}

			a, err := archive.Open(args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			c, err := loader.Load(cmd.Context(), a)
			if err != nil {
				return err
			}

			target := dir
			if target == "" {
				target = filepath.Dir(args[0])
			}
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}
			written, err := writer.Export(cmd.Context(), a, c.Metadata, target)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&metadataFlags, "metadata", "m", nil, "Extra metadata as key=value pairs separated by ';'")
	cmd.Flags().StringSliceVar(&writeFormats, "formats", nil, "Formats to export (default from config)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Destination directory (default: the archive's directory)")
	return cmd
}
