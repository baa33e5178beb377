package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"comicbox/internal/archive"
	"comicbox/internal/fileutil"
)

func newWriteCommand(ctx *commandContext) *cobra.Command {
	var metadataFlags []string
	var writeFormats []string
	var deleteKeys []string
	var backup bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "write <archive>...",
		Short: "Write synthesized metadata back into archives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := ctx.options(metadataFlags, writeFormats)
			if err != nil {
				return err
			}
			opts.DeleteKeys = append(opts.DeleteKeys, deleteKeys...)
			loader, err := ctx.loader(opts)
			if err != nil {
				return err
			}
			writer, err := ctx.writer(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range args {
				a, err := archive.Open(path)
				if err != nil {
					return err
				}
				err = func() error {
					defer a.Close()
					c, err := loader.Load(cmd.Context(), a)
					if err != nil {
						return err
					}
					if dryRun {
						doc, err := writer.Prepare(a, c.Metadata)
						if err != nil {
							return err
						}
						return writeDocument(cmd, ctx.formatRegistry(), doc, outputYAML)
					}
					if backup {
						if info, err := os.Stat(path); err == nil && !info.IsDir() {
							if err := fileutil.CopyFileVerified(path, path+".bak"); err != nil {
								return fmt.Errorf("backup %s: %w", path, err)
							}
						}
					}
					if err := writer.Write(cmd.Context(), a, c.Metadata); err != nil {
						return err
					}
					fmt.Fprintf(out, "Wrote %s\n", path)
					return nil
				}()
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&metadataFlags, "metadata", "m", nil, "Extra metadata as key=value pairs separated by ';'")
	cmd.Flags().StringSliceVar(&writeFormats, "formats", nil, "Formats to write (default from config)")
	cmd.Flags().StringSliceVar(&deleteKeys, "delete-keys", nil, "Metadata keys or paths to remove before writing")
	cmd.Flags().BoolVar(&backup, "backup", false, "Copy each archive to <archive>.bak before writing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the document that would be written")
	return cmd
}
