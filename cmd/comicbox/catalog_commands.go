package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"comicbox/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain the catalog of synthesized documents",
	}
	catalogCmd.AddCommand(newCatalogScanCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))
	return catalogCmd
}

func newCatalogScanCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var metadataFlags []string

	cmd := &cobra.Command{
		Use:   "scan <dir|archive>...",
		Short: "Load archives and record their documents",
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
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withCatalog(func(store *catalog.Store) error {
				scanner := catalog.NewScanner(store, loader, ctx.formatRegistry(), logger)
				var total catalog.ScanResult
				for _, root := range args {
					result, err := scanner.Scan(cmd.Context(), root, force)
					total.Added += result.Added
					total.Updated += result.Updated
					total.Unchanged += result.Unchanged
					total.Failed += result.Failed
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d, updated %d, unchanged %d, failed %d\n",
					total.Added, total.Updated, total.Unchanged, total.Failed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Reload archives even when unchanged")
	cmd.Flags().StringArrayVarP(&metadataFlags, "metadata", "m", nil, "Extra metadata applied to every archive")
	return cmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var series string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged archives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				entries, err := store.List(cmd.Context(), catalog.ListFilter{Series: series})
				if err != nil {
					return err
				}
				if asJSON {
					views := make([]map[string]any, 0, len(entries))
					for _, e := range entries {
						views = append(views, map[string]any{
							"id":         e.ID,
							"path":       e.Path,
							"series":     e.Series,
							"issue":      e.Issue,
							"title":      e.Title,
							"updated_at": e.UpdatedAt,
						})
					}
					return writeJSON(cmd, views)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.Series, e.Issue, e.Title, filepath.Base(e.Path), e.ID})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Series", "Issue", "Title", "File", "ID"},
					rows,
					shouldColorize(out),
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&series, "series", "", "Only list one series (case-insensitive)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id|path>",
		Short: "Print a cataloged document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				ref := args[0]
				entry, err := store.Lookup(cmd.Context(), ref)
				if err != nil {
					return err
				}
				if entry == nil {
					if abs, absErr := filepath.Abs(ref); absErr == nil {
						entry, err = store.GetByPath(cmd.Context(), abs)
						if err != nil {
							return err
						}
					}
				}
				if entry == nil {
					return fmt.Errorf("no catalog entry for %q", ref)
				}
				md, err := entry.Metadata(ctx.formatRegistry())
				if err != nil {
					return fmt.Errorf("decode stored document: %w", err)
				}
				return writeDocument(cmd, ctx.formatRegistry(), md, output)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "format", "f", outputYAML, "Output format: yaml, json, table or a metadata format name")
	return cmd
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	var missing bool

	cmd := &cobra.Command{
		Use:   "remove [path]...",
		Short: "Forget archives, or every archive that no longer exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !missing {
				return errors.New("give archive paths or --missing")
			}
			out := cmd.OutOrStdout()
			return ctx.withCatalog(func(store *catalog.Store) error {
				if missing {
					removed, err := store.RemoveMissing(cmd.Context())
					if err != nil {
						return err
					}
					for _, path := range removed {
						fmt.Fprintf(out, "Removed %s\n", path)
					}
				}
				for _, path := range args {
					abs, err := filepath.Abs(path)
					if err != nil {
						return err
					}
					removed, err := store.Remove(cmd.Context(), abs)
					if err != nil {
						return err
					}
					if !removed {
						fmt.Fprintf(out, "Not cataloged: %s\n", path)
						continue
					}
					fmt.Fprintf(out, "Removed %s\n", abs)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&missing, "missing", false, "Remove entries whose archive no longer exists")
	return cmd
}
