package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"comicbox/internal/identifiers"
)

type identifierView struct {
	NID  string `json:"nid"`
	Name string `json:"name"`
	Type string `json:"type"`
	NSS  string `json:"nss"`
	URN  string `json:"urn,omitempty"`
	URL  string `json:"url,omitempty"`
}

func newIdentifierView(ref identifiers.Ref) identifierView {
	return identifierView{
		NID:  ref.NID,
		Name: identifiers.Name(ref.NID),
		Type: ref.Type,
		NSS:  ref.NSS,
		URN:  identifiers.ToURN(ref.NID, ref.Type, ref.NSS),
		URL:  identifiers.WebLink(ref.NID, ref.Type, ref.NSS),
	}
}

func newIdentifierCommand() *cobra.Command {
	identifierCmd := &cobra.Command{
		Use:         "identifier",
		Short:       "Parse and link catalog identifiers",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}
	identifierCmd.AddCommand(newIdentifierParseCommand())
	identifierCmd.AddCommand(newIdentifierLinkCommand())
	return identifierCmd
}

func newIdentifierParseCommand() *cobra.Command {
	var defaultNID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <urn|url|text>...",
		Short: "Parse URNs, catalog URLs or inline identifiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nid := identifiers.CanonicalNID(defaultNID)
			views := make([]identifierView, 0, len(args))
			for _, arg := range args {
				ref := identifiers.ParseString(arg, nid)
				if ref.IsZero() {
					return fmt.Errorf("no identifier found in %q", arg)
				}
				views = append(views, newIdentifierView(ref))
			}
			if asJSON {
				return writeJSON(cmd, views)
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Name, v.Type, v.NSS, v.URN, v.URL})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Source", "Type", "ID", "URN", "URL"}, rows, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().StringVar(&defaultNID, "nid", identifiers.DefaultNID, "Namespace for bare identifiers")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newIdentifierLinkCommand() *cobra.Command {
	var nssType string

	cmd := &cobra.Command{
		Use:   "link <nid> <id>",
		Short: "Print the catalog web page for an identifier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nid := identifiers.CanonicalNID(args[0])
			if !identifiers.KnownNID(nid) {
				return fmt.Errorf("unknown identifier source %q", args[0])
			}
			url := identifiers.WebLink(nid, strings.TrimSpace(nssType), strings.TrimSpace(args[1]))
			if url == "" {
				return fmt.Errorf("%s has no web page for %s %q", identifiers.Name(nid), nssType, args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVarP(&nssType, "type", "t", identifiers.DefaultType, "Identifier type, e.g. issue or series")
	return cmd
}
