// Package main hosts the comicbox CLI entrypoint and command graph.
//
// The Cobra command tree reads, writes and exports comic archive metadata,
// parses filenames and identifiers, maintains the SQLite catalog and
// scaffolds configuration. It resolves configuration and logging once in
// commandContext so subcommands only wire flags to the internal packages.
package main
