// Package catalog persists synthesized documents per archive in SQLite.
//
// Each entry remembers the archive path, its modification time and size at
// scan time, a few summary columns for listing, and the full document in
// comicbox JSON. Scanner walks directory trees and refreshes entries whose
// archives changed since the last scan.
package catalog
