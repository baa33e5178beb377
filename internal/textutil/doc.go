// Package textutil provides text cleanup helpers shared by the metadata
// adapters and the filename parser.
//
// The primary use cases are:
//   - Repairing and trimming metadata strings (CleanString)
//   - Normalizing Unicode spacing before template matching (NormalizeSpaces)
//   - Splitting comma or semicolon separated lists (SplitList)
//   - Sanitizing filenames and path segments for safe filesystem use
package textutil
