// Package comic ties the metadata core to comic archives.
//
// Loader gathers every metadata source an archive offers (its filename,
// metadata members, the archive comment, configured import files and CLI
// strings), ranks them by the configured precedence and synthesizes one
// document. Computed fields and cover resolution run on the result.
//
// Writer prepares a document for write-back (deleted keys, regenerated
// pages, tagger stamp), encodes it in the configured formats and hands the
// bytes to the archive, or exports them as files next to it.
package comic
