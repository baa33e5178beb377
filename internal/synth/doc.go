// Package synth merges per-source canonical documents into one.
//
// Sources are applied lowest precedence first. Credits are reconciled by
// their case-insensitive role and person identity, set-valued keys are
// unioned, and every other key is replaced wholesale by later sources. The
// result is pruned and deterministic for a fixed source order.
//
// Engine wraps Synthesize for callers holding undecoded SourceRecords: it
// orders them by rank, decodes them through the format registry, and drops
// sources that fail to decode with a single warning each.
package synth
