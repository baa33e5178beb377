// Package computed derives canonical fields from other fields of a
// synthesized document.
//
// Read side: cover_date and its year, month and day parts fill each other,
// issue.name is split into number and suffix, notes written by taggers are
// parsed back into tagger, updated_at and identifiers, and identifiers
// without links get their catalog web link.
//
// Write side: Stamp records the tagger, the time of the write and a
// regenerated notes line.
package computed
