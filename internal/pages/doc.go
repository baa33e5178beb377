// Package pages derives page order, page count and the cover image from a
// canonical document and the member names of its archive.
package pages
