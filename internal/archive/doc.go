// Package archive gives the metadata core uniform access to comic
// containers: member listing, member bytes, the archive comment and
// write-back. CBZ files and plain directories are supported. PDF, CBR, CB7
// and CBT containers open but report ErrUnsupported for member access, so
// only their filename contributes metadata.
package archive
