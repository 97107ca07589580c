// Package postings implements the streaming posting-list source (C2): a
// bounded in-memory window over one term's on-disk byte range that can be
// extended from disk on demand.
package postings

import "errors"

// ErrIO wraps errors surfaced by a backing store during ReadMore.
var ErrIO = errors.New("postings: I/O error")

// Source is the capability set a posting-list cursor needs. It replaces the
// function-pointer "virtual" list source of the reference design with a
// small interface; FileSource and InlineSource are its two implementations.
type Source interface {
	// ReadMore declares that the last keep bytes of the previously returned
	// window must be preserved (they were a partial number). It copies those
	// bytes to the front of the internal buffer, reads as many further bytes
	// as fit (bounded by remaining list length and the source's budget), and
	// returns the new window. finished is true only once the on-disk byte
	// range has been fully consumed and no further bytes are available.
	ReadMore(keep int) (window []byte, finished bool, err error)

	// Close releases the file handle pin (if any) and frees the buffer.
	Close() error
}
