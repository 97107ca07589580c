package postings

import (
	"fmt"
	"io"

	"github.com/gokitt/impactq/internal/ivfile"
)

// FileSource streams a posting list's on-disk byte range through a fixed
// memory budget, refilling from disk as the evaluator consumes bytes.
type FileSource struct {
	fs       *ivfile.FileSet
	handle   *ivfile.Handle
	fileID   uint32
	remain   int64 // bytes of the list not yet read into buf
	buf      []byte
	bufLen   int // valid bytes currently in buf
	budget   int
	finished bool
}

// NewFileSource pins fileID at offset and prepares to stream length bytes,
// using at most budget bytes of in-memory window.
func NewFileSource(fs *ivfile.FileSet, fileID uint32, offset, length int64, budget int) (*FileSource, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("postings: non-positive budget %d", budget)
	}
	h, err := fs.Pin(fileID, offset)
	if err != nil {
		return nil, err
	}
	return &FileSource{
		fs:     fs,
		handle: h,
		fileID: fileID,
		remain: length,
		buf:    make([]byte, budget),
		budget: budget,
	}, nil
}

// ReadMore implements Source.
func (s *FileSource) ReadMore(keep int) ([]byte, bool, error) {
	if keep < 0 || keep > s.bufLen {
		return nil, false, fmt.Errorf("postings: invalid keep=%d (window=%d)", keep, s.bufLen)
	}
	copy(s.buf[0:keep], s.buf[s.bufLen-keep:s.bufLen])

	room := s.budget - keep
	if room <= 0 {
		// Entire budget is tied up in bytes the caller must keep; nothing
		// more can be read this round.
		s.bufLen = keep
		if s.remain == 0 {
			s.finished = true
			return s.buf[:keep], true, nil
		}
		return s.buf[:keep], false, nil
	}

	want := int64(room)
	if want > s.remain {
		want = s.remain
	}

	n := 0
	if want > 0 {
		read, err := io.ReadFull(s.handle, s.buf[keep:keep+int(want)])
		n = read
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, false, fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	s.remain -= int64(n)
	s.bufLen = keep + n

	if s.remain == 0 {
		s.finished = true
		return s.buf[:s.bufLen], true, nil
	}
	return s.buf[:s.bufLen], false, nil
}

// Close implements Source.
func (s *FileSource) Close() error {
	if s.handle == nil {
		return nil
	}
	err := s.fs.Unpin(s.handle)
	s.handle = nil
	return err
}
