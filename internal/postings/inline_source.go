package postings

import "fmt"

// InlineSource wraps a byte slice that already lives inside the vocabulary
// entry (the list was short enough at build time to avoid a separate
// on-disk byte range). The whole list is resident immediately, so ReadMore
// only ever needs to slide the "keep" tail forward once and then reports
// finished.
type InlineSource struct {
	data   []byte
	offset int // index into data of the first byte not yet delivered
	done   bool
}

// NewInlineSource wraps data for streaming.
func NewInlineSource(data []byte) *InlineSource {
	return &InlineSource{data: data}
}

// ReadMore implements Source.
func (s *InlineSource) ReadMore(keep int) ([]byte, bool, error) {
	if s.done {
		if keep > 0 {
			return nil, false, fmt.Errorf("postings: inline source exhausted with keep=%d pending", keep)
		}
		return nil, true, nil
	}

	start := s.offset - keep
	if start < 0 {
		return nil, false, fmt.Errorf("postings: invalid keep=%d beyond delivered offset %d", keep, s.offset)
	}

	window := s.data[start:]
	s.offset = len(s.data)
	s.done = true
	return window, true, nil
}

// Close implements Source.
func (s *InlineSource) Close() error { return nil }
