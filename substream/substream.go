// Package substream implements the bounded, position-independent view over
// a backing byte source that spec.md §4.1 calls the "Sub-stream view": used
// to compose a format's pre-buffer with its real input without copying, and
// to hand a format decoder a sub-range of a larger archive.
package substream

import (
	"io"

	"github.com/retrolz/retrolz"
)

// Base is the minimal backing source a View wraps: a seekable byte source
// that also reports its own length. *os.File and *bytes.Reader both satisfy
// it once paired with a length lookup; callers needing that glue can wrap
// their source in a small adapter.
type Base interface {
	io.ReaderAt
	io.WriterAt
	Len() int64
}

// View is a bounded window [Offset, Offset+Length) over a Base. Every read
// or write is issued as a positioned ReaderAt/WriterAt call, so the view
// never touches the base source's own Seek position — spec.md §9's proposed
// fix for the source's shared-position hazard ("make the base source's
// position irrelevant to the view"), applied from the start rather than
// patched on.
type View struct {
	base   Base
	offset int64
	length int64 // current logical length, <= fixedCap when fixedCap >= 0
	fixedCap int64 // -1 means growable without limit
	pos    int64 // the view's own read/write cursor
}

// New constructs a View over base[offset:offset+length]. Per spec.md §6's
// constructor contract and the Open Question in §9, the range is validated
// against the requested length before anything about base is touched, so a
// bad offset can never be mistaken for a nil/invalid base.
func New(base Base, offset, length int64) (*View, error) {
	if offset < 0 || length <= 0 || offset+length > base.Len() {
		return nil, retrolz.Newf(retrolz.InvalidRange, -1,
			"substream: offset=%d length=%d base length=%d", offset, length, base.Len())
	}
	return &View{base: base, offset: offset, length: length, fixedCap: -1}, nil
}

// NewFixed is like New, but caps the view's length at its initial value:
// writes that would grow it fail with ErrOutOfRangeWrite instead of
// extending the view.
func NewFixed(base Base, offset, length int64) (*View, error) {
	v, err := New(base, offset, length)
	if err != nil {
		return nil, err
	}
	v.fixedCap = length
	return v, nil
}

// Length returns the view's current logical length.
func (v *View) Length() int64 { return v.length }

// Position returns the view's current read/write cursor.
func (v *View) Position() int64 { return v.pos }

// Seek repositions the view's own cursor; it never touches the base
// source's position.
func (v *View) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = v.pos + offset
	case io.SeekEnd:
		newPos = v.length + offset
	default:
		return 0, retrolz.Newf(retrolz.InvalidRange, -1, "substream: bad whence %d", whence)
	}
	if newPos < 0 {
		return 0, retrolz.Newf(retrolz.InvalidRange, -1, "substream: negative position %d", newPos)
	}
	v.pos = newPos
	return v.pos, nil
}

// Read reads into p starting at the view's cursor, never reading past the
// view's current length, and advances the cursor by the number of bytes
// read.
func (v *View) Read(p []byte) (int, error) {
	if v.pos >= v.length {
		return 0, io.EOF
	}
	max := v.length - v.pos
	if int64(len(p)) > max {
		p = p[:max]
	}
	n, err := v.base.ReadAt(p, v.offset+v.pos)
	v.pos += int64(n)
	if err != nil && err != io.EOF {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write writes p at the view's cursor, growing the view's logical length as
// needed (spec.md §4.1: "Writes beyond current length grow the view's
// length"). A View constructed with NewFixed refuses to grow past its
// initial length and returns ErrOutOfRangeWrite instead.
func (v *View) Write(p []byte) (int, error) {
	end := v.pos + int64(len(p))
	if v.fixedCap >= 0 && end > v.fixedCap {
		return 0, retrolz.Wrap(retrolz.OutOfRangeWrite, int(v.pos), io.ErrShortWrite,
			"substream: write would exceed fixed length")
	}
	n, err := v.base.WriteAt(p, v.offset+v.pos)
	v.pos += int64(n)
	if v.pos > v.length {
		v.length = v.pos
	}
	if err != nil {
		return n, err
	}
	return n, nil
}

// SetLength sets the view's logical length directly, for formats that know
// their output size up front and want to preallocate rather than grow it a
// write at a time.
func (v *View) SetLength(length int64) error {
	if v.fixedCap >= 0 && length > v.fixedCap {
		return retrolz.Newf(retrolz.OutOfRangeWrite, -1, "substream: length %d exceeds fixed cap %d", length, v.fixedCap)
	}
	v.length = length
	return nil
}

// Flush is a no-op: every Write is already issued as a positioned WriteAt,
// so there is nothing buffered to push out. It exists to satisfy the
// read/write/seek/set_length/flush/length/position surface spec.md §4.1
// names.
func (v *View) Flush() error { return nil }
