// Package nlz holds the flag-byte/token-stream plumbing shared by the
// Nintendo-style LZ formats: lz10, lz11, lz40, lz60, lz77, backwardlz77,
// lzecd, lze, lzss and yaz0 all interleave one flag byte ahead of every 8
// literal/match tokens, bit 7 (or bit 0, depending on the format) marking
// whether the next token is a literal byte or a back-reference. mio0 and
// yay0 keep the same flag bits in a chunk of their own (multistream.go).
//
// The accumulate-then-backpatch technique below generalizes the flagByte/
// bitCount/flagPos pattern in the teacher pack's sibling compressors (see
// other_examples/WoozyMasta-lzss__compress.go) to support either bit order
// and to drive both encode and decode from the same FlagWriter/FlagReader
// pair.
package nlz

import "github.com/retrolz/retrolz"

// FlagWriter accumulates literal/match marker bits into flag bytes,
// reserving each flag byte's slot in the output the moment its group of 8
// tokens starts and filling it in once all 8 bits are known.
type FlagWriter struct {
	msbFirst bool
	out      []byte
	flagPos  int
	flag     byte
	bit      int
}

// NewFlagWriter returns a FlagWriter. msbFirst selects whether the first
// token of each group of 8 occupies bit 7 (GBA-family LZ10/LZ11/LZ40/LZ60)
// or bit 0 (the convention some of the other Nintendo formats use).
func NewFlagWriter(msbFirst bool) *FlagWriter {
	w := &FlagWriter{msbFirst: msbFirst, flagPos: -1}
	return w
}

func (w *FlagWriter) startGroupIfNeeded() {
	if w.bit == 0 {
		w.flagPos = len(w.out)
		w.out = append(w.out, 0)
		w.flag = 0
	}
}

func (w *FlagWriter) setBit(isMatch bool) {
	if !isMatch {
		return
	}
	if w.msbFirst {
		w.flag |= 1 << uint(7-w.bit)
	} else {
		w.flag |= 1 << uint(w.bit)
	}
}

// PutLiteral appends one literal byte to the stream.
func (w *FlagWriter) PutLiteral(b byte) {
	w.startGroupIfNeeded()
	w.setBit(false)
	w.out = append(w.out, b)
	w.advance()
}

// PutLiteral2 appends one 2-byte literal word under a single flag bit, for
// unit-size-2 formats (wp16) where a literal token covers a whole word
// rather than a single byte.
func (w *FlagWriter) PutLiteral2(b0, b1 byte) {
	w.startGroupIfNeeded()
	w.setBit(false)
	w.out = append(w.out, b0, b1)
	w.advance()
}

// PutMatch appends a match's already-encoded payload bytes to the stream.
func (w *FlagWriter) PutMatch(payload []byte) {
	w.startGroupIfNeeded()
	w.setBit(true)
	w.out = append(w.out, payload...)
	w.advance()
}

func (w *FlagWriter) advance() {
	w.bit++
	if w.bit == 8 {
		w.out[w.flagPos] = w.flag
		w.bit = 0
		w.flagPos = -1
	}
}

// Bytes flushes any partial flag byte (its unused bits are left zero, which
// decoders never consume since the token count is known independently) and
// returns the accumulated stream.
func (w *FlagWriter) Bytes() []byte {
	if w.bit != 0 {
		w.out[w.flagPos] = w.flag
		w.bit = 0
		w.flagPos = -1
	}
	return w.out
}

// FlagReader is the decode-side counterpart of FlagWriter.
type FlagReader struct {
	msbFirst bool
	data     []byte
	pos      int
	flag     byte
	bit      int
}

// NewFlagReader wraps data for flag-grouped reading.
func NewFlagReader(data []byte, msbFirst bool) *FlagReader {
	return &FlagReader{msbFirst: msbFirst, data: data, bit: 8}
}

// Next reports whether the next token is a match (true) or a literal
// (false), loading a fresh flag byte from the stream every 8 tokens.
func (r *FlagReader) Next() (bool, error) {
	if r.bit == 8 {
		b, err := r.ReadByte()
		if err != nil {
			return false, err
		}
		r.flag = b
		r.bit = 0
	}
	var isMatch bool
	if r.msbFirst {
		isMatch = (r.flag>>uint(7-r.bit))&1 != 0
	} else {
		isMatch = (r.flag>>uint(r.bit))&1 != 0
	}
	r.bit++
	return isMatch, nil
}

// ReadByte reads and returns the next raw byte of the stream.
func (r *FlagReader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, retrolz.Wrap(retrolz.TruncatedInput, r.pos, errShortInput, "nlz: flag stream truncated")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads and returns the next n raw bytes of the stream.
func (r *FlagReader) ReadBytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, retrolz.Wrap(retrolz.TruncatedInput, r.pos, errShortInput, "nlz: token payload truncated")
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Remaining reports how many unread bytes are left in the stream.
func (r *FlagReader) Remaining() int { return len(r.data) - r.pos }

type nlzError string

func (e nlzError) Error() string { return string(e) }

const errShortInput = nlzError("nlz: short input")
