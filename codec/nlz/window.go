package nlz

import "github.com/retrolz/retrolz"

// Window accumulates a format's decoded output and serves as its own
// back-reference search window, the same role outData plays in
// other_examples/WoozyMasta-lzss__compress.go's encoder. CopyMatch performs
// the copy byte-by-byte rather than via a single slice copy so that
// self-overlapping matches (displacement less than length) reproduce the
// repeating pattern correctly, per spec.md §3's note that Match legality
// never requires displacement >= length.
type Window struct {
	Data []byte
}

// WriteLiteral appends one decoded byte.
func (w *Window) WriteLiteral(b byte) { w.Data = append(w.Data, b) }

// CopyMatch copies length bytes from displacement bytes behind the current
// end of the window to its new end.
func (w *Window) CopyMatch(displacement, length int) error {
	if displacement <= 0 || displacement > len(w.Data) {
		return retrolz.Newf(retrolz.MalformedToken, len(w.Data),
			"nlz: displacement %d exceeds window of %d bytes", displacement, len(w.Data))
	}
	start := len(w.Data) - displacement
	for i := 0; i < length; i++ {
		w.Data = append(w.Data, w.Data[start+i])
	}
	return nil
}

// Len reports the number of bytes decoded so far.
func (w *Window) Len() int { return len(w.Data) }
