package nlz

import "github.com/retrolz/retrolz"

// EncodeTokens renders a retrolz.Token stream into a flag-grouped byte
// stream. encodeMatch turns one match into its format-specific payload
// bytes (everything after the flag bit); literals are written as their
// single raw byte.
func EncodeTokens(tokens []retrolz.Token, units retrolz.Units, msbFirst bool, encodeMatch func(retrolz.Match) []byte) []byte {
	w := NewFlagWriter(msbFirst)
	for _, t := range tokens {
		if !t.IsMatch {
			w.PutLiteral(t.Literal(units)[0])
			continue
		}
		m := retrolz.Match{Position: t.Position, Length: t.Length, Displacement: t.Displacement}
		w.PutMatch(encodeMatch(m))
	}
	return w.Bytes()
}

// DecodeUntilExhausted is DecodeStream's counterpart for formats with no
// length header: it decodes tokens until the underlying byte stream runs
// out and returns what it decoded so far rather than treating end-of-input
// as an error. It also stops, without reporting it, at a truncated token
// or a match that reaches outside the window.
func DecodeUntilExhausted(data []byte, msbFirst bool, decodeMatch func(r *FlagReader) (length, displacement int, err error)) []byte {
	r := NewFlagReader(data, msbFirst)
	win := &Window{}
	for {
		if r.bit == 8 && r.Remaining() == 0 {
			break
		}
		isMatch, err := r.Next()
		if err != nil {
			break
		}
		if !isMatch {
			b, err := r.ReadByte()
			if err != nil {
				break
			}
			win.WriteLiteral(b)
			continue
		}
		length, displacement, err := decodeMatch(r)
		if err != nil {
			break
		}
		if err := win.CopyMatch(displacement, length); err != nil {
			break
		}
	}
	return win.Data
}

// DecodeStream expands a flag-grouped byte stream back into outSize raw
// bytes. decodeMatch reads one match's payload from r (it has already
// consumed the flag bit that selected the match branch) and returns the
// match's length and displacement.
func DecodeStream(data []byte, msbFirst bool, outSize int, decodeMatch func(r *FlagReader) (length, displacement int, err error)) ([]byte, error) {
	return DecodeStreamSeeded(data, msbFirst, outSize, nil, decodeMatch)
}

// DecodeStreamSeeded is DecodeStream with the window pre-populated by seed
// (a virtual pre-buffer known to both encoder and decoder, per spec.md
// §4.2's FindOptions.pre_buffer_contents): matches may reach back into
// seed, but seed's own bytes are not part of the returned output.
func DecodeStreamSeeded(data []byte, msbFirst bool, outSize int, seed []byte, decodeMatch func(r *FlagReader) (length, displacement int, err error)) ([]byte, error) {
	r := NewFlagReader(data, msbFirst)
	win := &Window{Data: make([]byte, len(seed), len(seed)+outSize)}
	copy(win.Data, seed)
	base := len(seed)
	for win.Len()-base < outSize {
		isMatch, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !isMatch {
			b, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			win.WriteLiteral(b)
			continue
		}
		length, displacement, err := decodeMatch(r)
		if err != nil {
			return nil, err
		}
		if win.Len()-base+length > outSize {
			length = outSize - (win.Len() - base)
		}
		if err := win.CopyMatch(displacement, length); err != nil {
			return nil, err
		}
	}
	return win.Data[base:], nil
}
