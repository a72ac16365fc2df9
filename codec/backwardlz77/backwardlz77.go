// Package backwardlz77 implements the right-to-left LZ77 variant spec.md
// §6 describes: a 4-byte little-endian raw-size header followed by a
// flag-grouped token stream whose tokens are emitted in right-to-left
// order (the first token in the stream covers the final bytes of the
// decompressed output), with a 16-bit little-endian match word packing a
// 4-bit length field and a 12-bit displacement field.
//
// retrolz.Parse's Backward direction already does the hard part: it runs
// the ordinary forward match finder and optimal parser over a byte-reversed
// copy of the input and hands back tokens whose Length/Displacement are
// still expressed in that reversed space (only Position is rebased for
// analysis). Serializing those tokens in list order with the ordinary
// forward flag/token plumbing therefore produces exactly the right-to-left
// stream; decoding is the mirror image: run the ordinary forward decoder to
// rebuild the reversed buffer, then reverse it once at the end.
package backwardlz77

import (
	"encoding/binary"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

var limitations = []retrolz.FindLimitations{
	{MinLength: 3, MaxLength: 0x12, MinDisplacement: 3, MaxDisplacement: 0x1002},
}

var options = retrolz.FindOptions{Direction: retrolz.Backward, UnitSize: retrolz.UnitSize1}

var price = retrolz.ConstPrice{LiteralBits: 9, MatchBits: 17}

// Format implements codec.Format for backward LZ77.
type Format struct{}

// New returns a backwardlz77 Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "backwardlz77" }

// Identify always reports false: the header carries only a raw size, with
// no distinguishing magic to sniff.
func (Format) Identify(header []byte) bool { return false }

func (Format) Limitations() []retrolz.FindLimitations { return limitations }
func (Format) Options() retrolz.FindOptions            { return options }
func (Format) Price() retrolz.PriceCalculator          { return price }

func (Format) Decode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(data) < 4 {
		return retrolz.Wrap(retrolz.TruncatedInput, 0, io.ErrUnexpectedEOF, "backwardlz77: header truncated")
	}
	rawSize := int(binary.LittleEndian.Uint32(data[:4]))

	reversed, err := nlz.DecodeStream(data[4:], true, rawSize, decodeMatch)
	if err != nil {
		return err
	}
	out := make([]byte, rawSize)
	for i, b := range reversed {
		out[rawSize-1-i] = b
	}
	_, err = w.Write(out)
	return err
}

func decodeMatch(r *nlz.FlagReader) (length, displacement int, err error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, 0, err
	}
	word := uint16(b[0]) | uint16(b[1])<<8
	length = int(word&0x0F) + 3
	displacement = int(word>>4) + 3
	return length, displacement, nil
}

func (Format) Encode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	units := retrolz.Units{Data: data, Size: retrolz.UnitSize1}
	tokens := retrolz.Parse(data, limitations, options, price)

	body := nlz.EncodeTokens(tokens, units, true, func(m retrolz.Match) []byte {
		word := uint16(m.Displacement-3)<<4 | uint16(m.Length-3)
		return []byte{byte(word), byte(word >> 8)}
	})

	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, uint32(len(data)))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}
