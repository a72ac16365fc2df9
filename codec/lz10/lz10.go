// Package lz10 implements the classic Nintendo LZ77 variant tagged 0x10:
// a 4-byte header (tag + little-endian 24-bit decompressed size) followed
// by MSB-first flag bytes, each covering 8 tokens, and 2-byte matches
// encoding length-3 in the high nibble and a 12-bit displacement in the
// rest.
package lz10

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x10

var limitations = []retrolz.FindLimitations{
	{MinLength: 3, MaxLength: 18, MinDisplacement: 1, MaxDisplacement: 4096},
}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

// price approximates the real bit cost: 1 flag bit + 8 data bits for a
// literal, 1 flag bit + 16 data bits for a match, independent of length or
// displacement (LZ10's match encoding is fixed-width).
var price = retrolz.ConstPrice{LiteralBits: 9, MatchBits: 17}

// Format implements codec.Format for LZ10.
type Format struct{}

// New returns an LZ10 Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "lz10" }

func (Format) Identify(header []byte) bool {
	return len(header) >= 4 && header[0] == tag
}

func (Format) Limitations() []retrolz.FindLimitations { return limitations }
func (Format) Options() retrolz.FindOptions            { return options }
func (Format) Price() retrolz.PriceCalculator          { return price }

func (Format) Decode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	hdr, hdrLen, err := nlz.DecodeGBAHeader(data, tag)
	if err != nil {
		return err
	}
	out, err := nlz.DecodeStream(data[hdrLen:], true, int(hdr.DecompressedSize), decodeMatch)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func decodeMatch(r *nlz.FlagReader) (length, displacement int, err error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, 0, err
	}
	length = int(b[0]>>4) + 3
	displacement = (int(b[0]&0x0F)<<8 | int(b[1])) + 1
	return length, displacement, nil
}

func (Format) Encode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	units := retrolz.Units{Data: data, Size: retrolz.UnitSize1}
	tokens := retrolz.Parse(data, limitations, options, price)

	body := nlz.EncodeTokens(tokens, units, true, encodeMatch)

	hdr := nlz.GBAHeader{Tag: tag, DecompressedSize: uint32(len(data))}
	out := bytes.NewBuffer(hdr.Encode())
	out.Write(body)
	_, err = w.Write(out.Bytes())
	return err
}

func encodeMatch(m retrolz.Match) []byte {
	disp := m.Displacement - 1
	b0 := byte((m.Length-3)<<4) | byte(disp>>8)
	b1 := byte(disp)
	return []byte{b0, b1}
}
