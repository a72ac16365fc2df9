// Package taikolz81 implements TaikoLZ81: a single match class with length
// in [1, 0x102] and displacement in [2, 0x8000], packed into one 24-bit,
// 3-byte payload — 9 bits for length-1 and 15 for displacement-2, the
// widest fixed single-tier encoding in this family (TaikoLZ80's three
// tiers stay narrower by splitting into multiple payload widths instead).
package taikolz81

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x82

var limitations = []retrolz.FindLimitations{
	{MinLength: 1, MaxLength: 0x102, MinDisplacement: 2, MaxDisplacement: 0x8000},
}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

var price = retrolz.ConstPrice{LiteralBits: 9, MatchBits: 25}

// Format implements codec.Format for TaikoLZ81.
type Format struct{}

// New returns a TaikoLZ81 Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "taikolz81" }

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
	b, err := r.ReadBytes(3)
	if err != nil {
		return 0, 0, err
	}
	value := int(b[0])<<16 | int(b[1])<<8 | int(b[2])
	length = (value >> 15) + 1
	displacement = (value & 0x7FFF) + 2
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
	value := (m.Length-1)<<15 | (m.Displacement - 2)
	return []byte{byte(value >> 16), byte(value >> 8), byte(value)}
}
