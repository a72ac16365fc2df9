// Package taikolz80 implements TaikoLZ80, whose match finder carries three
// simultaneous FindLimitations tiers instead of lze's two: short (length
// 2..5, displacement 1..0x10), medium (length 3..0x12, displacement
// 1..0x400) and long (length 4..0x83, displacement 1..0x8000). Each tier
// packs into a byte-aligned payload whose size grows with its own field
// widths — 1, 2 and 3 bytes respectively. The first byte's top bits select
// the tier: 00 is short, 01 is medium, and bit 7 set is long, whose 7-bit
// length field fills the rest of that byte.
package taikolz80

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x81

var short = retrolz.FindLimitations{MinLength: 2, MaxLength: 5, MinDisplacement: 1, MaxDisplacement: 0x10}
var medium = retrolz.FindLimitations{MinLength: 3, MaxLength: 0x12, MinDisplacement: 1, MaxDisplacement: 0x400}
var long = retrolz.FindLimitations{MinLength: 4, MaxLength: 0x83, MinDisplacement: 1, MaxDisplacement: 0x8000}

var limitations = []retrolz.FindLimitations{short, medium, long}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

var price = retrolz.FuncPrice{
	Literal: func([]byte) int { return 9 },
	Match: func(m retrolz.Match) int {
		switch {
		case short.Allows(m.Length, m.Displacement):
			return 9
		case medium.Allows(m.Length, m.Displacement):
			return 17
		default:
			return 25
		}
	},
}

// Format implements codec.Format for TaikoLZ80.
type Format struct{}

// New returns a TaikoLZ80 Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "taikolz80" }

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
	b0, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	switch b0 >> 6 {
	case 0:
		length = int(b0>>4&0x03) + 2
		displacement = int(b0&0x0F) + 1
		return length, displacement, nil
	case 1:
		rest, err := r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		length = int(b0>>2&0x0F) + 3
		displacement = (int(b0&0x03)<<8 | int(rest)) + 1
		return length, displacement, nil
	default:
		rest, err := r.ReadBytes(2)
		if err != nil {
			return 0, 0, err
		}
		length = int(b0&0x7F) + 4
		displacement = (int(rest[0])<<8 | int(rest[1])) + 1
		return length, displacement, nil
	}
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
	switch {
	case short.Allows(m.Length, m.Displacement):
		d := m.Displacement - 1
		b0 := byte(m.Length-2)<<4 | byte(d)
		return []byte{b0}
	case medium.Allows(m.Length, m.Displacement):
		d := m.Displacement - 1
		b0 := byte(0x40) | byte(m.Length-3)<<2 | byte(d>>8)
		return []byte{b0, byte(d)}
	default:
		d := m.Displacement - 1
		b0 := byte(0x80) | byte(m.Length-4)
		return []byte{b0, byte(d >> 8), byte(d)}
	}
}
