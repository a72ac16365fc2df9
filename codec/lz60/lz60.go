// Package lz60 implements the Nintendo LZ77 variant tagged 0x60: identical
// wire plumbing to lz40 under a different header tag, kept as a distinct
// adapter because the two tags identify different engine generations even
// though their token encoding coincides.
package lz60

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x60

var limitations = []retrolz.FindLimitations{
	{MinLength: 3, MaxLength: 0x1010F, MinDisplacement: 1, MaxDisplacement: 0xFFF},
}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

var price = retrolz.FuncPrice{
	Literal: func([]byte) int { return 9 },
	Match: func(m retrolz.Match) int {
		switch {
		case m.Length <= 0x10:
			return 17
		case m.Length <= 0x110:
			return 25
		default:
			return 33
		}
	},
}

// Format implements codec.Format for LZ60.
type Format struct{}

// New returns an LZ60 Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "lz60" }

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
	out, err := nlz.DecodeStream(data[hdrLen:], true, int(hdr.DecompressedSize), nlz.DecodeVariableMatch)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func (Format) Encode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	units := retrolz.Units{Data: data, Size: retrolz.UnitSize1}
	tokens := retrolz.Parse(data, limitations, options, price)

	body := nlz.EncodeTokens(tokens, units, true, func(m retrolz.Match) []byte {
		return nlz.EncodeVariableMatch(m.Length, m.Displacement)
	})

	hdr := nlz.GBAHeader{Tag: tag, DecompressedSize: uint32(len(data))}
	out := bytes.NewBuffer(hdr.Encode())
	out.Write(body)
	_, err = w.Write(out.Bytes())
	return err
}
