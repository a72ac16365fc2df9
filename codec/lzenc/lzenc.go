// Package lzenc implements LzEnc: a decode-only LZ format (spec.md §9 —
// "encoders are marked as TODO in the source") using the same 4-byte GBA
// header and 2-byte length-3/displacement-1 match layout as lz10, over an
// unseeded window.
package lzenc

import (
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x99

var limitations = []retrolz.FindLimitations{
	{MinLength: 3, MaxLength: 0x12, MinDisplacement: 1, MaxDisplacement: 0x1000},
}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

var price = retrolz.ConstPrice{LiteralBits: 9, MatchBits: 17}

// Format implements codec.Format (decode-only) for LzEnc.
type Format struct{}

// New returns an LzEnc Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "lzenc" }

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

// Encode is unsupported: LzEnc is decode-only in the source this format
// was distilled from.
func (Format) Encode(r io.Reader, w io.Writer) error {
	return retrolz.Newf(retrolz.UnsupportedOperation, -1, "lzenc: encode not supported")
}
