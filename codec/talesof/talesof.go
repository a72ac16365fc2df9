// Package talesof implements TalesOf01 and TalesOf03: decode-only LZ
// formats (spec.md §6, §9 — "encoders are marked as TODO in the source")
// whose decode window starts pre-seeded with a zero-fill virtual buffer,
// the same DecodeStreamSeeded mechanism lzecd exercises, sized 0xFEE bytes
// for TalesOf01 and one byte larger (0xFEF) for TalesOf03. Match tokens use
// the same 2-byte length-3/displacement-1 layout lz10 does; only the
// pre-buffer size and tag differ between the two variants.
package talesof

import (
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const (
	tag01 = 0x01
	tag03 = 0x03

	preBufferSize01 = 0xFEE
	preBufferSize03 = 0xFEF
)

var preBuffer01 = make([]byte, preBufferSize01)
var preBuffer03 = make([]byte, preBufferSize03)

// Format implements codec.Format (decode-only) for one of the two TalesOf
// variants.
type Format struct {
	tag           byte
	preBufferSize int
	preBuffer     []byte
}

// New01 and New03 construct the two named variants.
func New01() *Format { return &Format{tag: tag01, preBufferSize: preBufferSize01, preBuffer: preBuffer01} }
func New03() *Format { return &Format{tag: tag03, preBufferSize: preBufferSize03, preBuffer: preBuffer03} }

func (f *Format) Name() string {
	if f.tag == tag03 {
		return "talesof03"
	}
	return "talesof01"
}

func (f *Format) Identify(header []byte) bool {
	return len(header) >= 4 && header[0] == f.tag
}

func (f *Format) Limitations() []retrolz.FindLimitations {
	return []retrolz.FindLimitations{{MinLength: 3, MaxLength: 0x12, MinDisplacement: 1, MaxDisplacement: f.preBufferSize}}
}

func (f *Format) Options() retrolz.FindOptions {
	return retrolz.FindOptions{
		Direction:         retrolz.Forward,
		UnitSize:          retrolz.UnitSize1,
		PreBufferSize:     f.preBufferSize,
		PreBufferContents: f.preBuffer,
	}
}

func (Format) Price() retrolz.PriceCalculator { return retrolz.ConstPrice{LiteralBits: 9, MatchBits: 17} }

func (f *Format) Decode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	hdr, hdrLen, err := nlz.DecodeGBAHeader(data, f.tag)
	if err != nil {
		return err
	}
	out, err := nlz.DecodeStreamSeeded(data[hdrLen:], true, int(hdr.DecompressedSize), f.preBuffer, decodeMatch)
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

// Encode is unsupported: both TalesOf variants are decode-only in the
// source this format was distilled from.
func (f *Format) Encode(r io.Reader, w io.Writer) error {
	return retrolz.Newf(retrolz.UnsupportedOperation, -1, "%s: encode not supported", f.Name())
}
