// Package lzecd implements the LzEcd format: matches may reach into a
// 0x3BE-byte virtual pre-buffer of zero fill that both encoder and decoder
// know without it ever touching the wire, per spec.md §3's pre-buffer note
// and its worked scenario 2 (an all-zero input's first 0x3BE bytes line up
// entirely with the pre-buffer).
package lzecd

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0xEC

const preBufferSize = 0x3BE

var preBuffer = make([]byte, preBufferSize)

var limitations = []retrolz.FindLimitations{
	{MinLength: 3, MaxLength: 0x42, MinDisplacement: 1, MaxDisplacement: 0x400},
}

var options = retrolz.FindOptions{
	Direction:         retrolz.Forward,
	UnitSize:          retrolz.UnitSize1,
	PreBufferSize:     preBufferSize,
	PreBufferContents: preBuffer,
}

var price = retrolz.ConstPrice{LiteralBits: 9, MatchBits: 17}

// Format implements codec.Format for LzEcd.
type Format struct{}

// New returns an LzEcd Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "lzecd" }

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
	out, err := nlz.DecodeStreamSeeded(data[hdrLen:], true, int(hdr.DecompressedSize), preBuffer, decodeMatch)
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
	length = int(b[0]>>2) + 3
	displacement = (int(b[0]&0x03)<<8 | int(b[1])) + 1
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
	b0 := byte(m.Length-3)<<2 | byte(disp>>8)
	b1 := byte(disp)
	return []byte{b0, b1}
}
