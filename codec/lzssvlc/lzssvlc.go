// Package lzssvlc implements an LZSS variant with no fixed-width match
// fields: length and displacement are both unbounded (spec.md §9: "LzssVlc's
// FindLimitations uses -1 for max length and max displacement; the
// implementer must treat -1 as 'no upper bound'"), so a match's payload is
// two base-128 varints (length-4, displacement-1) instead of a packed
// 16-bit word.
package lzssvlc

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x3C

var limitations = []retrolz.FindLimitations{
	{MinLength: 4, MaxLength: retrolz.Unbounded, MinDisplacement: 1, MaxDisplacement: retrolz.Unbounded},
}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

var price = retrolz.FuncPrice{
	Literal: func([]byte) int { return 9 },
	Match: func(m retrolz.Match) int {
		return 1 + 8*(nlz.VarintLen(uint64(m.Length-4))+nlz.VarintLen(uint64(m.Displacement-1)))
	},
}

// Format implements codec.Format for LzssVlc.
type Format struct{}

// New returns an LzssVlc Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "lzssvlc" }

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
	if len(data) < 8 || data[0] != tag {
		return retrolz.Newf(retrolz.MalformedToken, 0, "lzssvlc: bad header")
	}
	outSize := int(binary.LittleEndian.Uint32(data[4:8]))
	out, err := nlz.DecodeStream(data[8:], true, outSize, decodeMatch)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func decodeMatch(r *nlz.FlagReader) (length, displacement int, err error) {
	l, err := nlz.DecodeVarint(r)
	if err != nil {
		return 0, 0, err
	}
	d, err := nlz.DecodeVarint(r)
	if err != nil {
		return 0, 0, err
	}
	return int(l) + 4, int(d) + 1, nil
}

func (Format) Encode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	units := retrolz.Units{Data: data, Size: retrolz.UnitSize1}
	tokens := retrolz.Parse(data, limitations, options, price)

	body := nlz.EncodeTokens(tokens, units, true, func(m retrolz.Match) []byte {
		var out []byte
		out = append(out, nlz.EncodeVarint(uint64(m.Length-4))...)
		out = append(out, nlz.EncodeVarint(uint64(m.Displacement-1))...)
		return out
	})

	header := make([]byte, 8)
	header[0] = tag
	binary.LittleEndian.PutUint32(header[4:], uint32(len(data)))
	out := bytes.NewBuffer(header)
	out.Write(body)
	_, err = w.Write(out.Bytes())
	return err
}
