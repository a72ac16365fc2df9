// Package lz77 implements the generic byte-oriented LZ77 scheme spec.md §6
// names directly: no header, a flag byte per 8 tokens, single-byte length
// and displacement fields (so both cap at 255), and a mandatory skip of one
// unit immediately after every match.
package lz77

import (
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

var limitations = []retrolz.FindLimitations{
	{MinLength: 1, MaxLength: 255, MinDisplacement: 1, MaxDisplacement: 255},
}

var options = retrolz.FindOptions{
	Direction:           retrolz.Forward,
	UnitSize:            retrolz.UnitSize1,
	SkipUnitsAfterMatch: 1,
}

var price = retrolz.ConstPrice{LiteralBits: 9, MatchBits: 17}

// Format implements codec.Format for the generic LZ77 scheme.
type Format struct{}

// New returns an LZ77 Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "lz77" }

// Identify always reports false: this format has no header or magic byte
// to sniff, so a caller can only select it explicitly by name.
func (Format) Identify(header []byte) bool { return false }

func (Format) Limitations() []retrolz.FindLimitations { return limitations }
func (Format) Options() retrolz.FindOptions            { return options }
func (Format) Price() retrolz.PriceCalculator          { return price }

func (Format) Decode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	out := nlz.DecodeUntilExhausted(data, true, decodeMatch)
	_, err = w.Write(out)
	return err
}

func decodeMatch(r *nlz.FlagReader) (length, displacement int, err error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, 0, err
	}
	return int(b[0]), int(b[1]), nil
}

func (Format) Encode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	units := retrolz.Units{Data: data, Size: retrolz.UnitSize1}
	tokens := retrolz.Parse(data, limitations, options, price)

	body := nlz.EncodeTokens(tokens, units, true, func(m retrolz.Match) []byte {
		return []byte{byte(m.Length), byte(m.Displacement)}
	})
	_, err = w.Write(body)
	return err
}
