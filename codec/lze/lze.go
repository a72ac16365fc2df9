// Package lze implements the Lze format, whose defining feature is a
// match finder installed with two simultaneous FindLimitations sets: a
// long-range class (length 3..0x12, displacement 5..0x1004) and a
// short-range class (length 2..0x41, displacement 1..4). retrolz.Finder
// and retrolz.AnyAllows already treat a match as legal under the union of
// whatever limitations are installed; this adapter is what exercises that
// union behavior end to end, picking whichever class actually accepted a
// given match to choose its wire encoding.
package lze

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x5E

var longRange = retrolz.FindLimitations{MinLength: 3, MaxLength: 0x12, MinDisplacement: 5, MaxDisplacement: 0x1004}
var shortRange = retrolz.FindLimitations{MinLength: 2, MaxLength: 0x41, MinDisplacement: 1, MaxDisplacement: 4}

var limitations = []retrolz.FindLimitations{longRange, shortRange}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

var price = retrolz.ConstPrice{LiteralBits: 9, MatchBits: 25}

// Format implements codec.Format for Lze.
type Format struct{}

// New returns an Lze Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "lze" }

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
	if b0&0x80 != 0 {
		rest, err := r.ReadBytes(2)
		if err != nil {
			return 0, 0, err
		}
		length = int(b0&0x7F) + 3
		displacement = (int(rest[0])<<8 | int(rest[1])) + 5
		return length, displacement, nil
	}
	b1, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	length = int(b0&0x7F) + 2
	displacement = int(b1) + 1
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
	if longRange.Allows(m.Length, m.Displacement) {
		d := m.Displacement - 5
		return []byte{0x80 | byte(m.Length-3), byte(d >> 8), byte(d)}
	}
	return []byte{byte(m.Length - 2), byte(m.Displacement - 1)}
}
