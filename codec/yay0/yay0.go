// Package yay0 implements the YAY0 container: a 16-byte header (4-byte
// magic "Yay0", decompressed size, and the byte offsets of the match-link
// chunk and the literal-byte chunk), a packed flag-bit chunk starting
// immediately after the header, then the two chunks the header points to.
// Unlike lz10's family, YAY0 never interleaves a match's payload bytes with
// its flag bit or with literal bytes — the three streams are independently
// addressed, per nlz.EncodeMultiStream/DecodeMultiStream.
package yay0

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

var magic = [4]byte{'Y', 'a', 'y', '0'}

var limitations = []retrolz.FindLimitations{
	{MinLength: 3, MaxLength: 0x111, MinDisplacement: 1, MaxDisplacement: 0x1000},
}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

var price = retrolz.FuncPrice{
	Literal: func([]byte) int { return 9 },
	Match: func(m retrolz.Match) int {
		if m.Length < 0x12 {
			return 17
		}
		return 25
	},
}

// Format implements codec.Format for YAY0.
type Format struct {
	Order binary.ByteOrder
}

// NewBE and NewLE construct the big-endian and little-endian header
// variants.
func NewBE() *Format { return &Format{Order: binary.BigEndian} }
func NewLE() *Format { return &Format{Order: binary.LittleEndian} }

func (f *Format) Name() string {
	if f.Order == binary.BigEndian {
		return "yay0be"
	}
	return "yay0le"
}

func (f *Format) Identify(header []byte) bool {
	return len(header) >= 4 && header[0] == magic[0] && header[1] == magic[1] && header[2] == magic[2] && header[3] == magic[3]
}

func (f *Format) Limitations() []retrolz.FindLimitations { return limitations }
func (f *Format) Options() retrolz.FindOptions            { return options }
func (f *Format) Price() retrolz.PriceCalculator          { return price }

const headerLen = 16

func (f *Format) Decode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(data) < headerLen || data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] || data[3] != magic[3] {
		return retrolz.Newf(retrolz.MalformedToken, 0, "yay0: bad header")
	}
	outSize := int(f.Order.Uint32(data[4:8]))
	linkOff := int(f.Order.Uint32(data[8:12]))
	litOff := int(f.Order.Uint32(data[12:16]))
	if linkOff > len(data) || litOff > len(data) || linkOff > litOff {
		return retrolz.Newf(retrolz.MalformedToken, 8, "yay0: bad chunk offsets")
	}
	flags := data[headerLen:linkOff]
	links := data[linkOff:litOff]
	literals := data[litOff:]

	out, err := nlz.DecodeMultiStream(flags, links, literals, true, outSize, nlz.DecodeYazMatchBytes)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func (f *Format) Encode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	units := retrolz.Units{Data: data, Size: retrolz.UnitSize1}
	tokens := retrolz.Parse(data, limitations, options, price)

	flags, links, literals := nlz.EncodeMultiStream(tokens, units, true, func(m retrolz.Match) []byte {
		return nlz.EncodeYazMatch(m.Length, m.Displacement)
	})

	linkOff := headerLen + len(flags)
	litOff := linkOff + len(links)

	header := make([]byte, headerLen)
	copy(header[:4], magic[:])
	f.Order.PutUint32(header[4:8], uint32(len(data)))
	f.Order.PutUint32(header[8:12], uint32(linkOff))
	f.Order.PutUint32(header[12:16], uint32(litOff))

	out := bytes.NewBuffer(header)
	out.Write(flags)
	out.Write(links)
	out.Write(literals)
	_, err = w.Write(out.Bytes())
	return err
}
