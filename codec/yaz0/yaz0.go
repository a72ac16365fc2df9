// Package yaz0 implements the YAZ0 container: a 4-byte magic ("Yaz0"), a
// 4-byte decompressed size, 8 reserved bytes, then one interleaved
// flag-byte/token stream in the same shape lz10 uses, except matches use a
// two-tier variable-width payload (nlz.EncodeYazMatch)
// instead of a single fixed-width field: length in [3, 0x12) packs into 2
// bytes, length in [0x12, 0x111] into 3. Order selects whether the size
// field (and, by the format's own convention, nothing else — YAZ0's match
// fields are always big-endian-bit-packed regardless) is read big- or
// little-endian.
package yaz0

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

var magic = [4]byte{'Y', 'a', 'z', '0'}

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

// Format implements codec.Format for YAZ0. Order selects the header size
// field's byte order; the compressed body itself is always big-endian
// bit-packed, matching the real format's N64/Wii provenance.
type Format struct {
	Order binary.ByteOrder
}

// NewBE and NewLE construct the big-endian and little-endian header
// variants.
func NewBE() *Format { return &Format{Order: binary.BigEndian} }
func NewLE() *Format { return &Format{Order: binary.LittleEndian} }

func (f *Format) Name() string {
	if f.Order == binary.BigEndian {
		return "yaz0be"
	}
	return "yaz0le"
}

func (f *Format) Identify(header []byte) bool {
	return len(header) >= 4 && header[0] == magic[0] && header[1] == magic[1] && header[2] == magic[2] && header[3] == magic[3]
}

func (f *Format) Limitations() []retrolz.FindLimitations { return limitations }
func (f *Format) Options() retrolz.FindOptions            { return options }
func (f *Format) Price() retrolz.PriceCalculator          { return price }

func (f *Format) Decode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(data) < 16 || data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] || data[3] != magic[3] {
		return retrolz.Newf(retrolz.MalformedToken, 0, "yaz0: bad header")
	}
	outSize := f.Order.Uint32(data[4:8])
	out, err := nlz.DecodeStream(data[16:], true, int(outSize), nlz.DecodeYazMatchFlag)
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

	body := nlz.EncodeTokens(tokens, units, true, func(m retrolz.Match) []byte {
		return nlz.EncodeYazMatch(m.Length, m.Displacement)
	})

	header := make([]byte, 16)
	copy(header[:4], magic[:])
	f.Order.PutUint32(header[4:8], uint32(len(data)))
	out := bytes.NewBuffer(header)
	out.Write(body)
	_, err = w.Write(out.Bytes())
	return err
}
