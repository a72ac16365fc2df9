// Package lzss implements the LZSS variant spec.md §6 lists with limits
// [3, 0x12] length, [1, 0x1000] displacement, and a 4-byte little-endian
// checksum trailer over the decompressed payload — the same
// accumulate-a-running-sum-then-append-it-at-the-end shape as
// other_examples/WoozyMasta-lzss__compress.go's Compress, generalized here
// into the ChecksummedFormat capability so a caller can verify a blob's
// integrity without redoing the LZ decode.
package lzss

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x50

var limitations = []retrolz.FindLimitations{
	{MinLength: 3, MaxLength: 0x12, MinDisplacement: 1, MaxDisplacement: 0x1000},
}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

var price = retrolz.ConstPrice{LiteralBits: 9, MatchBits: 17}

// Format implements codec.Format and codec.ChecksummedFormat for LZSS.
type Format struct{}

// New returns an LZSS Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "lzss" }

func (Format) Identify(header []byte) bool {
	return len(header) >= 4 && header[0] == tag
}

func (Format) Limitations() []retrolz.FindLimitations { return limitations }
func (Format) Options() retrolz.FindOptions            { return options }
func (Format) Price() retrolz.PriceCalculator          { return price }

func checksum(data []byte) uint32 {
	var s uint32
	for _, b := range data {
		s += uint32(b)
	}
	return s
}

// VerifyChecksum recomputes the checksum over decoded and compares it
// against the trailer stored in compressed.
func (Format) VerifyChecksum(compressed, decoded []byte) error {
	if len(compressed) < 4 {
		return retrolz.Wrap(retrolz.TruncatedInput, 0, io.ErrUnexpectedEOF, "lzss: checksum trailer truncated")
	}
	stored := binary.LittleEndian.Uint32(compressed[len(compressed)-4:])
	if stored != checksum(decoded) {
		return retrolz.Newf(retrolz.MalformedToken, len(compressed)-4, "lzss: checksum mismatch")
	}
	return nil
}

func (f Format) Decode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(data) < 4 {
		return retrolz.Wrap(retrolz.TruncatedInput, 0, io.ErrUnexpectedEOF, "lzss: checksum trailer truncated")
	}
	hdr, hdrLen, err := nlz.DecodeGBAHeader(data, tag)
	if err != nil {
		return err
	}
	body := data[hdrLen : len(data)-4]
	out, err := nlz.DecodeStream(body, true, int(hdr.DecompressedSize), decodeMatch)
	if err != nil {
		return err
	}
	if err := f.VerifyChecksum(data, out); err != nil {
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
	trailer := make([]byte, 4)
	binary.LittleEndian.PutUint32(trailer, checksum(data))
	out.Write(trailer)
	_, err = w.Write(out.Bytes())
	return err
}

func encodeMatch(m retrolz.Match) []byte {
	disp := m.Displacement - 1
	b0 := byte(m.Length-3)<<4 | byte(disp>>8)
	b1 := byte(disp)
	return []byte{b0, b1}
}
