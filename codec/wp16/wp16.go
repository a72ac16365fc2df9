// Package wp16 implements WP16, the one format in this family whose unit
// is a 2-byte word rather than a byte: length lives in [4, 0x42] and
// displacement in [2, 0xFFE], both counted in words (retrolz.Parse already
// expresses Token.Length/Displacement in the FindOptions.UnitSize it was
// given, per parser.go). Decoding still operates on the raw byte window
// the shared nlz.Window provides, so a match's word-counted length and
// displacement are each doubled before touching it. Literal tokens carry a
// whole word under one flag bit via nlz.FlagWriter.PutLiteral2, and — per
// spec.md §8 scenario 6 — a decompressed size that isn't word-aligned
// rejects with MalformedToken rather than silently truncating the last
// byte.
package wp16

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x16

var limitations = []retrolz.FindLimitations{
	{MinLength: 4, MaxLength: 0x42, MinDisplacement: 2, MaxDisplacement: 0xFFE},
}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize2}

var price = retrolz.ConstPrice{LiteralBits: 17, MatchBits: 25}

// Format implements codec.Format for WP16.
type Format struct{}

// New returns a WP16 Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "wp16" }

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
	if hdr.DecompressedSize%2 != 0 {
		return retrolz.Newf(retrolz.MalformedToken, hdrLen, "wp16: odd decompressed size %d", hdr.DecompressedSize)
	}
	out, err := decodeStream(data[hdrLen:], int(hdr.DecompressedSize))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func decodeStream(data []byte, outBytes int) ([]byte, error) {
	r := nlz.NewFlagReader(data, true)
	win := &nlz.Window{}
	for win.Len() < outBytes {
		isMatch, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !isMatch {
			b, err := r.ReadBytes(2)
			if err != nil {
				return nil, err
			}
			win.WriteLiteral(b[0])
			win.WriteLiteral(b[1])
			continue
		}
		length, displacement, err := decodeMatch(r)
		if err != nil {
			return nil, err
		}
		byteLen := length * 2
		if win.Len()+byteLen > outBytes {
			return nil, retrolz.Newf(retrolz.OutOfRangeWrite, win.Len(), "wp16: match overruns decompressed size")
		}
		if err := win.CopyMatch(displacement*2, byteLen); err != nil {
			return nil, err
		}
	}
	return win.Data, nil
}

// decodeMatch reads a 3-byte payload: word-length-4 in the first byte, and
// word-displacement-2 as a 16-bit big-endian field in the next two — both
// comfortably fit their own byte(s), so there's no need to bit-pack them
// together the way the tighter GBA-family formats do.
func decodeMatch(r *nlz.FlagReader) (length, displacement int, err error) {
	b, err := r.ReadBytes(3)
	if err != nil {
		return 0, 0, err
	}
	length = int(b[0]) + 4
	displacement = (int(b[1])<<8 | int(b[2])) + 2
	return length, displacement, nil
}

func (Format) Encode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(data)%2 != 0 {
		return retrolz.Newf(retrolz.InvalidRange, len(data), "wp16: odd-length input")
	}
	units := retrolz.Units{Data: data, Size: retrolz.UnitSize2}
	tokens := retrolz.Parse(data, limitations, options, price)

	fw := nlz.NewFlagWriter(true)
	for _, t := range tokens {
		if !t.IsMatch {
			lit := t.Literal(units)
			fw.PutLiteral2(lit[0], lit[1])
			continue
		}
		fw.PutMatch(encodeMatch(t.Length, t.Displacement))
	}
	body := fw.Bytes()

	hdr := nlz.GBAHeader{Tag: tag, DecompressedSize: uint32(len(data))}
	out := bytes.NewBuffer(hdr.Encode())
	out.Write(body)
	_, err = w.Write(out.Bytes())
	return err
}

func encodeMatch(length, displacement int) []byte {
	d := displacement - 2
	return []byte{byte(length - 4), byte(d >> 8), byte(d)}
}
