// Package rle implements Nintendo's run-length format tagged 0x30: the same
// 4-byte GBA header as the LZ family, followed by a stream of control bytes.
// A control byte's high bit selects the run kind: clear means an
// uncompressed run of (low 7 bits + 1) raw bytes follow; set means a
// compressed run of (low 7 bits + 3) copies of the single byte that follows.
// A compressed run is exactly a displacement-1 match in the shared parser's
// terms — "repeat the previous byte N times" — so encoding reuses
// retrolz.Parse with displacement pinned to 1 and coalesces the runs of
// literal tokens it leaves between matches into control-byte-sized chunks.
package rle

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/codec/nlz"
)

const tag = 0x30

const (
	minRun = 3
	maxRun = 0x82
	maxLit = 0x80
)

var limitations = []retrolz.FindLimitations{
	{MinLength: minRun, MaxLength: maxRun, MinDisplacement: 1, MaxDisplacement: 1},
}

var options = retrolz.FindOptions{Direction: retrolz.Forward, UnitSize: retrolz.UnitSize1}

// price approximates the per-token bit cost: a literal run's control byte
// cost is amortized across its members, so a single literal is priced at
// its own byte alone; a compressed run always costs one control byte plus
// the one repeated byte, independent of its length.
var price = retrolz.ConstPrice{LiteralBits: 8, MatchBits: 16}

// Format implements codec.Format for Nintendo RLE.
type Format struct{}

// New returns a Nintendo RLE Format.
func New() *Format { return &Format{} }

func (Format) Name() string { return "rle" }

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
	body := data[hdrLen:]
	out := make([]byte, 0, hdr.DecompressedSize)
	pos := 0
	for uint32(len(out)) < hdr.DecompressedSize {
		if pos >= len(body) {
			return retrolz.Wrap(retrolz.TruncatedInput, pos, io.ErrUnexpectedEOF, "rle: control byte truncated")
		}
		ctrl := body[pos]
		pos++
		if ctrl&0x80 == 0 {
			n := int(ctrl) + 1
			if pos+n > len(body) {
				return retrolz.Wrap(retrolz.TruncatedInput, pos, io.ErrUnexpectedEOF, "rle: literal run truncated")
			}
			out = append(out, body[pos:pos+n]...)
			pos += n
			continue
		}
		n := int(ctrl&0x7F) + minRun
		if pos >= len(body) {
			return retrolz.Wrap(retrolz.TruncatedInput, pos, io.ErrUnexpectedEOF, "rle: compressed run truncated")
		}
		b := body[pos]
		pos++
		for i := 0; i < n; i++ {
			out = append(out, b)
		}
	}
	_, err = w.Write(out)
	return err
}

func (Format) Encode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	tokens := retrolz.Parse(data, limitations, options, price)

	var body bytes.Buffer
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.IsMatch {
			n := t.Length - minRun
			body.WriteByte(0x80 | byte(n))
			body.WriteByte(data[t.Position])
			i++
			continue
		}
		start := i
		for i < len(tokens) && !tokens[i].IsMatch && i-start < maxLit {
			i++
		}
		run := tokens[start:i]
		body.WriteByte(byte(len(run) - 1))
		for _, lt := range run {
			body.WriteByte(data[lt.Position])
		}
	}

	hdr := nlz.GBAHeader{Tag: tag, DecompressedSize: uint32(len(data))}
	out := bytes.NewBuffer(hdr.Encode())
	out.Write(body.Bytes())
	_, err = w.Write(out.Bytes())
	return err
}
