// Package nintendohuffman implements the Nintendo Huffman format: a 4-byte
// header (compression tag with the bit width in its low nibble, plus a
// 24-bit decompressed size), a serialized code tree, and a bitstream of
// canonical Huffman codes over either 4-bit nibbles or 8-bit bytes. BitWidth
// selects the symbol granularity; ByteOrder governs the header's size field
// and, for 4-bit mode, which nibble of each byte is coded first — spec.md
// §6's "LE or BE" variant axis.
package nintendohuffman

import (
	"encoding/binary"
	"io"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/bitio"
	"github.com/retrolz/retrolz/huffman"
)

// BitWidth is the Huffman symbol granularity.
type BitWidth int

const (
	Width4 BitWidth = 4
	Width8 BitWidth = 8
)

const tagBase = 0x20

// Format implements codec.Format for one (BitWidth, ByteOrder) combination.
type Format struct {
	Width BitWidth
	Order bitio.ByteOrder
}

// New4LE, New4BE, New8LE and New8BE construct the four named variants.
func New4LE() *Format { return &Format{Width: Width4, Order: bitio.LittleEndian} }
func New4BE() *Format { return &Format{Width: Width4, Order: bitio.BigEndian} }
func New8LE() *Format { return &Format{Width: Width8, Order: bitio.LittleEndian} }
func New8BE() *Format { return &Format{Width: Width8, Order: bitio.BigEndian} }

func (f *Format) Name() string {
	if f.Order == bitio.BigEndian {
		if f.Width == Width4 {
			return "nintendohuffman4be"
		}
		return "nintendohuffman8be"
	}
	if f.Width == Width4 {
		return "nintendohuffman4le"
	}
	return "nintendohuffman8le"
}

func (f *Format) Identify(header []byte) bool {
	return len(header) >= 4 && header[0] == tagBase|byte(f.Width)
}

func (f *Format) putSize(size uint32) []byte {
	b := make([]byte, 3)
	if f.Order == bitio.BigEndian {
		b[0], b[1], b[2] = byte(size>>16), byte(size>>8), byte(size)
	} else {
		b[0], b[1], b[2] = byte(size), byte(size>>8), byte(size>>16)
	}
	return b
}

func (f *Format) getSize(b []byte) uint32 {
	if f.Order == bitio.BigEndian {
		return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func (f *Format) Decode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(data) < 4 || data[0] != tagBase|byte(f.Width) {
		return retrolz.Newf(retrolz.MalformedToken, 0, "nintendohuffman: bad header")
	}
	outSize := f.getSize(data[1:4])

	tree, treeLen, err := decodeTree(data[4:])
	if err != nil {
		return err
	}

	dec := huffman.NewDecoder(tree)
	br := bitio.NewReader(&bytesReader{data[4+treeLen:]}, bitio.Config{BitOrder: bitio.MSBFirst, UnitSize: bitio.Unit8})

	out := make([]byte, 0, outSize)
	if f.Width == Width8 {
		for uint32(len(out)) < outSize {
			sym, err := dec.DecodeSymbol(br)
			if err != nil {
				return err
			}
			out = append(out, byte(sym))
		}
	} else {
		for uint32(len(out)) < outSize {
			// first/second are decoded in the same order symbolsOf emitted
			// them during encoding, so this reconstruction is exactly its
			// inverse regardless of which nibble each held.
			first, err := dec.DecodeSymbol(br)
			if err != nil {
				return err
			}
			second, err := dec.DecodeSymbol(br)
			if err != nil {
				return err
			}
			if f.Order == bitio.BigEndian {
				out = append(out, byte(first)<<4|byte(second))
			} else {
				out = append(out, byte(second)<<4|byte(first))
			}
		}
	}
	_, err = w.Write(out)
	return err
}

func (f *Format) Encode(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	alphabet := 256
	if f.Width == Width4 {
		alphabet = 16
	}
	freq := make([]uint64, alphabet)
	symbolsOf := func(b byte) (int32, int32) {
		if f.Width == Width8 {
			return int32(b), -1
		}
		if f.Order == bitio.BigEndian {
			return int32(b >> 4), int32(b & 0x0F)
		}
		return int32(b & 0x0F), int32(b >> 4)
	}
	for _, b := range data {
		s1, s2 := symbolsOf(b)
		freq[s1]++
		if s2 >= 0 {
			freq[s2]++
		}
	}

	lengths := huffman.BuildTree(freq).Lengths()
	maxBits := 8
	if f.Width == Width4 {
		maxBits = 4
	}
	if err := huffman.LimitLengths(lengths, freq, maxBits); err != nil {
		return err
	}
	tree, book := huffman.BuildCanonicalTree(lengths)

	var bitbuf bytesWriter
	bw := bitio.NewWriter(&bitbuf, bitio.Config{BitOrder: bitio.MSBFirst, UnitSize: bitio.Unit8})
	for _, b := range data {
		s1, s2 := symbolsOf(b)
		if err := huffman.WriteSymbol(bw, book, s1); err != nil {
			return err
		}
		if s2 >= 0 {
			if err := huffman.WriteSymbol(bw, book, s2); err != nil {
				return err
			}
		}
	}
	if err := bw.AlignToUnit(); err != nil {
		return err
	}

	header := []byte{tagBase | byte(f.Width)}
	header = append(header, f.putSize(uint32(len(data)))...)
	if _, err := w.Write(header); err != nil {
		return err
	}
	if err := writeTree(w, tree); err != nil {
		return err
	}
	_, err = w.Write(bitbuf.buf)
	return err
}

// bytesReader and bytesWriter adapt a plain byte slice to io.Reader/Writer
// without pulling in bytes.Reader's Seek/ReadAt surface that bitio doesn't
// need.
type bytesReader struct{ b []byte }

func (r *bytesReader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}

type bytesWriter struct{ buf []byte }

func (w *bytesWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func writeTree(w io.Writer, t *huffman.Tree) error {
	count := make([]byte, 2)
	binary.LittleEndian.PutUint16(count, uint16(len(t.Nodes)))
	if _, err := w.Write(count); err != nil {
		return err
	}
	for _, n := range t.Nodes {
		if n.Left < 0 && n.Right < 0 {
			if _, err := w.Write([]byte{1, byte(n.Symbol)}); err != nil {
				return err
			}
			continue
		}
		b := make([]byte, 5)
		b[0] = 0
		binary.LittleEndian.PutUint16(b[1:3], uint16(n.Left))
		binary.LittleEndian.PutUint16(b[3:5], uint16(n.Right))
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

func decodeTree(data []byte) (*huffman.Tree, int, error) {
	if len(data) < 2 {
		return nil, 0, retrolz.Wrap(retrolz.TruncatedInput, 0, io.ErrUnexpectedEOF, "nintendohuffman: tree header truncated")
	}
	count := int(binary.LittleEndian.Uint16(data[:2]))
	pos := 2
	nodes := make([]huffman.Node, count)
	for i := 0; i < count; i++ {
		if pos >= len(data) {
			return nil, 0, retrolz.Wrap(retrolz.TruncatedInput, pos, io.ErrUnexpectedEOF, "nintendohuffman: tree node truncated")
		}
		isLeaf := data[pos]
		pos++
		if isLeaf == 1 {
			if pos >= len(data) {
				return nil, 0, retrolz.Wrap(retrolz.TruncatedInput, pos, io.ErrUnexpectedEOF, "nintendohuffman: tree leaf truncated")
			}
			nodes[i] = huffman.Node{Left: -1, Right: -1, Symbol: int32(data[pos])}
			pos++
			continue
		}
		if pos+4 > len(data) {
			return nil, 0, retrolz.Wrap(retrolz.TruncatedInput, pos, io.ErrUnexpectedEOF, "nintendohuffman: tree internal node truncated")
		}
		left := int16(binary.LittleEndian.Uint16(data[pos : pos+2]))
		right := int16(binary.LittleEndian.Uint16(data[pos+2 : pos+4]))
		nodes[i] = huffman.Node{Left: int32(left), Right: int32(right)}
		pos += 4
	}
	return &huffman.Tree{Nodes: nodes, Root: 0}, pos, nil
}
