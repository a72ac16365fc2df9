package nlz

import "github.com/retrolz/retrolz"

// GBAHeader is the 4-byte (or, for oversized payloads, 8-byte extended)
// header shared by the GBA-family compressors: a tag byte identifying the
// variant (0x10 for LZ10, 0x11 for LZ11, 0x40 for LZ40, 0x60 for LZ60)
// followed by a little-endian 24-bit decompressed size. When that size
// does not fit in 24 bits, or is zero, the low 3 bytes are zero and a
// further little-endian uint32 carries the real size.
type GBAHeader struct {
	Tag              byte
	DecompressedSize uint32
}

// Encode returns the header bytes for h.
func (h GBAHeader) Encode() []byte {
	if h.DecompressedSize != 0 && h.DecompressedSize < 1<<24 {
		return []byte{
			h.Tag,
			byte(h.DecompressedSize),
			byte(h.DecompressedSize >> 8),
			byte(h.DecompressedSize >> 16),
		}
	}
	return []byte{
		h.Tag, 0, 0, 0,
		byte(h.DecompressedSize),
		byte(h.DecompressedSize >> 8),
		byte(h.DecompressedSize >> 16),
		byte(h.DecompressedSize >> 24),
	}
}

// DecodeGBAHeader parses a GBAHeader from the front of data and returns the
// header along with the number of bytes it occupied (4 or 8).
func DecodeGBAHeader(data []byte, wantTag byte) (GBAHeader, int, error) {
	if len(data) < 4 {
		return GBAHeader{}, 0, retrolz.Wrap(retrolz.TruncatedInput, 0, errShortInput, "nlz: header truncated")
	}
	if data[0] != wantTag {
		return GBAHeader{}, 0, retrolz.Newf(retrolz.MalformedToken, 0,
			"nlz: expected tag 0x%02x, got 0x%02x", wantTag, data[0])
	}
	size := uint32(data[1]) | uint32(data[2])<<8 | uint32(data[3])<<16
	if size != 0 {
		return GBAHeader{Tag: data[0], DecompressedSize: size}, 4, nil
	}
	if len(data) < 8 {
		return GBAHeader{}, 0, retrolz.Wrap(retrolz.TruncatedInput, 4, errShortInput, "nlz: extended header truncated")
	}
	size = uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24
	return GBAHeader{Tag: data[0], DecompressedSize: size}, 8, nil
}
