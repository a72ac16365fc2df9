package nlz

import (
	"bytes"
	"io"

	"github.com/retrolz/retrolz"
)

// EncodeYazMatch renders a match in the two-tier scheme MIO0, YAY0 and YAZ0
// share: length in [3, 0x12) packs into a 2-byte payload, its high nibble
// holding length-2; length 0x12 and above packs into a 3-byte payload whose
// first byte's high nibble is forced to zero (the signal the short form
// never produces, since length-2 there is always >= 1) and whose third byte
// holds length-0x12. Displacement is a 12-bit field split across both
// tiers' first two bytes either way.
func EncodeYazMatch(length, displacement int) []byte {
	disp := displacement - 1
	if length < 0x12 {
		b0 := byte(length-2)<<4 | byte(disp>>8)
		return []byte{b0, byte(disp)}
	}
	b0 := byte(disp >> 8)
	b1 := byte(disp)
	b2 := byte(length - 0x12)
	return []byte{b0, b1, b2}
}

// DecodeYazMatchFlag is EncodeYazMatch's inverse for a match embedded in a
// flag-grouped interleaved stream (YAZ0).
func DecodeYazMatchFlag(r *FlagReader) (length, displacement int, err error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	if nibble := b0 >> 4; nibble != 0 {
		rest, err := r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		return int(nibble) + 2, (int(b0&0x0F)<<8 | int(rest)) + 1, nil
	}
	rest, err := r.ReadBytes(2)
	if err != nil {
		return 0, 0, err
	}
	return int(rest[1]) + 0x12, (int(b0&0x0F)<<8 | int(rest[0])) + 1, nil
}

// DecodeYazMatchBytes is EncodeYazMatch's inverse for a match read from the
// plain (non-flag-grouped) link stream MIO0 and YAY0 address by offset.
func DecodeYazMatchBytes(r *bytes.Reader) (length, displacement int, err error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, 0, retrolz.Wrap(retrolz.TruncatedInput, -1, io.ErrUnexpectedEOF, "nlz: link stream truncated")
	}
	if nibble := b0 >> 4; nibble != 0 {
		b1, err := r.ReadByte()
		if err != nil {
			return 0, 0, retrolz.Wrap(retrolz.TruncatedInput, -1, io.ErrUnexpectedEOF, "nlz: link stream truncated")
		}
		return int(nibble) + 2, (int(b0&0x0F)<<8 | int(b1)) + 1, nil
	}
	b1, err := r.ReadByte()
	if err != nil {
		return 0, 0, retrolz.Wrap(retrolz.TruncatedInput, -1, io.ErrUnexpectedEOF, "nlz: link stream truncated")
	}
	b2, err := r.ReadByte()
	if err != nil {
		return 0, 0, retrolz.Wrap(retrolz.TruncatedInput, -1, io.ErrUnexpectedEOF, "nlz: link stream truncated")
	}
	return int(b2) + 0x12, (int(b0&0x0F)<<8 | int(b1)) + 1, nil
}
