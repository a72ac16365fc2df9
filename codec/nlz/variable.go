package nlz

// EncodeVariableMatch renders a match as LZ11's three-tier variable-width
// payload (shared, bit-for-bit, by lz11, lz40 and lz60): a 2-byte payload
// for length in [3, 0x10], a 3-byte payload for length in [0x11, 0x110],
// and a 4-byte payload beyond that, with a 12-bit displacement in every
// tier.
func EncodeVariableMatch(length, displacement int) []byte {
	disp := displacement - 1
	switch {
	case length <= 0x10:
		b0 := byte(length-1)<<4 | byte(disp>>8)
		return []byte{b0, byte(disp)}
	case length <= 0x110:
		l := length - 0x11
		b0 := byte(l >> 4)
		b1 := byte(l<<4) | byte(disp>>8)
		b2 := byte(disp)
		return []byte{b0, b1, b2}
	default:
		l := length - 0x111
		b0 := byte(0x10) | byte(l>>12)
		b1 := byte(l >> 4)
		b2 := byte(l<<4) | byte(disp>>8)
		b3 := byte(disp)
		return []byte{b0, b1, b2, b3}
	}
}

// DecodeVariableMatch is EncodeVariableMatch's inverse.
func DecodeVariableMatch(r *FlagReader) (length, displacement int, err error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	classNibble := int(b0 >> 4)
	switch classNibble {
	case 0:
		rest, err := r.ReadBytes(2)
		if err != nil {
			return 0, 0, err
		}
		l := int(b0)<<4 | int(rest[0])>>4
		length = l + 0x11
		displacement = (int(rest[0]&0x0F)<<8 | int(rest[1])) + 1
	case 1:
		rest, err := r.ReadBytes(3)
		if err != nil {
			return 0, 0, err
		}
		l := int(b0&0x0F)<<12 | int(rest[0])<<4 | int(rest[1])>>4
		length = l + 0x111
		displacement = (int(rest[1]&0x0F)<<8 | int(rest[2])) + 1
	default:
		rest, err := r.ReadBytes(1)
		if err != nil {
			return 0, 0, err
		}
		length = classNibble + 1
		displacement = (int(b0&0x0F)<<8 | int(rest[0])) + 1
	}
	return length, displacement, nil
}
