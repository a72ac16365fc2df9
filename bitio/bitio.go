// Package bitio implements the bit- and byte-level I/O primitives spec.md
// §4.1 describes: readers and writers with a configurable bit order
// (MSB/LSB-first), byte order (little/big-endian), and unit size (8 or 16
// bits). Every format adapter in codec/ builds its header and token-stream
// I/O on top of these two types instead of hand-rolling bit shifting.
package bitio

// BitOrder controls which end of a unit read_bits/write_bits consumes
// first.
type BitOrder int

const (
	MSBFirst BitOrder = iota
	LSBFirst
)

// ByteOrder controls how a 16-bit unit's two bytes are fetched from, or
// flushed to, the backing byte source.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// UnitSize is the width, in bits, of one buffered unit.
type UnitSize int

const (
	Unit8  UnitSize = 8
	Unit16 UnitSize = 16
)

// Config bundles the three axes spec.md §4.1 names. The zero Config reads as
// {MSBFirst, LittleEndian, Unit8}, which is the common case for the
// byte-oriented Nintendo formats; formats that need something else build a
// Config explicitly.
type Config struct {
	BitOrder  BitOrder
	ByteOrder ByteOrder
	UnitSize  UnitSize
}

func (c Config) unitSize() int {
	if c.UnitSize == 0 {
		return 8
	}
	return int(c.UnitSize)
}
