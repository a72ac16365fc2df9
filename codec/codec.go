// Package codec defines the common contract every format adapter
// (codec/lz10, codec/yaz0, codec/nintendohuffman, and so on) implements.
// Each adapter subpackage is independently importable on its own, the way
// the teacher pack's format-specific subpackages (snappy, lz4, zstd) are;
// codec/registry holds the Registry that looks one up by name or by
// sniffing a header, and only carries the adapters registered with it.
package codec

import (
	"io"

	"github.com/retrolz/retrolz"
)

// Format is the contract every codec adapter satisfies.
type Format interface {
	// Name returns the format's identifier, matching its subpackage name.
	Name() string
	// Identify reports whether header (the first bytes of a candidate
	// input) looks like this format's wire encoding. Adapters only need
	// enough of header to check a magic byte or tag; Registry.Identify
	// feeds it consistently sized headers.
	Identify(header []byte) bool
	// Decode reads a compressed stream from r and writes the decompressed
	// bytes to w.
	Decode(r io.Reader, w io.Writer) error
	// Encode reads raw bytes from r and writes this format's compressed
	// encoding to w. Decode-only formats return ErrUnsupportedOperation.
	Encode(r io.Reader, w io.Writer) error
}

// PricedFormat is an optional capability: formats built on the generic
// retrolz.Parse engine expose the match-finding configuration they drive
// it with, so conformance tests can inspect it without hardcoding
// per-format knowledge.
type PricedFormat interface {
	Format
	Limitations() []retrolz.FindLimitations
	Options() retrolz.FindOptions
	Price() retrolz.PriceCalculator
}

// ChecksummedFormat is an optional capability for formats (lzss) whose
// wire encoding carries a checksum of the decompressed payload. compressed
// is the raw encoded blob (so the format can locate its own checksum
// trailer); decoded is the payload to check it against.
type ChecksummedFormat interface {
	Format
	VerifyChecksum(compressed, decoded []byte) error
}
