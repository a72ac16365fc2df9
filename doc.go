// Package retrolz is a shared engine for lossless compression codecs used by
// legacy and proprietary byte-stream formats, mostly from console games:
// Nintendo LZ10/LZ11/LZ40/LZ60, LZSS variants, MIO0/YAY0/YAZ0, Nintendo
// Huffman, Nintendo RLE, Taiko LZ80/81, WP16, LzEcd/Lze/LzEnc, TalesOf
// variants, and backward LZ77.
//
// The package supplies the pieces that are common to all of them: a
// configurable bit/byte I/O layer (see bitio), a bounded view over a backing
// byte source (see substream), a generic LZ match finder and a globally
// optimal token-stream parser (this package), and a Huffman tree builder and
// bit-packed codec (see huffman). Each format lives in its own codec/<name>
// subpackage and is a thin adapter over these primitives: it owns its own
// header layout, token bit-packing, and price function, and drives the
// match finder and parser with its own FindLimitations and FindOptions.
package retrolz
