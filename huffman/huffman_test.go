package huffman

import (
	"bytes"
	"testing"

	"github.com/retrolz/retrolz"
	"github.com/retrolz/retrolz/bitio"
)

func encodeDecodeSymbols(t *testing.T, freq []uint64, symbols []int32, maxBits int) {
	book, err := BuildCodebook(freq, maxBits)
	if err != nil {
		t.Fatal(err)
	}
	lengths := make(map[int32]int, len(book))
	for sym, c := range book {
		lengths[sym] = c.Length
	}
	tree, canonicalBook := BuildCanonicalTree(lengths)

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, bitio.Config{BitOrder: bitio.MSBFirst, UnitSize: bitio.Unit8})
	for _, sym := range symbols {
		if err := WriteSymbol(w, canonicalBook, sym); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.AlignToUnit(); err != nil {
		t.Fatal(err)
	}

	r := bitio.NewReader(bytes.NewReader(buf.Bytes()), bitio.Config{BitOrder: bitio.MSBFirst, UnitSize: bitio.Unit8})
	dec := NewDecoder(tree)
	for _, want := range symbols {
		got, err := dec.DecodeSymbol(r)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("decoded %d, want %d", got, want)
		}
	}
}

func TestCanonicalTreeRoundtrip(t *testing.T) {
	freq := make([]uint64, 8)
	freq[0], freq[1], freq[2], freq[3] = 40, 20, 10, 5
	freq[4], freq[5], freq[6], freq[7] = 4, 3, 2, 1
	symbols := []int32{0, 1, 0, 2, 0, 3, 7, 6, 0, 1}
	encodeDecodeSymbols(t, freq, symbols, 0)
}

func TestDegenerateSingleSymbolAlphabet(t *testing.T) {
	freq := make([]uint64, 4)
	freq[2] = 100
	symbols := []int32{2, 2, 2, 2, 2}
	encodeDecodeSymbols(t, freq, symbols, 0)
}

func TestLimitLengthsCapsLongestCode(t *testing.T) {
	// A geometrically skewed frequency table naturally produces a code
	// longer than a tight cap, exercising the histogram fix-up.
	freq := make([]uint64, 20)
	w := uint64(1 << 30)
	for i := range freq {
		freq[i] = w
		if w > 1 {
			w /= 2
		}
	}
	const maxBits = 6
	book, err := BuildCodebook(freq, maxBits)
	if err != nil {
		t.Fatal(err)
	}
	for sym, c := range book {
		if c.Length > maxBits {
			t.Fatalf("symbol %d has code length %d, exceeds cap %d", sym, c.Length, maxBits)
		}
	}
}

func TestLimitLengthsReturnsHuffmanCapExceeded(t *testing.T) {
	// An alphabet of N equiprobable symbols needs a code at least
	// ceil(log2(N)) bits long; capping below that is unsatisfiable.
	freq := make([]uint64, 256)
	for i := range freq {
		freq[i] = 1
	}
	_, err := BuildCodebook(freq, 4)
	if err == nil {
		t.Fatal("expected an error for an unsatisfiable cap")
	}
	ce, ok := err.(*retrolz.CodecError)
	if !ok || ce.Kind != retrolz.HuffmanCapExceeded {
		t.Fatalf("expected HuffmanCapExceeded, got %v", err)
	}
}

func TestBuildCanonicalTreeMatchesCodebook(t *testing.T) {
	freq := []uint64{5, 1, 1, 2, 2, 3}
	tree := BuildTree(freq)
	lengths := tree.Lengths()
	builtTree, book := BuildCanonicalTree(lengths)
	for sym, c := range book {
		idx := builtTree.Root
		for level := c.Length - 1; level >= 0; level-- {
			bit := (c.Bits >> uint(level)) & 1
			n := builtTree.Nodes[idx]
			if bit == 0 {
				idx = n.Left
			} else {
				idx = n.Right
			}
		}
		if builtTree.Nodes[idx].Symbol != sym {
			t.Fatalf("tree walk for symbol %d landed on symbol %d", sym, builtTree.Nodes[idx].Symbol)
		}
	}
}
