package huffman

import (
	"sort"

	"github.com/retrolz/retrolz"
)

// Code is one symbol's entry in a Codebook: Length bits of Bits, written
// MSB-first (the caller's bitio.Writer config controls bit/byte order for
// the stream as a whole; Code just fixes how many of Bits's low Length bits
// are significant and in which order they were assigned).
type Code struct {
	Bits   uint32
	Length int
}

// Codebook maps symbol -> Code for every symbol with non-zero frequency.
type Codebook map[int32]Code

// BuildCodebook derives a canonical codebook from freq, optionally capping
// code length at maxBits (0 means uncapped). Canonical here means: symbols
// are ordered by (length, symbol) and assigned consecutive codes the way
// spec.md §4.4 describes ("a canonical ordering policy... applied when the
// format requires it"); the bit values themselves follow the same
// bl_count/next_code construction as the teacher's vendored brotli encoder
// (entropy_encode.go's convertBitDepthsToSymbols). The returned codebook's
// bit assignment matches exactly what BuildCanonicalTree's tree would walk
// to, so either can drive the decode side.
func BuildCodebook(freq []uint64, maxBits int) (Codebook, error) {
	tree := BuildTree(freq)
	if len(tree.Nodes) == 0 {
		return Codebook{}, nil
	}
	lengths := tree.Lengths()
	if maxBits > 0 {
		if err := LimitLengths(lengths, freq, maxBits); err != nil {
			return nil, err
		}
	}
	return canonicalCodes(lengths), nil
}

// LimitLengths adjusts lengths in place so no entry exceeds maxBits, using
// the classic length histogram fix-up (as used by zlib's gen_bitlen): clamp
// everything over the cap into the cap bucket, then repeatedly trade one
// code at the deepest available shorter length for two codes one bit
// deeper, until the histogram is valid again. This is the "iterative
// demotion" alternative spec.md §4.4 names alongside package-merge; chosen
// here because every alphabet in this module's formats is small (<= 256
// symbols), where package-merge's bookkeeping overhead buys nothing.
func LimitLengths(lengths map[int32]int, freq []uint64, maxBits int) error {
	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen <= maxBits {
		return nil
	}

	symbols := make([]int32, 0, len(lengths))
	for sym := range lengths {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	count := make([]int, maxLen+2)
	for _, l := range lengths {
		count[l]++
	}

	overflow := 0
	for bits := maxLen; bits > maxBits; bits-- {
		overflow += count[bits]
		count[bits] = 0
	}
	count[maxBits] += overflow

	for overflow > 0 {
		bits := maxBits - 1
		for bits > 0 && count[bits] == 0 {
			bits--
		}
		if bits == 0 {
			return retrolz.Newf(retrolz.HuffmanCapExceeded, -1, "huffman: alphabet too large for a %d-bit cap", maxBits)
		}
		count[bits]--
		count[bits+1] += 2
		count[maxBits]--
		overflow -= 2
	}

	// Reassign lengths: the most frequent symbols get the shortest codes.
	order := make([]int32, len(symbols))
	copy(order, symbols)
	sort.Slice(order, func(i, j int) bool {
		fi, fj := weightOf(freq, order[i]), weightOf(freq, order[j])
		if fi != fj {
			return fi > fj
		}
		return order[i] < order[j]
	})

	idx := 0
	for l := 1; l <= maxBits; l++ {
		for c := 0; c < count[l] && idx < len(order); c++ {
			lengths[order[idx]] = l
			idx++
		}
	}
	return nil
}

func weightOf(freq []uint64, sym int32) uint64 {
	if int(sym) < 0 || int(sym) >= len(freq) {
		return 0
	}
	return freq[sym]
}

// canonicalCodes assigns canonical code values to each symbol given its
// length, following convertBitDepthsToSymbols's bl_count/next_code
// construction: symbols are ordered by (length, symbol), and the code for
// length L is one more than the previous code of length L, shifted in as
// shorter lengths are exhausted.
func canonicalCodes(lengths map[int32]int) Codebook {
	type entry struct {
		sym int32
		len int
	}
	entries := make([]entry, 0, len(lengths))
	maxLen := 0
	for sym, l := range lengths {
		entries = append(entries, entry{sym, l})
		if l > maxLen {
			maxLen = l
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].len != entries[j].len {
			return entries[i].len < entries[j].len
		}
		return entries[i].sym < entries[j].sym
	})

	blCount := make([]int, maxLen+1)
	for _, e := range entries {
		blCount[e.len]++
	}
	nextCode := make([]uint32, maxLen+1)
	code := uint32(0)
	for bits := 1; bits <= maxLen; bits++ {
		code = (code + uint32(blCount[bits-1])) << 1
		nextCode[bits] = code
	}

	book := make(Codebook, len(entries))
	for _, e := range entries {
		book[e.sym] = Code{Bits: nextCode[e.len], Length: e.len}
		nextCode[e.len]++
	}
	return book
}

// BuildCanonicalTree builds a tree whose leaf depths and left(0)/right(1)
// branch choices exactly reproduce canonicalCodes(lengths): it inserts each
// symbol's canonical code as a bit path into a fresh arena trie, allocating
// internal nodes on demand. The returned tree and codebook are therefore
// guaranteed consistent — WriteSymbol(book, sym) and
// NewDecoder(tree).DecodeSymbol always agree on the same bits, which matters
// for formats (like Nintendo's Huffman tables) whose wire format serializes
// the tree itself rather than a list of code lengths.
func BuildCanonicalTree(lengths map[int32]int) (*Tree, Codebook) {
	book := canonicalCodes(lengths)
	t := &Tree{Nodes: []Node{{Left: -1, Right: -1}}, Root: 0}
	if len(book) == 1 {
		for sym := range book {
			t.Nodes[0].Symbol = sym
			t.Nodes[0].Left, t.Nodes[0].Right = -1, -1
		}
		return t, book
	}
	for sym, c := range book {
		t.insert(c.Bits, c.Length, sym)
	}
	return t, book
}

func (t *Tree) insert(bits uint32, length int, sym int32) {
	node := t.Root
	for level := length - 1; level >= 1; level-- {
		bit := (bits >> uint(level)) & 1
		node = t.childOrCreate(node, bit)
	}
	leaf := t.newLeaf(sym)
	t.setChild(node, bits&1, leaf)
}

func (t *Tree) childOrCreate(idx int32, bit uint32) int32 {
	if bit == 0 {
		if t.Nodes[idx].Left < 0 {
			t.Nodes[idx].Left = t.newInternal()
		}
		return t.Nodes[idx].Left
	}
	if t.Nodes[idx].Right < 0 {
		t.Nodes[idx].Right = t.newInternal()
	}
	return t.Nodes[idx].Right
}

func (t *Tree) newInternal() int32 {
	idx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{Left: -1, Right: -1})
	return idx
}

func (t *Tree) newLeaf(sym int32) int32 {
	idx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{Left: -1, Right: -1, Symbol: sym})
	return idx
}

func (t *Tree) setChild(idx int32, bit uint32, child int32) {
	if bit == 0 {
		t.Nodes[idx].Left = child
	} else {
		t.Nodes[idx].Right = child
	}
}
