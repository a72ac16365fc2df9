// Package huffman builds Huffman trees and serves as the bit-packed
// entropy codec spec.md §4.4 describes: frequency counting, a min-heap tree
// build with deterministic tie-breaking, an optional bit-width cap with a
// length-limiting post-pass, canonical code assignment, and bit-level
// encode/decode on top of bitio.
//
// The arena representation (Node, indexed by int32 rather than pointer)
// follows the technique in the teacher's vendored brotli encoder
// (entropy_encode.go's huffmanTree, with index_left_/index_right_or_value_
// fields) — exactly the "flat arena of nodes with integer indices" spec.md
// §9 asks for in place of parent/child pointers.
package huffman

import "container/heap"

// Node is one entry of the tree arena. A leaf has Left == Right == -1 and
// Symbol set; an internal node has both children set once construction
// finishes (Symbol is unused on internal nodes).
type Node struct {
	Freq   uint64
	Left   int32
	Right  int32
	Symbol int32
}

func (n Node) isLeaf() bool { return n.Left < 0 && n.Right < 0 }

// Tree is a built Huffman tree: a flat arena plus the index of its root.
type Tree struct {
	Nodes []Node
	Root  int32
}

// heapItem pairs a node index with the insertion sequence used to break
// frequency ties deterministically (spec.md §4.4: "prefer the node formed
// earliest (stable)").
type heapItem struct {
	node int32
	freq uint64
	seq  int
}

type nodeHeap []heapItem

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BuildTree builds a Huffman tree from per-symbol frequencies. Symbols with
// zero frequency are excluded from the alphabet. A single-symbol alphabet
// produces a depth-1 tree with a synthesized zero-frequency sibling, per
// spec.md §4.4's degenerate-input rule, so every present symbol gets a code
// of length at least 1.
func BuildTree(freq []uint64) *Tree {
	t := &Tree{}
	h := &nodeHeap{}
	seq := 0
	push := func(n Node, f uint64) int32 {
		idx := int32(len(t.Nodes))
		t.Nodes = append(t.Nodes, n)
		heap.Push(h, heapItem{node: idx, freq: f, seq: seq})
		seq++
		return idx
	}

	present := 0
	var lastSymbol int32 = -1
	for sym, f := range freq {
		if f == 0 {
			continue
		}
		present++
		lastSymbol = int32(sym)
		push(Node{Freq: f, Left: -1, Right: -1, Symbol: int32(sym)}, f)
	}

	if present == 0 {
		return t
	}
	if present == 1 {
		// Synthesize a zero-frequency sibling so the single real symbol
		// gets a code of length 1 instead of 0.
		sibling := int32(-1)
		for sym := range freq {
			if int32(sym) != lastSymbol {
				sibling = int32(sym)
				break
			}
		}
		if sibling < 0 {
			// len(freq) == 1: there is nowhere else to draw a sibling
			// symbol from. The single leaf stands alone; Decoder and
			// BuildCanonicalTree both special-case a one-node tree.
			t.Root = (*h)[0].node
			return t
		}
		siblingIdx := push(Node{Freq: 0, Left: -1, Right: -1, Symbol: sibling}, 0)
		_ = siblingIdx
		a := heap.Pop(h).(heapItem)
		b := heap.Pop(h).(heapItem)
		root := push(Node{Freq: a.freq + b.freq, Left: a.node, Right: b.node}, a.freq+b.freq)
		t.Root = root
		return t
	}

	for h.Len() > 1 {
		a := heap.Pop(h).(heapItem)
		b := heap.Pop(h).(heapItem)
		root := push(Node{Freq: a.freq + b.freq, Left: a.node, Right: b.node}, a.freq+b.freq)
		t.Root = root
	}
	return t
}

// Depths returns, for every node index that is a leaf, its depth from the
// root (the natural, uncapped code length). Internal-node entries are left
// at 0 and should be ignored by callers.
func (t *Tree) Depths() []int {
	depths := make([]int, len(t.Nodes))
	if len(t.Nodes) == 0 {
		return depths
	}
	if len(t.Nodes) == 1 {
		depths[0] = 1
		return depths
	}
	var walk func(idx int32, depth int)
	walk = func(idx int32, depth int) {
		n := t.Nodes[idx]
		if n.isLeaf() {
			depths[idx] = depth
			return
		}
		walk(n.Left, depth+1)
		walk(n.Right, depth+1)
	}
	walk(t.Root, 0)
	return depths
}

// Lengths returns the natural code length of every symbol present in t.
func (t *Tree) Lengths() map[int32]int {
	lengths := make(map[int32]int)
	depths := t.Depths()
	for idx, n := range t.Nodes {
		if n.isLeaf() && depths[idx] > 0 {
			lengths[n.Symbol] = depths[idx]
		}
	}
	return lengths
}
