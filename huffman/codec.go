package huffman

import "github.com/retrolz/retrolz/bitio"

// WriteSymbol writes sym's code from book to w. It is the encoder half of
// spec.md §4.4's "Code assignment: left=0, right=1": book's bits already
// encode that convention, WriteSymbol just pushes them out MSB-first.
func WriteSymbol(w *bitio.Writer, book Codebook, sym int32) error {
	c, ok := book[sym]
	if !ok {
		return errUnknownSymbol
	}
	for i := c.Length - 1; i >= 0; i-- {
		bit := (c.Bits >> uint(i)) & 1
		if err := w.WriteBits(1, bit); err != nil {
			return err
		}
	}
	return nil
}

// Decoder walks tree one bit at a time, per spec.md §4.4: "Walk the tree
// bit-by-bit from the root; emit the symbol on reaching a leaf; reset to
// root."
type Decoder struct {
	tree *Tree
}

// NewDecoder builds a Decoder for tree.
func NewDecoder(tree *Tree) *Decoder {
	return &Decoder{tree: tree}
}

// DecodeSymbol reads one symbol from r.
func (d *Decoder) DecodeSymbol(r *bitio.Reader) (int32, error) {
	if len(d.tree.Nodes) == 0 {
		return 0, errEmptyTree
	}
	if len(d.tree.Nodes) == 1 {
		// Degenerate single-symbol alphabet with no synthesized sibling
		// (BuildTree had nowhere to draw one from): the encoder still
		// wrote one bit per spec.md's "code length >= 1" rule, so consume
		// and discard it.
		if _, err := r.ReadBits(1); err != nil {
			return 0, err
		}
		return d.tree.Nodes[0].Symbol, nil
	}

	idx := d.tree.Root
	for {
		n := d.tree.Nodes[idx]
		if n.isLeaf() {
			return n.Symbol, nil
		}
		bit, err := r.ReadBits(1)
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
}

type huffmanError string

func (e huffmanError) Error() string { return string(e) }

const (
	errUnknownSymbol = huffmanError("huffman: symbol not in codebook")
	errEmptyTree      = huffmanError("huffman: empty tree")
)
