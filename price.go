package retrolz

// PriceCalculator supplies the optimal parser with bit costs. Per spec.md
// §4.3 the algorithm is only guaranteed optimal when both methods return
// non-negative values; every calculator in this module satisfies that.
//
// This mirrors the cost/lit/match split the minymiser packer's Encoder
// interface uses for its own cheapest-match search (packer/miny.go), pulled
// up here into a single function-valued contract so the DP can query it
// per-candidate instead of baking a constant price into the finder.
type PriceCalculator interface {
	LiteralPrice(unit []byte) int
	MatchPrice(m Match) int
}

// ConstPrice is a PriceCalculator for formats whose literal and match costs
// don't depend on the byte or the length/displacement bucket: every literal
// costs LiteralBits, every match costs MatchBits regardless of shape. Useful
// for formats with a fixed-width token encoding.
type ConstPrice struct {
	LiteralBits int
	MatchBits   int
}

func (p ConstPrice) LiteralPrice(unit []byte) int { return p.LiteralBits }
func (p ConstPrice) MatchPrice(m Match) int        { return p.MatchBits }

// FuncPrice adapts two plain functions to PriceCalculator, for formats whose
// match price depends on which length/displacement bucket a candidate falls
// into (spec.md §9, "Variable-length price functions").
type FuncPrice struct {
	Literal func(unit []byte) int
	Match   func(m Match) int
}

func (p FuncPrice) LiteralPrice(unit []byte) int { return p.Literal(unit) }
func (p FuncPrice) MatchPrice(m Match) int        { return p.Match(m) }
