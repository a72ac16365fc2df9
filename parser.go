package retrolz

// OptimalParse runs the single-pass shortest-path DP from spec.md §4.3 over
// units[start:n), using finder for match candidates at each position and
// price for edge weights. It returns the minimum-cost token stream covering
// [start, n), with Token.Position expressed in the same coordinate space as
// units (callers composing a pre-buffer pass start > 0 and rebase
// afterwards; see Parse).
//
// This replaces the teacher's GreedyParser: that type picked the single
// longest match at each position and never reconsidered it, which is the
// right tradeoff for press's use case (fast, good-enough general-purpose
// compression) but not for this module, where every format needs a globally
// minimal parse under its own price function. The DP below is the
// exact-optimality generalization the spec calls for; the greedy
// one-candidate-at-a-time walk it replaces doesn't have a home in
// SPEC_FULL.md because none of the twenty formats here accept a
// merely-good parse.
//
// Its node is (position, skip-remaining), not just position: a
// locally-cheaper arrival that leaves the node blocked (mid skip-after-match
// window) and a locally-costlier one that leaves it unblocked are genuinely
// different nodes, since only the unblocked one can start a new match. A
// single cost/pred slot per position (picking whichever arrival is cheaper,
// regardless of which one it leaves blocked) would let a cheap-but-blocked
// arrival shadow an expensive-but-unblocked one that enables a much cheaper
// continuation — this is why skip-remaining is its own DP dimension.
func OptimalParse(units Units, start int, finder *Finder, price PriceCalculator, skipUnitsAfterMatch int) []Token {
	n := units.Len()

	maxSkip := skipUnitsAfterMatch
	if maxSkip < 0 {
		maxSkip = 0
	}
	states := maxSkip + 1
	idx := func(p, s int) int { return p*states + s }

	cost := make([]int, (n+1)*states)
	reached := make([]bool, (n+1)*states)
	type predEdge struct {
		isMatch      bool
		length       int
		displacement int
		fromState    int
	}
	pred := make([]predEdge, (n+1)*states)

	cost[idx(start, 0)] = 0
	reached[idx(start, 0)] = true

	var matches []Match
	for p := start; p < n; p++ {
		for s := 0; s < states; s++ {
			i := idx(p, s)
			if !reached[i] {
				continue
			}

			// 1. literal edge p -> p+1, counting the skip window down by one unit
			ns := s - 1
			if ns < 0 {
				ns = 0
			}
			lq := idx(p+1, ns)
			lc := cost[i] + price.LiteralPrice(units.At(p))
			if better(lc, 1, maxInt, cost[lq], 1, maxInt, reached[lq]) {
				cost[lq] = lc
				reached[lq] = true
				pred[lq] = predEdge{isMatch: false, fromState: s}
			}

			// 2. match edges, only legal from the unblocked state
			if s > 0 {
				continue
			}
			matches = finder.Search(matches[:0], p, n)
			for _, m := range matches {
				q := p + m.Length
				if q > n {
					continue
				}
				mq := idx(q, maxSkip)
				mc := cost[i] + price.MatchPrice(m)
				if better(mc, m.Length, m.Displacement, cost[mq], pred[mq].length, pred[mq].displacement, reached[mq]) {
					cost[mq] = mc
					reached[mq] = true
					pred[mq] = predEdge{isMatch: true, length: m.Length, displacement: m.Displacement, fromState: s}
				}
			}
		}
	}

	bestState := -1
	for s := 0; s < states; s++ {
		if reached[idx(n, s)] && (bestState == -1 || cost[idx(n, s)] < cost[idx(n, bestState)]) {
			bestState = s
		}
	}

	var tokens []Token
	p, s := n, bestState
	for p > start {
		e := pred[idx(p, s)]
		if e.isMatch {
			tokens = append(tokens, Token{IsMatch: true, Position: p - e.length, Length: e.length, Displacement: e.displacement})
			p -= e.length
		} else {
			tokens = append(tokens, Token{IsMatch: false, Position: p - 1, Length: 1})
			p--
		}
		s = e.fromState
	}
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return tokens
}

const maxInt = int(^uint(0) >> 1)

// better reports whether a candidate edge of cost newCost, length newLen and
// displacement newDisp should replace the current best arrival at a node
// (curCost/curLen/curDisp, curReached telling whether there is one yet).
// Ties prefer the longer match (fewer tokens), then the smaller
// displacement, per spec.md §4.3.
func better(newCost, newLen, newDisp, curCost, curLen, curDisp int, curReached bool) bool {
	if !curReached {
		return true
	}
	if newCost != curCost {
		return newCost < curCost
	}
	if newLen != curLen {
		return newLen > curLen
	}
	return newDisp < curDisp
}

// Parse is the entry point format adapters use during Encode: it composes
// the pre-buffer, reverses the input for a backward-direction format, runs
// the match finder and optimal parser, and rebases the resulting tokens back
// into the caller's coordinate space (spec.md §4.2's "Backward mode" note:
// "equivalent to running forward mode on the byte-reversed input").
func Parse(input []byte, limitations []FindLimitations, options FindOptions, price PriceCalculator) []Token {
	unitSize := options.UnitSize
	if unitSize == 0 {
		unitSize = UnitSize1
	}

	scan := input
	if options.Direction == Backward {
		scan = reversedCopy(input)
	}

	prebufUnits := options.PreBufferSize
	var combined []byte
	if prebufUnits > 0 {
		combined = make([]byte, prebufUnits*int(unitSize)+len(scan))
		copy(combined, options.PreBufferContents[:prebufUnits*int(unitSize)])
		copy(combined[prebufUnits*int(unitSize):], scan)
	} else {
		combined = scan
	}

	units := Units{Data: combined, Size: unitSize}
	finder := NewFinder(limitations, unitSize)
	finder.Build(units)

	raw := OptimalParse(units, prebufUnits, finder, price, options.SkipUnitsAfterMatch)

	for i := range raw {
		raw[i].Position -= prebufUnits
	}

	if options.Direction != Backward {
		return raw
	}

	realN := len(scan) / int(unitSize)
	tokens := make([]Token, len(raw))
	for i, t := range raw {
		tokens[i] = Token{
			IsMatch:      t.IsMatch,
			Length:       t.Length,
			Displacement: t.Displacement,
			Position:     realN - (t.Position + t.Length),
		}
	}
	return tokens
}

func reversedCopy(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
