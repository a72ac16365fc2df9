package retrolz

// Finder enumerates back-reference candidates at a position, the way
// spec.md §4.2 describes: a hash chain indexed by a short k-gram, walked to
// find every prior occurrence within range, each extended to its maximum
// run length and filtered by the installed FindLimitations.
//
// It is the generalization of the teacher's HashChain (chain.go in this
// module's history): that type hard-coded a single MaxDistance and a single
// minimum match length of 4 for one output format. Finder instead takes a
// full FindLimitations set — several may be installed simultaneously, as
// the Lze format's two match tiers require — and a configurable unit
// size, so the same engine serves every format in codec/.
type Finder struct {
	Limitations []FindLimitations
	UnitSize    UnitSize

	// SearchLen bounds how many hash-chain entries are examined per query,
	// mirroring HashChain.SearchLen. Zero means DefaultSearchLen.
	SearchLen int

	hashBytes int
	units     Units
	table     []int32
	chain     []int32
}

// DefaultSearchLen is used when Finder.SearchLen is left at zero.
const DefaultSearchLen = 64

const finderTableBits = 16
const finderTableSize = 1 << finderTableBits
const finderTableMask = finderTableSize - 1

// NewFinder builds a Finder for the given limitations and unit size. The
// k-gram length it hashes on is derived from the narrowest MinLength across
// limitations (spec.md §4.2: "k = min_length of the widest active
// limitation"), capped at 8 bytes.
func NewFinder(limitations []FindLimitations, unitSize UnitSize) *Finder {
	kgramUnits := widestMinLength(limitations)
	hashBytes := kgramUnits * int(unitSize)
	if hashBytes > 8 {
		hashBytes = 8
	}
	if hashBytes < 1 {
		hashBytes = 1
	}
	return &Finder{
		Limitations: limitations,
		UnitSize:    unitSize,
		SearchLen:   DefaultSearchLen,
		hashBytes:   hashBytes,
	}
}

// Reset clears the finder's internal state, preparing it for a new input.
func (f *Finder) Reset() {
	f.table = nil
	f.chain = nil
	f.units = Units{}
}

func (f *Finder) hash(data []byte, byteOff int) uint32 {
	const offsetBasis uint32 = 2166136261
	const prime uint32 = 16777619
	h := offsetBasis
	end := byteOff + f.hashBytes
	if end > len(data) {
		end = len(data)
	}
	for i := byteOff; i < end; i++ {
		h = (h ^ uint32(data[i])) * prime
	}
	return h
}

// Build indexes units for matching. units should be the full scan buffer
// (pre-buffer bytes, if any, concatenated in front of the real input); the
// caller is responsible for translating the unit-indices Search returns
// back into input-relative positions.
func (f *Finder) Build(units Units) {
	f.units = units
	if f.SearchLen == 0 {
		f.SearchLen = DefaultSearchLen
	}
	if f.table == nil {
		f.table = make([]int32, finderTableSize)
	} else {
		for i := range f.table {
			f.table[i] = 0
		}
	}
	n := units.Len()
	f.chain = make([]int32, n)
	data := units.Data
	size := int(units.Size)
	for i := 0; i < n; i++ {
		byteOff := i * size
		if byteOff+f.hashBytes > len(data) {
			f.chain[i] = 0
			continue
		}
		h := f.hash(data, byteOff) & finderTableMask
		f.chain[i] = f.table[h]
		f.table[h] = int32(i + 1)
	}
}

// Search appends every legal Match candidate anchored at unit position pos
// to dst and returns the result. maxUnitPos bounds how far a candidate may
// extend (normally units.Len()).
//
// A candidate's natural extend length is only the longest truncation worth
// considering, not the only one: a length-bucketed PriceCalculator (taikolz80,
// mio0/yay0/yaz0, lz40/lz60) can price a short match in a cheap tier lower
// than a longer match at the same displacement pushed into a pricier tier,
// so OptimalParse needs every legal shorter length as its own DP edge, not
// just the maximal one.
func (f *Finder) Search(dst []Match, pos, maxUnitPos int) []Match {
	if pos < 0 || pos >= len(f.chain) {
		return dst
	}
	maxDisp := maxDisplacementOf(f.Limitations)
	minLen := widestMinLength(f.Limitations)
	steps := 0
	candBiased := f.chain[pos]
	for candBiased != 0 && steps < f.SearchLen {
		steps++
		cand := int(candBiased) - 1
		candBiased = f.chain[cand]

		disp := pos - cand
		if disp <= 0 {
			continue
		}
		if maxDisp != Unbounded && disp > maxDisp {
			// The chain walks strictly toward older occurrences, so
			// displacement only grows from here; nothing further qualifies.
			break
		}

		natural := f.extend(cand, pos, maxUnitPos)
		if natural < minLen {
			continue
		}
		for length := minLen; length <= natural; length++ {
			if !AnyAllows(f.Limitations, length, disp) {
				continue
			}
			dst = append(dst, Match{Position: pos, Displacement: disp, Length: length})
		}
	}
	return dst
}

// extend returns the number of consecutive equal units starting at cand and
// pos, up to maxUnitPos. Because the finder operates over the complete
// offline input, this naturally allows self-overlapping copies (disp <
// length), the same way the teacher's extendMatch does over a single shared
// buffer.
func (f *Finder) extend(cand, pos, maxUnitPos int) int {
	u := f.units
	n := 0
	for pos+n < maxUnitPos && u.Equal(cand+n, pos+n) {
		n++
	}
	return n
}
