package retrolz

// Unbounded marks a FindLimitations field as having no upper bound, matching
// the source's "-1 means unbounded" convention (spec.md §9's note on
// LzssVlc). It is exported so a format package can write
// retrolz.FindLimitations{MaxLength: retrolz.Unbounded, ...} instead of a
// bare magic number.
const Unbounded = -1

// FindLimitations is one constraint set a match must satisfy. A format
// installs one or more of these; a candidate match is legal under the union
// (at least one limitation must accept it), not the intersection.
type FindLimitations struct {
	MinLength       int
	MaxLength       int // Unbounded for no cap
	MinDisplacement int
	MaxDisplacement int // Unbounded for no cap
}

// Allows reports whether a match of the given length and displacement
// satisfies this limitation.
func (l FindLimitations) Allows(length, displacement int) bool {
	if length < l.MinLength {
		return false
	}
	if l.MaxLength != Unbounded && length > l.MaxLength {
		return false
	}
	if displacement < l.MinDisplacement {
		return false
	}
	if l.MaxDisplacement != Unbounded && displacement > l.MaxDisplacement {
		return false
	}
	return true
}

// AnyAllows reports whether at least one of limitations accepts the given
// length/displacement pair. An empty limitation set accepts nothing.
func AnyAllows(limitations []FindLimitations, length, displacement int) bool {
	for _, l := range limitations {
		if l.Allows(length, displacement) {
			return true
		}
	}
	return false
}

// widestMinLength returns the smallest MinLength across limitations, which
// is the k-gram size the match finder hashes on: any legal match must be at
// least that long, so indexing shorter k-grams would never pay off.
func widestMinLength(limitations []FindLimitations) int {
	best := -1
	for _, l := range limitations {
		if best == -1 || l.MinLength < best {
			best = l.MinLength
		}
	}
	if best < 1 {
		best = 1
	}
	return best
}

// maxDisplacementOf returns the largest MaxDisplacement across limitations,
// or Unbounded if any limitation has no cap.
func maxDisplacementOf(limitations []FindLimitations) int {
	best := 0
	for _, l := range limitations {
		if l.MaxDisplacement == Unbounded {
			return Unbounded
		}
		if l.MaxDisplacement > best {
			best = l.MaxDisplacement
		}
	}
	return best
}

// Direction controls whether the parser scans the input left-to-right or
// right-to-left (spec.md §4.2's "Backward mode").
type Direction int

const (
	Forward Direction = iota
	Backward
)

// UnitSize is the atomic granularity of positions, lengths and
// displacements: 1 byte or 2 bytes (spec.md glossary).
type UnitSize int

const (
	UnitSize1 UnitSize = 1
	UnitSize2 UnitSize = 2
)

// FindOptions configures the match finder and parser for one format.
type FindOptions struct {
	Direction Direction
	UnitSize  UnitSize

	// PreBufferSize is the number of units of a known virtual prefix that
	// sits in front of the input; matches may reach into it. Zero means no
	// pre-buffer.
	PreBufferSize int
	// PreBufferContents supplies the bytes of the pre-buffer, at least
	// PreBufferSize*UnitSize bytes long. Ignored when PreBufferSize is 0.
	PreBufferContents []byte

	// SkipUnitsAfterMatch is the number of units, immediately following an
	// emitted match, that may only be covered by literal edges (LZ77's
	// generic skip=1 rule). Zero means no restriction.
	SkipUnitsAfterMatch int
}
