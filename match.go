package retrolz

// Match is a back-reference token: length units, copied from displacement
// units before position. For UnitSize2 formats, Position, Displacement and
// Length are all counted in 2-byte units, not bytes.
type Match struct {
	Position     int
	Displacement int
	Length       int
}

// Token is one edge of a parsed token stream: either a single-unit literal
// or a Match. A parser emits a slice of Tokens whose covered positions
// exactly tile [0, N) with no gaps or overlap.
type Token struct {
	IsMatch      bool
	Position     int
	Length       int // 1 for a literal token, Match.Length otherwise
	Displacement int // meaningful only when IsMatch
}

// Literal returns the single unit this token covers when it is not a match.
// Callers index the original (unit-oriented) input with Position.
func (t Token) Literal(units Units) []byte {
	return units.At(t.Position)
}

// Units is the unit-granularity view of a byte buffer that the match finder
// and parser operate over: either plain bytes (UnitSize1) or non-overlapping
// 2-byte little/big-endian-agnostic pairs (UnitSize2). The byte order of a
// 16-bit unit is a format concern (it affects the bytes handed to the price
// calculator and to the format's own literal emission, not the unit index
// arithmetic here), so Units just slices raw bytes.
type Units struct {
	Data []byte
	Size UnitSize
}

// Len returns the number of whole units in Data.
func (u Units) Len() int { return len(u.Data) / int(u.Size) }

// At returns the raw bytes of unit i.
func (u Units) At(i int) []byte {
	off := i * int(u.Size)
	return u.Data[off : off+int(u.Size)]
}

// Equal reports whether units i and j hold the same bytes.
func (u Units) Equal(i, j int) bool {
	a, b := u.At(i), u.At(j)
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}
