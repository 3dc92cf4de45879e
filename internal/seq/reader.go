package seq

// Reader is the read-only view shared by plain buffers and anchored
// subsequences. Mutating operations are absent; each concrete
// type exposes only the edits that keep its own invariants.
type Reader interface {
	Grammar() Grammar
	Len() int
	String() string
	At(pos int) byte
	IsGapAt(pos int) bool
	Mid(r Range) []byte
	Ungapped() string
	UngappedLength() int

	GapsBetween(r Range) int
	NonGapsBetween(r Range) int
	GapsLeftOf(pos int) int
	GapsRightOf(pos int) int
	HeadGaps() int
	TailGaps() int
	HasGaps() bool
	HasNonGaps() bool
	LeftSlidablePositions(r Range) int
	RightSlidablePositions(r Range) int
	CanCollapseLeft(r Range) bool
	CanCollapseRight(r Range) bool

	IndexOf(query []byte, from int) int
	MatchesAt(pos int, query []byte, ignoreQueryGaps bool) bool
}

var _ Reader = (*Buffer)(nil)
