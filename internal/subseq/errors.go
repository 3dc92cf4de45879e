package subseq

import (
	"fmt"

	"github.com/inodb/vibe-align/internal/seq"
)

// NoResiduesError is returned when a sequence contains only gaps.
type NoResiduesError struct{}

func (e *NoResiduesError) Error() string {
	return "subsequence must have at least one non-gap character"
}

// GappedParentError is returned when the parent sequence contains gaps.
type GappedParentError struct {
	Position int
}

func (e *GappedParentError) Error() string {
	return fmt.Sprintf("parent sequence has a gap at position %d", e.Position)
}

// ParentMismatchError is returned when the ungapped subsequence does not
// occur in the parent (Start == 0) or does not occur at the requested start.
type ParentMismatchError struct {
	Start int
}

func (e *ParentMismatchError) Error() string {
	if e.Start == 0 {
		return "subsequence not found in parent"
	}
	return fmt.Sprintf("subsequence does not match parent at position %d", e.Start)
}

// GrammarMismatchError is returned when sequence and parent grammars differ.
type GrammarMismatchError struct {
	Sequence seq.Grammar
	Parent   seq.Grammar
}

func (e *GrammarMismatchError) Error() string {
	return fmt.Sprintf("sequence grammar %s incompatible with parent grammar %s", e.Sequence, e.Parent)
}
