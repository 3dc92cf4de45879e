// Package seq provides the gapped sequence buffer that the alignment engine
// is built on, together with the small value types shared by every layer:
// grammars, gap classification and 1-based closed ranges.
//
// All positions are 1-based. Invalid positions and ranges are caller bugs
// and panic; searches that find nothing return -1.
package seq

import (
	"fmt"
	"strings"
)

// Grammar tags the alphabet a sequence is written in.
type Grammar int

const (
	// Unknown is used when the alphabet has not been determined.
	Unknown Grammar = iota
	// DNA represents deoxyribonucleotide sequences (A, C, G, T)
	DNA
	// RNA represents ribonucleotide sequences (A, C, G, U)
	RNA
	// Amino represents protein sequences
	Amino
)

func (g Grammar) String() string {
	switch g {
	case DNA:
		return "DNA"
	case RNA:
		return "RNA"
	case Amino:
		return "Amino"
	default:
		return "Unknown"
	}
}

// ParseGrammar converts a grammar name (case-insensitive) to a Grammar.
func ParseGrammar(s string) (Grammar, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dna":
		return DNA, nil
	case "rna":
		return RNA, nil
	case "amino", "protein", "aa":
		return Amino, nil
	case "", "unknown":
		return Unknown, nil
	default:
		return Unknown, fmt.Errorf("unknown grammar %q", s)
	}
}

// Compatible reports whether sequences of grammars g and other may be mixed.
// Unknown is compatible with everything.
func (g Grammar) Compatible(other Grammar) bool {
	return g == Unknown || other == Unknown || g == other
}
