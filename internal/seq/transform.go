package seq

import "fmt"

// Complement tables preserve case and map IUPAC ambiguity codes to their
// complements. Bytes without an entry, gaps included, are left alone.
var (
	dnaComplement = buildTable("ACGTURYKMBVDHSWN", "TGCAAYRMKVBHDSWN")
	rnaComplement = buildTable("ACGUTRYKMBVDHSWN", "UGCAAYRMKVBHDSWN")
)

func buildTable(from, to string) [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	for i := 0; i < len(from); i++ {
		t[from[i]] = to[i]
		t[lower(from[i])] = lower(to[i])
	}
	return t
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Tr replaces every occurrence of query[i] with replacement[i].
func (b *Buffer) Tr(query, replacement string) {
	if len(query) != len(replacement) {
		panic(fmt.Sprintf("seq: Tr query length %d differs from replacement length %d", len(query), len(replacement)))
	}
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	for i := 0; i < len(query); i++ {
		t[query[i]] = replacement[i]
	}
	b.apply(&t)
}

// Complement complements every nucleotide in place. Amino acid buffers
// cannot be complemented.
func (b *Buffer) Complement() {
	switch b.grammar {
	case Amino:
		panic("seq: cannot complement an amino acid sequence")
	case RNA:
		b.apply(&rnaComplement)
	default:
		b.apply(&dnaComplement)
	}
}

// ReverseComplement reverses and complements in place.
func (b *Buffer) ReverseComplement() {
	b.Reverse()
	b.Complement()
}

// Transcribe converts DNA to RNA (T -> U) and retags the buffer.
func (b *Buffer) Transcribe() {
	b.Tr("Tt", "Uu")
	b.grammar = RNA
}

// BackTranscribe converts RNA to DNA (U -> T) and retags the buffer.
func (b *Buffer) BackTranscribe() {
	b.Tr("Uu", "Tt")
	b.grammar = DNA
}

func (b *Buffer) apply(t *[256]byte) {
	for i, c := range b.data {
		b.data[i] = t[c]
	}
}

// standardCode is NCBI translation table 1. A codon's bases, read in
// TCAG order, index it as a base-4 number.
const standardCode = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"

func baseIndex(c byte) int {
	switch upper(c) {
	case 'T', 'U':
		return 0
	case 'C':
		return 1
	case 'A':
		return 2
	case 'G':
		return 3
	}
	return -1
}

// translateCodon returns the amino acid for a DNA or RNA codon in either
// case, '*' for stops and 'X' for anything it cannot read.
func translateCodon(codon []byte) byte {
	if len(codon) != 3 {
		return 'X'
	}
	i := 0
	for _, c := range codon {
		n := baseIndex(c)
		if n < 0 {
			return 'X'
		}
		i = i*4 + n
	}
	return standardCode[i]
}

// Translate returns the amino acid translation of the ungapped sequence,
// reading complete codons from the first residue. A trailing partial codon
// is dropped.
func (b *Buffer) Translate() *Buffer {
	if b.grammar == Amino {
		panic("seq: cannot translate an amino acid sequence")
	}
	residues := Ungap(b.data)
	n := len(residues) / 3 * 3
	out := make([]byte, 0, n/3)
	for i := 0; i < n; i += 3 {
		out = append(out, translateCodon(residues[i:i+3]))
	}
	return FromBytes(out, Amino)
}
