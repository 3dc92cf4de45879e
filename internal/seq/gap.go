package seq

// DefaultGap is the byte written whenever a gap is created without an
// explicit gap character.
const DefaultGap byte = '-'

// IsGap reports whether c is a gap character.
func IsGap(c byte) bool {
	return c == '-' || c == '.'
}

// CountGaps returns the number of gap characters in p.
func CountGaps(p []byte) int {
	n := 0
	for _, c := range p {
		if IsGap(c) {
			n++
		}
	}
	return n
}

// Ungap returns p without its gap characters.
func Ungap(p []byte) []byte {
	out := make([]byte, 0, len(p))
	for _, c := range p {
		if !IsGap(c) {
			out = append(out, c)
		}
	}
	return out
}
