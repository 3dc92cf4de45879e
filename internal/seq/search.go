package seq

import (
	"bytes"
	"fmt"
)

// IndexOf returns the position of the first occurrence of query at or
// after from, or -1. An empty query never matches.
func (b *Buffer) IndexOf(query []byte, from int) int {
	if from < 1 {
		panic(fmt.Sprintf("seq: search start %d below 1", from))
	}
	if len(query) == 0 || from > len(b.data) {
		return -1
	}
	i := bytes.Index(b.data[from-1:], query)
	if i < 0 {
		return -1
	}
	return from + i
}

// LastIndexOf returns the position of the last occurrence of query that
// begins at or before from, or -1. A from beyond the end searches the
// whole buffer.
func (b *Buffer) LastIndexOf(query []byte, from int) int {
	if from < 1 {
		panic(fmt.Sprintf("seq: search start %d below 1", from))
	}
	if len(query) == 0 {
		return -1
	}
	end := min(from-1+len(query), len(b.data))
	i := bytes.LastIndex(b.data[:end], query)
	if i < 0 {
		return -1
	}
	return i + 1
}

// Contains reports whether query occurs anywhere in the buffer.
func (b *Buffer) Contains(query []byte) bool {
	return b.IndexOf(query, 1) != -1
}

// Locations returns the start position of every occurrence of query,
// overlapping occurrences included.
func (b *Buffer) Locations(query []byte) []int {
	var locs []int
	for pos := b.IndexOf(query, 1); pos != -1; {
		locs = append(locs, pos)
		pos = b.IndexOf(query, pos+1)
	}
	return locs
}

// Count returns the number of (possibly overlapping) occurrences of query.
func (b *Buffer) Count(query []byte) int {
	return len(b.Locations(query))
}

// MatchesAt reports whether query occurs anchored at pos. With
// ignoreQueryGaps, gap bytes in the query are skipped and the remaining
// bytes must match consecutive bytes starting at pos. An empty query, or
// a query holding only gaps when they are ignored, never matches.
func (b *Buffer) MatchesAt(pos int, query []byte, ignoreQueryGaps bool) bool {
	b.checkPos(pos)
	if len(query) == 0 {
		return false
	}

	i := pos - 1
	compared := 0
	for _, c := range query {
		if ignoreQueryGaps && IsGap(c) {
			continue
		}
		if i >= len(b.data) || b.data[i] != c {
			return false
		}
		i++
		compared++
	}
	return compared > 0
}
