package msa

import "errors"

// Errors returned when rows are refused by Insert, Append or Prepend.
var (
	ErrIncompatibleRow = errors.New("row length differs from alignment column count")
	ErrGrammarMismatch = errors.New("row grammar differs from alignment grammar")
	ErrNoResidues      = errors.New("row has no non-gap characters")
)
