package flashcard

import "errors"

// Sentinel errors for the flashcard package.
// Use errors.Is to check: errors.Is(err, flashcard.ErrEmptySet)
var (
	ErrMissingData = errors.New("flashcard: neither working set nor seed vocabulary exists")
	ErrEmptySet    = errors.New("flashcard: no word pairs left to study")
)
