// Package store persists the working set of word pairs that are still being
// studied.
//
// A store has two possible origins for its data: the primary working set,
// which it owns and rewrites, and a read-only seed vocabulary used the first
// time the tool runs. Locate reports which one is available so the caller
// can branch on it explicitly.
package store

import (
	"context"
	"errors"

	"tarjeta/internal/types"
)

// Source says where a working set can be loaded from.
type Source int

const (
	SourceNotFound Source = iota
	SourcePrimary
	SourceSeed
)

func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceSeed:
		return "seed"
	default:
		return "not_found"
	}
}

// Store loads and saves the working set.
type Store interface {
	// Locate reports the best available source without reading it.
	Locate(ctx context.Context) (Source, error)
	// Load reads every pair from src.
	Load(ctx context.Context, src Source) ([]types.WordPair, error)
	// Save replaces the primary working set with pairs.
	Save(ctx context.Context, pairs []types.WordPair) error
}

// Sentinel errors for the store package.
var (
	ErrUnknownSource = errors.New("store: source not loadable")
	ErrMalformed     = errors.New("store: malformed word pair data")
)

// Column names of the tabular word-pair format.
const (
	ColumnSpanish = "Spanish"
	ColumnEnglish = "English"
)
