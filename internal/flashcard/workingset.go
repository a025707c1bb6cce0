package flashcard

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"tarjeta/internal/store"
	"tarjeta/internal/types"
)

// WorkingSet is the pool of word pairs not yet marked known. It is shared by
// every session of the process.
type WorkingSet struct {
	mu     sync.RWMutex
	pairs  []types.WordPair
	store  store.Store
	logger *zap.Logger
}

// LoadWorkingSet reads the primary working set, or the seed vocabulary when
// no working set has been saved yet.
func LoadWorkingSet(ctx context.Context, st store.Store, logger *zap.Logger) (*WorkingSet, store.Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	src, err := st.Locate(ctx)
	if err != nil {
		return nil, store.SourceNotFound, fmt.Errorf("locate working set: %w", err)
	}
	if src == store.SourceNotFound {
		return nil, src, ErrMissingData
	}

	pairs, err := st.Load(ctx, src)
	if err != nil {
		return nil, src, fmt.Errorf("load %s working set: %w", src, err)
	}

	logger.Info("Loaded working set",
		zap.String("source", src.String()),
		zap.Int("pairs", len(pairs)),
	)
	return NewWorkingSet(pairs, st, logger), src, nil
}

// NewWorkingSet wraps pairs. st receives the full set after every removal.
func NewWorkingSet(pairs []types.WordPair, st store.Store, logger *zap.Logger) *WorkingSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkingSet{
		pairs:  append([]types.WordPair(nil), pairs...),
		store:  st,
		logger: logger,
	}
}

// Len returns the number of pairs left.
func (w *WorkingSet) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.pairs)
}

// Pairs returns a copy of the current pairs.
func (w *WorkingSet) Pairs() []types.WordPair {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]types.WordPair{}, w.pairs...)
}

// Contains reports whether p is still in the set.
func (w *WorkingSet) Contains(p types.WordPair) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return lo.Contains(w.pairs, p)
}

// Pick returns a uniformly random pair chosen by picker.
func (w *WorkingSet) Pick(picker Picker) (types.WordPair, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.pairs) == 0 {
		return types.WordPair{}, ErrEmptySet
	}
	i := picker.Pick(len(w.pairs))
	if i < 0 || i >= len(w.pairs) {
		w.logger.Warn("Picker returned out of range index, using first pair",
			zap.Int("index", i),
			zap.Int("pairs", len(w.pairs)),
		)
		i = 0
	}
	return w.pairs[i], nil
}

// Remove deletes the first pair equal to p and saves the remaining set. It
// reports false, without saving, when p is not present. The removal only
// takes effect once the save succeeds; on a failure the set is unchanged.
func (w *WorkingSet) Remove(ctx context.Context, p types.WordPair) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := lo.IndexOf(w.pairs, p)
	if i < 0 {
		return false, nil
	}
	rest := append(w.pairs[:i:i], w.pairs[i+1:]...)

	if w.store == nil {
		w.pairs = rest
		return true, nil
	}
	if err := w.store.Save(ctx, rest); err != nil {
		return false, fmt.Errorf("persist working set: %w", err)
	}
	w.pairs = rest
	w.logger.Info("Removed known word",
		zap.String("spanish", p.Spanish),
		zap.Int("remaining", len(w.pairs)),
	)
	return true, nil
}
