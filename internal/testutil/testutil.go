package testutil

import (
	"time"

	"go.uber.org/zap"

	"tarjeta/internal/types"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// FixedPicker always picks index i.
type FixedPicker int

func (p FixedPicker) Pick(n int) int {
	if int(p) >= n {
		return n - 1
	}
	return int(p)
}

// Clock is a manually advanced clock.
type Clock struct {
	T time.Time
}

// NewClock starts a clock at a fixed instant.
func NewClock() *Clock {
	return &Clock{T: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time { return c.T }

func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// Pairs builds word pairs from spanish/english arguments.
func Pairs(kv ...string) []types.WordPair {
	out := make([]types.WordPair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, types.WordPair{Spanish: kv[i], English: kv[i+1]})
	}
	return out
}
