// Package flashcard holds the study session: the shared working set of word
// pairs and the per-learner card state that deals, flips and retires cards.
package flashcard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tarjeta/internal/types"
)

// DefaultFlipDelay is how long the Spanish face stays up before the card
// turns over on its own.
const DefaultFlipDelay = 3 * time.Second

// State is a snapshot of one learner's card.
type State struct {
	Card          types.WordPair
	HasCard       bool
	Flipped       bool
	FlipTimestamp time.Time
	// Deal increases every time a new card is dealt.
	Deal uint64
}

// Session is one learner's view over a shared WorkingSet. Methods are safe
// for concurrent use.
type Session struct {
	mu        sync.Mutex
	set       *WorkingSet
	picker    Picker
	now       func() time.Time
	flipDelay time.Duration
	logger    *zap.Logger
	state     State
}

// Option configures a Session.
type Option func(*Session)

// WithPicker replaces the random source used to deal cards.
func WithPicker(p Picker) Option {
	return func(s *Session) { s.picker = p }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithFlipDelay sets how long a card stays face up before Tick flips it.
func WithFlipDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.flipDelay = d
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession starts a session with no card dealt.
func NewSession(set *WorkingSet, opts ...Option) *Session {
	s := &Session{
		set:       set,
		picker:    CryptoPicker{},
		now:       time.Now,
		flipDelay: DefaultFlipDelay,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.FlipTimestamp = s.now()
	return s
}

// FlipDelay returns the auto-flip threshold.
func (s *Session) FlipDelay() time.Duration { return s.flipDelay }

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NextCard deals a random pair from the working set face down. On
// ErrEmptySet the session is left without a card.
func (s *Session) NextCard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextCardLocked()
}

func (s *Session) nextCardLocked() error {
	card, err := s.set.Pick(s.picker)
	if err != nil {
		s.state.Card = types.WordPair{}
		s.state.HasCard = false
		s.state.Flipped = false
		return err
	}
	s.state.Card = card
	s.state.HasCard = true
	s.state.Flipped = false
	s.state.FlipTimestamp = s.now()
	s.state.Deal++
	return nil
}

// Flip shows the English face. Flipping twice is harmless.
func (s *Session) Flip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Flipped = true
}

// MarkUnknown keeps the current card in the working set and deals another.
func (s *Session) MarkUnknown() error {
	return s.NextCard()
}

// MarkKnown retires the current card from the working set, saving the set if
// the card was still in it, then deals another. A save error is returned
// before a new card is dealt.
func (s *Session) MarkKnown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.HasCard {
		removed, err := s.set.Remove(ctx, s.state.Card)
		if err != nil {
			return err
		}
		if !removed {
			s.logger.Debug("Known card already gone from working set",
				zap.String("spanish", s.state.Card.Spanish),
			)
		}
	}
	return s.nextCardLocked()
}

// Tick flips the card once more than the flip delay has passed since it was
// dealt. It reports whether this call flipped the card.
func (s *Session) Tick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Flipped || !s.state.HasCard {
		return false
	}
	if now.Sub(s.state.FlipTimestamp) > s.flipDelay {
		s.state.Flipped = true
		return true
	}
	return false
}

// Remaining returns how long until Tick would flip the current card, or zero
// when it is already due or flipped.
func (s *Session) Remaining(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Flipped || !s.state.HasCard {
		return 0
	}
	left := s.flipDelay - now.Sub(s.state.FlipTimestamp)
	if left < 0 {
		return 0
	}
	return left
}
