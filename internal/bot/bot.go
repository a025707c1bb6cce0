// Package bot serves flash cards over Telegram. Each chat gets its own
// study session over the shared working set; cards flip themselves after
// the flip delay through a timer per chat.
package bot

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"tarjeta/internal/flashcard"
)

const (
	// flipSlack is added to the flip delay so the timer fires strictly after it.
	flipSlack = 50 * time.Millisecond

	saveTimeout = 10 * time.Second
)

// API is the part of *tele.Bot the handler talks to.
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type chat struct {
	study *flashcard.Session
	msg   *tele.Message
	timer *time.Timer
}

// Handler manages all bot interactions
type Handler struct {
	api    API
	set    *flashcard.WorkingSet
	opts   []flashcard.Option
	now    func() time.Time
	slack  time.Duration
	logger *zap.Logger

	mu    sync.Mutex
	chats map[int64]*chat
}

// NewHandler creates a handler dealing cards from set. opts apply to every
// chat's study session.
func NewHandler(api API, set *flashcard.WorkingSet, logger *zap.Logger, opts ...flashcard.Option) *Handler {
	return &Handler{
		api:    api,
		set:    set,
		opts:   opts,
		now:    time.Now,
		slack:  flipSlack,
		logger: logger,
		chats:  make(map[int64]*chat),
	}
}

// Register installs the owner filter and every command and button handler.
func (h *Handler) Register(b *tele.Bot, ownerID int64) {
	b.Use(OwnerOnly(ownerID, h.logger), WithTimeout(saveTimeout))

	b.Handle("/start", h.handleStart)
	b.Handle("/next", h.handleStart)
	b.Handle(&btnFlip, h.onCallback(h.flip))
	b.Handle(&btnUnknown, h.onCallback(h.unknown))
	b.Handle(&btnKnown, h.onCallback(h.known))
}

// Close stops every pending flip timer.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.chats {
		if ch.timer != nil {
			ch.timer.Stop()
		}
	}
}

func (h *Handler) session(chatID int64) *chat {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.chats[chatID]
	if !ok {
		ch = &chat{study: flashcard.NewSession(h.set, h.opts...)}
		h.chats[chatID] = ch
		h.logger.Info("Started study session",
			zap.Int64("chat_id", chatID),
			zap.Int("words", h.set.Len()),
		)
	}
	return ch
}

// handleStart deals a fresh card into a new message.
func (h *Handler) handleStart(c tele.Context) error {
	to := c.Chat()
	ch := h.session(to.ID)

	if err := ch.study.NextCard(); err != nil && !errors.Is(err, flashcard.ErrEmptySet) {
		return err
	}

	st := ch.study.Snapshot()
	text, opts := h.render(st)
	msg, err := h.api.Send(to, text, opts...)
	if err != nil {
		h.logger.Error("Failed to send card", zap.Int64("chat_id", to.ID), zap.Error(err))
		return err
	}

	h.mu.Lock()
	ch.msg = msg
	h.mu.Unlock()
	h.scheduleFlip(ch, st)
	return nil
}

func (h *Handler) flip(_ tele.Context, ch *chat) error {
	ch.study.Flip()
	return nil
}

func (h *Handler) unknown(_ tele.Context, ch *chat) error {
	return ch.study.MarkUnknown()
}

func (h *Handler) known(c tele.Context, ch *chat) error {
	return ch.study.MarkKnown(contextOf(c))
}

// onCallback runs act for the chat behind a button press, then redraws the
// card in place.
func (h *Handler) onCallback(act func(tele.Context, *chat) error) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Chat() == nil {
			return c.Respond()
		}
		chatID := c.Chat().ID
		ch := h.session(chatID)
		if cb := c.Callback(); cb != nil && cb.Message != nil {
			h.mu.Lock()
			ch.msg = cb.Message
			h.mu.Unlock()
		}

		if err := act(c, ch); err != nil && !errors.Is(err, flashcard.ErrEmptySet) {
			h.logger.Error("Failed to update working set",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return c.Respond(&tele.CallbackResponse{
				Text:      fmt.Sprintf("%s %v", msgSaveFailed, err),
				ShowAlert: true,
			})
		}

		st := ch.study.Snapshot()
		if err := h.redraw(ch, st); err != nil {
			h.logger.Warn("Failed to edit card", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		h.scheduleFlip(ch, st)
		return c.Respond()
	}
}

// scheduleFlip arms the chat's timer for the card in st. A timer that fires
// after another card was dealt does nothing.
func (h *Handler) scheduleFlip(ch *chat, st flashcard.State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch.timer != nil {
		ch.timer.Stop()
		ch.timer = nil
	}
	if !st.HasCard || st.Flipped {
		return
	}
	deal := st.Deal
	ch.timer = time.AfterFunc(ch.study.Remaining(h.now())+h.slack, func() {
		h.autoFlip(ch, deal)
	})
}

func (h *Handler) autoFlip(ch *chat, deal uint64) {
	if ch.study.Snapshot().Deal != deal {
		return
	}
	if !ch.study.Tick(h.now()) {
		return
	}
	if err := h.redraw(ch, ch.study.Snapshot()); err != nil {
		h.logger.Warn("Failed to flip card", zap.Error(err))
	}
}

func (h *Handler) redraw(ch *chat, st flashcard.State) error {
	h.mu.Lock()
	msg := ch.msg
	h.mu.Unlock()
	if msg == nil {
		return nil
	}

	text, opts := h.render(st)
	_, err := h.api.Edit(msg, text, opts...)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}
