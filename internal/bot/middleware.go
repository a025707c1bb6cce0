package bot

import (
	"context"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const ctxKey = "ctx"

// OwnerOnly drops updates from everyone but ownerID. A zero ownerID lets
// everyone through.
func OwnerOnly(ownerID int64, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if ownerID == 0 {
				return next(c)
			}
			sender := c.Sender()
			if sender == nil || sender.ID != ownerID {
				var senderID int64
				if sender != nil {
					senderID = sender.ID
				}
				logger.Warn("Rejected update from non-owner", zap.Int64("user_id", senderID))
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: msgPrivate})
				}
				return c.Send(msgPrivate)
			}
			return next(c)
		}
	}
}

// WithTimeout stores a context bounded by d on every update for handlers
// that persist the working set.
func WithTimeout(d time.Duration) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			ctx, cancel := context.WithTimeout(context.Background(), d)
			defer cancel()
			c.Set(ctxKey, ctx)
			return next(c)
		}
	}
}
