package bot

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v3"

	"tarjeta/internal/flashcard"
)

const (
	msgDone       = "¡Enhorabuena!\n\nYou know every word in the set."
	msgSaveFailed = "Could not save your progress."
	msgPrivate    = "This bot is private."
)

// Inline keyboard buttons
var (
	btnFlip = tele.Btn{
		Unique: "flip",
		Text:   "🔄",
	}
	btnUnknown = tele.Btn{
		Unique: "unknown",
		Text:   "❌",
	}
	btnKnown = tele.Btn{
		Unique: "known",
		Text:   "✅",
	}
)

var flags = map[string]string{
	"Spanish": "🇪🇸",
	"English": "🇬🇧",
}

// render formats the card in st as message text plus send options.
func (h *Handler) render(st flashcard.State) (string, []interface{}) {
	if !st.HasCard {
		return msgDone, nil
	}

	face := st.Face()
	text := fmt.Sprintf("%s %s\n\n%s\n\n📚 %d words left", flags[face.Title], face.Title, face.Word, h.set.Len())
	return text, []interface{}{cardMarkup(face.Back)}
}

// cardMarkup returns the card keyboard. The flip button goes once the card
// shows its back.
func cardMarkup(back bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := []tele.Row{menu.Row(btnUnknown, btnKnown)}
	if !back {
		rows = append([]tele.Row{menu.Row(btnFlip)}, rows...)
	}
	menu.Inline(rows...)
	return menu
}

// contextOf returns the context stored on c, falling back to Background.
func contextOf(c tele.Context) context.Context {
	if ctx, ok := c.Get(ctxKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}
