package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tarjeta/internal/flashcard"
	"tarjeta/internal/types"
)

// homeHandler renders the full study page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	study := app.getStudySession(sessionID)

	if err := ensureCard(study); isDone(err) {
		logInfo("Session %s has no words left to study", sessionID)
	}
	view := app.cardView(study)
	c.HTML(http.StatusOK, templateIndex, gin.H{
		"title":   PageTitle,
		"heading": PageHeading,
		"card":    view,
	})
}

// cardHandler renders the card fragment. Polled by the page while the card
// is face down, it is what turns the card over once the flip delay passes.
func (app *App) cardHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	study := app.getStudySession(sessionID)

	if err := ensureCard(study); err == nil && study.Tick(app.Now()) {
		logInfo("[request_id=%v] Auto-flipped card for session %s", requestID(c), sessionID)
	}
	app.renderCard(c, http.StatusOK, app.cardView(study))
}

// flipHandler turns the current card over on request.
func (app *App) flipHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	study := app.getStudySession(sessionID)

	if err := ensureCard(study); err == nil {
		study.Flip()
	}
	app.respondCard(c, http.StatusOK, app.cardView(study))
}

// unknownHandler keeps the current word and deals another.
func (app *App) unknownHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	study := app.getStudySession(sessionID)

	if err := study.MarkUnknown(); isDone(err) {
		logInfo("Session %s has no words left to study", sessionID)
	}
	app.respondCard(c, http.StatusOK, app.cardView(study))
}

// knownHandler retires the current word from the working set, saves the set
// and deals another.
func (app *App) knownHandler(c *gin.Context) {
	// The save outlives a dropped connection so the file and the set agree.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), saveTimeout)
	defer cancel()
	sessionID := app.getOrCreateSession(c)
	study := app.getStudySession(sessionID)

	known := study.Snapshot()
	err := study.MarkKnown(ctx)
	switch {
	case err == nil, isDone(err):
		if known.HasCard {
			logInfo("[request_id=%v] Session %s knows %q, %d words left", requestID(c), sessionID, known.Card.Spanish, app.WorkingSet.Len())
		}
		app.respondCard(c, http.StatusOK, app.cardView(study))
	default:
		logWarn("[request_id=%v] Failed to save working set: %v", requestID(c), err)
		view := app.cardView(study)
		view.Error = ErrorSaveSet + " " + err.Error()
		app.respondCard(c, http.StatusInternalServerError, view)
	}
}

// imageHandler serves a card face loaded at startup.
func (app *App) imageHandler(c *gin.Context) {
	img, ok := app.CardImages[c.Param("name")]
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             app.Config.Env(),
		"source":          app.Source.String(),
		"words_remaining": app.WorkingSet.Len(),
		"sessions":        app.sessionCount(),
		"uptime":          formatUptime(uptime),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// cardView builds the template data for study.
func (app *App) cardView(study *flashcard.Session) CardView {
	st := study.Snapshot()
	view := CardView{
		HasCard:   st.HasCard,
		Remaining: app.WorkingSet.Len(),
	}
	// A session is only left without a card once the working set ran out.
	if !st.HasCard {
		view.Done = true
		view.Face = types.Face{
			Title: DoneTitle,
			Word:  DoneMessage,
			Image: flashcard.BackImage,
			Color: "white",
			Back:  true,
		}
		return view
	}
	view.Face = st.Face()
	if !st.Flipped {
		view.Poll = htmxInterval(app.Config.FlipPollInterval)
	}
	return view
}

func (app *App) renderCard(c *gin.Context, status int, view CardView) {
	c.HTML(status, templateCard, view)
}

// respondCard answers a control: HTMX requests get the card fragment, plain
// form posts are redirected back to the page.
func (app *App) respondCard(c *gin.Context, status int, view CardView) {
	if isHTMX(c) || status != http.StatusOK {
		app.renderCard(c, status, view)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}
