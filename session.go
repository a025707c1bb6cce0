package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tarjeta/internal/flashcard"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || !isValidSessionID(sessionID) {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.Config.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.Config.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// isValidSessionID reports whether id is a UUID as issued by getOrCreateSession.
func isValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// getStudySession retrieves or creates the study session for a session ID.
func (app *App) getStudySession(sessionID string) *flashcard.Session {
	now := app.Now()

	app.SessionMutex.RLock()
	sess, exists := app.Sessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		app.SessionMutex.Lock()
		sess.LastAccessTime = now
		app.SessionMutex.Unlock()
		return sess.Study
	}

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if sess, exists := app.Sessions[sessionID]; exists {
		sess.LastAccessTime = now
		return sess.Study
	}
	study := flashcard.NewSession(app.WorkingSet, app.SessionOptions...)
	app.Sessions[sessionID] = &StudySession{Study: study, LastAccessTime: now}
	logInfo("Started study session %s (%d words to learn)", sessionID, app.WorkingSet.Len())
	return study
}

// ensureCard deals a first card when the session has none. It returns
// flashcard.ErrEmptySet once every word is known.
func ensureCard(study *flashcard.Session) error {
	if study.Snapshot().HasCard {
		return nil
	}
	return study.NextCard()
}

// sessionCount returns the number of live study sessions.
func (app *App) sessionCount() int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.Sessions)
}

// cleanupIdleSessions drops sessions not touched for longer than maxAge and
// returns how many were removed.
func (app *App) cleanupIdleSessions(maxAge time.Duration) int {
	cutoff := app.Now().Add(-maxAge)

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	removed := 0
	for id, sess := range app.Sessions {
		if sess.LastAccessTime.Before(cutoff) {
			delete(app.Sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logInfo("Session cleanup completed: removed %d idle sessions, %d remain", removed, len(app.Sessions))
	}
	return removed
}

// isDone reports whether err means the working set is exhausted.
func isDone(err error) bool {
	return errors.Is(err, flashcard.ErrEmptySet)
}
