package main

import (
	"context"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"
)

// sharedKeyFactor widens the budget for keys that usually stand for many
// clients at once: a local reverse proxy or an unresolved address.
const sharedKeyFactor = 4

// limitFor reports the refill rate and burst for a client key.
func (app *App) limitFor(key string) (rate.Limit, int) {
	rps, burst := app.Config.RateLimitRPS, app.Config.RateLimitBurst
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	if isSharedKey(key) {
		rps, burst = rps*sharedKeyFactor, burst*sharedKeyFactor
	}
	return rate.Limit(rps), burst
}

func isSharedKey(key string) bool {
	if key == "" {
		return true
	}
	addr, err := netip.ParseAddr(key)
	return err == nil && addr.IsLoopback()
}

// getLimiter returns the limiter kept for key, creating it on first use.
func (app *App) getLimiter(key string) *rate.Limiter {
	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()
	lim, ok := app.LimiterMap[key]
	if !ok {
		lim = rate.NewLimiter(app.limitFor(key))
		app.LimiterMap[key] = lim
	}
	return lim
}

// rateLimitMiddleware returns a Gin middleware that enforces per-client rate limiting.
func (app *App) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !app.getLimiter(key).Allow() {
			if isHTMX(c) {
				c.Header("HX-Trigger", "rate-limit-exceeded")
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down."})
			return
		}
		c.Next()
	}
}

// requestIDMiddleware injects a request ID into the context for each request.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.Request.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), requestIDKey, reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-Id", reqID)
		c.Next()
	}
}

// cacheHeadersMiddleware lets browsers cache static assets in production and
// keeps every card response uncached.
func (app *App) cacheHeadersMiddleware() gin.HandlerFunc {
	noStore := cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})
	static := cachecontrol.New(cachecontrol.Config{
		Public: true,
		MaxAge: cachecontrol.Duration(app.Config.StaticCacheAge),
	})
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if app.Config.IsProduction && (strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, RouteImages+"/")) {
			static(c)
			c.Header("Vary", "Accept-Encoding")
			return
		}
		noStore(c)
	}
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// requestID returns the request ID set by requestIDMiddleware, if any.
func requestID(c *gin.Context) string {
	reqID, _ := c.Request.Context().Value(requestIDKey).(string)
	return reqID
}
