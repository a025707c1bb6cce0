package main

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tarjeta/internal/config"
	"tarjeta/internal/flashcard"
	"tarjeta/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	logInfo("Starting Tarjeta in %s mode", cfg.Env())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logFatal("Failed to open word store: %v", err)
	}
	defer closeStore()

	ws, src, err := flashcard.LoadWorkingSet(ctx, st, logger)
	if errors.Is(err, flashcard.ErrMissingData) {
		logFatal("No vocabulary to study: neither %s nor %s exists", cfg.PrimaryPath, cfg.SeedPath)
	}
	if err != nil {
		logFatal("Failed to load words: %v", err)
	}
	logInfo("Loaded %d words from %s source", ws.Len(), src)

	images, err := loadCardImages(cfg.ImageDir)
	if err != nil {
		logFatal("Failed to load card images: %v", err)
	}

	app := newApp(cfg, ws, src, images, logger)
	router := app.setupRouter()

	go app.runSessionJanitor(ctx, janitorInterval(cfg.SessionTimeout))

	startServer(router, cfg.Port)
}

// newApp wires the shared working set into a web application.
func newApp(cfg *config.Config, ws *flashcard.WorkingSet, src store.Source, images map[string]cardImage, logger *zap.Logger) *App {
	return &App{
		Config:     cfg,
		WorkingSet: ws,
		Source:     src,
		CardImages: images,
		Logger:     logger,
		Sessions:   make(map[string]*StudySession),
		LimiterMap: make(map[string]*rate.Limiter),
		StartTime:  time.Now(),
		Now:        time.Now,
		SessionOptions: []flashcard.Option{
			flashcard.WithFlipDelay(cfg.FlipDelay),
			flashcard.WithLogger(logger),
		},
	}
}

// setupRouter registers middleware, templates and routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{RouteImages})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(requestIDMiddleware())
	router.Use(app.cacheHeadersMiddleware())

	if app.Config.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		router.LoadHTMLGlob("dist/templates/*.html")
		router.Static("/static", "./dist/static")
	} else {
		logInfo("Serving development assets from source directories")
		router.LoadHTMLGlob("templates/*.html")
		router.Static("/static", "./static")
	}

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteCard, app.cardHandler)
	router.POST(RouteFlip, app.rateLimitMiddleware(), app.flipHandler)
	router.POST(RouteUnknown, app.rateLimitMiddleware(), app.unknownHandler)
	router.POST(RouteKnown, app.rateLimitMiddleware(), app.knownHandler)
	router.GET(RouteImages+"/:name", app.imageHandler)
	router.GET(RouteHealth, app.healthzHandler)

	return router
}

// loadCardImages reads both card faces from dir. Either one missing is an error.
func loadCardImages(dir string) (map[string]cardImage, error) {
	images := make(map[string]cardImage, 2)
	for _, name := range []string{flashcard.FrontImage, flashcard.BackImage} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		contentType := mime.TypeByExtension(filepath.Ext(name))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		images[name] = cardImage{Data: data, ContentType: contentType}
	}
	return images, nil
}

// runSessionJanitor evicts idle study sessions until ctx is done.
func (app *App) runSessionJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logInfo("Session janitor stopped")
			return
		case <-ticker.C:
			app.cleanupIdleSessions(app.Config.SessionTimeout)
		}
	}
}

func janitorInterval(timeout time.Duration) time.Duration {
	interval := timeout / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}

func startServer(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
