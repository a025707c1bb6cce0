package main

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tarjeta/internal/config"
	"tarjeta/internal/flashcard"
	"tarjeta/internal/store"
	"tarjeta/internal/types"
)

type contextKey string

// App holds the shared working set and every browser's study session.
type App struct {
	Config     *config.Config
	WorkingSet *flashcard.WorkingSet
	Source     store.Source
	CardImages map[string]cardImage
	Logger     *zap.Logger

	Sessions     map[string]*StudySession
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	StartTime      time.Time
	Now            func() time.Time
	SessionOptions []flashcard.Option
}

// StudySession is one browser's card state plus bookkeeping for eviction.
type StudySession struct {
	Study          *flashcard.Session
	LastAccessTime time.Time
}

// cardImage is a card face loaded into memory at startup.
type cardImage struct {
	Data        []byte
	ContentType string
}

// CardView is what the card template renders.
type CardView struct {
	Face      types.Face
	HasCard   bool
	Done      bool
	Remaining int
	Poll      string
	Error     string
}
