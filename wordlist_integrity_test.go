package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"tarjeta/internal/store"
)

func seedStore(t *testing.T) *store.CSVStore {
	t.Helper()
	return store.NewCSVStore(filepath.Join(t.TempDir(), "absent.csv"), "data/spanish_words.csv", zap.NewNop())
}

func TestSeedWordsLocated(t *testing.T) {
	st := seedStore(t)
	src, err := st.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if src != store.SourceSeed {
		t.Fatalf("Locate = %v, want seed", src)
	}
}

func TestSeedWordsNoDuplicates(t *testing.T) {
	pairs, err := seedStore(t).Load(context.Background(), store.SourceSeed)
	if err != nil {
		t.Fatalf("failed to load spanish_words.csv: %v", err)
	}
	if len(pairs) == 0 {
		t.Fatal("spanish_words.csv has no words")
	}
	seen := make(map[string]struct{})
	for _, p := range pairs {
		w := strings.ToLower(p.Spanish)
		if _, ok := seen[w]; ok {
			t.Errorf("duplicate word in spanish_words.csv: %s", p.Spanish)
		}
		seen[w] = struct{}{}
	}
}

func TestSeedWordsHaveTranslations(t *testing.T) {
	pairs, err := seedStore(t).Load(context.Background(), store.SourceSeed)
	if err != nil {
		t.Fatalf("failed to load spanish_words.csv: %v", err)
	}
	for _, p := range pairs {
		if p.Spanish == "" {
			t.Errorf("row with empty Spanish word (English %q)", p.English)
		}
		if p.English == "" {
			t.Errorf("word in spanish_words.csv missing translation: %s", p.Spanish)
		}
	}
}
