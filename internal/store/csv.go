package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tarjeta/internal/types"
)

// CSVStore keeps the working set in a CSV file with a Spanish,English header.
type CSVStore struct {
	PrimaryPath string
	SeedPath    string
	logger      *zap.Logger
}

// NewCSVStore creates a store that writes to primary and falls back to seed.
func NewCSVStore(primary, seed string, logger *zap.Logger) *CSVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVStore{
		PrimaryPath: primary,
		SeedPath:    seed,
		logger:      logger,
	}
}

// Locate checks for the primary file first, then the seed file.
func (s *CSVStore) Locate(ctx context.Context) (Source, error) {
	if err := ctx.Err(); err != nil {
		return SourceNotFound, err
	}
	ok, err := fileExists(s.PrimaryPath)
	if err != nil {
		return SourceNotFound, err
	}
	if ok {
		return SourcePrimary, nil
	}
	ok, err = fileExists(s.SeedPath)
	if err != nil {
		return SourceNotFound, err
	}
	if ok {
		s.logger.Info("Working set file missing, using seed vocabulary",
			zap.String("primary", s.PrimaryPath),
			zap.String("seed", s.SeedPath),
		)
		return SourceSeed, nil
	}
	return SourceNotFound, nil
}

// Load reads the file behind src.
func (s *CSVStore) Load(ctx context.Context, src Source) ([]types.WordPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch src {
	case SourcePrimary:
		return readCSVFile(s.PrimaryPath)
	case SourceSeed:
		return readCSVFile(s.SeedPath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, src)
	}
}

// Save rewrites the primary file. The new contents are written to a sibling
// temp file and renamed into place.
func (s *CSVStore) Save(ctx context.Context, pairs []types.WordPair) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.PrimaryPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".working-set-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := encodePairs(tmp, pairs); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write working set: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.PrimaryPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace working set file: %w", err)
	}

	s.logger.Debug("Saved working set",
		zap.String("path", s.PrimaryPath),
		zap.Int("pairs", len(pairs)),
	)
	return nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func readCSVFile(path string) ([]types.WordPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pairs, err := decodePairs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

// decodePairs reads a header row naming the Spanish and English columns
// followed by one pair per row. Extra columns are ignored.
func decodePairs(r io.Reader) ([]types.WordPair, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return []types.WordPair{}, nil
	}

	spanishCol, englishCol := -1, -1
	for i, name := range records[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, ColumnSpanish):
			spanishCol = i
		case strings.EqualFold(name, ColumnEnglish):
			englishCol = i
		}
	}
	if spanishCol < 0 || englishCol < 0 {
		return nil, fmt.Errorf("%w: header must name %s and %s columns, got %v",
			ErrMalformed, ColumnSpanish, ColumnEnglish, records[0])
	}

	pairs := make([]types.WordPair, 0, len(records)-1)
	for _, row := range records[1:] {
		pairs = append(pairs, types.WordPair{
			Spanish: cleanCell(row[spanishCol]),
			English: cleanCell(row[englishCol]),
		})
	}
	return pairs, nil
}

func encodePairs(w io.Writer, pairs []types.WordPair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnSpanish, ColumnEnglish}); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := cw.Write([]string{p.Spanish, p.English}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
