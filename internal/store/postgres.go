package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"tarjeta/internal/types"
)

// DefaultSetName names the working set row when only one learner exists.
const DefaultSetName = "default"

// PostgresStore keeps the working set in the word_pairs table. A row in
// working_sets marks that the set has been saved at least once; until then
// the seed CSV file is used.
type PostgresStore struct {
	db       *sql.DB
	name     string
	seedPath string
	logger   *zap.Logger
}

// NewPostgresStore creates a store for the working set called name.
func NewPostgresStore(db *sql.DB, name, seedPath string, logger *zap.Logger) *PostgresStore {
	if name == "" {
		name = DefaultSetName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{
		db:       db,
		name:     name,
		seedPath: seedPath,
		logger:   logger,
	}
}

// Locate reports SourcePrimary when the set has been saved before.
func (s *PostgresStore) Locate(ctx context.Context) (Source, error) {
	query := `SELECT EXISTS (SELECT 1 FROM working_sets WHERE name = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, s.name).Scan(&exists); err != nil {
		return SourceNotFound, fmt.Errorf("check working set: %w", err)
	}
	if exists {
		return SourcePrimary, nil
	}

	ok, err := fileExists(s.seedPath)
	if err != nil {
		return SourceNotFound, err
	}
	if ok {
		s.logger.Info("Working set not in database yet, using seed vocabulary",
			zap.String("set", s.name),
			zap.String("seed", s.seedPath),
		)
		return SourceSeed, nil
	}
	return SourceNotFound, nil
}

// Load reads the saved set in its stored order, or the seed file.
func (s *PostgresStore) Load(ctx context.Context, src Source) ([]types.WordPair, error) {
	switch src {
	case SourcePrimary:
	case SourceSeed:
		return readCSVFile(s.seedPath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, src)
	}

	query := `
		SELECT spanish, english
		FROM word_pairs
		WHERE set_name = $1
		ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query, s.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := []types.WordPair{}
	for rows.Next() {
		var p types.WordPair
		if err := rows.Scan(&p.Spanish, &p.English); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// Save replaces the stored set in a single transaction.
func (s *PostgresStore) Save(ctx context.Context, pairs []types.WordPair) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO working_sets (name, updated_at)
		VALUES ($1, NOW())
		ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, upsert, s.name); err != nil {
		return fmt.Errorf("mark working set: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_pairs WHERE set_name = $1`, s.name); err != nil {
		return fmt.Errorf("clear working set: %w", err)
	}

	insert := `
		INSERT INTO word_pairs (set_name, position, spanish, english)
		VALUES ($1, $2, $3, $4)
	`
	for i, p := range pairs {
		if _, err := tx.ExecContext(ctx, insert, s.name, i, p.Spanish, p.English); err != nil {
			return fmt.Errorf("insert pair %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit working set: %w", err)
	}
	s.logger.Debug("Saved working set",
		zap.String("set", s.name),
		zap.Int("pairs", len(pairs)),
	)
	return nil
}
