package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarjeta/internal/types"
)

func TestPostgresStore_Locate(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "words.csv")
	writeFile(t, seed, "Spanish,English\nhola,hello\n")

	tests := []struct {
		name     string
		exists   bool
		seedPath string
		expected Source
	}{
		{name: "saved before", exists: true, seedPath: seed, expected: SourcePrimary},
		{name: "fresh database", exists: false, seedPath: seed, expected: SourceSeed},
		{name: "fresh database without seed", exists: false, seedPath: filepath.Join(dir, "missing.csv"), expected: SourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery("SELECT EXISTS").
				WithArgs(DefaultSetName).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			s := NewPostgresStore(db, "", tt.seedPath, nil)
			src, err := s.Locate(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.expected, src)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_LocateQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").WillReturnError(fmt.Errorf("connection refused"))

	s := NewPostgresStore(db, "spanish", "", nil)
	src, err := s.Locate(context.Background())

	assert.Error(t, err)
	assert.Equal(t, SourceNotFound, src)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadPrimary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT spanish, english FROM word_pairs WHERE set_name = \\$1 ORDER BY position").
		WithArgs("spanish").
		WillReturnRows(sqlmock.NewRows([]string{"spanish", "english"}).
			AddRow("hola", "hello").
			AddRow("adios", "goodbye"))

	s := NewPostgresStore(db, "spanish", "", nil)
	pairs, err := s.Load(context.Background(), SourcePrimary)

	require.NoError(t, err)
	assert.Equal(t, []types.WordPair{
		{Spanish: "hola", English: "hello"},
		{Spanish: "adios", English: "goodbye"},
	}, pairs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadSeed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	seed := filepath.Join(t.TempDir(), "words.csv")
	writeFile(t, seed, "Spanish,English\ngato,cat\n")

	s := NewPostgresStore(db, "", seed, nil)
	pairs, err := s.Load(context.Background(), SourceSeed)

	require.NoError(t, err)
	assert.Equal(t, []types.WordPair{{Spanish: "gato", English: "cat"}}, pairs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO working_sets").
		WithArgs(DefaultSetName).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM word_pairs").
		WithArgs(DefaultSetName).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO word_pairs").
		WithArgs(DefaultSetName, 0, "adios", "goodbye").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewPostgresStore(db, "", "", nil)
	err = s.Save(context.Background(), []types.WordPair{{Spanish: "adios", English: "goodbye"}})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO working_sets").
		WithArgs(DefaultSetName).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM word_pairs").
		WithArgs(DefaultSetName).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO word_pairs").
		WithArgs(DefaultSetName, 0, "adios", "goodbye").
		WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	s := NewPostgresStore(db, "", "", nil)
	err = s.Save(context.Background(), []types.WordPair{{Spanish: "adios", English: "goodbye"}})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}
