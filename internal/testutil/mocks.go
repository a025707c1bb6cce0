package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tarjeta/internal/store"
	"tarjeta/internal/types"
)

// MockStore is a mock for store.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Locate(ctx context.Context) (store.Source, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.Source), args.Error(1)
}

func (m *MockStore) Load(ctx context.Context, src store.Source) ([]types.WordPair, error) {
	args := m.Called(ctx, src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.WordPair), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, pairs []types.WordPair) error {
	// Copy so later mutations of the caller's slice don't leak into assertions.
	args := m.Called(ctx, append([]types.WordPair{}, pairs...))
	return args.Error(0)
}
