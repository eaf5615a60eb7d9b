package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockHortalicaStore is a testify mock of store.HortalicaStore.
type MockHortalicaStore struct {
	mock.Mock
}

var _ store.HortalicaStore = (*MockHortalicaStore)(nil)

func (m *MockHortalicaStore) Create(ctx context.Context, h *domain.Hortalica) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHortalicaStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Hortalica, error) {
	args := m.Called(ctx, id)
	if h, ok := args.Get(0).(*domain.Hortalica); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHortalicaStore) List(ctx context.Context) ([]*domain.Hortalica, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*domain.Hortalica); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHortalicaStore) Update(ctx context.Context, h *domain.Hortalica) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHortalicaStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself; expectations are shared inside and
// outside the transaction.
func (m *MockHortalicaStore) WithTx(*sql.Tx) store.HortalicaStore {
	return m
}
