package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/service"
)

// MockHortalicaService implements service.HortalicaService for handler tests.
type MockHortalicaService struct {
	CreateHortalicaFn func(ctx context.Context, userID uuid.UUID, params domain.HortalicaParams) (*domain.Hortalica, error)
	ListHortalicasFn  func(ctx context.Context) ([]*domain.Hortalica, error)
	GetHortalicaFn    func(ctx context.Context, id uuid.UUID) (*domain.Hortalica, error)
	UpdateHortalicaFn func(ctx context.Context, id uuid.UUID, patch domain.HortalicaPatch) (*domain.Hortalica, error)
	DeleteHortalicaFn func(ctx context.Context, id uuid.UUID) error

	Calls []string
}

var _ service.HortalicaService = (*MockHortalicaService)(nil)

func (m *MockHortalicaService) CreateHortalica(
	ctx context.Context,
	userID uuid.UUID,
	params domain.HortalicaParams,
) (*domain.Hortalica, error) {
	m.Calls = append(m.Calls, "CreateHortalica")
	if m.CreateHortalicaFn != nil {
		return m.CreateHortalicaFn(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockHortalicaService) ListHortalicas(ctx context.Context) ([]*domain.Hortalica, error) {
	m.Calls = append(m.Calls, "ListHortalicas")
	if m.ListHortalicasFn != nil {
		return m.ListHortalicasFn(ctx)
	}
	return []*domain.Hortalica{}, nil
}

func (m *MockHortalicaService) GetHortalica(ctx context.Context, id uuid.UUID) (*domain.Hortalica, error) {
	m.Calls = append(m.Calls, "GetHortalica")
	if m.GetHortalicaFn != nil {
		return m.GetHortalicaFn(ctx, id)
	}
	return nil, nil
}

func (m *MockHortalicaService) UpdateHortalica(
	ctx context.Context,
	id uuid.UUID,
	patch domain.HortalicaPatch,
) (*domain.Hortalica, error) {
	m.Calls = append(m.Calls, "UpdateHortalica")
	if m.UpdateHortalicaFn != nil {
		return m.UpdateHortalicaFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockHortalicaService) DeleteHortalica(ctx context.Context, id uuid.UUID) error {
	m.Calls = append(m.Calls, "DeleteHortalica")
	if m.DeleteHortalicaFn != nil {
		return m.DeleteHortalicaFn(ctx, id)
	}
	return nil
}
