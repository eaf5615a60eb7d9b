package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/platform/imagestore"
	"github.com/greenrise/greenrise-api/internal/service"
)

// MockUserService implements service.UserService for handler tests.
// Unset functions return zero values.
type MockUserService struct {
	RegisterFn   func(ctx context.Context, params domain.UserParams, img *imagestore.Image) (*domain.User, error)
	ListUsersFn  func(ctx context.Context) ([]*domain.User, error)
	GetUserFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateUserFn func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)
	DeleteUserFn func(ctx context.Context, id uuid.UUID) error
	LoginFn      func(ctx context.Context, email, password string) (*service.LoginResult, error)

	Calls []string
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(
	ctx context.Context,
	params domain.UserParams,
	img *imagestore.Image,
) (*domain.User, error) {
	m.Calls = append(m.Calls, "Register")
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, params, img)
	}
	return nil, nil
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	m.Calls = append(m.Calls, "ListUsers")
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return []*domain.User{}, nil
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.Calls = append(m.Calls, "GetUser")
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, nil
}

func (m *MockUserService) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	patch domain.UserPatch,
) (*domain.User, error) {
	m.Calls = append(m.Calls, "UpdateUser")
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	m.Calls = append(m.Calls, "DeleteUser")
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return nil
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	m.Calls = append(m.Calls, "Login")
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return nil, nil
}
