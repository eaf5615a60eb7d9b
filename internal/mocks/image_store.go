package mocks

import (
	"context"

	"github.com/greenrise/greenrise-api/internal/platform/imagestore"
)

// MockImageStore implements imagestore.Store for testing. Saved and deleted
// paths are recorded.
type MockImageStore struct {
	SaveFn   func(ctx context.Context, img *imagestore.Image) (string, error)
	DeleteFn func(ctx context.Context, path string) error

	Saved   []string
	Deleted []string
}

var _ imagestore.Store = (*MockImageStore)(nil)

// Save implements the imagestore.Store interface
func (m *MockImageStore) Save(ctx context.Context, img *imagestore.Image) (string, error) {
	if m.SaveFn != nil {
		p, err := m.SaveFn(ctx, img)
		if err == nil {
			m.Saved = append(m.Saved, p)
		}
		return p, err
	}
	p := "uploads/profile/" + img.Name
	m.Saved = append(m.Saved, p)
	return p, nil
}

// Delete implements the imagestore.Store interface
func (m *MockImageStore) Delete(ctx context.Context, path string) error {
	m.Deleted = append(m.Deleted, path)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, path)
	}
	return nil
}
