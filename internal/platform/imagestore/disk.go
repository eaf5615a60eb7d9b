package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL prefix under which the upload directory is served.
const PublicPrefix = "uploads"

// DiskStore writes images below <root>/profile.
type DiskStore struct {
	root string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore creates the profile directory under root if needed.
func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		return nil, errors.New("uploads directory is required")
	}
	if err := os.MkdirAll(filepath.Join(root, ProfilePrefix), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Root returns the directory served as /uploads.
func (s *DiskStore) Root() string {
	return s.root
}

// Save implements Store.Save. The returned path is relative, e.g.
// "uploads/profile/profile-1700000000000-42.png".
func (s *DiskStore) Save(ctx context.Context, img *Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(img.Name)
	dst := filepath.Join(s.root, ProfilePrefix, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(f, img.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	return path.Join(PublicPrefix, ProfilePrefix, name), nil
}

// Delete implements Store.Delete.
func (s *DiskStore) Delete(ctx context.Context, p string) error {
	prefix := path.Join(PublicPrefix, ProfilePrefix) + "/"
	if !strings.HasPrefix(p, prefix) {
		return nil
	}

	name := path.Base(p)
	err := os.Remove(filepath.Join(s.root, ProfilePrefix, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}
