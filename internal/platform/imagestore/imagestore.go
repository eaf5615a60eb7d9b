// Package imagestore validates and stores user profile images. Images are
// written either to a local directory served under /uploads or to an S3
// bucket; callers only see the Store interface and the public path it returns.
package imagestore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/greenrise/greenrise-api/internal/config"
)

// ProfilePrefix is the sub-directory (or key prefix) for profile images.
const ProfilePrefix = "profile"

// sniffLen is how many bytes http.DetectContentType considers.
const sniffLen = 512

var (
	// ErrNotImage is returned when an upload is not an image.
	ErrNotImage = errors.New("only image files are allowed")

	// ErrTooLarge is returned when an upload exceeds the size limit.
	ErrTooLarge = errors.New("image exceeds the maximum allowed size")

	// ErrEmptyUpload is returned for zero-byte uploads.
	ErrEmptyUpload = errors.New("image is empty")
)

// Store persists profile images.
type Store interface {
	// Save writes the image and returns the path clients use to fetch it.
	Save(ctx context.Context, img *Image) (string, error)

	// Delete removes a previously saved image by the path Save returned.
	// Paths the store does not own are ignored.
	Delete(ctx context.Context, path string) error
}

// Image is a validated upload ready to be stored.
type Image struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Prepare validates an uploaded file and assigns its stored name. The
// content type is sniffed from the data; the declared type is only used to
// reject non-images early.
func Prepare(r io.Reader, filename, declaredType string, size, maxBytes int64) (*Image, error) {
	if size == 0 {
		return nil, ErrEmptyUpload
	}
	if maxBytes > 0 && size > maxBytes {
		return nil, ErrTooLarge
	}
	if declaredType != "" && !strings.HasPrefix(declaredType, "image/") {
		return nil, ErrNotImage
	}

	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyUpload
	}

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}

	return &Image{
		Name:        GenerateName(filename, contentType, time.Now()),
		ContentType: contentType,
		Size:        size,
		Body:        br,
	}, nil
}

// GenerateName builds "profile-<unix millis>-<random>.<ext>". The extension
// comes from the original filename, or from the content type when the
// filename has none.
func GenerateName(filename, contentType string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || ext == "." {
		ext = ""
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	return fmt.Sprintf("profile-%d-%d%s", now.UnixMilli(), rand.Intn(1_000_000_000), ext)
}

// New returns the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.UploadsConfig) (Store, error) {
	switch cfg.Backend {
	case "", "disk":
		return NewDiskStore(cfg.Dir)
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown uploads backend %q", cfg.Backend)
	}
}
