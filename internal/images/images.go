// Package images stores product pictures in a local directory.
package images

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxSize is the largest accepted upload.
const MaxSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("unsupported image format")
	ErrTooLarge        = errors.New("image is too large")
	ErrInvalidName     = errors.New("invalid image name")
)

// extensions maps accepted content types to the stored file extension.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Store keeps images under dir and serves them below urlPrefix.
type Store struct {
	dir       string
	urlPrefix string
	log       *logrus.Logger
}

func New(dir, urlPrefix string, log *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/"), log: log}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Upload sniffs the file content, then copies it under a fresh unique name.
func (s *Store) Upload(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxSize {
		return "", ErrTooLarge
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect type: %w", err)
	}
	ext, ok := extensions[mt.String()]
	if !ok {
		s.log.Warnf("Rejected upload %q with type %s", file.Filename, mt.String())
		return "", ErrUnsupportedType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if _, err := io.Copy(dst, io.LimitReader(src, MaxSize+1)); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("close image: %w", err)
	}
	s.log.Infof("Stored image %s (%s)", name, mt.String())
	return name, nil
}

// Remove deletes the named image. A missing file is not an error.
func (s *Store) Remove(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) Exists(name string) bool {
	path, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// URL is the public path of the named image.
func (s *Store) URL(name string) string {
	return s.urlPrefix + "/" + name
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}
