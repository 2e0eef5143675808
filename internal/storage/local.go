package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/JojoFlex1/done/internal/util"
	"github.com/pkg/errors"
)

// PublicPrefix is the URL path local photos are served under.
const PublicPrefix = "/uploads/"

// LocalStore writes photos to a directory on disk.
type LocalStore struct {
	dir     string
	maxSize int64
}

func NewLocalStore(dir string, maxSize int64) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve upload path")
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	return &LocalStore{dir: abs, maxSize: maxSize}, nil
}

// Dir is the absolute upload directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, userID string, r io.Reader) (string, error) {
	photo, err := ReadPhoto(r, s.maxSize)
	if err != nil {
		return "", err
	}

	name := objectName(time.Now(), photo.Extension)
	if err := os.WriteFile(filepath.Join(s.dir, name), photo.Data, 0o644); err != nil { //nolint:gosec
		return "", errors.Wrap(err, "failed to write photo")
	}

	util.LogFromContext(ctx).Debug().Str("user_id", userID).Str("file", name).Int("size", len(photo.Data)).Msg("Stored photo")

	return PublicPrefix + name, nil
}
