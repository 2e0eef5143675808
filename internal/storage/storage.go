package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrEmptyFile            = errors.New("file is empty")
	ErrFileTooLarge         = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedMediaType = errors.New("only jpeg, png and gif images are accepted")
)

var allowedMediaTypes = []string{"image/jpeg", "image/png", "image/gif"}

// PhotoStore keeps submission photos and returns the reference stored with the submission.
type PhotoStore interface {
	Save(ctx context.Context, userID string, r io.Reader) (string, error)
}

// Photo is a validated upload.
type Photo struct {
	Data      []byte
	MediaType string
	Extension string
}

// ReadPhoto reads at most maxSize bytes from r and checks the sniffed content type.
func ReadPhoto(r io.Reader, maxSize int64) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}

	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), allowedMediaTypes...) {
		return nil, ErrUnsupportedMediaType
	}

	return &Photo{
		Data:      data,
		MediaType: mime.String(),
		Extension: mime.Extension(),
	}, nil
}

func (p *Photo) Reader() io.Reader {
	return bytes.NewReader(p.Data)
}

func objectName(now time.Time, ext string) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), ext)
}

// New returns the PhotoStore selected by STORAGE_DRIVER.
//
//nolint:ireturn
func New(ctx context.Context, cfg config.Storage) (PhotoStore, error) {
	switch cfg.Driver {
	case config.StorageS3:
		s3Store, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s3Store, nil
	case config.StorageLocal, "":
		local, err := NewLocalStore(cfg.UploadPath, cfg.MaxFileSize)
		if err != nil {
			return nil, err
		}
		return local, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
