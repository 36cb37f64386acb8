package services

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore abstracts the image bucket.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	PublicObjectURL(objectName string) string
}

type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type UploadService interface {
	UploadOrderImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (*UploadResult, error)
}

type uploadService struct {
	store ObjectStore
}

func NewUploadService(store ObjectStore) UploadService {
	return &uploadService{store: store}
}

// UploadOrderImage stores the file under a timestamped name and resolves the
// public URL. The original filename only contributes its extension.
func (s *uploadService) UploadOrderImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	objectName := objectNameFor(filename)

	path, err := s.store.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:  s.store.PublicObjectURL(path),
		Path: path,
	}, nil
}

// objectNameFor builds "<unix millis>-<random suffix><ext>".
func objectNameFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + suffix + ext
}
