// Package storage abstracts where uploaded media lands. The backend (local
// disk vs. object storage) is swappable behind the Storage interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned when an upload's extension is not an
// accepted image format.
var ErrUnsupportedType = errors.New("unsupported file type")

// Storage persists an uploaded file and returns the URL it is served from.
type Storage interface {
	Save(ctx context.Context, originalName string, content io.Reader) (url string, err error)
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// NewObjectName validates the original file extension and returns a
// collision-free stored name.
func NewObjectName(originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnsupportedType, ext)
	}
	return uuid.New().String() + ext, nil
}
