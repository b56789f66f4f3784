package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes objects under Dir. The router serves Dir at
// PublicPath.
type LocalUploader struct {
	Dir        string
	PublicPath string // URL prefix, e.g. "/images"
}

func NewLocalUploader(dir, publicPath string) *LocalUploader {
	return &LocalUploader{Dir: dir, PublicPath: strings.TrimRight(publicPath, "/")}
}

func (u *LocalUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean("/" + key)
	path := filepath.Join(u.Dir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return u.PublicPath + filepath.ToSlash(clean), nil
}
