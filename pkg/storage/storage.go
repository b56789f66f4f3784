// Package storage stores uploaded blog images and returns their public URLs.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Uploader persists an object and returns the URL it is served from.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// AllowedImageTypes lists the content types accepted for blog images.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// DetectImage sniffs data and reports its MIME type and extension when it
// is one of AllowedImageTypes.
func DetectImage(data []byte) (contentType, ext string, ok bool) {
	mt := mimetype.Detect(data)
	for _, allowed := range AllowedImageTypes {
		if mt.Is(allowed) {
			return allowed, mt.Extension(), true
		}
	}
	return mt.String(), mt.Extension(), false
}

// NewKey returns a unique object key under prefix, partitioned by date.
func NewKey(prefix, ext string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%02d/%s%s", prefix, d.Year(), d.Month(), uuid.New(), ext)
}
