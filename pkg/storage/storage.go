// Package storage hosts uploaded media such as staff and student pictures.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrObjectNotFound is returned when a key does not exist on the host.
var ErrObjectNotFound = errors.New("media object not found")

// Object describes a stored media object.
type Object struct {
	Key         string
	URL         string
	ContentType string
	Bytes       int64
}

// MediaHost stores objects and hands out URLs the browser can load.
type MediaHost interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*Object, error)
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// CleanKey normalises a caller supplied key and rejects traversal.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("media key required")
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.Trim(key, "/") || strings.Contains(cleaned, "..") {
		return "", errors.New("invalid media key")
	}
	return cleaned, nil
}

// FormatFromContentType maps an image MIME type to its short format name.
func FormatFromContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		if i := strings.LastIndex(contentType, "/"); i >= 0 {
			return contentType[i+1:]
		}
		return contentType
	}
}
