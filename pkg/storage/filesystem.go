package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
)

const localScope = "media"

// LocalMediaHost persists media on disk and serves it through signed URLs.
type LocalMediaHost struct {
	baseDir string
	baseURL string
	signer  *SignedURLSigner
}

// NewLocalMediaHost ensures the base directory exists and returns a handle.
// baseURL is the externally reachable prefix of the download route, e.g. https://api.example.com/media.
func NewLocalMediaHost(baseDir, baseURL string, signer *SignedURLSigner) (*LocalMediaHost, error) {
	if baseDir == "" {
		baseDir = "./media"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	if baseURL == "" {
		baseURL = "/media"
	}
	return &LocalMediaHost{baseDir: baseDir, baseURL: baseURL, signer: signer}, nil
}

// Put writes the object, replacing any previous object with the same key.
func (s *LocalMediaHost) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*Object, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	key += extensionFor(contentType)

	target := s.resolve(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("prepare media directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create media file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	var src io.Reader = body
	if size >= 0 {
		src = io.LimitReader(body, size+1)
	}
	written, err := io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("write media stream: %w", err)
	}
	if size >= 0 && written != size {
		return nil, fmt.Errorf("media size mismatch: expected %d bytes, wrote %d", size, written)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return nil, fmt.Errorf("store media file: %w", err)
	}

	link, err := s.URL(ctx, key)
	if err != nil {
		return nil, err
	}

	return &Object{Key: key, URL: link, ContentType: contentType, Bytes: written}, nil
}

// URL returns a signed download link for key.
func (s *LocalMediaHost) URL(_ context.Context, key string) (string, error) {
	key, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(s.resolve(key)); err != nil {
		if os.IsNotExist(err) {
			return "", ErrObjectNotFound
		}
		return "", fmt.Errorf("stat media file: %w", err)
	}
	token, _, err := s.signer.Generate(localScope, key)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + url.PathEscape(token), nil
}

// Delete removes a stored object if present.
func (s *LocalMediaHost) Delete(_ context.Context, key string) error {
	key, err := CleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(s.resolve(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

// OpenSigned validates a download token and opens the referenced file.
func (s *LocalMediaHost) OpenSigned(token string) (*os.File, string, error) {
	signed, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", err
	}
	if signed.Scope != localScope {
		return nil, "", ErrInvalidToken
	}
	key, err := CleanKey(signed.Key)
	if err != nil {
		return nil, "", err
	}
	file, err := os.Open(s.resolve(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrObjectNotFound
		}
		return nil, "", fmt.Errorf("open media file: %w", err)
	}
	return file, mime.TypeByExtension(filepath.Ext(key)), nil
}

func (s *LocalMediaHost) resolve(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ""
}
