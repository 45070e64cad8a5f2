// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

// Package blob stores uploaded images in the public bucket.
package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// NewStore creates a Store writing to the given bucket.
func NewStore(client *storage.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

type Store struct {
	client *storage.Client
	bucket string
}

// SaveImage decodes an image data URL, already compressed by the
// client, and writes it under pathNoExt with the extension taken from
// the content type. It returns the durable public URL of the object.
func (s *Store) SaveImage(ctx context.Context, pathNoExt string, dataURL string) (string, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", fmt.Errorf("blob: invalid data URL %q", dataURL)
	}
	ct, contents, ok := strings.Cut(rest, ";")
	if !ok {
		return "", fmt.Errorf("blob: invalid data URL %q", dataURL)
	}

	ext, ok := strings.CutPrefix(ct, "image/")
	if !ok {
		return "", fmt.Errorf("blob: only image data URLs supported, got %q", ct)
	}

	b64, ok := strings.CutPrefix(contents, "base64,")
	if !ok {
		return "", fmt.Errorf("blob: only base64 data URLs supported")
	}
	bytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("blob: decoding base64 data URL: %w", err)
	}
	path := pathNoExt + "." + ext

	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = ct
	if _, err := w.Write(bytes); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("blob: writing image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("blob: closing writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path), nil
}
