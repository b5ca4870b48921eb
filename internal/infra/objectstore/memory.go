package objectstore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/yanqian/dietdash/internal/domain/dashboard"
)

// MemoryStorage keeps reports in memory for local runs and tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string]storedBlob
}

type storedBlob struct {
	data     []byte
	mimeType string
}

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]storedBlob)}
}

// Put stores a copy of data under key.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, mimeType string) (dashboard.StoredObject, error) {
	copied := append([]byte(nil), data...)
	sum := md5.Sum(copied)
	s.mu.Lock()
	s.blobs[key] = storedBlob{data: copied, mimeType: mimeType}
	s.mu.Unlock()
	return dashboard.StoredObject{
		Key:      key,
		Size:     int64(len(copied)),
		MimeType: mimeType,
		ETag:     hex.EncodeToString(sum[:]),
	}, nil
}

// Get returns a reader over the stored blob.
func (s *MemoryStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("object %q: %w", key, dashboard.ErrReportNotFound)
	}
	return io.NopCloser(bytes.NewReader(blob.data)), nil
}

var _ dashboard.ObjectStorage = (*MemoryStorage)(nil)
