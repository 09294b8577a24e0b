package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cengizhan/substack-sync/internal/document"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	originals map[string]string
	formatted map[string]string
	media     map[string][]string
	records   map[string]Record
}

func NewMemStore() *MemStore {
	return &MemStore{
		originals: make(map[string]string),
		formatted: make(map[string]string),
		media:     make(map[string][]string),
		records:   make(map[string]Record),
	}
}

var _ Store = (*MemStore)(nil)

func memKey(kind document.Kind, key string) string {
	return fmt.Sprintf("%s/%s", kind, key)
}

func (s *MemStore) Exists(kind document.Kind, key string) bool {
	_, ok := s.originals[memKey(kind, key)]
	return ok
}

func (s *MemStore) ReadOriginal(kind document.Kind, key string) (string, error) {
	content, ok := s.originals[memKey(kind, key)]
	if !ok {
		return "", os.ErrNotExist
	}
	return content, nil
}

func (s *MemStore) WriteOriginal(kind document.Kind, key string, content string) error {
	s.originals[memKey(kind, key)] = content
	return nil
}

func (s *MemStore) WriteFormatted(kind document.Kind, key string, content string) error {
	s.formatted[memKey(kind, key)] = content
	return nil
}

// Formatted exposes the formatted copy for assertions.
func (s *MemStore) Formatted(kind document.Kind, key string) (string, bool) {
	content, ok := s.formatted[memKey(kind, key)]
	return content, ok
}

// AddMediaFile registers a fake local media path for an item.
func (s *MemStore) AddMediaFile(kind document.Kind, key string, path string) {
	s.media[memKey(kind, key)] = append(s.media[memKey(kind, key)], path)
}

// MediaDir points downloads at a scratch directory so that tests exercising
// the media path never touch the working tree.
func (s *MemStore) MediaDir(kind document.Kind, key string) string {
	return filepath.Join(os.TempDir(), "substack-sync", kind.String(), key)
}

func (s *MemStore) List(kind document.Kind) ([]string, error) {
	var keys []string
	for full := range s.originals {
		prefix := fmt.Sprintf("%s/", kind)
		if len(full) > len(prefix) && full[:len(prefix)] == prefix {
			keys = append(keys, full[len(prefix):])
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemStore) MediaFiles(kind document.Kind, key string) ([]string, error) {
	files := append([]string(nil), s.media[memKey(kind, key)]...)
	sort.Strings(files)
	return files, nil
}

func (s *MemStore) IsPublished(kind document.Kind, key string) bool {
	_, ok := s.records[memKey(kind, key)]
	return ok
}

func (s *MemStore) MarkPublished(kind document.Kind, key string, record Record) error {
	s.records[memKey(kind, key)] = record
	return nil
}

func (s *MemStore) ReadRecord(kind document.Kind, key string) (*Record, error) {
	record, ok := s.records[memKey(kind, key)]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &record, nil
}
