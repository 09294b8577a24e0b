// Package store persists canonical documents on disk, one folder per
// identity key, and tracks their publication state. The folder itself is the
// database: no separate index is maintained.
package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cengizhan/substack-sync/internal/document"
	"gopkg.in/yaml.v3"
)

// PublishedMarker is the sentinel file recording that an item was posted
// externally. Its presence alone decides publication state.
const PublishedMarker = ".published"

// Record is the content of a publication marker.
type Record struct {
	PublishedAt string `yaml:"published_at"`
	PostID      string `yaml:"post_id"`
	PostURL     string `yaml:"post_url"`
}

// Store abstracts the folder-as-database layout so that change detection and
// the publication tracker are testable against an in-memory fake.
type Store interface {
	Exists(kind document.Kind, key string) bool
	ReadOriginal(kind document.Kind, key string) (string, error)
	WriteOriginal(kind document.Kind, key string, content string) error
	WriteFormatted(kind document.Kind, key string, content string) error

	// List returns every stored identity key of a kind, sorted ascending.
	List(kind document.Kind) ([]string, error)

	// MediaFiles returns the paths of the item's local image files, sorted.
	MediaFiles(kind document.Kind, key string) ([]string, error)

	// MediaDir returns the directory downloaded media goes into.
	MediaDir(kind document.Kind, key string) string

	IsPublished(kind document.Kind, key string) bool
	MarkPublished(kind document.Kind, key string, record Record) error
	ReadRecord(kind document.Kind, key string) (*Record, error)
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// FileStore is the on-disk implementation, rooted at one directory per kind.
type FileStore struct {
	postsDir string
	notesDir string
}

func NewFileStore(postsDir, notesDir string) *FileStore {
	return &FileStore{
		postsDir: postsDir,
		notesDir: notesDir,
	}
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) root(kind document.Kind) string {
	if kind == document.KindNote {
		return s.notesDir
	}
	return s.postsDir
}

// Dir returns the item folder for an identity key.
func (s *FileStore) Dir(kind document.Kind, key string) string {
	return filepath.Join(s.root(kind), filepath.FromSlash(key))
}

func (s *FileStore) MediaDir(kind document.Kind, key string) string {
	return s.Dir(kind, key)
}

func originalName(kind document.Kind) string {
	return fmt.Sprintf("original_%s.md", kind)
}

func formattedName(kind document.Kind) string {
	return fmt.Sprintf("formatted_%s.md", kind)
}

func (s *FileStore) Exists(kind document.Kind, key string) bool {
	_, err := os.Stat(filepath.Join(s.Dir(kind, key), originalName(kind)))
	return err == nil
}

func (s *FileStore) ReadOriginal(kind document.Kind, key string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(kind, key), originalName(kind)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *FileStore) WriteOriginal(kind document.Kind, key string, content string) error {
	return s.write(kind, key, originalName(kind), content)
}

func (s *FileStore) WriteFormatted(kind document.Kind, key string, content string) error {
	return s.write(kind, key, formattedName(kind), content)
}

func (s *FileStore) write(kind document.Kind, key, name, content string) error {
	dir := s.Dir(kind, key)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create item folder %s: %w", dir, err)
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
}

func (s *FileStore) List(kind document.Kind) ([]string, error) {
	root := s.root(kind)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var keys []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != originalName(kind) {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) MediaFiles(kind document.Kind, key string) ([]string, error) {
	entries, err := os.ReadDir(s.Dir(kind, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, imageExt := range imageExtensions {
			if ext == imageExt {
				files = append(files, filepath.Join(s.Dir(kind, key), entry.Name()))
				break
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func (s *FileStore) IsPublished(kind document.Kind, key string) bool {
	_, err := os.Stat(filepath.Join(s.Dir(kind, key), PublishedMarker))
	return err == nil
}

func (s *FileStore) MarkPublished(kind document.Kind, key string, record Record) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir(kind, key), PublishedMarker), data, 0644)
}

func (s *FileStore) ReadRecord(kind document.Kind, key string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(kind, key), PublishedMarker))
	if err != nil {
		return nil, err
	}
	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unable to parse publication record for %s: %w", key, err)
	}
	return &record, nil
}
