package store

import (
	"github.com/cengizhan/substack-sync/internal/document"
	"github.com/cengizhan/substack-sync/internal/helpers"
)

// Status classifies a candidate document against the stored version.
type Status int

const (
	StatusNew Status = iota
	StatusUpdated
	StatusUnchanged
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Decide compares a candidate serialization against the stored original.
// Only the body below the metadata rule participates: frontmatter and
// metadata fields (publish timestamp rendering, engagement counters) are
// volatile across fetches and must never trigger a spurious rewrite.
func Decide(s Store, kind document.Kind, key string, candidate string) (Status, error) {
	if !s.Exists(kind, key) {
		return StatusNew, nil
	}

	existing, err := s.ReadOriginal(kind, key)
	if err != nil {
		return StatusNew, err
	}

	existingHash := helpers.Hash([]byte(document.Body(existing)))
	candidateHash := helpers.Hash([]byte(document.Body(candidate)))

	if existingHash != candidateHash {
		return StatusUpdated, nil
	}
	return StatusUnchanged, nil
}
