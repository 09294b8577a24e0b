// Package pipeline runs the synchronization flow: fetch, build, decide, write.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cengizhan/substack-sync/internal/config"
	"github.com/cengizhan/substack-sync/internal/convert"
	"github.com/cengizhan/substack-sync/internal/document"
	"github.com/cengizhan/substack-sync/internal/feed"
	"github.com/cengizhan/substack-sync/internal/logging"
	"github.com/cengizhan/substack-sync/internal/media"
	"github.com/cengizhan/substack-sync/internal/notes"
	"github.com/cengizhan/substack-sync/internal/store"
)

// FeedFetcher abstracts the RSS client.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]feed.Entry, error)
}

// NotesFetcher abstracts the notes API client.
type NotesFetcher interface {
	Fetch(ctx context.Context) ([]notes.Item, error)
}

// Stats counts per-item outcomes of one run.
type Stats struct {
	Saved   int
	Skipped int
	Failed  int
}

func (s *Stats) add(other Stats) {
	s.Saved += other.Saved
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

func (s Stats) String() string {
	return fmt.Sprintf("%d saved, %d skipped, %d failed", s.Saved, s.Skipped, s.Failed)
}

type Pipeline struct {
	config    *config.Config
	store     store.Store
	feed      FeedFetcher
	notes     NotesFetcher
	localizer *media.Localizer
	converter convert.Converter
}

// NewPipeline wires the default collaborators for a configuration.
func NewPipeline(cfg *config.Config, s store.Store) *Pipeline {
	return &Pipeline{
		config:    cfg,
		store:     s,
		feed:      feed.NewClient(),
		notes:     notes.NewClient(cfg.Substack.BaseURL),
		localizer: media.NewLocalizer(media.NewHTTPDownloader()),
		converter: convert.DefaultConverter(cfg.Substack.ConverterScript),
	}
}

// WithFeed substitutes the RSS client. Used by tests.
func (p *Pipeline) WithFeed(f FeedFetcher) *Pipeline {
	p.feed = f
	return p
}

// WithNotes substitutes the notes client. Used by tests.
func (p *Pipeline) WithNotes(n NotesFetcher) *Pipeline {
	p.notes = n
	return p
}

// WithLocalizer substitutes the media localizer. Used by tests.
func (p *Pipeline) WithLocalizer(l *media.Localizer) *Pipeline {
	p.localizer = l
	return p
}

// Run synchronizes posts then notes. A failure fetching one source does
// not prevent the other from running.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	logger := logging.CurrentLogger()
	var stats Stats

	postStats, postErr := p.SyncPosts(ctx)
	stats.add(postStats)
	if postErr != nil {
		logger.Warnf("Post sync failed: %v", postErr)
	}

	noteStats, noteErr := p.SyncNotes(ctx)
	stats.add(noteStats)
	if noteErr != nil {
		logger.Warnf("Note sync failed: %v", noteErr)
	}

	return stats, errors.Join(postErr, noteErr)
}

// SyncPosts fetches the RSS feed and persists every new or updated post.
func (p *Pipeline) SyncPosts(ctx context.Context) (Stats, error) {
	logger := logging.CurrentLogger()

	entries, err := p.feed.Fetch(ctx, p.config.Substack.FeedURL)
	if err != nil {
		return Stats{}, fmt.Errorf("unable to fetch feed: %w", err)
	}
	logger.Infof("Found %d posts in feed", len(entries))

	var stats Stats
	for _, entry := range entries {
		doc, err := document.NewPost(entry)
		if err != nil {
			logger.Warnf("Failed to build post %q: %v", entry.Title, err)
			stats.Failed++
			continue
		}
		p.process(ctx, doc, &stats)
	}
	return stats, nil
}

// SyncNotes fetches the notes API and persists every new or updated note.
// Restacks and malformed items are dropped before storage.
func (p *Pipeline) SyncNotes(ctx context.Context) (Stats, error) {
	logger := logging.CurrentLogger()

	items, err := p.notes.Fetch(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("unable to fetch notes: %w", err)
	}
	logger.Infof("Found %d notes", len(items))

	var stats Stats
	for _, item := range items {
		doc, err := document.NewNote(item, p.config.Substack.BaseURL, p.converter)
		if err != nil {
			logger.Warnf("Failed to build note: %v", err)
			stats.Failed++
			continue
		}
		if doc == nil {
			// Restack or item without an id.
			continue
		}
		p.process(ctx, doc, &stats)
	}
	return stats, nil
}

// process runs one document through change detection, storage, and media
// localization. The original copy keeps remote URLs so that an unchanged
// re-fetch compares equal and skips every download.
func (p *Pipeline) process(ctx context.Context, doc *document.Document, stats *Stats) {
	logger := logging.CurrentLogger()
	key := doc.IdentityKey()

	doc.Media = media.ScanReferences(doc.SourceHTML, doc.Body)

	serialized, err := doc.Serialize()
	if err != nil {
		logger.Warnf("Failed to serialize %s %s: %v", doc.Kind, key, err)
		stats.Failed++
		return
	}

	status, err := store.Decide(p.store, doc.Kind, key, serialized)
	if err != nil {
		logger.Warnf("Failed to inspect %s %s: %v", doc.Kind, key, err)
		stats.Failed++
		return
	}
	if status == store.StatusUnchanged {
		logger.Debugf("Unchanged %s %s", doc.Kind, key)
		stats.Skipped++
		return
	}

	if err := p.store.WriteOriginal(doc.Kind, key, serialized); err != nil {
		logger.Warnf("Failed to write %s %s: %v", doc.Kind, key, err)
		stats.Failed++
		return
	}

	dir := p.store.MediaDir(doc.Kind, key)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warnf("Failed to create media directory for %s %s: %v", doc.Kind, key, err)
		stats.Failed++
		return
	}
	localized, downloaded := p.localizer.Localize(ctx, serialized, doc.Media, dir)

	if err := p.store.WriteFormatted(doc.Kind, key, localized); err != nil {
		logger.Warnf("Failed to write %s %s: %v", doc.Kind, key, err)
		stats.Failed++
		return
	}

	if downloaded > 0 {
		logger.Infof("%s %s %s (%d images)", status, doc.Kind, key, downloaded)
	} else {
		logger.Infof("%s %s %s", status, doc.Kind, key)
	}
	stats.Saved++
}
