// Package publisher posts stored documents that carry no publication marker.
package publisher

import (
	"context"
	"time"

	"github.com/cengizhan/substack-sync/internal/config"
	"github.com/cengizhan/substack-sync/internal/document"
	"github.com/cengizhan/substack-sync/internal/logging"
	"github.com/cengizhan/substack-sync/internal/socialtext"
	"github.com/cengizhan/substack-sync/internal/store"
	"github.com/cengizhan/substack-sync/internal/twitter"
	"github.com/cengizhan/substack-sync/pkg/clock"
)

// Media attachment ceilings in premium mode. Free accounts post text only.
const (
	maxNoteAttachments = 4
	maxPostAttachments = 1
)

// Stats counts per-item outcomes of one run.
type Stats struct {
	Posted  int
	Skipped int
	Failed  int
}

type Publisher struct {
	config *config.Config
	store  store.Store
	poster twitter.Poster

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewPublisher(cfg *config.Config, s store.Store, poster twitter.Poster) *Publisher {
	return &Publisher{
		config: cfg,
		store:  s,
		poster: poster,
		sleep:  time.Sleep,
	}
}

// WithSleep substitutes the cooldown sleep. Used by tests.
func (p *Publisher) WithSleep(sleep func(time.Duration)) *Publisher {
	p.sleep = sleep
	return p
}

// PublishPosts posts unpublished posts, newest first. A marked item is never
// posted again, even when its stored content changed since.
func (p *Publisher) PublishPosts(ctx context.Context) (Stats, error) {
	keys, err := p.store.List(document.KindPost)
	if err != nil {
		return Stats{}, err
	}
	reverse(keys)
	return p.publish(ctx, document.KindPost, keys), nil
}

// PublishNotes posts unpublished notes, oldest first.
func (p *Publisher) PublishNotes(ctx context.Context) (Stats, error) {
	keys, err := p.store.List(document.KindNote)
	if err != nil {
		return Stats{}, err
	}
	return p.publish(ctx, document.KindNote, keys), nil
}

func (p *Publisher) publish(ctx context.Context, kind document.Kind, keys []string) Stats {
	logger := logging.CurrentLogger()

	var stats Stats
	for _, key := range keys {
		if p.store.IsPublished(kind, key) {
			logger.Debugf("Already published %s %s", kind, key)
			stats.Skipped++
			continue
		}

		text, err := p.compose(kind, key)
		if err != nil {
			logger.Warnf("Failed to compose %s %s: %v", kind, key, err)
			stats.Failed++
			continue
		}

		id, err := p.poster.Post(ctx, text, p.attachments(kind, key))
		if err != nil {
			logger.Warnf("Failed to post %s %s: %v", kind, key, err)
			stats.Failed++
			continue
		}

		record := store.Record{
			PublishedAt: clock.Now().UTC().Format(time.RFC3339),
			PostID:      id,
			PostURL:     twitter.StatusURL(id),
		}
		if err := p.store.MarkPublished(kind, key, record); err != nil {
			// The tweet is out; a missing marker means a duplicate next
			// run, so this is worth failing loudly over.
			logger.Warnf("Posted %s %s as %s but failed to record it: %v", kind, key, id, err)
			stats.Failed++
			continue
		}

		logger.Infof("Posted %s %s as %s", kind, key, record.PostURL)
		stats.Posted++

		p.sleep(p.config.Twitter.Cooldown)
	}
	return stats
}

func (p *Publisher) compose(kind document.Kind, key string) (string, error) {
	original, err := p.store.ReadOriginal(kind, key)
	if err != nil {
		return "", err
	}

	premium := p.config.Twitter.Premium

	if kind == document.KindPost {
		header, err := document.ParseHeader(original)
		if err != nil {
			return "", err
		}
		summary := document.Summary(document.Content(original))
		return socialtext.ComposePost(header.Title, summary, header.URL, premium), nil
	}

	header, err := document.ParseHeader(original)
	if err != nil {
		return "", err
	}
	return socialtext.ComposeNote(document.Body(original), header.URL, premium), nil
}

// attachments selects local media to attach. Free accounts cannot attach
// media through the API, so the list stays empty outside premium mode.
func (p *Publisher) attachments(kind document.Kind, key string) []string {
	if !p.config.Twitter.Premium {
		return nil
	}
	files, err := p.store.MediaFiles(kind, key)
	if err != nil {
		logging.CurrentLogger().Warnf("Failed to list media for %s %s: %v", kind, key, err)
		return nil
	}
	limit := maxPostAttachments
	if kind == document.KindNote {
		limit = maxNoteAttachments
	}
	if len(files) > limit {
		files = files[:limit]
	}
	return files
}

func reverse(keys []string) {
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
}
