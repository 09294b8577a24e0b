// Package feed retrieves raw post entries from the publication RSS feed.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cengizhan/substack-sync/internal/logging"
	"github.com/mmcdole/gofeed"
)

// Entry is one raw post as found in the RSS feed, before any normalization.
type Entry struct {
	Title       string
	Link        string
	Author      string
	Published   string // raw timestamp string, e.g. "Mon, 01 Jan 2024 10:00:00 GMT"
	ContentHTML string // full content when the feed provides it
	SummaryHTML string // fallback when the full content is absent
}

type Client struct {
	parser *gofeed.Parser
}

func NewClient() *Client {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	return &Client{
		parser: parser,
	}
}

// Fetch downloads and parses the feed. A feed with unparseable entries still
// returns the entries that could be parsed; only a top-level failure on the
// feed itself is an error.
func (c *Client) Fetch(ctx context.Context, feedURL string) ([]Entry, error) {
	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch feed %s: %w", feedURL, err)
	}

	var entries []Entry
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entry := Entry{
			Title:       item.Title,
			Link:        item.Link,
			Published:   item.Published,
			ContentHTML: item.Content,
			SummaryHTML: item.Description,
		}
		if item.Author != nil {
			entry.Author = item.Author.Name
		}
		if entry.Author == "" && len(feed.Authors) > 0 && feed.Authors[0] != nil {
			entry.Author = feed.Authors[0].Name
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		logging.CurrentLogger().Warnf("No posts found in feed %s", feedURL)
	}

	return entries, nil
}
