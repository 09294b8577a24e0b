package document

import (
	"strings"
	"time"

	"github.com/cengizhan/substack-sync/internal/convert"
	"github.com/cengizhan/substack-sync/internal/feed"
	"github.com/cengizhan/substack-sync/internal/logging"
	"github.com/cengizhan/substack-sync/pkg/clock"
	"github.com/gosimple/slug"
)

// NewPost builds the canonical document for one raw feed entry.
//
// Missing fields never fail the entry: the title defaults to "Untitled", the
// author to "Unknown", and an unparseable publish date to the current
// processing time.
func NewPost(entry feed.Entry) (*Document, error) {
	title := entry.Title
	if title == "" {
		title = "Untitled"
	}
	author := entry.Author
	if author == "" {
		author = "Unknown"
	}

	html := entry.ContentHTML
	if html == "" {
		html = entry.SummaryHTML
	}

	body := "No content available"
	if html != "" {
		markup, err := convert.FromHTML(html)
		if err != nil {
			return nil, err
		}
		body = markup
	}

	publishedAt := parsePostDate(entry.Published)

	return &Document{
		Kind:        KindPost,
		Title:       title,
		Author:      author,
		Date:        entry.Published,
		PublishedAt: publishedAt,
		URL:         entry.Link,
		Slug:        postSlug(entry.Link, title),
		Body:        body,
		SourceHTML:  html,
	}, nil
}

// parsePostDate accepts the RFC1123-style timestamps RSS feeds emit.
func parsePostDate(published string) time.Time {
	if published == "" {
		return clock.Now()
	}
	for _, layout := range []string{DateLayout, time.RFC1123, time.RFC1123Z} {
		if t, err := time.Parse(layout, published); err == nil {
			return t
		}
	}
	logging.CurrentLogger().Debugf("Unparseable publish date %q, using current time", published)
	return clock.Now()
}

// postSlug extracts the URL slug (e.g. /p/slug-here => slug-here), falling
// back to a slugified title.
func postSlug(link, title string) string {
	link = strings.TrimSuffix(link, "/")
	if idx := strings.LastIndex(link, "/"); idx >= 0 && idx < len(link)-1 {
		return link[idx+1:]
	}
	return slug.Make(title)
}
