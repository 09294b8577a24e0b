// Package document defines the canonical, format-agnostic representation of
// one post or note used throughout the pipeline.
package document

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the textual form used in document headers.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

type Kind int

const (
	KindPost Kind = iota
	KindNote
)

func (k Kind) String() string {
	if k == KindNote {
		return "note"
	}
	return "post"
}

// MediaReference is one remote media URL together with every raw textual
// form it was observed under. Line wrapping in source markup can split one
// logical URL into several textual variants.
type MediaReference struct {
	URL      string
	Variants []string
}

// AddVariant records a raw textual form of the URL, ignoring duplicates.
func (r *MediaReference) AddVariant(raw string) {
	if raw == r.URL {
		return
	}
	for _, v := range r.Variants {
		if v == raw {
			return
		}
	}
	r.Variants = append(r.Variants, raw)
}

// Engagement counters are informational only: they never participate in
// identity or change detection.
type Engagement struct {
	Reactions int
	Restacks  int
	Replies   int
}

func (e Engagement) Zero() bool {
	return e.Reactions == 0 && e.Restacks == 0 && e.Replies == 0
}

// ReplyContext references the parent post a note replies to.
type ReplyContext struct {
	Title string
	URL   string
}

// Document is the canonical form of one post or note.
type Document struct {
	Kind        Kind
	Title       string
	Author      string
	Handle      string // notes only
	Date        string // textual publish timestamp (DateLayout form for notes, feed-provided for posts)
	PublishedAt time.Time
	URL         string
	Slug        string // posts only
	NoteID      int64  // notes only
	PhotoURL    string // notes only
	Body        string // canonical markup
	Media       []MediaReference
	Engagement  Engagement    // notes only
	ReplyTo     *ReplyContext // notes only, optional

	// SourceHTML keeps the raw HTML body for media scanning. Never serialized.
	SourceHTML string
}

// IdentityKey returns the deterministic storage key: stable across
// re-fetches of the same logical item.
func (d *Document) IdentityKey() string {
	if d.Kind == KindNote {
		return fmt.Sprintf("%s_note-%d", d.PublishedAt.UTC().Format("2006/01/02"), d.NoteID)
	}
	return fmt.Sprintf("%s_%s", d.PublishedAt.UTC().Format("2006-01-02"), d.Slug)
}

// Header is the frontmatter block of a serialized document.
type Header struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Author      string `yaml:"author"`
	Handle      string `yaml:"handle,omitempty"`
	URL         string `yaml:"url"`
	Type        string `yaml:"type"`
	NoteID      int64  `yaml:"note_id,omitempty"`
	PhotoURL    string `yaml:"photo_url,omitempty"`
	Reactions   *int   `yaml:"reactions,omitempty"`
	Restacks    *int   `yaml:"restacks,omitempty"`
	Replies     *int   `yaml:"replies,omitempty"`
	ReplyToPost string `yaml:"reply_to_post,omitempty"`
	ReplyToURL  string `yaml:"reply_to_url,omitempty"`
}

func (d *Document) header() Header {
	h := Header{
		Title:  d.Title,
		Date:   d.Date,
		Author: d.Author,
		URL:    d.URL,
		Type:   d.Kind.String(),
	}
	if d.Kind == KindNote {
		h.Handle = d.Handle
		h.NoteID = d.NoteID
		h.PhotoURL = d.PhotoURL
		h.Reactions = &d.Engagement.Reactions
		h.Restacks = &d.Engagement.Restacks
		h.Replies = &d.Engagement.Replies
		if d.ReplyTo != nil {
			h.ReplyToPost = d.ReplyTo.Title
			h.ReplyToURL = d.ReplyTo.URL
		}
	}
	return h
}

// Serialize renders the document to its persisted Markdown form: a YAML
// frontmatter block, the title heading, a metadata section, a horizontal
// rule, then the body.
func (d *Document) Serialize() (string, error) {
	frontmatter, err := yaml.Marshal(d.header())
	if err != nil {
		return "", fmt.Errorf("unable to marshal document header: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(frontmatter)
	sb.WriteString("---\n\n")
	sb.WriteString("# " + d.Title + "\n\n")
	sb.WriteString(d.metadata())
	sb.WriteString("\n\n---\n\n")
	sb.WriteString(d.Body)
	sb.WriteString("\n")

	return sb.String(), nil
}

func (d *Document) metadata() string {
	var lines []string
	lines = append(lines, "**Published:** "+d.Date)
	if d.Kind == KindNote && d.Handle != "" {
		lines = append(lines, fmt.Sprintf("**Author:** %s (@%s)", d.Author, d.Handle))
	} else {
		lines = append(lines, "**Author:** "+d.Author)
	}
	lines = append(lines, fmt.Sprintf("**Link:** [%s](%s)", d.URL, d.URL))
	if d.Kind == KindNote && !d.Engagement.Zero() {
		lines = append(lines, fmt.Sprintf("**Engagement:** %d reactions, %d restacks, %d replies",
			d.Engagement.Reactions, d.Engagement.Restacks, d.Engagement.Replies))
	}
	if d.ReplyTo != nil {
		lines = append(lines, fmt.Sprintf("**In reply to:** [%s](%s)", d.ReplyTo.Title, d.ReplyTo.URL))
	}
	return strings.Join(lines, "\n")
}

// Content returns everything after the frontmatter block (the second ---
// line) of a serialized document: the title heading, the metadata section,
// and the body.
func Content(serialized string) string {
	lines := strings.Split(serialized, "\n")
	separators := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separators++
			if separators == 2 {
				return strings.Join(lines[i+1:], "\n")
			}
		}
	}
	return serialized
}

// Body returns the text below the metadata rule of a serialized document:
// the title heading and metadata lines are stripped. This is the only part
// considered by change detection; metadata fields like engagement counters
// are volatile across fetches and must never trigger a spurious rewrite.
func Body(serialized string) string {
	content := Content(serialized)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}
	return strings.TrimSpace(content)
}

// ParseHeader decodes the frontmatter block of a serialized document.
func ParseHeader(serialized string) (*Header, error) {
	rest, found := strings.CutPrefix(serialized, "---\n")
	if !found {
		return nil, fmt.Errorf("document has no frontmatter block")
	}
	frontmatter, _, found := strings.Cut(rest, "\n---")
	if !found {
		return nil, fmt.Errorf("document frontmatter block is not terminated")
	}
	var h Header
	if err := yaml.Unmarshal([]byte(frontmatter), &h); err != nil {
		return nil, fmt.Errorf("unable to parse document header: %w", err)
	}
	return &h, nil
}
