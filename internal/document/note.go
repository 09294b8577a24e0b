package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/cengizhan/substack-sync/internal/convert"
	"github.com/cengizhan/substack-sync/internal/logging"
	"github.com/cengizhan/substack-sync/internal/notes"
	"github.com/cengizhan/substack-sync/pkg/clock"
)

const noteTitleLength = 50

// NewNote builds the canonical document for one raw note item.
//
// Items without a stable identifier and restacks of other items are filtered
// out entirely: NewNote returns nil for them, without error.
//
// The body conversion prefers the structured node tree when present, then
// raw HTML, then falls back to treating the field as already-plain text.
func NewNote(item notes.Item, baseURL string, converter convert.Converter) (*Document, error) {
	comment := item.Comment
	if comment.ID == 0 {
		return nil, nil
	}
	if item.Restacked {
		return nil, nil
	}

	body, err := noteBody(comment, converter)
	if err != nil {
		return nil, err
	}

	// Image attachments become extra image references after the textual body.
	for _, attachment := range item.Attachments {
		if attachment.ImageURL == "" {
			continue
		}
		if body != "" {
			body += "\n\n"
		}
		body += fmt.Sprintf("![](%s)", attachment.ImageURL)
	}

	publishedAt := parseNoteDate(comment.Date)

	doc := &Document{
		Kind:        KindNote,
		Title:       noteTitle(comment),
		Author:      authorName(comment.Name),
		Handle:      comment.Handle,
		Date:        publishedAt.UTC().Format(DateLayout),
		PublishedAt: publishedAt,
		URL:         noteURL(comment, baseURL),
		NoteID:      comment.ID,
		PhotoURL:    comment.PhotoURL,
		Body:        body,
		SourceHTML:  comment.Body,
		Engagement: Engagement{
			Reactions: comment.ReactionCount,
			Restacks:  comment.Restacks,
			Replies:   comment.ChildrenCount,
		},
	}

	if item.Post != nil && item.Post.Title != "" && item.Post.CanonicalURL != "" {
		doc.ReplyTo = &ReplyContext{
			Title: item.Post.Title,
			URL:   item.Post.CanonicalURL,
		}
	}

	return doc, nil
}

func noteBody(comment notes.Comment, converter convert.Converter) (string, error) {
	if len(comment.BodyJSON) > 0 && string(comment.BodyJSON) != "null" {
		tree, err := convert.ParseNodeTree(comment.BodyJSON)
		if err == nil {
			return converter.Convert(tree)
		}
		logging.CurrentLogger().Debugf("Malformed structured body for note %d: %v", comment.ID, err)
	}

	if comment.Body == "" {
		return "No content", nil
	}
	if looksLikeHTML(comment.Body) {
		return convert.FromHTML(comment.Body)
	}
	// Already-plain text is used verbatim.
	return comment.Body, nil
}

func looksLikeHTML(body string) bool {
	open := strings.Index(body, "<")
	return open >= 0 && strings.Index(body, ">") > open
}

func parseNoteDate(date string) time.Time {
	if date == "" {
		return clock.Now()
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t
	}
	logging.CurrentLogger().Debugf("Unparseable note date %q, using current time", date)
	return clock.Now()
}

// noteTitle derives a title from the body since notes have none of their own.
func noteTitle(comment notes.Comment) string {
	if comment.Body == "" {
		return fmt.Sprintf("Note %d", comment.ID)
	}
	runes := []rune(comment.Body)
	if len(runes) <= noteTitleLength {
		return comment.Body
	}
	return string(runes[:noteTitleLength]) + "..."
}

func authorName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

// noteURL builds the public URL of a note. Notes published under a handle
// live on the platform domain; others under the publication.
func noteURL(comment notes.Comment, baseURL string) string {
	if comment.Handle != "" {
		return fmt.Sprintf("https://substack.com/note/c-%d", comment.ID)
	}
	return fmt.Sprintf("%s/notes/post/%d", strings.TrimSuffix(baseURL, "/"), comment.ID)
}
