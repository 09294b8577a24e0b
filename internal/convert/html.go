// Package convert transforms the heterogeneous source body formats
// (HTML, ProseMirror-style node trees) into canonical Markdown.
package convert

import (
	"fmt"
	"regexp"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

var (
	// The three URL-carrying Markdown forms, from the most specific to the
	// most generic. The clickable-image form must be repaired first: its two
	// URLs would otherwise be misparsed by the single-URL patterns.
	reClickableImage = regexp.MustCompile(`(?s)\[!\[([^\]]*)\]\(([^()]*)\)\]\(([^()]*)\)`)
	reBareImage      = regexp.MustCompile(`(?s)!\[([^\]]*)\]\(([^()]*)\)`)
	reBareLink       = regexp.MustCompile(`(?s)\[([^\]]*)\]\(([^()]*)\)`)

	reWhitespace = regexp.MustCompile(`\s+`)
)

// FromHTML converts an HTML body to Markdown and repairs link/image URL
// targets that the conversion split across lines.
func FromHTML(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	markup, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("unable to convert HTML body: %w", err)
	}
	return RepairSplitURLs(markup), nil
}

// RepairSplitURLs strips embedded whitespace from inside Markdown link and
// image URL targets. Long URLs are frequently wrapped by upstream renderers,
// which leaves newlines in the middle of the target.
func RepairSplitURLs(markup string) string {
	markup = reClickableImage.ReplaceAllStringFunc(markup, func(match string) string {
		groups := reClickableImage.FindStringSubmatch(match)
		return "[![" + groups[1] + "](" + StripURLWhitespace(groups[2]) + ")](" + StripURLWhitespace(groups[3]) + ")"
	})
	markup = reBareImage.ReplaceAllStringFunc(markup, func(match string) string {
		groups := reBareImage.FindStringSubmatch(match)
		return "![" + groups[1] + "](" + StripURLWhitespace(groups[2]) + ")"
	})
	markup = reBareLink.ReplaceAllStringFunc(markup, func(match string) string {
		groups := reBareLink.FindStringSubmatch(match)
		return "[" + groups[1] + "](" + StripURLWhitespace(groups[2]) + ")"
	})
	return markup
}

// StripURLWhitespace removes every whitespace character from a URL.
func StripURLWhitespace(url string) string {
	return reWhitespace.ReplaceAllString(url, "")
}
