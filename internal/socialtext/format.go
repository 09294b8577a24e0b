// Package socialtext renders canonical markup into a platform-safe plain
// text form: no markup survives, bold spans become Unicode pseudo-bold, and
// the result fits the platform length budgets.
package socialtext

import (
	"strings"

	"github.com/cengizhan/substack-sync/pkg/markdown"
)

// Format strips canonical markup down to plain text. Images are removed
// entirely (media is attached separately), bold spans become Unicode
// pseudo-bold, links collapse to "text: url" form.
func Format(markup string) string {
	doc := markdown.Document(markup).MustTransform(
		markdown.StripImages(),
		markdown.ReplaceBold(ToUnicodeBold),
		markdown.StripItalic(),
		markdown.StripInlineCode(),
		markdown.ReplaceLinks(collapseLink),
		markdown.StripHeadingMarkers(),
		markdown.StripHorizontalRules(),
		markdown.SquashBlankLines(),
	)
	return doc.TrimSpace().String()
}

// collapseLink shows the URL once when the text adds nothing (the platform
// auto-links bare URLs), and "text: url" otherwise.
func collapseLink(text, url string) string {
	if text == url {
		return url
	}
	if strings.HasPrefix(text, "http") && strings.HasPrefix(url, text) {
		return url
	}
	return text + ": " + url
}

// ToUnicodeBold maps A-Z, a-z and 0-9 to their Mathematical Sans-Serif Bold
// code points. Other characters are kept as-is.
func ToUnicodeBold(text string) string {
	var sb strings.Builder
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(0x1D5D4 + (r - 'A'))
		case r >= 'a' && r <= 'z':
			sb.WriteRune(0x1D5EE + (r - 'a'))
		case r >= '0' && r <= '9':
			sb.WriteRune(0x1D7EC + (r - '0'))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
