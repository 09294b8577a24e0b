package markdown

import (
	"regexp"
	"strings"

	"github.com/cengizhan/substack-sync/pkg/text"
)

// Transformer applies changes on a Markdown document
type Transformer func(document Document) (Document, error)

// Transform applies transformers successively to create a new Markdown document
func (m Document) Transform(transformers ...Transformer) (Document, error) {
	result := m
	for _, transformer := range transformers {
		resultTransformed, err := transformer(result)
		if err != nil {
			return m, err
		}
		result = resultTransformed
	}
	return result, nil
}

// MustTransform is similar to Transform but does not expect an error
func (m Document) MustTransform(transformers ...Transformer) Document {
	result, err := m.Transform(transformers...)
	if err != nil {
		panic(err)
	}
	return result
}

/*
 * Transformers
 */

var (
	reImage          = regexp.MustCompile(`!\[([^\]]*)\]\([^\)]+\)`)
	reBoldAsterisks  = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reBoldUnderscore = regexp.MustCompile(`__([^_]+)__`)
	reItalicAsterisk = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnder    = regexp.MustCompile(`_([^_]+)_`)
	reInlineCode     = regexp.MustCompile("`([^`]+)`")
	reLink           = regexp.MustCompile(`\[([^\]]+)\]\(([^\)]+)\)`)
	reHeadingMarker  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	reHorizontalRule = regexp.MustCompile(`(?m)^[\-_*]{3,}$`)
)

// StripImages removes image references entirely.
func StripImages() Transformer {
	return func(document Document) (Document, error) {
		return Document(reImage.ReplaceAllString(string(document), "")), nil
	}
}

// ReplaceBold rewrites bold spans (**text** or __text__) using the given function.
func ReplaceBold(fn func(inner string) string) Transformer {
	return func(document Document) (Document, error) {
		text := string(document)
		text = reBoldAsterisks.ReplaceAllStringFunc(text, func(match string) string {
			return fn(strings.TrimSuffix(strings.TrimPrefix(match, "**"), "**"))
		})
		text = reBoldUnderscore.ReplaceAllStringFunc(text, func(match string) string {
			return fn(strings.TrimSuffix(strings.TrimPrefix(match, "__"), "__"))
		})
		return Document(text), nil
	}
}

// StripItalic keeps only the inner text of italic spans.
func StripItalic() Transformer {
	return func(document Document) (Document, error) {
		text := string(document)
		text = reItalicAsterisk.ReplaceAllString(text, "$1")
		text = reItalicUnder.ReplaceAllString(text, "$1")
		return Document(text), nil
	}
}

// StripInlineCode keeps only the inner text of inline code spans.
func StripInlineCode() Transformer {
	return func(document Document) (Document, error) {
		return Document(reInlineCode.ReplaceAllString(string(document), "$1")), nil
	}
}

// ReplaceLinks rewrites [text](url) links using the given function.
func ReplaceLinks(fn func(text, url string) string) Transformer {
	return func(document Document) (Document, error) {
		result := reLink.ReplaceAllStringFunc(string(document), func(match string) string {
			groups := reLink.FindStringSubmatch(match)
			return fn(groups[1], groups[2])
		})
		return Document(result), nil
	}
}

// StripHeadingMarkers removes the leading #s of headings, keeping their titles.
func StripHeadingMarkers() Transformer {
	return func(document Document) (Document, error) {
		return Document(reHeadingMarker.ReplaceAllString(string(document), "")), nil
	}
}

// StripHorizontalRules removes horizontal rule lines (---, ___, ***).
func StripHorizontalRules() Transformer {
	return func(document Document) (Document, error) {
		return Document(reHorizontalRule.ReplaceAllString(string(document), "")), nil
	}
}

// SquashBlankLines removes blank lines when multiple successive blank lines are present
func SquashBlankLines() Transformer {
	return func(document Document) (Document, error) {
		return Document(text.SquashBlankLines(string(document))), nil
	}
}
