package socialtext

import (
	"unicode/utf8"

	"github.com/cengizhan/substack-sync/pkg/text"
)

const (
	// PlatformCeiling is the hard character limit of the platform.
	PlatformCeiling = 280

	// freeNoteBudget is the content budget applied to notes in free mode,
	// before the trailing link is even considered.
	freeNoteBudget = 250

	linkPrefix = "\n\n\U0001F449 " // 👉
	ellipsis   = "..."
)

// ComposeNote builds the posted text for a note. Premium mode preserves the
// full formatted content; free mode always truncates to the smaller budget
// first, then re-checks the platform ceiling including the link.
func ComposeNote(content, url string, premium bool) string {
	formatted := Format(content)
	linkPart := linkPrefix + url

	if premium {
		return formatted + linkPart
	}

	tweet := formatted
	if utf8.RuneCountInString(formatted) > freeNoteBudget {
		tweet = text.TruncateAtWord(formatted, freeNoteBudget) + ellipsis
	}
	tweet += linkPart

	if utf8.RuneCountInString(tweet) > PlatformCeiling {
		budget := PlatformCeiling - utf8.RuneCountInString(linkPart) - utf8.RuneCountInString(ellipsis)
		tweet = text.TruncateAtWord(formatted, budget) + ellipsis + linkPart
	}

	return tweet
}

// ComposePost builds the posted text for a post summary. Both modes fit the
// platform ceiling; premium mode leads with the title.
func ComposePost(title, summary, url string, premium bool) string {
	linkPart := linkPrefix + url

	if premium {
		formatted := Format(summary)
		titlePart := title + "\n\n"
		available := PlatformCeiling - utf8.RuneCountInString(linkPart) - utf8.RuneCountInString(titlePart)
		if utf8.RuneCountInString(formatted) > available {
			formatted = text.TruncateAtWord(formatted, available-utf8.RuneCountInString(ellipsis)) + ellipsis
		}
		return titlePart + formatted + linkPart
	}

	formatted := Format(summary)
	budget := PlatformCeiling - utf8.RuneCountInString(linkPart) - utf8.RuneCountInString(ellipsis)
	if utf8.RuneCountInString(formatted) > budget {
		formatted = text.TruncateAtWord(formatted, budget) + ellipsis
	}
	return formatted + linkPart
}
