package markdown

import (
	"strings"
)

// Document represents a Markdown document (can be a whole file, or just a snippet)
type Document string

func (m Document) String() string {
	return string(m)
}

// TrimSpace removes spaces at the start and end of a markdown document.
func (m Document) TrimSpace() Document {
	return Document(strings.TrimSpace(string(m)))
}
