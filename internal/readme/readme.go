// Package readme refreshes the "Latest Blog Posts" section of a README file.
package readme

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/cengizhan/substack-sync/internal/document"
	"github.com/cengizhan/substack-sync/internal/logging"
	"github.com/cengizhan/substack-sync/internal/store"
	"github.com/cengizhan/substack-sync/pkg/clock"
	"github.com/cengizhan/substack-sync/pkg/text"
)

const DefaultCount = 3

const maxDescriptionLength = 250

// Entry is one rendered post in the section.
type Entry struct {
	Title       string
	URL         string
	Date        string
	Description string
}

// reSection matches from the section heading up to the next second-level
// heading or horizontal rule.
var reSection = regexp.MustCompile(`(?s)## Latest Blog Posts\n.*?(\n## |\n---\n|\z)`)

var sectionTemplate = template.Must(template.New("section").Parse(`## Latest Blog Posts

{{range .Entries}}### [{{.Title}}]({{.URL}})
*{{.Date}}*

{{.Description}}

{{end}}` + "➡️" + ` [Read more on my blog]({{.BaseURL}})`))

// LatestPosts reads the newest count posts from the store, with parsed dates
// and one-paragraph descriptions.
func LatestPosts(s store.Store, count int) ([]Entry, error) {
	keys, err := s.List(document.KindPost)
	if err != nil {
		return nil, err
	}

	logger := logging.CurrentLogger()

	var entries []Entry
	for i := len(keys) - 1; i >= 0 && len(entries) < count; i-- {
		original, err := s.ReadOriginal(document.KindPost, keys[i])
		if err != nil {
			logger.Warnf("Failed to read post %s: %v", keys[i], err)
			continue
		}
		header, err := document.ParseHeader(original)
		if err != nil {
			logger.Warnf("Failed to parse post %s: %v", keys[i], err)
			continue
		}

		date, err := time.Parse(document.DateLayout, header.Date)
		if err != nil {
			date = clock.Now()
		}

		description := document.Summary(document.Content(original))
		if utf8.RuneCountInString(description) > maxDescriptionLength {
			description = text.TruncateAtWord(description, maxDescriptionLength) + "..."
		}

		entries = append(entries, Entry{
			Title:       header.Title,
			URL:         header.URL,
			Date:        date.Format("January 2, 2006"),
			Description: description,
		})
	}
	return entries, nil
}

// Section renders the replacement section for a list of posts.
func Section(entries []Entry, baseURL string) string {
	if len(entries) == 0 {
		return fmt.Sprintf("## Latest Blog Posts\n\nNo posts available yet. Check back soon!\n\n➡️ [Read more on my blog](%s)\n", baseURL)
	}

	var sb strings.Builder
	data := struct {
		Entries []Entry
		BaseURL string
	}{entries, baseURL}
	if err := sectionTemplate.Execute(&sb, data); err != nil {
		// Template and data are both static; an error here is a bug.
		panic(err)
	}
	return sb.String()
}

// Update rewrites the section in place. The file must already contain a
// "## Latest Blog Posts" heading.
func Update(path string, entries []Entry, baseURL string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", path, err)
	}

	content := string(data)
	loc := reSection.FindStringSubmatchIndex(content)
	if loc == nil {
		return fmt.Errorf("no \"Latest Blog Posts\" section in %s", path)
	}

	// Keep the boundary (next heading or rule) that terminated the match.
	boundary := content[loc[2]:loc[3]]
	updated := content[:loc[0]] + Section(entries, baseURL) + boundary + content[loc[1]:]

	return os.WriteFile(path, []byte(updated), 0644)
}
