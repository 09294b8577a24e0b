package readme_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cengizhan/substack-sync/internal/document"
	"github.com/cengizhan/substack-sync/internal/readme"
	"github.com/cengizhan/substack-sync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://www.cengizhan.com"

func storePost(t *testing.T, s store.Store, key, title, url, date, body string) {
	t.Helper()
	doc := &document.Document{
		Kind:   document.KindPost,
		Title:  title,
		Author: "Cengizhan",
		Date:   date,
		URL:    url,
		Body:   body,
	}
	serialized, err := doc.Serialize()
	require.NoError(t, err)
	require.NoError(t, s.WriteOriginal(document.KindPost, key, serialized))
}

func TestLatestPosts(t *testing.T) {
	s := store.NewMemStore()
	storePost(t, s, "2024-01-01_first", "First", baseURL+"/p/first",
		"Mon, 01 Jan 2024 10:00:00 GMT",
		"The first article body, long enough to serve as its own description text.")
	storePost(t, s, "2024-02-01_second", "Second", baseURL+"/p/second",
		"Thu, 01 Feb 2024 10:00:00 GMT",
		"The second article body, long enough to serve as its own description text.")

	entries, err := readme.LatestPosts(s, 3)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, "Second", entries[0].Title)
	assert.Equal(t, "February 1, 2024", entries[0].Date)
	assert.Contains(t, entries[0].Description, "The second article body")
	assert.Equal(t, "First", entries[1].Title)
}

func TestLatestPostsHonorsCount(t *testing.T) {
	s := store.NewMemStore()
	storePost(t, s, "2024-01-01_a", "A", baseURL+"/p/a", "Mon, 01 Jan 2024 10:00:00 GMT", "body")
	storePost(t, s, "2024-02-01_b", "B", baseURL+"/p/b", "Thu, 01 Feb 2024 10:00:00 GMT", "body")
	storePost(t, s, "2024-03-01_c", "C", baseURL+"/p/c", "Fri, 01 Mar 2024 10:00:00 GMT", "body")

	entries, err := readme.LatestPosts(s, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "C", entries[0].Title)
	assert.Equal(t, "B", entries[1].Title)
}

func TestSection(t *testing.T) {
	entries := []readme.Entry{
		{
			Title:       "Hello World",
			URL:         baseURL + "/p/hello-world",
			Date:        "January 1, 2024",
			Description: "A description.",
		},
	}

	section := readme.Section(entries, baseURL)

	assert.Contains(t, section, "## Latest Blog Posts")
	assert.Contains(t, section, "### [Hello World]("+baseURL+"/p/hello-world)")
	assert.Contains(t, section, "*January 1, 2024*")
	assert.Contains(t, section, "A description.")
	assert.Contains(t, section, "[Read more on my blog]("+baseURL+")")
}

func TestSectionEmpty(t *testing.T) {
	section := readme.Section(nil, baseURL)
	assert.Contains(t, section, "No posts available yet")
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	content := `# My Profile

Intro text.

## Latest Blog Posts

Old stale entries here.

## Contact

mail@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	entries := []readme.Entry{
		{Title: "Fresh", URL: baseURL + "/p/fresh", Date: "March 1, 2024", Description: "New."},
	}
	require.NoError(t, readme.Update(path, entries, baseURL))

	updated, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(updated)

	assert.Contains(t, text, "### [Fresh](")
	assert.NotContains(t, text, "Old stale entries")
	// Surrounding sections survive
	assert.Contains(t, text, "# My Profile")
	assert.Contains(t, text, "## Contact")
	assert.Contains(t, text, "mail@example.com")
}

func TestUpdateMissingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# No blog section here\n"), 0644))

	err := readme.Update(path, nil, baseURL)
	assert.Error(t, err)
}
