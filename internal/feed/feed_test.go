package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cengizhan/substack-sync/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Cengizhan's Newsletter</title>
    <link>https://www.cengizhan.com</link>
    <item>
      <title>Hello World</title>
      <link>https://www.cengizhan.com/p/hello-world</link>
      <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
      <dc:creator>Cengizhan</dc:creator>
      <description>&lt;p&gt;A summary&lt;/p&gt;</description>
      <content:encoded>&lt;p&gt;Hi &lt;b&gt;there&lt;/b&gt;&lt;/p&gt;</content:encoded>
    </item>
    <item>
      <title>Second Post</title>
      <link>https://www.cengizhan.com/p/second-post</link>
      <pubDate>Tue, 02 Jan 2024 10:00:00 GMT</pubDate>
      <description>&lt;p&gt;Only a summary here&lt;/p&gt;</description>
    </item>
  </channel>
</rss>`

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	defer server.Close()

	client := feed.NewClient()
	entries, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Hello World", first.Title)
	assert.Equal(t, "https://www.cengizhan.com/p/hello-world", first.Link)
	assert.Equal(t, "Mon, 01 Jan 2024 10:00:00 GMT", first.Published)
	assert.Equal(t, "Cengizhan", first.Author)
	assert.Equal(t, "<p>Hi <b>there</b></p>", first.ContentHTML)
	assert.Equal(t, "<p>A summary</p>", first.SummaryHTML)

	second := entries[1]
	assert.Empty(t, second.ContentHTML)
	assert.Equal(t, "<p>Only a summary here</p>", second.SummaryHTML)
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := feed.NewClient()
	_, err := client.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetchMalformedFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not XML"))
	}))
	defer server.Close()

	client := feed.NewClient()
	_, err := client.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}
