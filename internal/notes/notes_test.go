package notes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cengizhan/substack-sync/internal/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notesJSON = `{
  "items": [
    {
      "comment": {
        "id": 42,
        "name": "Cengizhan",
        "handle": "cengizhan",
        "body": "short note",
        "body_json": {"type": "doc", "content": []},
        "date": "2024-03-05T08:00:00Z",
        "reaction_count": 3,
        "restacks": 1,
        "children_count": 2
      },
      "attachments": [
        {"type": "image", "imageUrl": "https://substackcdn.com/image/a.png"}
      ]
    },
    {
      "comment": {"id": 43, "body": "a restack"},
      "isRestacked": true
    }
  ]
}`

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/notes", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(notesJSON))
	}))
	defer server.Close()

	client := notes.NewClient(server.URL)
	items, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, int64(42), first.Comment.ID)
	assert.Equal(t, "cengizhan", first.Comment.Handle)
	assert.Equal(t, "short note", first.Comment.Body)
	assert.NotEmpty(t, first.Comment.BodyJSON)
	assert.Equal(t, 3, first.Comment.ReactionCount)
	require.Len(t, first.Attachments, 1)
	assert.Equal(t, "https://substackcdn.com/image/a.png", first.Attachments[0].ImageURL)
	assert.False(t, first.Restacked)

	assert.True(t, items[1].Restacked)
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := notes.NewClient(server.URL)
	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetchMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := notes.NewClient(server.URL)
	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
}
