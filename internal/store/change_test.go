package store_test

import (
	"testing"
	"time"

	"github.com/cengizhan/substack-sync/internal/document"
	"github.com/cengizhan/substack-sync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serialization(header, body string) string {
	return "---\n" + header + "\n---\n\n# Title\n\n---\n\n" + body + "\n"
}

func TestDecide(t *testing.T) {
	s := store.NewMemStore()
	key := "2024-01-01_hello-world"

	t.Run("New", func(t *testing.T) {
		status, err := store.Decide(s, document.KindPost, key, serialization("title: T", "body"))
		require.NoError(t, err)
		assert.Equal(t, store.StatusNew, status)
	})

	require.NoError(t, s.WriteOriginal(document.KindPost, key, serialization("title: T", "body")))

	t.Run("Unchanged", func(t *testing.T) {
		status, err := store.Decide(s, document.KindPost, key, serialization("title: T", "body"))
		require.NoError(t, err)
		assert.Equal(t, store.StatusUnchanged, status)
	})

	t.Run("Header-only change is still unchanged", func(t *testing.T) {
		status, err := store.Decide(s, document.KindPost, key, serialization("title: T\nreactions: 99", "body"))
		require.NoError(t, err)
		assert.Equal(t, store.StatusUnchanged, status)
	})

	t.Run("Body change is updated", func(t *testing.T) {
		status, err := store.Decide(s, document.KindPost, key, serialization("title: T", "edited body"))
		require.NoError(t, err)
		assert.Equal(t, store.StatusUpdated, status)
	})
}

func TestDecideIgnoresEngagement(t *testing.T) {
	s := store.NewMemStore()

	note := document.Document{
		Kind:        document.KindNote,
		Title:       "A short thought...",
		Author:      "Jane Doe",
		Handle:      "janedoe",
		Date:        "Tue, 05 Mar 2024 10:00:00 GMT",
		PublishedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		URL:         "https://substack.com/note/c-42",
		NoteID:      42,
		Body:        "A short thought about nothing much.",
		Engagement:  document.Engagement{Reactions: 5, Restacks: 1, Replies: 2},
	}
	key := note.IdentityKey()

	serialized, err := note.Serialize()
	require.NoError(t, err)
	require.NoError(t, s.WriteOriginal(document.KindNote, key, serialized))

	note.Engagement.Reactions = 6
	bumped, err := note.Serialize()
	require.NoError(t, err)

	status, err := store.Decide(s, document.KindNote, key, bumped)
	require.NoError(t, err)
	assert.Equal(t, store.StatusUnchanged, status)

	note.Body = "A revised thought about nothing much."
	edited, err := note.Serialize()
	require.NoError(t, err)

	status, err = store.Decide(s, document.KindNote, key, edited)
	require.NoError(t, err)
	assert.Equal(t, store.StatusUpdated, status)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "new", store.StatusNew.String())
	assert.Equal(t, "updated", store.StatusUpdated.String())
	assert.Equal(t, "unchanged", store.StatusUnchanged.String())
}
