package media_test

import (
	"testing"

	"github.com/cengizhan/substack-sync/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanReferences(t *testing.T) {
	t.Run("HTML images", func(t *testing.T) {
		html := `<p><img src="https://substackcdn.com/image/a.png"><img src="https://substackcdn.com/image/b.jpg"></p>`
		refs := media.ScanReferences(html, "")
		require.Len(t, refs, 2)
		assert.Equal(t, "https://substackcdn.com/image/a.png", refs[0].URL)
		assert.Equal(t, "https://substackcdn.com/image/b.jpg", refs[1].URL)
	})

	t.Run("Markup images", func(t *testing.T) {
		markup := "![alt](https://substackcdn.com/image/a.png)\n\n![](https://substackcdn.com/image/b.jpg)"
		refs := media.ScanReferences("", markup)
		require.Len(t, refs, 2)
	})

	t.Run("Union deduplicates across scans", func(t *testing.T) {
		html := `<img src="https://substackcdn.com/image/a.png">`
		markup := "![](https://substackcdn.com/image/a.png)\n![](https://substackcdn.com/image/c.gif)"
		refs := media.ScanReferences(html, markup)
		require.Len(t, refs, 2)
		// HTML scan came first, so its URL keeps position 1
		assert.Equal(t, "https://substackcdn.com/image/a.png", refs[0].URL)
		assert.Equal(t, "https://substackcdn.com/image/c.gif", refs[1].URL)
	})

	t.Run("Split URL collapses to one reference with variants", func(t *testing.T) {
		markup := "![](https://substackcdn.com/image/a\nlong.png)\n\n![](https://substackcdn.com/image/along.png)"
		refs := media.ScanReferences("", markup)
		require.Len(t, refs, 1)
		assert.Equal(t, "https://substackcdn.com/image/along.png", refs[0].URL)
		assert.Contains(t, refs[0].Variants, "https://substackcdn.com/image/a\nlong.png")
	})

	t.Run("Non-HTTP targets are ignored", func(t *testing.T) {
		markup := "![](image1.jpg)\n![](data:image/png;base64,AAAA)"
		refs := media.ScanReferences("", markup)
		assert.Empty(t, refs)
	})
}
