package markdown_test

import (
	"strings"
	"testing"

	"github.com/cengizhan/substack-sync/pkg/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripImages(t *testing.T) {
	var tests = []struct {
		name     string
		input    markdown.Document
		expected markdown.Document
	}{
		{
			name:     "No image",
			input:    "Nothing to strip here",
			expected: "Nothing to strip here",
		},
		{
			name:     "Single image",
			input:    "Before ![alt text](https://example.com/pic.png) after",
			expected: "Before  after",
		},
		{
			name:     "Image without alt",
			input:    "![](image1.jpg)",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := tt.input.Transform(markdown.StripImages())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestReplaceBold(t *testing.T) {
	upper := func(inner string) string {
		return strings.ToUpper(inner)
	}

	var tests = []struct {
		name     string
		input    markdown.Document
		expected markdown.Document
	}{
		{
			name:     "Asterisks",
			input:    "so **important** indeed",
			expected: "so IMPORTANT indeed",
		},
		{
			name:     "Underscores",
			input:    "so __important__ indeed",
			expected: "so IMPORTANT indeed",
		},
		{
			name:     "Italic untouched",
			input:    "just *emphasis*",
			expected: "just *emphasis*",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := tt.input.Transform(markdown.ReplaceBold(upper))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestStripItalic(t *testing.T) {
	actual, err := markdown.Document("just *emphasis* and _more_").Transform(markdown.StripItalic())
	require.NoError(t, err)
	assert.Equal(t, markdown.Document("just emphasis and more"), actual)
}

func TestStripInlineCode(t *testing.T) {
	actual, err := markdown.Document("run `go doc` first").Transform(markdown.StripInlineCode())
	require.NoError(t, err)
	assert.Equal(t, markdown.Document("run go doc first"), actual)
}

func TestReplaceLinks(t *testing.T) {
	urlOnly := func(text, url string) string {
		return url
	}
	actual, err := markdown.Document("See [my post](https://example.com/p/a) there").
		Transform(markdown.ReplaceLinks(urlOnly))
	require.NoError(t, err)
	assert.Equal(t, markdown.Document("See https://example.com/p/a there"), actual)
}

func TestStripHeadingMarkers(t *testing.T) {
	input := markdown.Document("# Title\n\nBody\n\n### Subsection\n")
	actual, err := input.Transform(markdown.StripHeadingMarkers())
	require.NoError(t, err)
	assert.Equal(t, markdown.Document("Title\n\nBody\n\nSubsection\n"), actual)
}

func TestStripHorizontalRules(t *testing.T) {
	input := markdown.Document("above\n\n---\n\nbelow\n")
	actual, err := input.Transform(markdown.StripHorizontalRules())
	require.NoError(t, err)
	assert.Equal(t, markdown.Document("above\n\n\n\nbelow\n"), actual)
}

func TestTransformChain(t *testing.T) {
	input := markdown.Document("# Title\n\n\n\n![](pic.jpg)\n\nText *here*\n")
	actual, err := input.Transform(
		markdown.StripImages(),
		markdown.StripItalic(),
		markdown.StripHeadingMarkers(),
		markdown.SquashBlankLines(),
	)
	require.NoError(t, err)
	assert.Equal(t, markdown.Document("Title\n\nText here\n"), actual)
}
