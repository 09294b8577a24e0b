// Package media localizes remote media references: it scans documents for
// image URLs, downloads them next to the document, and rewrites the markup
// to point at the local copies.
package media

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cengizhan/substack-sync/internal/convert"
	"github.com/cengizhan/substack-sync/internal/document"
)

// Image URL targets in markup, possibly split across lines.
var reMarkupImage = regexp.MustCompile(`(?s)!\[[^\]]*\]\(([^()]*)\)`)

// ScanReferences collects every image URL found in the raw HTML markup or in
// the converted markup, as a union: conversion can itself introduce or
// normalize URL forms. Order is the discovery order (HTML scan first, then
// markup scan), de-duplicated by first occurrence of the canonical URL, so
// that local filenames stay stable across runs.
func ScanReferences(html, markup string) []document.MediaReference {
	var refs []document.MediaReference
	index := make(map[string]int)

	record := func(raw string) {
		canonical := convert.StripURLWhitespace(raw)
		if !strings.HasPrefix(canonical, "http://") && !strings.HasPrefix(canonical, "https://") {
			return
		}
		i, seen := index[canonical]
		if !seen {
			refs = append(refs, document.MediaReference{URL: canonical})
			i = len(refs) - 1
			index[canonical] = i
		}
		refs[i].AddVariant(raw)
	}

	if html != "" {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
			doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
				if src, ok := sel.Attr("src"); ok && src != "" {
					record(src)
				}
			})
		}
	}

	for _, groups := range reMarkupImage.FindAllStringSubmatch(markup, -1) {
		if groups[1] != "" {
			record(groups[1])
		}
	}

	return refs
}
