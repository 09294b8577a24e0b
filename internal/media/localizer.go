package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/cengizhan/substack-sync/internal/document"
	"github.com/cengizhan/substack-sync/internal/logging"
)

// Hosts serving the publication's own assets. Once an image is local, a
// click-through to these hosts is meaningless.
var assetHosts = []string{"substackcdn.com", "substack-post-media"}

var knownExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var reClickableLocalImage = regexp.MustCompile(`\[(!\[[^\]]*\]\(image\d+\.\w+\))\]\(([^)]+)\)`)

var reLocalImageName = regexp.MustCompile(`^image\d+\.\w+$`)

// Localizer downloads the remote media of a document and rewrites the
// document to reference the local copies.
type Localizer struct {
	downloader Downloader
}

func NewLocalizer(downloader Downloader) *Localizer {
	return &Localizer{
		downloader: downloader,
	}
}

// Localize downloads every reference into dir under a deterministic
// sequential name (image<N>.<ext>, N from discovery order) and returns a
// rewriting of serialized with every URL variant replaced by its local name.
//
// A failed download is logged and left out of the rewrite map: that one
// asset keeps its remote URL. It never fails the document.
func (l *Localizer) Localize(ctx context.Context, serialized string, refs []document.MediaReference, dir string) (string, int) {
	logger := logging.CurrentLogger()

	downloaded := 0
	var rewrites []rewrite

	for i, ref := range refs {
		name := fmt.Sprintf("image%d%s", i+1, ExtensionFor(ref.URL))
		dest := filepath.Join(dir, name)

		if err := l.downloader.Download(ctx, ref.URL, dest); err != nil {
			logger.Warnf("Failed to download %s: %v", ref.URL, err)
			continue
		}
		downloaded++
		logger.Infof("Downloaded %s", name)

		rewrites = append(rewrites, rewrite{ref.URL, name})
		for _, variant := range ref.Variants {
			rewrites = append(rewrites, rewrite{variant, name})
		}
	}

	result := serialized
	for _, r := range sortedByLength(rewrites) {
		result = strings.ReplaceAll(result, r.raw, r.name)
	}

	return collapseClickableImages(result), downloaded
}

type rewrite struct {
	raw  string
	name string
}

// sortedByLength orders rewrites longest raw form first, so a URL that is a
// textual prefix of another never gets rewritten inside the longer one.
func sortedByLength(rewrites []rewrite) []rewrite {
	sort.SliceStable(rewrites, func(i, j int) bool {
		return len(rewrites[i].raw) > len(rewrites[j].raw)
	})
	return rewrites
}

// collapseClickableImages turns [![alt](imageN.ext)](target) into a plain
// ![alt](imageN.ext) when the click-through targets an asset host, or when
// the URL rewrite already turned the target itself into a local image name.
func collapseClickableImages(markup string) string {
	return reClickableLocalImage.ReplaceAllStringFunc(markup, func(match string) string {
		groups := reClickableLocalImage.FindStringSubmatch(match)
		if reLocalImageName.MatchString(groups[2]) {
			return groups[1]
		}
		for _, host := range assetHosts {
			if strings.Contains(groups[2], host) {
				return groups[1]
			}
		}
		return match
	})
}

// ExtensionFor infers the local file extension from the URL path, defaulting
// to .jpg when absent or unrecognized.
func ExtensionFor(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	for _, known := range knownExtensions {
		if ext == known {
			return ext
		}
	}
	return ".jpg"
}
