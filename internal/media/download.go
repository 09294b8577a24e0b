package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Downloader fetches one remote asset to a local path.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// HTTPDownloader downloads assets over plain HTTP with a browser-like user
// agent; the asset host rejects obvious bots.
type HTTPDownloader struct {
	client *http.Client
}

func NewHTTPDownloader() *HTTPDownloader {
	return &HTTPDownloader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Downloader = (*HTTPDownloader)(nil)

func (d *HTTPDownloader) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to download %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unable to download %s: HTTP %d", url, res.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, res.Body); err != nil {
		os.Remove(dest)
		return fmt.Errorf("unable to save %s: %w", url, err)
	}
	return nil
}
