// Package notes retrieves short-form notes from the public notes endpoint.
package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// A browser-like user agent; the endpoint rejects obvious bots.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Item is one raw note as returned by the endpoint.
type Item struct {
	Comment     Comment      `json:"comment"`
	Post        *PostContext `json:"post"`
	Attachments []Attachment `json:"attachments"`
	Restacked   bool         `json:"isRestacked"`
}

// Comment carries the note payload itself.
type Comment struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Handle        string          `json:"handle"`
	Body          string          `json:"body"`
	BodyJSON      json.RawMessage `json:"body_json"` // ProseMirror-style node tree, optional
	Date          string          `json:"date"`      // ISO 8601
	PhotoURL      string          `json:"photo_url"`
	ReactionCount int             `json:"reaction_count"`
	Restacks      int             `json:"restacks"`
	ChildrenCount int             `json:"children_count"`
}

// PostContext is present when the note replies to a post.
type PostContext struct {
	Title        string `json:"title"`
	CanonicalURL string `json:"canonical_url"`
}

type Attachment struct {
	Type     string `json:"type"`
	ImageURL string `json:"imageUrl"`
}

type response struct {
	Items []Item `json:"items"`
}

type Client struct {
	// Override in tests to use a mock server
	BaseURL string

	client *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns the raw note items. HTTP or parse errors yield zero notes
// for the run; the caller decides how loudly to report.
func (c *Client) Fetch(ctx context.Context) ([]Item, error) {
	requestURL := c.BaseURL + "/api/v1/notes"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch notes from %s: %w", requestURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch notes from %s: HTTP %d", requestURL, res.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("unable to parse notes response: %w", err)
	}

	return payload.Items, nil
}
