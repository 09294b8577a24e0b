// Package twitter posts formatted text (and optional media) to Twitter.
package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cengizhan/substack-sync/internal/config"
	"github.com/cengizhan/substack-sync/internal/logging"
	"github.com/dghubble/oauth1"
)

// Poster is the external posting collaborator: formatted text plus optional
// local media paths in, external post identifier out.
type Poster interface {
	Post(ctx context.Context, text string, mediaPaths []string) (string, error)
}

type Client struct {
	// Override in tests to use a mock server
	APIURL    string
	UploadURL string

	client *http.Client
}

// NewClient builds an OAuth1 user-context client from the four credential
// values. Credentials are resolved by the caller; the client never reads
// ambient environment state.
func NewClient(creds config.Credentials) (*Client, error) {
	if !creds.Set() {
		return nil, fmt.Errorf("twitter credentials not set")
	}

	oauthConfig := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	client := oauthConfig.Client(oauth1.NoContext, token)
	client.Timeout = 30 * time.Second

	return &Client{
		APIURL:    "https://api.twitter.com",
		UploadURL: "https://upload.twitter.com",
		client:    client,
	}, nil
}

var _ Poster = (*Client)(nil)

type tweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}
type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}
type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}
type uploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

// Post uploads the media files, then creates the tweet. A media file that
// fails to upload is skipped; the tweet is still created.
func (c *Client) Post(ctx context.Context, text string, mediaPaths []string) (string, error) {
	logger := logging.CurrentLogger()

	var mediaIDs []string
	for _, path := range mediaPaths {
		mediaID, err := c.uploadMedia(ctx, path)
		if err != nil {
			logger.Warnf("Failed to upload %s: %v", filepath.Base(path), err)
			continue
		}
		logger.Infof("Uploaded %s", filepath.Base(path))
		mediaIDs = append(mediaIDs, mediaID)
	}

	request := tweetRequest{Text: text}
	if len(mediaIDs) > 0 {
		request.Media = &tweetMedia{MediaIDs: mediaIDs}
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to create tweet: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("unable to create tweet: HTTP %d: %s", res.StatusCode, payload)
	}

	var response tweetResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("unable to parse tweet response: %w", err)
	}
	return response.Data.ID, nil
}

// uploadMedia uses the v1.1 endpoint: the v2 API has no media upload.
func (c *Client) uploadMedia(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("media", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL+"/1.1/media/upload.json", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("HTTP %d: %s", res.StatusCode, payload)
	}

	var response uploadResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return "", err
	}
	return response.MediaIDString, nil
}

// StatusURL returns the public URL of a posted tweet.
func StatusURL(id string) string {
	return "https://twitter.com/i/web/status/" + id
}
