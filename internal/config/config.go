package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default publication base URL. Override with base_url in substack.toml
// or the SUBSTACK_BASE_URL environment variable.
const DefaultBaseURL = "https://www.cengizhan.com"

// Cooldown between successful posts when cooldown_seconds is absent.
const defaultCooldown = 10 * time.Second

// Config regroups every value the pipeline needs. It is resolved once at
// process start and passed explicitly into each component; no component
// reads environment variables or configuration files on its own.
type Config struct {
	Substack SubstackConfig
	Twitter  TwitterConfig
}

type SubstackConfig struct {
	BaseURL  string
	FeedURL  string
	PostsDir string
	NotesDir string

	// ConverterScript is an optional Node script converting a note body
	// JSON tree to Markdown on stdout. Empty means the built-in converter.
	ConverterScript string
}

type TwitterConfig struct {
	Premium  bool
	Cooldown time.Duration
	Credentials
}

// Credentials holds the four OAuth1 user-context values.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Set returns if all four credential values are present.
func (c Credentials) Set() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessTokenSecret != ""
}

// Note: Fields must be public for toml package to unmarshall
type configFile struct {
	Substack substackSection
	Twitter  twitterSection
}
type substackSection struct {
	BaseURL         string `toml:"base_url"`
	FeedURL         string `toml:"feed_url"`
	PostsDir        string `toml:"posts_dir"`
	NotesDir        string `toml:"notes_dir"`
	ConverterScript string `toml:"converter_script"`
}
type twitterSection struct {
	Premium bool `toml:"premium"`
	// Pointer so that an explicit cooldown_seconds = 0 is distinguishable
	// from an absent key.
	CooldownSeconds *int   `toml:"cooldown_seconds"`
	APIKey          string `toml:"api_key"`
	APISecret       string `toml:"api_secret"`
}

// Load resolves the configuration from an optional TOML file, then applies
// environment-variable overrides and defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (*Config, error) {
	var file configFile

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to read config file %s: %w", path, err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("unable to parse config file %s: %w", path, err)
			}
		}
	}

	cooldown := defaultCooldown
	if file.Twitter.CooldownSeconds != nil {
		cooldown = time.Duration(*file.Twitter.CooldownSeconds) * time.Second
	}

	cfg := &Config{
		Substack: SubstackConfig{
			BaseURL:  override(file.Substack.BaseURL, "SUBSTACK_BASE_URL"),
			FeedURL:  override(file.Substack.FeedURL, "SUBSTACK_FEED_URL"),
			PostsDir: override(file.Substack.PostsDir, "POSTS_DIR"),
			NotesDir: override(file.Substack.NotesDir, "NOTES_DIR"),

			ConverterScript: override(file.Substack.ConverterScript, "CONVERTER_SCRIPT"),
		},
		Twitter: TwitterConfig{
			Premium:  file.Twitter.Premium,
			Cooldown: cooldown,
			Credentials: Credentials{
				APIKey:            override(file.Twitter.APIKey, "TWITTER_API_KEY"),
				APISecret:         override(file.Twitter.APISecret, "TWITTER_API_SECRET"),
				AccessToken:       os.Getenv("TWITTER_ACCESS_TOKEN"),
				AccessTokenSecret: os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"),
			},
		},
	}

	if cfg.Substack.BaseURL == "" {
		cfg.Substack.BaseURL = DefaultBaseURL
	}
	if cfg.Substack.FeedURL == "" {
		cfg.Substack.FeedURL = strings.TrimSuffix(cfg.Substack.BaseURL, "/") + "/feed"
	}
	if cfg.Substack.PostsDir == "" {
		cfg.Substack.PostsDir = "./posts"
	}
	if cfg.Substack.NotesDir == "" {
		cfg.Substack.NotesDir = "./notes"
	}

	return cfg, nil
}

// override returns the environment value when set, the file value otherwise.
func override(fileValue, envName string) string {
	if value := os.Getenv(envName); value != "" {
		return value
	}
	return fileValue
}
