// Package feeds retrieves syndication-feed entries for the pipeline.
package feeds

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"cryptonews/internal/logger"
)

// FeedsConfig is the YAML config structure:
//
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the feed URL list from a YAML file.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feeds config: %w", err)
	}
	defer f.Close()

	var cfg FeedsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode feeds config: %w", err)
	}
	if len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("feeds config %s lists no feeds", path)
	}
	return cfg.Feeds, nil
}

// Entry is one feed item, reduced to the fields the pipeline needs.
type Entry struct {
	Title           string
	Link            string
	Published       string
	PublishedParsed *time.Time
}

// Fetcher downloads and parses a single feed.
type Fetcher struct {
	parser *gofeed.Parser
}

func NewFetcher(userAgent string, timeout time.Duration) *Fetcher {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	p.Client = &http.Client{Timeout: timeout}
	return &Fetcher{parser: p}
}

// Fetch parses one feed URL into entries. Callers treat an error as that
// feed contributing nothing for this run.
func (f *Fetcher) Fetch(url string) ([]Entry, error) {
	feed, err := f.parser.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", url, err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, Entry{
			Title:           item.Title,
			Link:            item.Link,
			Published:       item.Published,
			PublishedParsed: item.PublishedParsed,
		})
	}
	logger.Info("feed loaded", "url", url, "entries", len(entries))
	return entries, nil
}
