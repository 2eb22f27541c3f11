// Package news holds the Article record that flows through the pipeline
// and the result-file writer.
package news

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Article is a single candidate article. It is built in stages: the feed or
// API source fills the identity fields, the extractor fills FullText, and the
// scorer assigns Score last.
type Article struct {
	Title           string     `json:"title"`
	Link            string     `json:"link"`
	Published       string     `json:"published,omitempty"`
	PublishedParsed *time.Time `json:"published_parsed,omitempty"`
	Source          string     `json:"source"`
	FullText        string     `json:"full_text"`
	Score           int        `json:"score"`
}

// Less orders articles for the final ranking: score descending, then
// publish time descending. A missing publish time sorts below any known one.
func Less(a, b Article) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	switch {
	case a.PublishedParsed == nil && b.PublishedParsed == nil:
		return false
	case b.PublishedParsed == nil:
		return true
	case a.PublishedParsed == nil:
		return false
	}
	return a.PublishedParsed.After(*b.PublishedParsed)
}

// WriteResults writes the ranked shortlist as a pretty-printed UTF-8 JSON
// array. HTML escaping is off so non-ASCII and URLs stay literal.
func WriteResults(path string, articles []Article) error {
	if articles == nil {
		articles = []Article{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create result file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
