// Package extract isolates genuine article prose inside arbitrary news-page
// HTML. Strategies are layered: site-specific containers, generic article
// selectors, paragraph classification, then a readability fallback.
package extract

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"cryptonews/internal/logger"
	"cryptonews/internal/metrics"
)

// SiteRule binds a domain substring to container selectors known to hold the
// article body on that site. Selectors are tried in order, first match wins.
type SiteRule struct {
	Domain    string
	Selectors []string
}

// DefaultSiteRules covers the feeds the pipeline ships with.
func DefaultSiteRules() []SiteRule {
	return []SiteRule{
		{Domain: "coindesk.com", Selectors: []string{
			"div[class*='at-text']",
			"div[class*='article-text']",
		}},
		{Domain: "cointelegraph.com", Selectors: []string{
			"div[class*='post-content']",
			"div[class*='article__content']",
		}},
		{Domain: "newsbtc.com", Selectors: []string{
			"div.td-post-content",
			"div[class*='td-post-content']",
			"div[itemprop='articleBody']",
		}},
		{Domain: "theblock.co", Selectors: []string{
			"div[class*='article-body']",
		}},
	}
}

// DefaultGenericSelectors probe structures common to article pages when no
// site rule matched. Unlike site rules, paragraphs are collected from every
// matching selector.
func DefaultGenericSelectors() []string {
	return []string{
		"article div",
		"[itemprop='articleBody']",
		".article-content",
		".post-content",
		".entry-content",
		".content-inner",
	}
}

// Extractor fetches a page and extracts its article body text. Rules and
// selectors are injected data so tests can substitute them.
type Extractor struct {
	client    *http.Client
	userAgent string
	rules     []SiteRule
	generic   []string
}

func New(client *http.Client, userAgent string, rules []SiteRule, generic []string) *Extractor {
	if client == nil {
		client = http.DefaultClient
	}
	if rules == nil {
		rules = DefaultSiteRules()
	}
	if generic == nil {
		generic = DefaultGenericSelectors()
	}
	return &Extractor{
		client:    client,
		userAgent: userAgent,
		rules:     rules,
		generic:   generic,
	}
}

// Extract returns the best-effort clean body text for the page at rawURL.
// It never fails: irrecoverable problems surface as sentinel strings so the
// record still flows through scoring (and self-filters on body length).
func (e *Extractor) Extract(rawURL string) string {
	logger.Debug("fetching full text", "url", rawURL)

	doc, err := e.fetchDocument(rawURL)
	if err != nil {
		metrics.Global.IncrementFetchErrors()
		logger.Warn("error fetching article", "url", rawURL, "error", err)
		return fmt.Sprintf("[Error fetching article: %v]", err)
	}

	paragraphs := e.collectParagraphs(doc, rawURL)

	clean := make([]string, 0, len(paragraphs))
	for _, text := range paragraphs {
		if IsGenuine(text) && !LooksLikeAuthorBio(text) {
			clean = append(clean, text)
		}
	}

	// Per-paragraph filtering cannot see contiguous block boundaries, so a
	// second pass locates the most likely article span.
	if len(clean) > 3 {
		if refined := refineArticleSpan(clean); refined != "" {
			logger.Debug("extracted after span refinement", "url", rawURL, "chars", len(refined))
			return refined
		}
	}

	if len(clean) < 3 {
		return e.readabilityFallback(rawURL)
	}

	return strings.Join(clean, "\n\n")
}

func (e *Extractor) fetchDocument(rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// collectParagraphs gathers candidate paragraph texts, preferring a
// site-specific container and falling back to generic article selectors.
func (e *Extractor) collectParagraphs(doc *goquery.Document, rawURL string) []string {
	domain := registrableDomain(rawURL)

	var container *goquery.Selection
	for _, rule := range e.rules {
		if !strings.Contains(domain, rule.Domain) {
			continue
		}
		for _, sel := range rule.Selectors {
			if found := doc.Find(sel).First(); found.Length() > 0 {
				container = found
				break
			}
		}
		break
	}

	var texts []string
	appendParagraphs := func(sel *goquery.Selection) {
		sel.Find("p").Each(func(_ int, p *goquery.Selection) {
			texts = append(texts, flattenText(p))
		})
	}

	if container != nil {
		appendParagraphs(container)
		return texts
	}

	for _, selector := range e.generic {
		doc.Find(selector).Each(func(_ int, match *goquery.Selection) {
			appendParagraphs(match)
		})
	}
	return texts
}

// refineArticleSpan skips lead-in cruft until the first substantial,
// non-byline paragraph, then truncates at the first trailing-section marker.
func refineArticleSpan(paragraphs []string) string {
	var kept []string
	inArticle := false
	bioSeen := false

	for i, para := range paragraphs {
		lower := strings.ToLower(para)

		if LooksLikeAuthorBio(para) {
			bioSeen = true
			continue
		}

		if !inArticle && !bioSeen && i < len(paragraphs)-2 {
			if len(para) > 100 &&
				!hasAnyPrefix(lower, "by ", "published ", "updated ", "last modified") &&
				!strings.Contains(lower, "disclaimer") {
				inArticle = true
			}
		}

		if inArticle {
			kept = append(kept, para)
		}

		if inArticle &&
			(strings.HasPrefix(lower, "disclaimer") ||
				strings.Contains(lower, "about the author") ||
				strings.Contains(lower, "contact us")) {
			break
		}
	}

	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}

// readabilityFallback re-downloads and parses the page with a general-purpose
// extractor, then strips biography sections line by line.
func (e *Extractor) readabilityFallback(rawURL string) string {
	metrics.Global.IncrementFallbackExtractions()
	logger.Debug("using readability fallback", "url", rawURL)

	article, err := readability.FromURL(rawURL, e.client.Timeout)
	if err != nil {
		logger.Warn("error parsing fallback", "url", rawURL, "error", err)
		return fmt.Sprintf("[Error parsing fallback: %v]", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "[No clean content found]"
	}

	filtered := filterBioLines(text)
	logger.Debug("fallback extraction done", "url", rawURL, "chars", len(filtered))
	if filtered == "" {
		return "[No clean content found]"
	}
	return filtered
}

// filterBioLines removes author-biography sections from newline-joined text.
// A small two-state machine: a marker line enters the bio section, a blank
// line or a related-links prefix exits it.
func filterBioLines(text string) string {
	lines := strings.Split(text, "\n")
	filtered := make([]string, 0, len(lines))
	inBioSection := false

	for _, line := range lines {
		lower := strings.ToLower(line)

		if containsAny(lower, "my name is", "about the author", "author bio", "disclaimer") {
			inBioSection = true
			continue
		}

		if inBioSection {
			if strings.TrimSpace(line) != "" &&
				!hasAnyPrefix(lower, "related:", "also read:", "read more:") {
				continue
			}
			inBioSection = false
		}

		filtered = append(filtered, line)
	}

	return strings.TrimSpace(strings.Join(filtered, "\n"))
}

// flattenText joins the element's text nodes with single spaces.
func flattenText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

func registrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
