// Package scoring converts an extracted article record into an integer
// quality/relevance score built from independent additive signals.
package scoring

import (
	"strings"
	"time"

	"cryptonews/internal/logger"
	"cryptonews/internal/news"
)

// Tables is the immutable signal data the engine scores against. Injected at
// construction so tests can substitute smaller tables.
type Tables struct {
	// SourceWeights maps a domain substring to its authority weight. Every
	// matching domain contributes; matches are not mutually exclusive.
	SourceWeights map[string]int

	// HighValue terms each add a bonus; if none match at all, a heavy
	// penalty applies instead.
	HighValue []string

	// LowValue terms each subtract a penalty.
	LowValue []string

	// Entities are major coins, institutions and regulators; each match adds
	// a bonus.
	Entities []string
}

// DefaultTables returns the production signal data.
func DefaultTables() Tables {
	return Tables{
		SourceWeights: map[string]int{
			"cointelegraph.com":   4,
			"coindesk.com":        4,
			"theblock.co":         3,
			"bitcoinmagazine.com": 2,
			"newsbtc.com":         1,
			"ccn.com":             1,
			"fxstreet.com":        1,
			"cryptopanic.com":     5,
		},
		HighValue: []string{
			"sec", "etf", "binance", "coinbase", "lawsuit", "regulation",
			"approval", "funding", "hack", "security breach", "partnership",
			"ipo", "launch", "court", "fraud", "ceo", "listing", "exchange",
			"blackrock", "wall street",
		},
		LowValue: []string{
			"today", "update", "roundup", "prediction", "forecast", "top 10",
			"live price", "pump", "dump", "price today", "live update",
			"market roundup",
		},
		Entities: []string{
			"bitcoin", "btc", "ethereum", "eth", "sec", "binance", "coinbase",
			"blackrock",
		},
	}
}

const (
	highValueBonus   = 4
	lowValuePenalty  = 5
	noHighValuePen   = 10
	recencyBonus     = 2
	titleLengthBonus = 1
	thinBodyPenalty  = 10
	entityBonus      = 5

	minTitleWords = 6
	minBodyLen    = 200
	recencyWindow = 24 * time.Hour
)

// Engine scores article records. Pure: identical inputs and clock always
// produce the same integer.
type Engine struct {
	tables Tables
	now    func() time.Time
}

func NewEngine(tables Tables) *Engine {
	return &Engine{tables: tables, now: time.Now}
}

// NewEngineWithClock substitutes the scoring instant, for tests.
func NewEngineWithClock(tables Tables, now func() time.Time) *Engine {
	return &Engine{tables: tables, now: now}
}

// Score computes the article's score from its title, link, body and publish
// time. All keyword checks are case-insensitive substring matches and no
// signal short-circuits another.
func (e *Engine) Score(a news.Article) int {
	title := strings.ToLower(a.Title)
	body := strings.ToLower(a.FullText)
	link := a.Link

	score := 0

	// Authority: every matching source domain contributes.
	for domain, weight := range e.tables.SourceWeights {
		if strings.Contains(link, domain) {
			score += weight
		}
	}

	hasHighValue := false
	for _, kw := range e.tables.HighValue {
		if strings.Contains(title, kw) || strings.Contains(body, kw) {
			score += highValueBonus
			hasHighValue = true
		}
	}

	for _, kw := range e.tables.LowValue {
		if strings.Contains(title, kw) || strings.Contains(body, kw) {
			score -= lowValuePenalty
		}
	}

	// No high-value term anywhere is a near-disqualifier.
	if !hasHighValue {
		score -= noHighValuePen
	}

	if a.PublishedParsed != nil &&
		a.PublishedParsed.UTC().After(e.now().UTC().Add(-recencyWindow)) {
		score += recencyBonus
	}

	if len(strings.Fields(title)) >= minTitleWords {
		score += titleLengthBonus
	}

	if len(body) < minBodyLen {
		score -= thinBodyPenalty
	}

	for _, kw := range e.tables.Entities {
		if strings.Contains(title, kw) || strings.Contains(body, kw) {
			score += entityBonus
		}
	}

	logger.Info("article scored", "title", truncate(a.Title, 50), "score", score)
	return score
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
