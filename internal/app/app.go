// Package app orchestrates the aggregation pipeline: collect candidates from
// every source, extract and score them, deduplicate, rank and truncate.
package app

import (
	"context"
	"net/http"
	"sort"
	"time"

	"cryptonews/internal/config"
	"cryptonews/internal/cryptopanic"
	"cryptonews/internal/extract"
	"cryptonews/internal/feeds"
	"cryptonews/internal/logger"
	"cryptonews/internal/metrics"
	"cryptonews/internal/news"
	"cryptonews/internal/retry"
	"cryptonews/internal/scoring"
	"cryptonews/internal/store"
)

// Run executes one full pipeline pass and returns the ranked shortlist.
// The seen-link store is flushed before Run returns, on error paths too, so
// partial progress is never lost.
func Run(cfg *config.Config) ([]news.Article, error) {
	start := time.Now()
	defer func() {
		metrics.Global.RecordProcessingTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	seen := store.New(cfg.SeenStorePath)
	if err := seen.Load(); err != nil {
		return nil, err
	}
	logger.Info("seen store loaded", "links", seen.Len())
	defer func() {
		if err := seen.Save(); err != nil {
			logger.Error("failed to save seen store", "error", err)
		} else {
			logger.Info("seen store saved", "links", seen.Len())
		}
	}()

	extractor := extract.New(
		&http.Client{Timeout: cfg.RequestTimeout},
		cfg.UserAgent,
		nil, nil,
	)
	engine := scoring.NewEngine(scoring.DefaultTables())
	retryCfg := retry.Config{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}
	ctx := context.Background()

	var all []news.Article
	all = append(all, collectFeedArticles(cfg, seen, extractor, engine)...)
	all = append(all, collectCryptoPanicArticles(ctx, cfg, seen, extractor, engine, retryCfg)...)

	unique := dedupe(all)
	logger.Info("articles merged", "collected", len(all), "unique", len(unique))

	sort.SliceStable(unique, func(i, j int) bool {
		return news.Less(unique[i], unique[j])
	})

	filtered := make([]news.Article, 0, len(unique))
	for _, a := range unique {
		if a.Score >= cfg.MinScore {
			filtered = append(filtered, a)
		}
	}
	logger.Info("weak articles dropped", "before", len(unique), "after", len(filtered), "min_score", cfg.MinScore)

	if len(filtered) > cfg.TopN {
		filtered = filtered[:cfg.TopN]
	}
	logger.Info("keeping top articles", "count", len(filtered))

	return filtered, nil
}

// collectFeedArticles walks every configured syndication feed. A failing feed
// contributes nothing; it never aborts the run. Links already in the seen
// store are skipped before any fetch happens.
func collectFeedArticles(cfg *config.Config, seen *store.SeenStore, extractor *extract.Extractor, engine *scoring.Engine) []news.Article {
	feedURLs, err := feeds.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		logger.Error("failed to load feeds config", "error", err)
		return nil
	}

	fetcher := feeds.NewFetcher(cfg.UserAgent, cfg.RequestTimeout)
	var articles []news.Article

	logger.Info("checking feeds", "count", len(feedURLs))
	for _, feedURL := range feedURLs {
		entries, err := fetcher.Fetch(feedURL)
		if err != nil {
			metrics.Global.IncrementFeedsFailed()
			logger.Error("error processing feed", "feed", feedURL, "error", err)
			continue
		}

		for _, entry := range entries {
			if entry.Link == "" {
				continue
			}
			if seen.Has(entry.Link) {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}

			a := news.Article{
				Title:           entry.Title,
				Link:            entry.Link,
				Published:       entry.Published,
				PublishedParsed: entry.PublishedParsed,
				Source:          feedURL,
			}
			a.FullText = extractor.Extract(entry.Link)
			a.Score = engine.Score(a)
			articles = append(articles, a)

			// Recorded immediately so in-run dedup sees it before the
			// end-of-run flush.
			seen.Add(entry.Link, entry.Title)
			metrics.Global.IncrementArticlesProcessed()
		}
	}

	return articles
}

// collectCryptoPanicArticles queries the aggregator API. Stale items are
// dropped before fetching; the seen check happens only after the record is
// built, mirroring the feed path's asymmetry.
func collectCryptoPanicArticles(ctx context.Context, cfg *config.Config, seen *store.SeenStore, extractor *extract.Extractor, engine *scoring.Engine, retryCfg retry.Config) []news.Article {
	if cfg.CryptoPanicAPIKey == "" {
		logger.Warn("no cryptopanic api key configured, skipping source")
		return nil
	}

	client := cryptopanic.NewClient(
		cfg.CryptoPanicBaseURL,
		cfg.CryptoPanicAPIKey,
		cfg.UserAgent,
		cfg.RequestTimeout,
		retryCfg,
	)

	posts, err := client.FetchPosts(ctx)
	if err != nil {
		logger.Error("error fetching cryptopanic", "error", err)
		return nil
	}

	var articles []news.Article
	for _, post := range posts {
		if post.URL == "" {
			continue
		}

		published := cryptopanic.ParsePublished(post.PublishedAt)
		// Drop stale items before the expensive page fetch.
		if published != nil && time.Since(*published) > cfg.MaxArticleAge {
			continue
		}

		a := news.Article{
			Title:           post.Title,
			Link:            post.URL,
			Published:       post.PublishedAt,
			PublishedParsed: published,
			Source:          "cryptopanic",
		}
		a.FullText = extractor.Extract(post.URL)
		a.Score = engine.Score(a)

		if seen.Has(a.Link) {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		articles = append(articles, a)
		seen.Add(a.Link, a.Title)
		metrics.Global.IncrementArticlesProcessed()
	}

	return articles
}

// dedupe removes exact duplicates within a single run, keyed by the
// (title, link) pair as a guard on top of the link-keyed seen store.
func dedupe(articles []news.Article) []news.Article {
	type pair struct {
		title string
		link  string
	}
	seen := make(map[pair]struct{}, len(articles))
	unique := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		key := pair{title: a.Title, link: a.Link}
		if _, dup := seen[key]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}
