package cryptopanic

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cryptonews/internal/retry"
)

func quickRetry() retry.Config {
	return retry.Config{MaxAttempts: 1, Delay: time.Millisecond}
}

func TestFetchPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/posts/" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("auth_token") != "test-key" {
			t.Errorf("auth_token = %q, want test-key", r.URL.Query().Get("auth_token"))
		}
		if r.URL.Query().Get("public") != "true" {
			t.Errorf("public flag missing from request")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[
			{"title":"First","url":"https://example.com/1","published_at":"2025-01-15T10:00:00Z"},
			{"title":"Second","url":"https://example.com/2","published_at":"2025-01-15T09:00:00Z"}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-agent", 5*time.Second, quickRetry())
	posts, err := c.FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Title != "First" || posts[0].URL != "https://example.com/1" {
		t.Errorf("unexpected first post: %+v", posts[0])
	}
}

func TestFetchPostsRateLimitIsRecoverable(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-agent", 5*time.Second,
		retry.Config{MaxAttempts: 3, Delay: time.Millisecond})
	posts, err := c.FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("429 must not surface as an error, got: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("429 must yield no posts, got %d", len(posts))
	}
	if calls != 1 {
		t.Errorf("429 must not be retried, got %d calls", calls)
	}
}

func TestFetchPostsServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-agent", 5*time.Second, quickRetry())
	if _, err := c.FetchPosts(context.Background()); err == nil {
		t.Errorf("expected an error for a 500 response")
	}
}

func TestParsePublished(t *testing.T) {
	if got := ParsePublished("2025-01-15T10:30:00Z"); got == nil {
		t.Errorf("valid RFC3339 timestamp should parse")
	} else if got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("parsed wrong instant: %v", got)
	}

	for _, bad := range []string{"", "yesterday", "2025-13-45"} {
		if got := ParsePublished(bad); got != nil {
			t.Errorf("ParsePublished(%q) = %v, want nil", bad, got)
		}
	}
}
