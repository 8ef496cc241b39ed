package headlines

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lysyi3m/newsdeck/app/upstream"
)

type stubNews struct {
	articles    []upstream.Article
	err         error
	calls       int
	lastCountry string
}

func (s *stubNews) TopHeadlines(ctx context.Context, category, country string, pageSize int) ([]upstream.Article, error) {
	s.calls++
	s.lastCountry = country
	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

func TestFetch_PrimarySource(t *testing.T) {
	news := &stubNews{articles: []upstream.Article{
		{Title: "First", URL: "https://example.com/1", Description: "desc"},
		{Title: "", URL: "https://example.com/skip"},
		{Title: "Second", URL: "https://example.com/2"},
	}}

	provider := NewProvider(news, http.DefaultClient, "Test/1.0", "us", 5)

	items, err := provider.Fetch(context.Background(), "technology", "india")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 headlines (untitled dropped), got %d", len(items))
	}
	if items[0].Title != "First" || items[0].Link != "https://example.com/1" {
		t.Errorf("Unexpected first headline: %+v", items[0])
	}
	if news.lastCountry != "in" {
		t.Errorf("Expected location 'india' mapped to country 'in', got %q", news.lastCountry)
	}
}

func TestFetch_UnknownLocationUsesDefault(t *testing.T) {
	news := &stubNews{articles: []upstream.Article{{Title: "A"}}}
	provider := NewProvider(news, http.DefaultClient, "Test/1.0", "us", 5)

	if _, err := provider.Fetch(context.Background(), "general", "global"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if news.lastCountry != "us" {
		t.Errorf("Expected default country 'us', got %q", news.lastCountry)
	}
}

func TestFetch_TrimsToMaxItems(t *testing.T) {
	var articles []upstream.Article
	for i := 0; i < 8; i++ {
		articles = append(articles, upstream.Article{Title: fmt.Sprintf("Story %d", i)})
	}
	provider := NewProvider(&stubNews{articles: articles}, http.DefaultClient, "Test/1.0", "us", 5)

	items, err := provider.Fetch(context.Background(), "general", "us")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("Expected 5 headlines, got %d", len(items))
	}
}

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Top stories</title>
    <item><title>RSS Story One</title><link>https://example.com/r1</link><description>d1</description></item>
    <item><title>RSS Story Two</title><link>https://example.com/r2</link><description>d2</description></item>
  </channel>
</rss>`

func TestFetch_FallsBackToRSS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFixture)
	}))
	defer server.Close()

	news := &stubNews{err: errors.New("quota exhausted")}
	provider := NewProvider(news, server.Client(), "Test/1.0", "us", 5)
	provider.rssBase = server.URL

	items, err := provider.Fetch(context.Background(), "technology", "us")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 RSS headlines, got %d", len(items))
	}
	if items[0].Title != "RSS Story One" {
		t.Errorf("Unexpected first RSS headline: %+v", items[0])
	}
	if news.calls != 1 {
		t.Errorf("Primary source should be tried exactly once, got %d calls", news.calls)
	}
}

func TestFetch_AllSourcesFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewProvider(&stubNews{err: errors.New("down")}, server.Client(), "Test/1.0", "us", 5)
	provider.rssBase = server.URL

	if _, err := provider.Fetch(context.Background(), "general", "us"); err == nil {
		t.Fatal("Expected error when both sources fail")
	}
}
