package headlines

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/newsdeck/app/upstream"
)

// Headline is the reshaped entry every consumer works with. Immutable for
// the lifetime of one request.
type Headline struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"-"`
}

type NewsClient interface {
	TopHeadlines(ctx context.Context, category, country string, pageSize int) ([]upstream.Article, error)
}

// countryCodes maps client location codes to NewsAPI country parameters.
var countryCodes = map[string]string{
	"india":  "in",
	"us":     "us",
	"uk":     "gb",
	"europe": "de",
}

// rssTopics maps categories to Google News RSS section topics used by the
// keyless fallback source.
var rssTopics = map[string]string{
	"technology":    "TECHNOLOGY",
	"sports":        "SPORTS",
	"business":      "BUSINESS",
	"entertainment": "ENTERTAINMENT",
	"health":        "HEALTH",
	"science":       "SCIENCE",
}

const googleNewsBase = "https://news.google.com/rss"

// Provider fetches headlines from the primary news API and degrades to the
// public Google News RSS feed when the primary source fails or has no
// credential configured.
type Provider struct {
	news           NewsClient
	feedParser     *gofeed.Parser
	httpClient     *http.Client
	rssBase        string
	userAgent      string
	defaultCountry string
	maxItems       int
}

func NewProvider(news NewsClient, httpClient *http.Client, userAgent, defaultCountry string, maxItems int) *Provider {
	return &Provider{
		news:           news,
		feedParser:     gofeed.NewParser(),
		httpClient:     httpClient,
		rssBase:        googleNewsBase,
		userAgent:      userAgent,
		defaultCountry: defaultCountry,
		maxItems:       maxItems,
	}
}

// Fetch returns up to maxItems headlines for a category and location.
func (p *Provider) Fetch(ctx context.Context, category, location string) ([]Headline, error) {
	country := p.defaultCountry
	if code, ok := countryCodes[strings.ToLower(location)]; ok {
		country = code
	}

	articles, err := p.news.TopHeadlines(ctx, category, country, p.maxItems)
	if err == nil {
		return p.fromArticles(articles), nil
	}

	slog.Warn("Primary headline source failed, trying RSS fallback", "kind", string(upstream.KindOf(err)), "error", err)

	items, rssErr := p.fetchRSS(ctx, category)
	if rssErr != nil {
		return nil, fmt.Errorf("all headline sources failed: %w", rssErr)
	}

	return items, nil
}

func (p *Provider) fromArticles(articles []upstream.Article) []Headline {
	if len(articles) > p.maxItems {
		articles = articles[:p.maxItems]
	}
	items := make([]Headline, 0, len(articles))
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		items = append(items, Headline{
			Title:       a.Title,
			Link:        a.URL,
			Description: a.Description,
		})
	}
	return items
}

func (p *Provider) fetchRSS(ctx context.Context, category string) ([]Headline, error) {
	url := p.rssBase
	if topic, ok := rssTopics[strings.ToLower(category)]; ok {
		url = fmt.Sprintf("%s/headlines/section/topic/%s", p.rssBase, topic)
	}
	url += "?hl=en-US&gl=US&ceid=US:en"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	feed, err := p.feedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Headline, 0, p.maxItems)
	for _, item := range feed.Items {
		if len(items) >= p.maxItems {
			break
		}
		if item.Title == "" {
			continue
		}
		items = append(items, Headline{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
		})
	}

	return items, nil
}
