package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const newsBaseURL = "https://newsapi.org/v2/top-headlines"

// Article is a single NewsAPI headline entry.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type newsResponse struct {
	Status   string    `json:"status"`
	Articles []Article `json:"articles"`
}

type NewsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewNewsClient(apiKey string, httpClient *http.Client) *NewsClient {
	return &NewsClient{
		apiKey:     apiKey,
		baseURL:    newsBaseURL,
		httpClient: httpClient,
	}
}

// TopHeadlines fetches current headlines for a country, optionally narrowed
// to a category.
func (c *NewsClient) TopHeadlines(ctx context.Context, category, country string, pageSize int) ([]Article, error) {
	if c.apiKey == "" {
		return nil, missingKey("newsapi")
	}

	params := url.Values{}
	params.Set("country", country)
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	params.Set("apiKey", c.apiKey)
	if category != "" && category != "general" {
		params.Set("category", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport("newsapi", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport("newsapi", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus("newsapi", resp.StatusCode, string(body))
	}

	var parsed newsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, malformed("newsapi", "response is not valid JSON")
	}

	if parsed.Status != "ok" {
		return nil, malformed("newsapi", fmt.Sprintf("unexpected response status %q", parsed.Status))
	}

	return parsed.Articles, nil
}
