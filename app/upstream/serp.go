package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const serpBaseURL = "https://serpapi.com/search.json"

// SearchResult is the reshaped SerpAPI response. Only the fields the answer
// extraction ranking consumes are kept.
type SearchResult struct {
	AnswerBox      AnswerBox       `json:"answer_box"`
	NewsResults    []NewsResult    `json:"news_results"`
	OrganicResults []OrganicResult `json:"organic_results"`
}

type AnswerBox struct {
	Answer  string `json:"answer"`
	Snippet string `json:"snippet"`
}

type NewsResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// locationNames maps client location codes to the human-readable location
// parameter SerpAPI expects.
var locationNames = map[string]string{
	"india":  "India",
	"us":     "United States",
	"uk":     "United Kingdom",
	"europe": "Germany",
}

type SerpClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewSerpClient(apiKey string, httpClient *http.Client) *SerpClient {
	return &SerpClient{
		apiKey:     apiKey,
		baseURL:    serpBaseURL,
		httpClient: httpClient,
	}
}

// Search runs a general web search for the query.
func (c *SerpClient) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.do(ctx, params)
}

// SearchNews runs a news-scoped search, optionally biased to a location.
func (c *SerpClient) SearchNews(ctx context.Context, query, location string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("tbm", "nws")
	if name, ok := locationNames[location]; ok {
		params.Set("location", name)
	}
	return c.do(ctx, params)
}

func (c *SerpClient) do(ctx context.Context, params url.Values) (*SearchResult, error) {
	if c.apiKey == "" {
		return nil, missingKey("serpapi")
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport("serpapi", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport("serpapi", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus("serpapi", resp.StatusCode, string(body))
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, malformed("serpapi", "response is not valid JSON")
	}

	return &result, nil
}
