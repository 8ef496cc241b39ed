package podcast

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

const maxArticleTextLength = 600

// ArticleExtractor pulls readable text from an article page to enrich the
// description handed to the summarizer. Best-effort: callers treat failures
// as "no description".
type ArticleExtractor struct {
	httpClient *http.Client
	userAgent  string
}

func NewArticleExtractor(httpClient *http.Client, userAgent string) *ArticleExtractor {
	return &ArticleExtractor{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (e *ArticleExtractor) Run(ctx context.Context, link string) (string, error) {
	if link == "" {
		return "", fmt.Errorf("article link is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no content extracted from article")
	}

	if len(text) > maxArticleTextLength {
		text = text[:maxArticleTextLength]
	}

	return text, nil
}
