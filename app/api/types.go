package api

import (
	"context"
	"time"

	"github.com/lysyi3m/newsdeck/app/chat"
	"github.com/lysyi3m/newsdeck/app/headlines"
	"github.com/lysyi3m/newsdeck/app/podcast"
	"github.com/lysyi3m/newsdeck/app/summary"
	"github.com/lysyi3m/newsdeck/app/upstream"
)

type ResolverInterface interface {
	Run(ctx context.Context, message string, intent *chat.Intent) (string, error)
}

var _ ResolverInterface = (*chat.Resolver)(nil)

type SummarizerInterface interface {
	Summarize(ctx context.Context, headline, description string) summary.Result
}

var _ SummarizerInterface = (*summary.Generator)(nil)

type HeadlineSourceInterface interface {
	Fetch(ctx context.Context, category, location string) ([]headlines.Headline, error)
}

var _ HeadlineSourceInterface = (*headlines.Provider)(nil)

type NewsSearchInterface interface {
	SearchNews(ctx context.Context, query, location string) (*upstream.SearchResult, error)
}

var _ NewsSearchInterface = (*upstream.SerpClient)(nil)

type OrchestratorInterface interface {
	Generate(ctx context.Context, opts podcast.Options) (*podcast.Job, error)
}

var _ OrchestratorInterface = (*podcast.Orchestrator)(nil)

type Handler struct {
	resolver       ResolverInterface
	summarizer     SummarizerInterface
	headlineSource HeadlineSourceInterface
	newsSearch     NewsSearchInterface
	orchestrator   OrchestratorInterface
	voices         *podcast.Catalog
	store          *podcast.Store
	maxNewsItems   int
	podcastTimeout time.Duration
}

// Request/response shapes

type ChatRequest struct {
	Message string       `json:"message"`
	Intent  *chat.Intent `json:"intent"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type SummaryRequest struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
}

type NewsItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}
