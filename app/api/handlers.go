package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/newsdeck/app/cfg"
	"github.com/lysyi3m/newsdeck/app/podcast"
	"github.com/lysyi3m/newsdeck/app/upstream"
)

// ModelFailureReply is surfaced when every answer source is exhausted. Raw
// upstream error bodies never reach the client.
const ModelFailureReply = "Error contacting Gemini API."

func NewHandler(resolver ResolverInterface, summarizer SummarizerInterface,
	headlineSource HeadlineSourceInterface, newsSearch NewsSearchInterface,
	orchestrator OrchestratorInterface, voices *podcast.Catalog, store *podcast.Store) *Handler {
	appCfg := cfg.Get()

	return &Handler{
		resolver:       resolver,
		summarizer:     summarizer,
		headlineSource: headlineSource,
		newsSearch:     newsSearch,
		orchestrator:   orchestrator,
		voices:         voices,
		store:          store,
		maxNewsItems:   appCfg.MaxArticles,
		podcastTimeout: time.Duration(appCfg.PodcastTimeout) * time.Second,
	}
}

func (h *Handler) GetNews(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")
	location := c.Query("location")

	items, err := h.fetchNewsItems(c.Request.Context(), query, category, location)
	if err != nil {
		slog.Error("News fetch failed", "query", query, "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) fetchNewsItems(ctx context.Context, query, category, location string) ([]NewsItem, error) {
	if query != "" {
		result, err := h.newsSearch.SearchNews(ctx, query, location)
		if err != nil {
			return nil, err
		}
		entries := result.NewsResults
		if len(entries) > h.maxNewsItems {
			entries = entries[:h.maxNewsItems]
		}
		items := make([]NewsItem, 0, len(entries))
		for _, n := range entries {
			items = append(items, NewsItem{Title: n.Title, Link: n.Link})
		}
		return items, nil
	}

	fetched, err := h.headlineSource.Fetch(ctx, category, location)
	if err != nil {
		return nil, err
	}
	items := make([]NewsItem, 0, len(fetched))
	for _, f := range fetched {
		items = append(items, NewsItem{Title: f.Title, Link: f.Link})
	}
	return items, nil
}

func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := h.resolver.Run(c.Request.Context(), message, req.Intent)
	if err != nil {
		slog.Error("Answer resolution failed", "kind", string(upstream.KindOf(err)), "error", err)
		c.JSON(http.StatusInternalServerError, ChatResponse{Reply: ModelFailureReply})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

func (h *Handler) GenerateSummary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Headline) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Headline is required"})
		return
	}

	result := h.summarizer.Summarize(c.Request.Context(), req.Headline, req.Description)

	c.JSON(http.StatusOK, gin.H{
		"summary": result.Text,
		"origin":  string(result.Origin),
	})
}

func (h *Handler) GeneratePodcast(c *gin.Context) {
	var opts podcast.Options
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.podcastTimeout)
	defer cancel()

	job, err := h.orchestrator.Generate(ctx, opts)
	if err != nil {
		c.JSON(podcastErrorStatus(err), gin.H{"error": job.FailureReason})
		return
	}

	articles := make([]NewsItem, 0, len(job.Articles))
	for _, a := range job.Articles {
		articles = append(articles, NewsItem{Title: a.Title, Link: a.Link})
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":     job.Filename,
		"script":       job.Script,
		"articles":     articles,
		"stream_url":   "/api/podcast/stream/" + job.Filename,
		"download_url": "/api/podcast/download/" + job.Filename,
	})
}

func podcastErrorStatus(err error) int {
	switch upstream.KindOf(err) {
	case upstream.KindQuota:
		return http.StatusTooManyRequests
	case upstream.KindTimeout:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) ListVoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"voices": h.voices.List()})
}

func (h *Handler) StreamPodcast(c *gin.Context) {
	path, ok := h.audioPath(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "audio/mpeg")
	c.File(path)
}

func (h *Handler) DownloadPodcast(c *gin.Context) {
	path, ok := h.audioPath(c)
	if !ok {
		return
	}

	c.FileAttachment(path, c.Param("filename"))
}

func (h *Handler) audioPath(c *gin.Context) (string, bool) {
	filename := c.Param("filename")

	path, err := h.store.Path(filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return "", false
	}

	if !h.store.Exists(filename) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Podcast not found"})
		return "", false
	}

	return path, true
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"voices":    len(h.voices.List()),
	})
}
