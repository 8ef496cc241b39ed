package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lysyi3m/newsdeck/app/upstream"
)

// NoNewsReply is returned when the news search succeeds but yields nothing
// usable at any rank.
const NoNewsReply = "Sorry, I couldn't find any news right now."

const maxNewsLines = 5

type SearchClient interface {
	Search(ctx context.Context, query string) (*upstream.SearchResult, error)
}

type ModelClient interface {
	Generate(ctx context.Context, prompt string, opts upstream.GenerateOptions) (string, error)
}

// Resolver picks exactly one textual reply per message by trying an ordered
// list of answer sources until one succeeds.
type Resolver struct {
	search SearchClient
	model  ModelClient
}

func NewResolver(search SearchClient, model ModelClient) *Resolver {
	return &Resolver{
		search: search,
		model:  model,
	}
}

type strategy struct {
	name    string
	attempt func(ctx context.Context) (string, error)
}

// Run resolves a message to a single reply. The news source is consulted
// first when the message or intent marks it as a news query; the language
// model is the terminal fallback. Sources are tried strictly in order so a
// failed news lookup never races a model call.
func (r *Resolver) Run(ctx context.Context, message string, intent *Intent) (string, error) {
	var strategies []strategy

	if query, ok := r.newsQuery(message, intent); ok {
		strategies = append(strategies, strategy{
			name: "news_search",
			attempt: func(ctx context.Context) (string, error) {
				return r.attemptNews(ctx, query)
			},
		})
	}

	strategies = append(strategies, strategy{
		name: "language_model",
		attempt: func(ctx context.Context) (string, error) {
			return r.model.Generate(ctx, message, upstream.GenerateOptions{})
		},
	})

	var lastErr error
	for _, s := range strategies {
		reply, err := s.attempt(ctx)
		if err == nil {
			return reply, nil
		}
		slog.Warn("Answer source failed", "source", s.name, "kind", string(upstream.KindOf(err)), "error", err)
		lastErr = err
	}

	return "", fmt.Errorf("all answer sources failed: %w", lastErr)
}

// newsQuery decides whether the message should hit the news search and
// composes the query to use. A news_query intent wins over the plain
// substring check and enriches the query with its category, keywords and
// location.
func (r *Resolver) newsQuery(message string, intent *Intent) (string, bool) {
	if intent != nil && intent.Kind == IntentNewsQuery {
		parts := []string{message}
		if c := intent.Category; c != "" && !strings.EqualFold(c, "general") {
			parts = append(parts, c)
		}
		if len(intent.Keywords) > 0 {
			parts = append(parts, strings.Join(intent.Keywords, " "))
		}
		if l := intent.Location; l != "" && !strings.EqualFold(l, "global") {
			parts = append(parts, l)
		}
		return strings.Join(parts, " "), true
	}

	if strings.Contains(strings.ToLower(message), "news") {
		return message, true
	}

	return "", false
}

func (r *Resolver) attemptNews(ctx context.Context, query string) (string, error) {
	result, err := r.search.Search(ctx, query)
	if err != nil {
		return "", err
	}
	return extractAnswer(result), nil
}

// extractAnswer picks the best candidate from a search response in strict
// descending rank: instant answer, answer snippet, numbered news headlines,
// first organic snippet or title, canned apology.
func extractAnswer(result *upstream.SearchResult) string {
	if a := strings.TrimSpace(result.AnswerBox.Answer); a != "" {
		return a
	}
	if s := strings.TrimSpace(result.AnswerBox.Snippet); s != "" {
		return s
	}

	if len(result.NewsResults) > 0 {
		entries := result.NewsResults
		if len(entries) > maxNewsLines {
			entries = entries[:maxNewsLines]
		}
		lines := make([]string, 0, len(entries))
		for i, n := range entries {
			lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, n.Title, n.Link))
		}
		return strings.Join(lines, "\n")
	}

	if len(result.OrganicResults) > 0 {
		first := result.OrganicResults[0]
		if s := strings.TrimSpace(first.Snippet); s != "" {
			return s
		}
		if t := strings.TrimSpace(first.Title); t != "" {
			return t
		}
	}

	return NoNewsReply
}
