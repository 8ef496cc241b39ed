package summary

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lysyi3m/newsdeck/app/upstream"
)

// Origin records how a summary was produced.
type Origin string

const (
	OriginModel     Origin = "model"
	OriginHeuristic Origin = "fallback-heuristic"
)

// modelFailurePhrase is a sentinel the upstream model is known to emit
// instead of a real summary. It is never surfaced to callers.
const modelFailurePhrase = "No summary available"

const defaultDescription = "No description available"

type Result struct {
	Text   string
	Origin Origin
}

type ModelClient interface {
	Generate(ctx context.Context, prompt string, opts upstream.GenerateOptions) (string, error)
}

// Generator produces one-line summaries of headlines, preferring the
// language model and degrading to a deterministic text-extraction heuristic
// when the model is unavailable or the output fails the quality bar.
type Generator struct {
	model     ModelClient
	minLength int
}

func NewGenerator(model ModelClient, minLength int) *Generator {
	if minLength <= 0 {
		minLength = 10
	}
	return &Generator{
		model:     model,
		minLength: minLength,
	}
}

const promptTemplate = `Task: Generate a concise one-line summary of this news article.

Input Headline: %q
Context/Description: %q

Instructions:
1. Extract the key concern or main news point
2. Rephrase using simple, clear language
3. Keep summary under 15 words
4. Include any specific numbers, statistics, or key findings
5. Format as a complete, informative sentence

Provide ONLY the summary, no additional text.`

// Summarize returns a summary for the headline. It never fails: any model
// error or low-quality output falls back to Heuristic, which is pure and
// network-free.
func (g *Generator) Summarize(ctx context.Context, headline, description string) Result {
	if description == "" {
		description = defaultDescription
	}

	prompt := fmt.Sprintf(promptTemplate, headline, description)

	text, err := g.model.Generate(ctx, prompt, upstream.GenerateOptions{
		Temperature:     0.3,
		TopK:            20,
		TopP:            0.8,
		MaxOutputTokens: 50,
	})
	if err != nil {
		slog.Warn("Summary model call failed, using heuristic", "kind", string(upstream.KindOf(err)), "error", err)
		return Result{Text: Heuristic(headline), Origin: OriginHeuristic}
	}

	cleaned := Clean(text)
	if !g.acceptable(cleaned) {
		slog.Debug("Model summary rejected", "headline", headline, "summary", cleaned)
		return Result{Text: Heuristic(headline), Origin: OriginHeuristic}
	}

	return Result{Text: cleaned, Origin: OriginModel}
}

func (g *Generator) acceptable(text string) bool {
	if len(text) < g.minLength {
		return false
	}
	return !strings.EqualFold(text, modelFailurePhrase)
}

var (
	summaryLabelRe = regexp.MustCompile(`(?i)^summary:?\s*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Clean normalizes raw model output: trims whitespace, strips a leading
// "Summary:" label, removes one matching pair of surrounding quotes and
// collapses internal whitespace runs.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	text = summaryLabelRe.ReplaceAllString(text, "")

	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			text = text[1 : len(text)-1]
		}
	}

	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Heuristic derives a summary from the headline alone: the text after the
// first colon, cut at the first comma. Deterministic with no network
// dependency, so it works during a full upstream outage.
func Heuristic(headline string) string {
	text := headline
	if idx := strings.Index(text, ":"); idx >= 0 {
		text = text[idx+1:]
	}
	if idx := strings.Index(text, ","); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)

	if text == "" {
		return headline
	}
	return text
}
