package podcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/newsdeck/app/headlines"
	"github.com/lysyi3m/newsdeck/app/summary"
	"github.com/lysyi3m/newsdeck/app/upstream"
)

type Stage string

const (
	StageFetching     Stage = "fetching"
	StageScripting    Stage = "scripting"
	StageSynthesizing Stage = "synthesizing"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// summarizeConcurrency bounds the per-article summarization fan-out inside
// the scripting stage. Stage ordering itself stays strictly sequential.
const summarizeConcurrency = 3

type Options struct {
	VoiceStyle string `json:"voiceStyle"`
	Category   string `json:"category"`
	Location   string `json:"location"`
	Style      string `json:"style"`
}

// Job tracks one podcast generation. Progress is advisory only; no record
// outlives the request beyond the audio file itself.
type Job struct {
	Options       Options
	Progress      int
	Stage         Stage
	Script        string
	Articles      []headlines.Headline
	Filename      string
	FailureReason string
}

type HeadlineSource interface {
	Fetch(ctx context.Context, category, location string) ([]headlines.Headline, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, headline, description string) summary.Result
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

type TextExtractor interface {
	Run(ctx context.Context, link string) (string, error)
}

// Orchestrator runs the fetch → script → synthesize pipeline. Each stage
// must complete fully before the next starts; any stage failure fails the
// whole job and no partial audio is kept.
type Orchestrator struct {
	headlines  HeadlineSource
	summarizer Summarizer
	speech     Synthesizer
	extractor  TextExtractor
	store      *Store
	voices     *Catalog
	chunkLimit int
}

func NewOrchestrator(source HeadlineSource, summarizer Summarizer, speech Synthesizer,
	extractor TextExtractor, store *Store, voices *Catalog) *Orchestrator {
	return &Orchestrator{
		headlines:  source,
		summarizer: summarizer,
		speech:     speech,
		extractor:  extractor,
		store:      store,
		voices:     voices,
		chunkLimit: upstream.SpeechChunkLimit,
	}
}

func (o *Orchestrator) Generate(ctx context.Context, opts Options) (*Job, error) {
	job := &Job{Options: opts, Stage: StageFetching}

	voice, err := o.resolveVoice(opts.VoiceStyle)
	if err != nil {
		return o.fail(job, err), err
	}

	started := time.Now()

	items, err := o.headlines.Fetch(ctx, opts.Category, opts.Location)
	if err != nil {
		return o.fail(job, fmt.Errorf("failed to fetch headlines: %w", err)), err
	}
	if len(items) == 0 {
		err := fmt.Errorf("no articles found for category %q", opts.Category)
		return o.fail(job, err), err
	}
	job.Articles = items
	job.Progress = 20

	job.Stage = StageScripting
	script, err := o.buildScript(ctx, opts, items)
	if err != nil {
		return o.fail(job, err), err
	}
	job.Script = script
	job.Progress = 60

	job.Stage = StageSynthesizing
	audio, err := o.synthesize(ctx, script, voice.ID)
	if err != nil {
		return o.fail(job, err), err
	}
	job.Progress = 90

	filename := o.filename(opts)
	if err := o.store.Save(filename, audio); err != nil {
		return o.fail(job, err), err
	}

	job.Filename = filename
	job.Stage = StageDone
	job.Progress = 100

	slog.Info("Task completed",
		"type", "GeneratePodcast",
		"category", opts.Category,
		"voice", voice.Name,
		"articles", len(items),
		"script_length", len(script),
		"audio_bytes", len(audio),
		"duration", time.Since(started))

	return job, nil
}

func (o *Orchestrator) resolveVoice(id string) (Voice, error) {
	if id == "" {
		return o.voices.Default(), nil
	}
	voice, ok := o.voices.Get(id)
	if !ok {
		return Voice{}, fmt.Errorf("unknown voice %q", id)
	}
	return voice, nil
}

// buildScript summarizes every article (bounded fan-out) and assembles the
// spoken script. Article page extraction is best-effort enrichment; its
// failures never fail the stage.
func (o *Orchestrator) buildScript(ctx context.Context, opts Options, items []headlines.Headline) (string, error) {
	segments := make([]scriptItem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summarizeConcurrency)

	for i, item := range items {
		g.Go(func() error {
			description := item.Description
			if o.extractor != nil {
				if text, err := o.extractor.Run(gctx, item.Link); err == nil {
					description = text
				} else {
					slog.Debug("Article text extraction failed", "link", item.Link, "error", err)
				}
			}

			result := o.summarizer.Summarize(gctx, item.Title, description)
			segments[i] = scriptItem{Headline: item.Title, Summary: result.Text}

			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("scripting stage aborted: %w", err)
	}

	return buildScript(opts.Category, opts.Style, segments), nil
}

// synthesize converts the script to audio chunk by chunk, sequentially. A
// single chunk failure is fatal to the whole job.
func (o *Orchestrator) synthesize(ctx context.Context, script, voiceID string) ([]byte, error) {
	chunks := chunkScript(script, o.chunkLimit)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("script is empty")
	}

	var audio []byte
	for i, chunk := range chunks {
		data, err := o.speech.Synthesize(ctx, chunk, voiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate audio for chunk %d/%d: %w", i+1, len(chunks), err)
		}
		audio = append(audio, data...)
	}

	return audio, nil
}

func (o *Orchestrator) filename(opts Options) string {
	category := opts.Category
	if category == "" {
		category = "general"
	}
	return fmt.Sprintf("podcast_%s_%d.mp3", sanitizeName(category), time.Now().UnixNano())
}

func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	return b.String()
}

func (o *Orchestrator) fail(job *Job, err error) *Job {
	job.Stage = StageFailed
	job.FailureReason = FailureReason(err)

	slog.Error("Podcast generation failed", "stage", string(job.Stage), "reason", job.FailureReason, "error", err)

	return job
}

// FailureReason maps a pipeline error to a human-readable message the
// caller can act on. Raw upstream error bodies are never surfaced.
func FailureReason(err error) string {
	var ue *upstream.Error
	if errors.As(err, &ue) {
		switch ue.Kind {
		case upstream.KindAuth:
			return fmt.Sprintf("The %s API key is invalid or missing. Please check your configuration.", ue.Provider)
		case upstream.KindQuota:
			return "Rate limit exceeded. Please wait a few minutes before trying again."
		case upstream.KindTimeout:
			return "Generation timed out. Try a shorter podcast or try again later."
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Generation timed out. Try a shorter podcast or try again later."
	}
	return "Podcast generation failed. Please try again."
}
