package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Upstream credentials
	GeminiAPIKey     string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"API key for the Gemini language model"`
	SerpAPIKey       string `long:"serp-api-key" env:"SERP_API_KEY" description:"API key for the SerpAPI news search"`
	NewsAPIKey       string `long:"news-api-key" env:"NEWS_API_KEY" description:"API key for the NewsAPI headlines service"`
	ElevenLabsAPIKey string `long:"elevenlabs-api-key" env:"ELEVENLABS_API_KEY" description:"API key for the ElevenLabs speech synthesis"`

	// Application configuration
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	PodcastsDir      string `long:"podcasts-dir" env:"PODCASTS_DIR" default:"./podcasts" description:"Directory for generated podcast audio files"`
	VoicesFile       string `long:"voices-file" env:"VOICES_FILE" default:"./voices.yml" description:"YAML file describing available podcast voices"`
	MaxArticles      int    `long:"max-articles" env:"MAX_ARTICLES" default:"5" description:"Maximum number of headlines per news response or podcast"`
	SummaryMinLength int    `long:"summary-min-length" env:"SUMMARY_MIN_LENGTH" default:"10" description:"Minimum accepted length for a model-generated summary"`
	UpstreamTimeout  int    `long:"upstream-timeout" env:"UPSTREAM_TIMEOUT" default:"30" description:"Timeout for a single upstream API call in seconds"`
	PodcastTimeout   int    `long:"podcast-timeout" env:"PODCAST_TIMEOUT" default:"480" description:"Total wall-clock budget for podcast generation in seconds"`
	WorkerCount      int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for maintenance tasks"`
	CleanupInterval  int    `long:"cleanup-interval" env:"CLEANUP_INTERVAL" default:"3600" description:"Interval between audio cleanup runs in seconds"`
	AudioRetention   int    `long:"audio-retention" env:"AUDIO_RETENTION" default:"24" description:"Hours to keep generated podcast audio files"`
	DefaultCountry   string `long:"default-country" env:"DEFAULT_COUNTRY" default:"us" description:"Country code used for headlines when no location is given"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NewsDeck/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		GeminiAPIKey:     raw.GeminiAPIKey,
		SerpAPIKey:       raw.SerpAPIKey,
		NewsAPIKey:       raw.NewsAPIKey,
		ElevenLabsAPIKey: raw.ElevenLabsAPIKey,
		Port:             raw.Port,
		PodcastsDir:      raw.PodcastsDir,
		VoicesFile:       raw.VoicesFile,
		MaxArticles:      raw.MaxArticles,
		SummaryMinLength: raw.SummaryMinLength,
		UpstreamTimeout:  raw.UpstreamTimeout,
		PodcastTimeout:   raw.PodcastTimeout,
		WorkerCount:      raw.WorkerCount,
		CleanupInterval:  raw.CleanupInterval,
		AudioRetention:   raw.AudioRetention,
		DefaultCountry:   raw.DefaultCountry,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
