package cfg

type Cfg struct {
	// Upstream credentials
	GeminiAPIKey     string
	SerpAPIKey       string
	NewsAPIKey       string
	ElevenLabsAPIKey string

	// Application configuration
	Port             string
	PodcastsDir      string
	VoicesFile       string
	MaxArticles      int
	SummaryMinLength int
	UpstreamTimeout  int
	PodcastTimeout   int
	WorkerCount      int
	CleanupInterval  int
	AudioRetention   int
	DefaultCountry   string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
