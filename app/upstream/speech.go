package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const speechBaseURL = "https://api.elevenlabs.io/v1/text-to-speech"

// SpeechChunkLimit is the maximum text length accepted by a single
// synthesis call. Longer scripts must be chunked by the caller.
const SpeechChunkLimit = 4800

type SpeechClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewSpeechClient(apiKey string, httpClient *http.Client) *SpeechClient {
	return &SpeechClient{
		apiKey:     apiKey,
		baseURL:    speechBaseURL,
		httpClient: httpClient,
	}
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to mp3 audio with the given voice.
func (c *SpeechClient) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, missingKey("elevenlabs")
	}
	if len(text) > SpeechChunkLimit {
		return nil, malformed("elevenlabs", fmt.Sprintf("text length %d exceeds the per-call limit %d", len(text), SpeechChunkLimit))
	}

	payload, err := json.Marshal(speechRequest{
		Text:    text,
		ModelID: "eleven_multilingual_v2",
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport("elevenlabs", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport("elevenlabs", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus("elevenlabs", resp.StatusCode, string(body))
	}

	if len(body) == 0 {
		return nil, malformed("elevenlabs", "response contains no audio data")
	}

	return body, nil
}
