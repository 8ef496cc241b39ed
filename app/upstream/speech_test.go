package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSpeechSynthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "el-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !strings.HasSuffix(r.URL.Path, "/voice-1") {
			t.Errorf("Expected voice ID in path, got %s", r.URL.Path)
		}
		var req speechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Text != "Good morning." {
			t.Errorf("Expected text forwarded, got %q", req.Text)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewSpeechClient("el-key", server.Client())
	client.baseURL = server.URL

	audio, err := client.Synthesize(context.Background(), "Good morning.", "voice-1")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("Expected raw audio bytes, got %q", string(audio))
	}
}

func TestSpeechSynthesizeAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	client := NewSpeechClient("bad-key", server.Client())
	client.baseURL = server.URL

	_, err := client.Synthesize(context.Background(), "text", "voice-1")
	if !IsAuth(err) {
		t.Errorf("Expected auth error for HTTP 401, got %v", err)
	}
}

func TestSpeechSynthesizeMissingKey(t *testing.T) {
	client := NewSpeechClient("", http.DefaultClient)

	_, err := client.Synthesize(context.Background(), "text", "voice-1")
	if !IsAuth(err) {
		t.Errorf("Expected auth error for missing key, got %v", err)
	}
}

func TestSpeechSynthesizeOverLimit(t *testing.T) {
	client := NewSpeechClient("el-key", http.DefaultClient)

	long := strings.Repeat("a", SpeechChunkLimit+1)
	_, err := client.Synthesize(context.Background(), long, "voice-1")
	if err == nil {
		t.Fatal("Expected error for text over the chunk limit")
	}
	if KindOf(err) != KindMalformed {
		t.Errorf("Expected malformed error, got kind %s", KindOf(err))
	}
}
