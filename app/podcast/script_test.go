package podcast

import (
	"strings"
	"testing"
)

func TestBuildScript(t *testing.T) {
	items := []scriptItem{
		{Headline: "First story", Summary: "Summary one."},
		{Headline: "Second story", Summary: "Summary two."},
		{Headline: "Third story", Summary: "Summary three."},
	}

	script := buildScript("technology", "professional", items)

	if !strings.Contains(script, "Technology") {
		t.Error("Script intro should name the title-cased category")
	}
	for _, item := range items {
		if !strings.Contains(script, item.Summary) {
			t.Errorf("Script should contain summary %q", item.Summary)
		}
	}
	if !strings.Contains(script, transitions["professional"][0]) {
		t.Error("Script should contain a presenter transition between stories")
	}
	if !strings.Contains(script, "Thanks for listening") {
		t.Error("Script should end with the outro")
	}
}

func TestBuildScriptGeneralCategory(t *testing.T) {
	script := buildScript("general", "professional", []scriptItem{{Headline: "H", Summary: "S."}})
	if !strings.Contains(script, "Top Stories") {
		t.Error("General category should use the 'Top Stories' intro")
	}
}

func TestBuildScriptUnknownStyle(t *testing.T) {
	items := []scriptItem{
		{Headline: "A", Summary: "S1."},
		{Headline: "B", Summary: "S2."},
	}
	script := buildScript("sports", "does-not-exist", items)
	if !strings.Contains(script, transitions["professional"][0]) {
		t.Error("Unknown style should fall back to professional transitions")
	}
}

func TestChunkScriptShort(t *testing.T) {
	chunks := chunkScript("A short script.", 100)
	if len(chunks) != 1 || chunks[0] != "A short script." {
		t.Errorf("Short scripts should be a single chunk, got %v", chunks)
	}
}

func TestChunkScriptRespectsLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("This is a reasonably sized sentence for chunking purposes. ")
	}

	chunks := chunkScript(b.String(), 200)
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 200 {
			t.Errorf("Chunk %d exceeds the limit: %d characters", i, len(chunk))
		}
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("Chunk %d is empty", i)
		}
	}

	joined := strings.Join(chunks, " ")
	if !strings.Contains(joined, "chunking purposes") {
		t.Error("Chunks should preserve the script text")
	}
}

func TestChunkScriptLongSentence(t *testing.T) {
	long := strings.Repeat("x", 450)
	chunks := chunkScript(long, 200)
	for i, chunk := range chunks {
		if len(chunk) > 200 {
			t.Errorf("Chunk %d exceeds the limit: %d characters", i, len(chunk))
		}
	}
	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	if total != 450 {
		t.Errorf("Hard-split chunks should preserve all content, got %d of 450 characters", total)
	}
}

func TestChunkScriptEmpty(t *testing.T) {
	if chunks := chunkScript("   ", 100); chunks != nil {
		t.Errorf("Expected nil for whitespace-only script, got %v", chunks)
	}
}
