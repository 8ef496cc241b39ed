package podcast

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type Voice struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

type voicesFile struct {
	Voices []Voice `yaml:"voices"`
}

// defaultVoices is used when no voices file is configured or present.
var defaultVoices = []Voice{
	{ID: "pNInz6obpgDQGcFmaJgB", Name: "Adam", Description: "Deep, authoritative news anchor"},
	{ID: "21m00Tcm4TlvDq8ikWAM", Name: "Rachel", Description: "Warm, conversational presenter"},
	{ID: "AZnzlk1XvdvUeBnXmlld", Name: "Domi", Description: "Energetic, upbeat host"},
}

// Catalog holds the available synthesis voices, loaded from a YAML file at
// startup with built-in defaults as the safety net.
type Catalog struct {
	voicesFile string
	voices     []Voice
	mu         sync.RWMutex
}

func NewCatalog(voicesFile string) *Catalog {
	return &Catalog{
		voicesFile: voicesFile,
		voices:     defaultVoices,
	}
}

func (c *Catalog) Run() error {
	if c.voicesFile == "" {
		return nil
	}
	if _, err := os.Stat(c.voicesFile); os.IsNotExist(err) {
		slog.Debug("Voices file not found, using built-in voices", "file", c.voicesFile)
		return nil
	}

	data, err := os.ReadFile(c.voicesFile)
	if err != nil {
		return fmt.Errorf("failed to read voices file: %w", err)
	}

	var parsed voicesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse voices file: %w", err)
	}

	if len(parsed.Voices) == 0 {
		return fmt.Errorf("voices file %s defines no voices", c.voicesFile)
	}

	for i, v := range parsed.Voices {
		if v.ID == "" || v.Name == "" {
			return fmt.Errorf("voice at index %d is missing an id or name", i)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.voices = parsed.Voices

	slog.Debug("Voice catalog loaded", "file", c.voicesFile, "count", len(parsed.Voices))

	return nil
}

func (c *Catalog) List() []Voice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Voice, len(c.voices))
	copy(out, c.voices)
	return out
}

func (c *Catalog) Get(id string) (Voice, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, v := range c.voices {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}

func (c *Catalog) Default() Voice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.voices[0]
}
