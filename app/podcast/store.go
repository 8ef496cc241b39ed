package podcast

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store manages generated audio files in a flat directory. Filenames are
// unique per job, so concurrent generations never collide.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Save(filename string, data []byte) error {
	path, err := s.Path(filename)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create podcasts directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// Path validates a client-supplied filename and resolves it inside the
// store directory. Path separators and traversal sequences are rejected.
func (s *Store) Path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	if !strings.HasSuffix(filename, ".mp3") {
		return "", fmt.Errorf("invalid filename %q: expected .mp3 extension", filename)
	}
	return filepath.Join(s.baseDir, filename), nil
}

func (s *Store) Exists(filename string) bool {
	path, err := s.Path(filename)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// RemoveOlderThan deletes audio files whose modification time predates the
// cutoff. Returns the number of files removed.
func (s *Store) RemoveOlderThan(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read podcasts directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp3") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.baseDir, entry.Name())); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
			}
			removed++
		}
	}

	return removed, nil
}
