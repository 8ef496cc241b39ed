package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lysyi3m/newsdeck/app/podcast"
)

func TestCleanupAudioTask(t *testing.T) {
	dir := t.TempDir()
	store := podcast.NewStore(dir)

	oldFile := filepath.Join(dir, "stale.mp3")
	freshFile := filepath.Join(dir, "fresh.mp3")
	os.WriteFile(oldFile, []byte("x"), 0o644)
	os.WriteFile(freshFile, []byte("x"), 0o644)

	past := time.Now().Add(-72 * time.Hour)
	os.Chtimes(oldFile, past, past)

	task := NewCleanupAudioTask(store, 24*time.Hour)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("Stale audio file should have been removed")
	}
	if _, err := os.Stat(freshFile); err != nil {
		t.Error("Fresh audio file should have been kept")
	}
}

func TestCleanupAudioTaskCancelled(t *testing.T) {
	store := podcast.NewStore(t.TempDir())
	task := NewCleanupAudioTask(store, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := task.Execute(ctx); err == nil {
		t.Error("Expected error for a cancelled context")
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeCleanupAudio)

	if task.GetType() != TaskTypeCleanupAudio {
		t.Errorf("Unexpected task type %s", task.GetType())
	}
	if task.GetID() == "" {
		t.Error("Task ID should not be empty")
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Task should be retryable at count %d", task.GetRetryCount())
		}
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("Task should not be retryable past max retries")
	}
}
