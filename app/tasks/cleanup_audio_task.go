package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/newsdeck/app/podcast"
)

// CleanupAudioTask removes generated podcast files older than the retention
// window. Audio is the only thing the service persists, so this is the
// whole maintenance surface.
type CleanupAudioTask struct {
	Task
	store     *podcast.Store
	retention time.Duration
}

func NewCleanupAudioTask(store *podcast.Store, retention time.Duration) *CleanupAudioTask {
	return &CleanupAudioTask{
		Task:      NewTask(TaskTypeCleanupAudio),
		store:     store,
		retention: retention,
	}
}

func (t *CleanupAudioTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := time.Now().Add(-t.retention)
	removed, err := t.store.RemoveOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up audio files: %w", err)
	}

	if removed > 0 {
		slog.Info("Task completed",
			"type", "CleanupAudio",
			"removed", removed,
			"retention", t.retention.String(),
			"duration", t.GetDuration())
	}

	return nil
}
