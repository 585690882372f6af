package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"timer/internal/platform/logging"
)

// DefaultDebounce groups the write and rename events produced by one save.
const DefaultDebounce = 150 * time.Millisecond

// File watches the directory holding path and calls onChange once per burst
// of events that touch path. Watching the directory keeps working when the
// file is replaced by rename. It returns when ctx is done.
func File(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger, onChange func(), onError func(error)) error {
	if logger == nil {
		logger = logging.Discard()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)
	logger.Debug("watching task file", "path", target)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("task file event", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("task file watcher error", "path", target, "err", err)
			if onError != nil {
				onError(err)
			}
		}
	}
}
