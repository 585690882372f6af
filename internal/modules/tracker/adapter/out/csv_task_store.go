package out

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"timer/internal/modules/tracker/domain"
	"timer/internal/platform/logging"
)

// CSVTaskStore keeps the task list in a single CSV file.
type CSVTaskStore struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

func NewCSVTaskStore(fsys afero.Fs, path string, logger *slog.Logger) *CSVTaskStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CSVTaskStore{fs: fsys, path: path, logger: logger}
}

func (s *CSVTaskStore) Path() string {
	return s.path
}

// Load returns an empty list when the file is missing or cannot be opened.
// Rows that cannot be parsed are an error.
func (s *CSVTaskStore) Load(_ context.Context) (*domain.TaskList, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("task file not found, starting empty", "path", s.path)
		} else {
			s.logger.Warn("task file unreadable, starting empty", "path", s.path, "err", err)
		}
		return domain.NewTaskList(nil), nil
	}
	defer f.Close()

	tasks, err := decodeTasks(bufio.NewReader(f), s.logger.With("path", s.path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return domain.NewTaskList(tasks), nil
}

// Save writes the whole list to a temp file beside the target and renames it
// into place.
func (s *CSVTaskStore) Save(_ context.Context, list *domain.TaskList) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}
	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = s.fs.Remove(tmpName) }

	w := bufio.NewWriter(tmp)
	if err := encodeTasks(w, list.Tasks()); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("flush tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp task file: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", list.Len())
	return nil
}
