package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"timer/internal/platform/config"
)

// EnvIDSequence keeps the task id high-water mark in the settings file,
// beside the task file path.
type EnvIDSequence struct {
	fs   afero.Fs
	path string
}

func NewEnvIDSequence(fsys afero.Fs, settingsPath string) *EnvIDSequence {
	return &EnvIDSequence{fs: fsys, path: settingsPath}
}

func (s *EnvIDSequence) LastID(_ context.Context) (int, error) {
	values, err := s.read()
	if err != nil {
		return 0, err
	}
	return s.lastID(values)
}

// Advance records id when it is above the stored mark. The settings file is
// left untouched otherwise.
func (s *EnvIDSequence) Advance(_ context.Context, id int) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	current, err := s.lastID(values)
	if err != nil {
		return err
	}
	if id <= current {
		return nil
	}
	values[config.LastIDKey] = strconv.Itoa(id)
	payload, err := godotenv.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(payload+"\n"), 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}

func (s *EnvIDSequence) read() (map[string]string, error) {
	f, err := s.fs.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open settings %s: %w", s.path, err)
	}
	defer f.Close()
	values, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	return values, nil
}

func (s *EnvIDSequence) lastID(values map[string]string) (int, error) {
	raw := strings.TrimSpace(values[config.LastIDKey])
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("settings %s: %s=%q is not a task id", s.path, config.LastIDKey, raw)
	}
	return id, nil
}
