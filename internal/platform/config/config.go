package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	AppDirName       = "timer-cli"
	SettingsFileName = ".env"
	TasksFileName    = "timed_tasks.csv"
	DBFileName       = "timer.db"

	// TasksPathKey names the settings entry (and environment variable) that
	// holds the task CSV location.
	TasksPathKey = "TIMED_TASKS"
	// LastIDKey holds the highest task id ever issued.
	LastIDKey = "TIMER_LAST_ID"
)

type Config struct {
	AppDir       string `validate:"required"`
	SettingsPath string `validate:"required"`
	TasksPath    string `validate:"required"`
	DBPath       string `validate:"required"`
	Location     *time.Location
}

// Options override the resolved locations. Empty fields fall back to the
// per-user config directory and the settings file.
type Options struct {
	AppDir    string
	TasksPath string
	Location  *time.Location
}

var validate = validator.New()

// Load resolves the app directory, writes a default settings file on first
// run, and reads the task file path from it. An exported TIMED_TASKS
// environment variable wins over the file; Options.TasksPath wins over both.
func Load(fsys afero.Fs, opts Options) (Config, error) {
	appDir := strings.TrimSpace(opts.AppDir)
	if appDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve user config dir: %w", err)
		}
		appDir = filepath.Join(base, AppDirName)
	}
	if err := fsys.MkdirAll(appDir, 0o755); err != nil {
		return Config{}, fmt.Errorf("create app dir: %w", err)
	}

	settingsPath := filepath.Join(appDir, SettingsFileName)
	defaultTasks := filepath.Join(appDir, TasksFileName)
	if err := ensureSettings(fsys, settingsPath, defaultTasks); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(settingsPath)
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetDefault(TasksPathKey, defaultTasks)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read settings %s: %w", settingsPath, err)
	}

	tasksPath := strings.TrimSpace(opts.TasksPath)
	if tasksPath == "" {
		tasksPath = strings.TrimSpace(v.GetString(TasksPathKey))
	}
	if tasksPath == "" {
		tasksPath = defaultTasks
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	cfg := Config{
		AppDir:       appDir,
		SettingsPath: settingsPath,
		TasksPath:    expandHome(tasksPath),
		DBPath:       filepath.Join(appDir, DBFileName),
		Location:     loc,
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func ensureSettings(fsys afero.Fs, settingsPath, defaultTasks string) error {
	_, err := fsys.Stat(settingsPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat settings: %w", err)
	}
	payload, err := godotenv.Marshal(map[string]string{TasksPathKey: defaultTasks})
	if err != nil {
		return fmt.Errorf("marshal default settings: %w", err)
	}
	if err := afero.WriteFile(fsys, settingsPath, []byte(payload+"\n"), 0o644); err != nil {
		return fmt.Errorf("write default settings: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
