package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	exportinadapter "timer/internal/modules/export/adapter/in"
	exportoutadapter "timer/internal/modules/export/adapter/out"
	exportservice "timer/internal/modules/export/service"
	exportusecase "timer/internal/modules/export/usecase"
	reportinadapter "timer/internal/modules/report/adapter/in"
	reportoutadapter "timer/internal/modules/report/adapter/out"
	reportservice "timer/internal/modules/report/service"
	reportusecase "timer/internal/modules/report/usecase"
	trackerinadapter "timer/internal/modules/tracker/adapter/in"
	trackeroutadapter "timer/internal/modules/tracker/adapter/out"
	trackerin "timer/internal/modules/tracker/port/in"
	trackerout "timer/internal/modules/tracker/port/out"
	trackerservice "timer/internal/modules/tracker/service"
	trackerusecase "timer/internal/modules/tracker/usecase"
	"timer/internal/platform/clock"
	"timer/internal/platform/config"
	"timer/internal/platform/logging"
	"timer/internal/platform/watch"
	uiapp "timer/internal/ui/app"
)

// Options carries the process-level collaborators. A nil Prompt disables
// interactive questions.
type Options struct {
	FS     afero.Fs
	Logger *slog.Logger
	Clock  clock.Clock
	Prompt *Prompt
}

// Prompt is where the interactive commands read answers. Terminal selects
// the full-screen prompts; otherwise answers are read one line each.
type Prompt struct {
	In       io.Reader
	Out      io.Writer
	Terminal bool
}

type App struct {
	Config     config.Config
	TrackerCLI trackerinadapter.CLIHandler
	ExportCLI  exportinadapter.CLIHandler

	logger  *slog.Logger
	tracker trackerin.Usecase
	clock   clock.Clock
}

func New(cfg config.Config, opts Options) (*App, error) {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}

	var prompter trackerout.Prompter
	if opts.Prompt != nil {
		prompter = trackeroutadapter.NewTerminalPrompter(opts.Prompt.In, opts.Prompt.Out, opts.Prompt.Terminal, cfg.Location)
	}
	store := trackeroutadapter.NewSequencedTaskStore(
		trackeroutadapter.NewCSVTaskStore(opts.FS, cfg.TasksPath, opts.Logger),
		trackeroutadapter.NewEnvIDSequence(opts.FS, cfg.SettingsPath),
	)
	trackerUC := trackerusecase.NewInteractor(
		trackerservice.NewTrackerService(opts.Clock, cfg.Location),
		store,
		prompter,
	)

	exportUC := exportusecase.NewInteractor(
		exportservice.NewExportService(exportoutadapter.NewVaultNoteStore(opts.FS)),
		trackerUC,
	)

	return &App{
		Config:     cfg,
		TrackerCLI: trackerinadapter.NewCLIHandler(trackerUC),
		ExportCLI:  exportinadapter.NewCLIHandler(exportUC),
		logger:     opts.Logger,
		tracker:    trackerUC,
		clock:      opts.Clock,
	}, nil
}

// Report opens the SQLite projection. Only the report commands need it, so
// other commands never create the database file. The returned func closes
// the database.
func (a *App) Report() (reportinadapter.CLIHandler, func() error, error) {
	projector, err := reportoutadapter.NewSQLiteTaskProjector(a.Config.DBPath)
	if err != nil {
		return reportinadapter.CLIHandler{}, nil, fmt.Errorf("new task projector: %w", err)
	}
	uc := reportusecase.NewInteractor(reportservice.NewReportService(projector), a.tracker)
	return reportinadapter.NewCLIHandler(uc), projector.Close, nil
}

func (a *App) Now() time.Time {
	return a.clock.Now()
}

// RunTUI runs the dashboard and reloads it whenever the task file changes.
func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(app.Config.TasksPath, app.TrackerCLI, app.clock.Now)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		err := watch.File(watchCtx, app.Config.TasksPath, watch.DefaultDebounce, app.logger,
			func() { program.Send(uiapp.FileChangedMsg{}) },
			func(err error) { program.Send(uiapp.WatchErrMsg{Err: err}) },
		)
		if err != nil {
			app.logger.Warn("task file watcher stopped", "err", err)
			program.Send(uiapp.WatchErrMsg{Err: err})
		}
	}()

	_, err := program.Run()
	return err
}
