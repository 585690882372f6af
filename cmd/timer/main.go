package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"timer/internal/bootstrap"
	trackerinadapter "timer/internal/modules/tracker/adapter/in"
	apperrors "timer/internal/platform/errors"
	"timer/internal/platform/clock"
	"timer/internal/platform/config"
	"timer/internal/platform/logging"
	"timer/internal/ui/theme"
)

const dayLayout = "2006-01-02"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, isTerminal))
}

func isTerminal(f any) bool {
	fd, ok := f.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fd.Fd()))
}

// globals holds the persistent flags and process streams shared by every
// command.
type globals struct {
	appDir   string
	file     string
	verbose  bool
	in       io.Reader
	out      io.Writer
	terminal func(any) bool
	fs       afero.Fs
	clock    clock.Clock
}

func run(args []string, in io.Reader, out, errOut io.Writer, terminal func(any) bool) int {
	g := &globals{in: in, out: out, terminal: terminal, fs: afero.NewOsFs()}
	return execute(g, args, errOut)
}

func execute(g *globals, args []string, errOut io.Writer) int {
	root := newRootCmd(g)
	root.SetArgs(args)
	root.SetIn(g.in)
	root.SetOut(g.out)
	root.SetErr(errOut)
	if err := root.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps tracker errors onto distinct process exit codes. Queries
// that find nothing (an empty ls, status with no active task) are not
// errors and never reach here.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, apperrors.ErrTaskAlreadyActive):
		return 3
	case errors.Is(err, apperrors.ErrNoActiveTasks):
		return 4
	case errors.Is(err, apperrors.ErrInvalidTaskID):
		return 5
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrInvalidSelection),
		errors.Is(err, apperrors.ErrInvalidTaskName),
		errors.Is(err, apperrors.ErrInvalidTaskDuration),
		errors.Is(err, apperrors.ErrInvalidTaskTags),
		errors.Is(err, apperrors.ErrInvalidTaskEnergy):
		return 2
	default:
		return 1
	}
}

func newRootCmd(g *globals) *cobra.Command {
	root := &cobra.Command{
		Use:           "timer",
		Short:         "Personal command-line time tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.appDir, "app-dir", "", "settings directory (default <user config dir>/timer-cli)")
	root.PersistentFlags().StringVar(&g.file, "file", "", "task CSV file (overrides TIMED_TASKS)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log debug details to stderr")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	})

	root.AddCommand(newAddCmd(g))
	root.AddCommand(newStartCmd(g))
	root.AddCommand(newStopCmd(g))
	root.AddCommand(newStatusCmd(g))
	root.AddCommand(newListCmd(g))
	root.AddCommand(newRemoveCmd(g))
	root.AddCommand(newReportCmd(g))
	root.AddCommand(newReindexCmd(g))
	root.AddCommand(newExportCmd(g))
	root.AddCommand(newConfigCmd(g))
	root.AddCommand(newTUICmd(g))
	return root
}

func loadApp(g *globals, cmd *cobra.Command, interactive bool) (*bootstrap.App, error) {
	cfg, err := config.Load(g.fs, config.Options{AppDir: g.appDir, TasksPath: g.file})
	if err != nil {
		return nil, err
	}
	opts := bootstrap.Options{
		FS:     g.fs,
		Logger: logging.New(cmd.ErrOrStderr(), g.verbose),
		Clock:  g.clock,
	}
	if interactive {
		opts.Prompt = &bootstrap.Prompt{In: g.in, Out: cmd.OutOrStdout(), Terminal: g.terminal(g.in)}
	}
	return bootstrap.New(cfg, opts)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		return nil
	}
}

func newAddCmd(g *globals) *cobra.Command {
	var entryType string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Start a task picked from the category menu, or enter a past one",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd, true)
			if err != nil {
				return err
			}
			switch strings.ToLower(strings.TrimSpace(entryType)) {
			case "", "live":
				out, err := app.TrackerCLI.StartInteractive(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started #%d %s at %s\n", out.ID, out.Name, out.StartTime.Format(trackerinadapter.DisplayLayout))
			case "manual":
				out, err := app.TrackerCLI.AddManual(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s on %s (%d minutes)\n", out.ID, out.Name, out.StartTime.Format(dayLayout), int(out.Duration/time.Minute))
			default:
				return fmt.Errorf("%w: --type must be live or manual, got %q", apperrors.ErrInvalidInput, entryType)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&entryType, "type", "live", "entry type: live|manual")
	return cmd
}

func newStartCmd(g *globals) *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "start <task>",
		Short: "Start a task with a free-form name",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g, cmd, false)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Start(cmd.Context(), args[0], tags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "started #%d %s at %s\n", out.ID, out.Name, out.StartTime.Format(trackerinadapter.DisplayLayout))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tags")
	return cmd
}

func newStopCmd(g *globals) *cobra.Command {
	var energy int
	var comment string
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the active task",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd, true)
			if err != nil {
				return err
			}
			var energyArg *int
			if cmd.Flags().Changed("energy") {
				energyArg = &energy
			}
			var commentArg *string
			if cmd.Flags().Changed("comment") {
				commentArg = &comment
			}
			out, err := app.TrackerCLI.Stop(cmd.Context(), energyArg, commentArg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), trackerinadapter.RenderTask(out, app.Now()))
			return nil
		},
	}
	cmd.Flags().IntVar(&energy, "energy", 0, "life energy the task gave you (1-10)")
	cmd.Flags().StringVar(&comment, "comment", "", "how the task went")
	return cmd
}

func newStatusCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active task",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd, false)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.GetActive(cmd.Context())
			if errors.Is(err, apperrors.ErrNoActiveTasks) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active task")
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), trackerinadapter.RenderTask(out, app.Now()))
			return nil
		},
	}
}

func newListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all tasks in creation order",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd, false)
			if err != nil {
				return err
			}
			tasks, err := app.TrackerCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), trackerinadapter.RenderTasks(tasks, app.Now()))
			return nil
		},
	}
}

func newRemoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task by id",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("%w: id %q is not a number", apperrors.ErrInvalidInput, args[0])
			}
			app, err := loadApp(g, cmd, false)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed #%d %s\n", out.ID, out.Name)
			return nil
		},
	}
}

func newReportCmd(g *globals) *cobra.Command {
	var since string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise closed tasks by name",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd, false)
			if err != nil {
				return err
			}
			var from time.Time
			if strings.TrimSpace(since) != "" {
				from, err = time.ParseInLocation(dayLayout, strings.TrimSpace(since), app.Config.Location)
				if err != nil {
					return fmt.Errorf("%w: --since must be YYYY-MM-DD", apperrors.ErrInvalidInput)
				}
			}
			report, closeDB, err := app.Report()
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			rows, err := report.Summary(cmd.Context(), from)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no closed tasks")
				return nil
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(theme.Muted).
				Headers("TASK", "COUNT", "MINUTES", "AVG ENERGY")
			for _, row := range rows {
				avg := "-"
				if row.Rated > 0 {
					avg = strconv.FormatFloat(row.AvgEnergy, 'f', 1, 64)
				}
				t.Row(row.Name, strconv.Itoa(row.Count), strconv.Itoa(row.TotalMinutes), avg)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "only tasks starting on or after YYYY-MM-DD")
	return cmd
}

func newReindexCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite report projection from the task file",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd, false)
			if err != nil {
				return err
			}
			report, closeDB, err := app.Report()
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()
			out, err := report.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d tasks into %s\n", out.Indexed, app.Config.DBPath)
			return nil
		},
	}
}

func newExportCmd(g *globals) *cobra.Command {
	var format, notesDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as YAML, JSON or markdown notes",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd, false)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("notes") {
				out, err := app.ExportCLI.WriteNotes(cmd.Context(), notesDir)
				if err != nil {
					return err
				}
				for _, path := range out.Paths {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d notes, skipped %d active\n", len(out.Paths), out.Skipped)
				return nil
			}
			out, err := app.ExportCLI.Document(cmd.Context(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out.Content)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "document format: yaml|json")
	cmd.Flags().StringVar(&notesDir, "notes", "", "write one markdown note per closed task under this directory")
	return cmd
}

func newConfigCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show where settings, tasks and the report database live",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.fs, config.Options{AppDir: g.appDir, TasksPath: g.file})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "settings: %s\ntasks: %s\ndatabase: %s\n", cfg.SettingsPath, cfg.TasksPath, cfg.DBPath)
			return nil
		},
	}
}

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the live task dashboard",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !g.terminal(g.out) {
				return fmt.Errorf("%w: tui needs an interactive terminal", apperrors.ErrInvalidInput)
			}
			app, err := loadApp(g, cmd, false)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}
