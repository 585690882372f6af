package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	trackerout "timer/internal/modules/tracker/adapter/out"
	"timer/internal/modules/tracker/domain"
	trackerdto "timer/internal/modules/tracker/dto"
	trackerin "timer/internal/modules/tracker/port/in"
	"timer/internal/modules/tracker/service"
	"timer/internal/modules/tracker/usecase"
	apperrors "timer/internal/platform/errors"
)

const tasksPath = "/cfg/timer-cli/timed_tasks.csv"

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

// scriptedPrompter answers from fixed values and counts the questions asked.
type scriptedPrompter struct {
	selection int
	day       time.Time
	minutes   int
	energy    int
	comment   string
	confirmed time.Duration
	asked     int
	measured  time.Duration
}

func (s *scriptedPrompter) SelectCategory(context.Context, []domain.Category) (domain.Category, error) {
	s.asked++
	return domain.CategoryAt(s.selection)
}

func (s *scriptedPrompter) Day(context.Context) (time.Time, error) {
	s.asked++
	return s.day, nil
}

func (s *scriptedPrompter) DurationMinutes(context.Context) (int, error) {
	s.asked++
	return s.minutes, nil
}

func (s *scriptedPrompter) Energy(context.Context) (int, error) {
	s.asked++
	return s.energy, nil
}

func (s *scriptedPrompter) Comment(context.Context) (string, error) {
	s.asked++
	return s.comment, nil
}

func (s *scriptedPrompter) ConfirmDuration(_ context.Context, measured time.Duration) (time.Duration, error) {
	s.asked++
	s.measured = measured
	return s.confirmed, nil
}

var t0 = time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

func newScripted(fsys afero.Fs, clk *fakeClock, prompter *scriptedPrompter) trackerin.Usecase {
	return usecase.NewInteractor(service.NewTrackerService(clk, time.UTC), trackerout.NewCSVTaskStore(fsys, tasksPath, nil), prompter)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func fileBytes(t *testing.T, fsys afero.Fs) string {
	t.Helper()
	raw, err := afero.ReadFile(fsys, tasksPath)
	if err != nil {
		t.Fatalf("read task file: %v", err)
	}
	return string(raw)
}

func TestReadingScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	clk := &fakeClock{values: []time.Time{t0, t0.Add(45 * time.Minute)}}
	prompter := &scriptedPrompter{selection: 2, energy: 5, comment: "ok"}

	started, err := newScripted(fsys, clk, prompter).StartInteractive(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.ID != 1 || started.Name != "Reading" || !started.Active {
		t.Fatalf("unexpected started task: %+v", started)
	}

	// A fresh interactor reloads from the file, as a second invocation would.
	stopped, err := newScripted(fsys, clk, prompter).Stop(ctx, trackerdto.StopInput{})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.Active || stopped.Duration != 45*time.Minute || *stopped.Energy != 5 || *stopped.Comments != "ok" {
		t.Fatalf("unexpected stopped task: %+v", stopped)
	}

	tasks, err := newScripted(fsys, clk, prompter).List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "Reading" || tasks[0].Active {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if _, err := newScripted(fsys, clk, prompter).GetActive(ctx); !errors.Is(err, apperrors.ErrNoActiveTasks) {
		t.Fatalf("expected no active task, got %v", err)
	}
}

func TestStartInteractiveRejectsBadSelection(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	uc := newScripted(fsys, &fakeClock{values: []time.Time{t0}}, &scriptedPrompter{selection: 9})
	if _, err := uc.StartInteractive(context.Background()); !errors.Is(err, apperrors.ErrInvalidSelection) {
		t.Fatalf("expected invalid selection, got %v", err)
	}
	if exists, _ := afero.Exists(fsys, tasksPath); exists {
		t.Fatalf("failed start must not write the task file")
	}
}

func TestStartRefusesSecondActiveTaskBeforePrompting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	clk := &fakeClock{values: []time.Time{t0, t0.Add(time.Minute)}}
	prompter := &scriptedPrompter{selection: 1}
	uc := newScripted(fsys, clk, prompter)

	if _, err := uc.Start(ctx, trackerdto.StartInput{Name: "Deep work", Tags: []string{"focus"}}); err != nil {
		t.Fatalf("start: %v", err)
	}
	before := fileBytes(t, fsys)

	if _, err := uc.StartInteractive(ctx); !errors.Is(err, apperrors.ErrTaskAlreadyActive) {
		t.Fatalf("expected already active, got %v", err)
	}
	if _, err := uc.AddManual(ctx); !errors.Is(err, apperrors.ErrTaskAlreadyActive) {
		t.Fatalf("expected already active for manual, got %v", err)
	}
	if _, err := uc.Start(ctx, trackerdto.StartInput{Name: "Other"}); !errors.Is(err, apperrors.ErrTaskAlreadyActive) {
		t.Fatalf("expected already active for freeform start, got %v", err)
	}
	if prompter.asked != 0 {
		t.Fatalf("prompted %d times while a task was active", prompter.asked)
	}
	if after := fileBytes(t, fsys); after != before {
		t.Fatalf("task file changed by rejected starts")
	}
}

func TestAddManual(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	prompter := &scriptedPrompter{
		selection: 3,
		day:       time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		minutes:   25,
		energy:    6,
		comment:   "morning pages",
	}
	out, err := newScripted(fsys, &fakeClock{values: []time.Time{t0}}, prompter).AddManual(context.Background())
	if err != nil {
		t.Fatalf("add manual: %v", err)
	}
	if out.Name != "Journaling" || out.Active || out.Duration != 25*time.Minute {
		t.Fatalf("unexpected manual task: %+v", out)
	}
	if !out.StartTime.Equal(prompter.day) || !out.EndTime.Equal(prompter.day.Add(25*time.Minute)) {
		t.Fatalf("unexpected window %v - %v", out.StartTime, out.EndTime)
	}
	if prompter.asked != 5 {
		t.Fatalf("expected five questions, got %d", prompter.asked)
	}
}

func TestStopWithoutActiveTask(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	prompter := &scriptedPrompter{energy: 5}
	uc := newScripted(fsys, &fakeClock{values: []time.Time{t0}}, prompter)
	if _, err := uc.Stop(context.Background(), trackerdto.StopInput{}); !errors.Is(err, apperrors.ErrNoActiveTasks) {
		t.Fatalf("expected no active tasks, got %v", err)
	}
	if prompter.asked != 0 {
		t.Fatalf("stop must not prompt without an active task")
	}
}

func TestStopUsesFlagsAndConfirmsLongDuration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	clk := &fakeClock{values: []time.Time{t0, t0.Add(4 * time.Hour)}}
	prompter := &scriptedPrompter{confirmed: 100 * time.Minute}
	uc := newScripted(fsys, clk, prompter)

	if _, err := uc.Start(ctx, trackerdto.StartInput{Name: "Work Code"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	out, err := uc.Stop(ctx, trackerdto.StopInput{Energy: intPtr(8), Comment: strPtr("release day")})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if prompter.asked != 1 || prompter.measured != 4*time.Hour {
		t.Fatalf("expected one duration confirmation for 4h, got asked=%d measured=%v", prompter.asked, prompter.measured)
	}
	if out.Duration != 100*time.Minute || *out.Energy != 8 || *out.Comments != "release day" {
		t.Fatalf("unexpected stopped task: %+v", out)
	}
}

func TestStopInvalidEnergyKeepsTaskActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	uc := newScripted(fsys, &fakeClock{values: []time.Time{t0, t0.Add(time.Minute)}}, &scriptedPrompter{})
	if _, err := uc.Start(ctx, trackerdto.StartInput{Name: "Anki"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Stop(ctx, trackerdto.StopInput{Energy: intPtr(0), Comment: strPtr("")}); !errors.Is(err, apperrors.ErrInvalidTaskEnergy) {
		t.Fatalf("expected invalid energy, got %v", err)
	}
	active, err := uc.GetActive(ctx)
	if err != nil || active.Name != "Anki" {
		t.Fatalf("task must still be active: %+v, %v", active, err)
	}
}

func TestStopWithoutPrompterNeedsFlags(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	uc := usecase.NewInteractor(service.NewTrackerService(&fakeClock{values: []time.Time{t0, t0.Add(3 * time.Hour)}}, time.UTC), trackerout.NewCSVTaskStore(fsys, tasksPath, nil), nil)
	if _, err := uc.Start(ctx, trackerdto.StartInput{Name: "Reading"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Stop(ctx, trackerdto.StopInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input without prompter, got %v", err)
	}
	out, err := uc.Stop(ctx, trackerdto.StopInput{Energy: intPtr(4), Comment: strPtr("")})
	if err != nil {
		t.Fatalf("stop with flags: %v", err)
	}
	if out.Duration != 3*time.Hour {
		t.Fatalf("measured duration must be kept without a prompter, got %v", out.Duration)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	clk := &fakeClock{values: []time.Time{t0, t0.Add(10 * time.Minute), t0.Add(20 * time.Minute), t0.Add(30 * time.Minute)}}
	uc := newScripted(fsys, clk, &scriptedPrompter{})
	for _, name := range []string{"Meetings", "Reading"} {
		if _, err := uc.Start(ctx, trackerdto.StartInput{Name: name}); err != nil {
			t.Fatalf("start %s: %v", name, err)
		}
		if _, err := uc.Stop(ctx, trackerdto.StopInput{Energy: intPtr(5), Comment: strPtr("")}); err != nil {
			t.Fatalf("stop %s: %v", name, err)
		}
	}
	before := fileBytes(t, fsys)
	if _, err := uc.Remove(ctx, trackerdto.RemoveInput{ID: 7}); !errors.Is(err, apperrors.ErrInvalidTaskID) {
		t.Fatalf("expected invalid id, got %v", err)
	}
	if fileBytes(t, fsys) != before {
		t.Fatalf("failed remove changed the task file")
	}
	removed, err := uc.Remove(ctx, trackerdto.RemoveInput{ID: 1})
	if err != nil || removed.Name != "Meetings" {
		t.Fatalf("remove: %+v, %v", removed, err)
	}
	tasks, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 2 || tasks[0].Name != "Reading" {
		t.Fatalf("unexpected tasks after remove: %+v", tasks)
	}
}

func TestListDoesNotCreateFile(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	tasks, err := newScripted(fsys, &fakeClock{values: []time.Time{t0}}, &scriptedPrompter{}).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
	if exists, _ := afero.Exists(fsys, tasksPath); exists {
		t.Fatalf("read-only operations must not write the task file")
	}
}
