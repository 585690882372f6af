package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "timer/internal/platform/errors"
)

var start = time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

func TestNewTaskValidation(t *testing.T) {
	t.Parallel()
	task, err := NewTask("  Reading ", []string{" go", "", "books "}, start)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Name != "Reading" || !task.Active() || task.Duration != 0 || task.Energy != nil || task.Comments != nil {
		t.Fatalf("unexpected task: %+v", task)
	}
	if len(task.Tags) != 2 || task.Tags[0] != "go" || task.Tags[1] != "books" {
		t.Fatalf("tags not normalized: %q", task.Tags)
	}

	if _, err := NewTask("   ", nil, start); !errors.Is(err, apperrors.ErrInvalidTaskName) {
		t.Fatalf("expected invalid name, got %v", err)
	}
	long := "abcdefghijklmnopqrstuvwxyz0123456789"
	if _, err := NewTask("Reading", []string{long}, start); !errors.Is(err, apperrors.ErrInvalidTaskTags) {
		t.Fatalf("expected invalid tags, got %v", err)
	}
}

func TestStopRecordsElapsedTime(t *testing.T) {
	t.Parallel()
	task, _ := NewTask("Reading", nil, start)
	called := false
	confirm := func(time.Duration) (time.Duration, error) {
		called = true
		return 0, nil
	}
	if err := task.Stop(start.Add(45*time.Minute), 5, " ok\n", confirm); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if called {
		t.Fatalf("confirm must not run below the threshold")
	}
	if task.Active() || task.Duration != 45*time.Minute || *task.Energy != 5 || *task.Comments != "ok" {
		t.Fatalf("unexpected stopped task: %+v", task)
	}
	if !task.EndTime.Equal(start.Add(45 * time.Minute)) {
		t.Fatalf("end time = %v", task.EndTime)
	}
	if err := task.Stop(start.Add(time.Hour), 5, "", nil); !errors.Is(err, apperrors.ErrNoActiveTasks) {
		t.Fatalf("second stop must fail, got %v", err)
	}
}

func TestBlankCommentIsUnset(t *testing.T) {
	t.Parallel()
	task, _ := NewTask("Reading", nil, start)
	if err := task.Stop(start.Add(10*time.Minute), 4, "  \n", nil); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if task.Comments != nil {
		t.Fatalf("blank comment stored as %q", *task.Comments)
	}
	manual, err := NewManualTask("Anki", start, 20, 6, "")
	if err != nil {
		t.Fatalf("manual task: %v", err)
	}
	if manual.Comments != nil {
		t.Fatalf("blank manual comment stored as %q", *manual.Comments)
	}
}

func TestStopOverridesLongDuration(t *testing.T) {
	t.Parallel()
	task, _ := NewTask("Work Code", nil, start)
	var measured time.Duration
	confirm := func(d time.Duration) (time.Duration, error) {
		measured = d
		return 90 * time.Minute, nil
	}
	if err := task.Stop(start.Add(5*time.Hour), 7, "forgot to stop", confirm); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if measured != 5*time.Hour {
		t.Fatalf("confirm saw %v", measured)
	}
	if task.Duration != 90*time.Minute {
		t.Fatalf("override not applied: %v", task.Duration)
	}
	if !task.EndTime.Equal(start.Add(5 * time.Hour)) {
		t.Fatalf("end time must stay at stop time, got %v", task.EndTime)
	}
}

func TestStopLeavesTaskUntouchedOnError(t *testing.T) {
	t.Parallel()
	task, _ := NewTask("Anki", nil, start)
	if err := task.Stop(start.Add(time.Minute), 11, "", nil); !errors.Is(err, apperrors.ErrInvalidTaskEnergy) {
		t.Fatalf("expected invalid energy, got %v", err)
	}
	boom := errors.New("boom")
	err := task.Stop(start.Add(3*time.Hour), 4, "", func(time.Duration) (time.Duration, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected confirm error, got %v", err)
	}
	err = task.Stop(start.Add(3*time.Hour), 4, "", func(time.Duration) (time.Duration, error) { return -time.Minute, nil })
	if !errors.Is(err, apperrors.ErrInvalidTaskDuration) {
		t.Fatalf("expected invalid duration, got %v", err)
	}
	if !task.Active() || task.Energy != nil || task.Comments != nil {
		t.Fatalf("task mutated by failed stop: %+v", task)
	}
}

func TestNewManualTask(t *testing.T) {
	t.Parallel()
	day, err := ParseDay("2026-02-20", time.UTC)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	task, err := NewManualTask("Journaling", day, 30, 8, "morning pages")
	if err != nil {
		t.Fatalf("manual task: %v", err)
	}
	wantStart := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	if !task.StartTime.Equal(wantStart) || !task.EndTime.Equal(wantStart.Add(30*time.Minute)) {
		t.Fatalf("unexpected window %v - %v", task.StartTime, task.EndTime)
	}
	if task.Active() || task.Duration != 30*time.Minute || *task.Energy != 8 {
		t.Fatalf("unexpected manual task: %+v", task)
	}

	if _, err := NewManualTask("Journaling", day, 0, 8, ""); !errors.Is(err, apperrors.ErrInvalidTaskDuration) {
		t.Fatalf("expected invalid duration, got %v", err)
	}
	if _, err := NewManualTask("Journaling", day, 10, 0, ""); !errors.Is(err, apperrors.ErrInvalidTaskEnergy) {
		t.Fatalf("expected invalid energy, got %v", err)
	}
	if _, err := ParseDay("20/02/2026", time.UTC); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid date, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()
	all := Categories()
	if len(all) != 8 || all[0].String() != "Meetings" || all[7].String() != "Other" {
		t.Fatalf("unexpected categories: %v", all)
	}
	c, err := CategoryAt(6)
	if err != nil || c.String() != "Browse Internet" {
		t.Fatalf("selection 6 = %v, %v", c, err)
	}
	for _, bad := range []int{0, 9, -1} {
		if _, err := CategoryAt(bad); !errors.Is(err, apperrors.ErrInvalidSelection) {
			t.Fatalf("selection %d: expected invalid selection, got %v", bad, err)
		}
	}
}

func TestParseTags(t *testing.T) {
	t.Parallel()
	if got := ParseTags(""); got != nil {
		t.Fatalf("empty tags = %q", got)
	}
	got := ParseTags("deep, focus,,")
	if len(got) != 2 || got[0] != "deep" || got[1] != "focus" {
		t.Fatalf("tags = %q", got)
	}
}
