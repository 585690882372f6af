package in_test

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	trackerin "timer/internal/modules/tracker/adapter/in"
	trackerdto "timer/internal/modules/tracker/dto"
)

var start = time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

func TestRenderClosedTask(t *testing.T) {
	t.Parallel()
	end := start.Add(45 * time.Minute)
	energy := 5
	comment := "ok"
	task := trackerdto.TaskOutput{ID: 1, Name: "Reading", StartTime: start, EndTime: &end, Duration: 45 * time.Minute, Energy: &energy, Comments: &comment}

	got := ansi.Strip(trackerin.RenderTasks([]trackerdto.TaskOutput{task}, end.Add(time.Hour)))
	want := strings.Join([]string{
		"ID: 1",
		"Task: Reading",
		"Start: 2026-02-25 10:00",
		"End: 2026-02-25 10:45",
		"Duration: 45 minutes",
		"Life Energy: 5",
		"Tags: None",
		"Comments: ok",
	}, "\n") + "\n"
	if got != want {
		t.Fatalf("unexpected block:\n%s\nwant:\n%s", got, want)
	}
	if strings.Count(got, "Task: ") != 1 {
		t.Fatalf("expected exactly one block")
	}
}

func TestRenderActiveTaskShowsElapsed(t *testing.T) {
	t.Parallel()
	task := trackerdto.TaskOutput{ID: 3, Name: "Anki", StartTime: start, Tags: []string{"cards", "spanish"}, Active: true}
	got := ansi.Strip(trackerin.RenderTask(task, start.Add(17*time.Minute+30*time.Second)))
	for _, want := range []string{"End: In Progress...", "Duration: 17 minutes", "Life Energy: 0", "Tags: cards,spanish", "Comments: None"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderTasksSeparatesBlocks(t *testing.T) {
	t.Parallel()
	tasks := []trackerdto.TaskOutput{
		{ID: 1, Name: "Meetings", StartTime: start, Active: true},
		{ID: 2, Name: "Reading", StartTime: start, Active: true},
	}
	got := ansi.Strip(trackerin.RenderTasks(tasks, start))
	if strings.Count(got, "\n\n") != 1 {
		t.Fatalf("expected one blank separator line:\n%s", got)
	}
	if trackerin.RenderTasks(nil, start) != "" {
		t.Fatalf("empty list must render nothing")
	}
}
