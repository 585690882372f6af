package in

import (
	"fmt"
	"strings"
	"time"

	trackerdto "timer/internal/modules/tracker/dto"
	"timer/internal/ui/theme"
)

const (
	DisplayLayout    = "2006-01-02 15:04"
	InProgressMarker = "In Progress..."
	noneValue        = "None"
)

// RenderTask formats one task as a labelled block. An active task shows the
// minutes elapsed until now.
func RenderTask(task trackerdto.TaskOutput, now time.Time) string {
	end := theme.Running.Render(InProgressMarker)
	minutes := int(task.Duration / time.Minute)
	if task.Active {
		if elapsed := now.Sub(task.StartTime); elapsed > 0 {
			minutes = int(elapsed / time.Minute)
		} else {
			minutes = 0
		}
	} else if task.EndTime != nil {
		end = task.EndTime.Format(DisplayLayout)
	}
	energy := 0
	if task.Energy != nil {
		energy = *task.Energy
	}
	tags := noneValue
	if len(task.Tags) > 0 {
		tags = strings.Join(task.Tags, ",")
	}
	comments := noneValue
	if task.Comments != nil && *task.Comments != "" {
		comments = *task.Comments
	}

	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render(label+":"), value)
	}
	line("ID", fmt.Sprint(task.ID))
	line("Task", task.Name)
	line("Start", task.StartTime.Format(DisplayLayout))
	line("End", end)
	line("Duration", fmt.Sprintf("%d minutes", minutes))
	line("Life Energy", fmt.Sprint(energy))
	line("Tags", tags)
	line("Comments", comments)
	return b.String()
}

// RenderTasks joins the blocks of tasks with a blank line between them.
func RenderTasks(tasks []trackerdto.TaskOutput, now time.Time) string {
	blocks := make([]string, 0, len(tasks))
	for _, task := range tasks {
		blocks = append(blocks, RenderTask(task, now))
	}
	return strings.Join(blocks, "\n")
}
