package domain

import (
	"fmt"

	apperrors "timer/internal/platform/errors"
)

// TaskList is the ordered set of tasks for one invocation. It owns its
// tasks: reads return copies and writes go through its methods.
type TaskList struct {
	tasks  []Task
	lastID int
}

func NewTaskList(tasks []Task) *TaskList {
	list := &TaskList{tasks: make([]Task, 0, len(tasks))}
	for _, task := range tasks {
		list.tasks = append(list.tasks, task.Clone())
		if task.ID > list.lastID {
			list.lastID = task.ID
		}
	}
	return list
}

func (l *TaskList) Len() int {
	return len(l.tasks)
}

func (l *TaskList) Tasks() []Task {
	out := make([]Task, 0, len(l.tasks))
	for _, task := range l.tasks {
		out = append(out, task.Clone())
	}
	return out
}

// NextID is one above every id this list has held, including removed ones.
func (l *TaskList) NextID() int {
	return l.lastID + 1
}

// LastID is the highest id this list has held.
func (l *TaskList) LastID() int {
	return l.lastID
}

// Reserve retires every id up to id, so the next task is numbered above it.
func (l *TaskList) Reserve(id int) {
	if id > l.lastID {
		l.lastID = id
	}
}

// Active returns the active task, scanning from the most recent.
func (l *TaskList) Active() (Task, bool) {
	idx := l.activeIndex()
	if idx < 0 {
		return Task{}, false
	}
	return l.tasks[idx].Clone(), true
}

// Append assigns the next id to task and adds it. It fails while another
// task is active, whether task itself is active or a closed manual entry.
func (l *TaskList) Append(task Task) (Task, error) {
	if active, ok := l.Active(); ok {
		return Task{}, fmt.Errorf("%w: %q (id %d) is still running", apperrors.ErrTaskAlreadyActive, active.Name, active.ID)
	}
	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	task = task.Clone()
	task.ID = l.NextID()
	l.lastID = task.ID
	l.tasks = append(l.tasks, task)
	return task.Clone(), nil
}

// StopActive closes the active task in place.
func (l *TaskList) StopActive(stop func(*Task) error) (Task, error) {
	idx := l.activeIndex()
	if idx < 0 {
		return Task{}, apperrors.ErrNoActiveTasks
	}
	updated := l.tasks[idx].Clone()
	if err := stop(&updated); err != nil {
		return Task{}, err
	}
	l.tasks[idx] = updated
	return updated.Clone(), nil
}

func (l *TaskList) Remove(id int) (Task, error) {
	for i, task := range l.tasks {
		if task.ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return task, nil
		}
	}
	return Task{}, fmt.Errorf("%w: %d", apperrors.ErrInvalidTaskID, id)
}

func (l *TaskList) activeIndex() int {
	for i := len(l.tasks) - 1; i >= 0; i-- {
		if l.tasks[i].Active() {
			return i
		}
	}
	return -1
}
