package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "timer/internal/platform/errors"
)

const (
	SchemaVersion = 1

	// LongTaskThreshold is the elapsed time above which stopping a task asks
	// the user to confirm the real duration.
	LongTaskThreshold = 120 * time.Minute

	MinEnergy      = 1
	MaxEnergy      = 10
	MaxTagLength   = 32
	MaxTaskMinutes = 24 * 60
	DayLayout      = "2006-01-02"
)

type Task struct {
	ID        int       `validate:"gte=0"`
	Name      string    `validate:"required"`
	StartTime time.Time `validate:"required"`
	EndTime   *time.Time
	Duration  time.Duration `validate:"gte=0"`
	Tags      []string      `validate:"dive,required,max=32"`
	Energy    *int          `validate:"omitempty,min=1,max=10"`
	Comments  *string
}

// DurationConfirmer supplies the duration to record when the measured one
// exceeds LongTaskThreshold.
type DurationConfirmer func(measured time.Duration) (time.Duration, error)

var validate = validator.New()

// NewTask returns an active task started at now. The id is assigned when the
// task is appended to a TaskList.
func NewTask(name string, tags []string, now time.Time) (Task, error) {
	task := Task{
		Name:      strings.TrimSpace(name),
		StartTime: now,
		Tags:      normalizeTags(tags),
	}
	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	return task, nil
}

// NewManualTask returns a task entered after the fact: it starts at day's
// midnight and is already closed.
func NewManualTask(name string, day time.Time, minutes, energy int, comment string) (Task, error) {
	if minutes < 1 || minutes > MaxTaskMinutes {
		return Task{}, fmt.Errorf("%w: %d minutes is outside 1..%d", apperrors.ErrInvalidTaskDuration, minutes, MaxTaskMinutes)
	}
	if err := validateEnergy(energy); err != nil {
		return Task{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	duration := time.Duration(minutes) * time.Minute
	end := start.Add(duration)
	task := Task{
		Name:      strings.TrimSpace(name),
		StartTime: start,
		EndTime:   &end,
		Duration:  duration,
		Energy:    &energy,
		Comments:  optionalComment(comment),
	}
	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (t Task) Active() bool {
	return t.EndTime == nil
}

// Elapsed is the recorded duration for a closed task and the running time
// for an active one.
func (t Task) Elapsed(now time.Time) time.Duration {
	if t.Active() {
		if now.Before(t.StartTime) {
			return 0
		}
		return now.Sub(t.StartTime)
	}
	return t.Duration
}

// Stop closes the task. Nothing is changed when energy is out of range or
// confirm fails.
func (t *Task) Stop(now time.Time, energy int, comment string, confirm DurationConfirmer) error {
	if !t.Active() {
		return fmt.Errorf("%w: task %d already ended", apperrors.ErrNoActiveTasks, t.ID)
	}
	if err := validateEnergy(energy); err != nil {
		return err
	}
	duration := now.Sub(t.StartTime)
	if duration < 0 {
		duration = 0
	}
	if duration > LongTaskThreshold && confirm != nil {
		confirmed, err := confirm(duration)
		if err != nil {
			return err
		}
		if confirmed < 0 || confirmed > MaxTaskMinutes*time.Minute {
			return fmt.Errorf("%w: %s is outside 0..%dm", apperrors.ErrInvalidTaskDuration, confirmed, MaxTaskMinutes)
		}
		duration = confirmed
	}
	t.EndTime = &now
	t.Duration = duration
	t.Energy = &energy
	t.Comments = optionalComment(comment)
	return nil
}

// optionalComment trims comment; a blank comment is stored as unset so it
// reads back the same from the task file.
func optionalComment(comment string) *string {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil
	}
	return &comment
}

// Validate applies the task validation policy and maps failures onto the
// tracker's error kinds.
func (t Task) Validate() error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	fe := fieldErrs[0]
	field := fe.StructField()
	switch {
	case field == "Name":
		return fmt.Errorf("%w: name is required", apperrors.ErrInvalidTaskName)
	case field == "Energy":
		return fmt.Errorf("%w: must be between %d and %d", apperrors.ErrInvalidTaskEnergy, MinEnergy, MaxEnergy)
	case strings.HasPrefix(field, "Tags"):
		return fmt.Errorf("%w: %q must be 1..%d characters", apperrors.ErrInvalidTaskTags, fe.Value(), MaxTagLength)
	case field == "Duration":
		return fmt.Errorf("%w: must not be negative", apperrors.ErrInvalidTaskDuration)
	default:
		return fmt.Errorf("%w: %s failed %s", apperrors.ErrInvalidInput, fe.StructNamespace(), fe.Tag())
	}
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	out := t
	out.Tags = slices.Clone(t.Tags)
	if t.EndTime != nil {
		end := *t.EndTime
		out.EndTime = &end
	}
	if t.Energy != nil {
		energy := *t.Energy
		out.Energy = &energy
	}
	if t.Comments != nil {
		comments := *t.Comments
		out.Comments = &comments
	}
	return out
}

// ParseTags splits the comma-separated form used on the command line and in
// the CSV file.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return normalizeTags(strings.Split(raw, ","))
}

// ParseDay reads a YYYY-MM-DD date as midnight in loc.
func ParseDay(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(DayLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, strings.TrimSpace(raw))
	}
	return day, nil
}

func normalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

func validateEnergy(energy int) error {
	if energy < MinEnergy || energy > MaxEnergy {
		return fmt.Errorf("%w: %d is not between %d and %d", apperrors.ErrInvalidTaskEnergy, energy, MinEnergy, MaxEnergy)
	}
	return nil
}
