package out

import (
	"context"
	"time"

	"timer/internal/modules/tracker/domain"
)

type TaskRepository interface {
	Load(ctx context.Context) (*domain.TaskList, error)
	Save(ctx context.Context, list *domain.TaskList) error
}

// IDSequence remembers the highest task id ever issued, so an id removed
// from the task file is not handed out again by a later run.
type IDSequence interface {
	LastID(ctx context.Context) (int, error)
	Advance(ctx context.Context, id int) error
}

// Prompter asks the user for the values an interactive command needs.
type Prompter interface {
	SelectCategory(ctx context.Context, categories []domain.Category) (domain.Category, error)
	Day(ctx context.Context) (time.Time, error)
	DurationMinutes(ctx context.Context) (int, error)
	Energy(ctx context.Context) (int, error)
	Comment(ctx context.Context) (string, error)
	ConfirmDuration(ctx context.Context, measured time.Duration) (time.Duration, error)
}
