package out

import (
	"context"
	"time"

	"timer/internal/modules/report/domain"
)

type TaskIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertTask(ctx context.Context, task domain.TaskRecord) error
	Summary(ctx context.Context, since time.Time) ([]domain.NameSummary, error)
}
