package out

import (
	"context"

	"timer/internal/modules/export/domain"
)

type NoteStore interface {
	Save(ctx context.Context, dir string, record domain.Record) (string, error)
}
